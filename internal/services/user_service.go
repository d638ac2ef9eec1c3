package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/campustrade/campustrade/internal/models"
	"github.com/campustrade/campustrade/internal/targeting"
	"github.com/campustrade/campustrade/pkg/crypto"
	apperrors "github.com/campustrade/campustrade/pkg/errors"
)

// RegisterUserInput defines attributes required to register a marketplace member.
type RegisterUserInput struct {
	InstitutionalID string
	Email           string
	Name            string
	Password        string
	Role            string
}

// UserService manages marketplace members and doubles as the user directory
// consumed by the notification feed.
type UserService struct {
	db       *gorm.DB
	idLength int
}

// NewUserService constructs a UserService.
func NewUserService(db *gorm.DB, institutionalIDLength int) (*UserService, error) {
	if db == nil {
		return nil, errors.New("user service: db is required")
	}
	if institutionalIDLength <= 0 {
		return nil, errors.New("user service: institutional id length must be positive")
	}
	return &UserService{db: db, idLength: institutionalIDLength}, nil
}

// Register validates and persists a new seller or buyer account.
func (s *UserService) Register(ctx context.Context, input RegisterUserInput) (*models.User, error) {
	ctx = ensureContext(ctx)

	institutionalID := strings.TrimSpace(input.InstitutionalID)
	if !digitsOfLength(institutionalID, s.idLength) {
		return nil, apperrors.NewValidation(fmt.Sprintf("institutional id must be exactly %d digits", s.idLength))
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, apperrors.NewValidation("email is required")
	}

	name := strings.TrimSpace(input.Name)
	if len(name) < 2 || len(name) > 100 {
		return nil, apperrors.NewValidation("name must be between 2 and 100 characters")
	}

	if len(input.Password) < 6 {
		return nil, apperrors.NewValidation("password must be at least 6 characters")
	}

	// Self-service registration never produces an admin.
	if input.Role != models.RoleSeller && input.Role != models.RoleBuyer {
		return nil, apperrors.NewValidation("role must be seller or buyer")
	}

	hashed, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("user service: hash password: %w", err)
	}

	user := models.User{
		InstitutionalID: institutionalID,
		Email:           email,
		Name:            name,
		Password:        hashed,
		Role:            input.Role,
		IsActive:        true,
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.NewValidation("institutional id or email is already registered")
		}
		return nil, fmt.Errorf("user service: create user: %w", err)
	}

	return &user, nil
}

// Authenticate verifies credentials against an email or institutional ID
// identifier and returns the matching active user.
func (s *UserService) Authenticate(ctx context.Context, identifier, password string) (*models.User, error) {
	ctx = ensureContext(ctx)

	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	var user models.User
	err := s.db.WithContext(ctx).
		Where("email = ? OR institutional_id = ?", strings.ToLower(identifier), identifier).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("user service: load user: %w", err)
	}

	if !user.IsActive || !crypto.VerifyPassword(user.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return &user, nil
}

// GetByID loads a single user.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	ctx = ensureContext(ctx)

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("user service: load user: %w", err)
	}
	return &user, nil
}

// List returns a page of users for the admin console.
func (s *UserService) List(ctx context.Context, page, perPage int) ([]models.User, int64, error) {
	ctx = ensureContext(ctx)

	if page < 1 {
		page = 1
	}
	if perPage <= 0 || perPage > 100 {
		perPage = 20
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("user service: count: %w", err)
	}

	var users []models.User
	if err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("user service: list: %w", err)
	}

	return users, total, nil
}

// SetActive toggles a user's active flag.
func (s *UserService) SetActive(ctx context.Context, id string, active bool) error {
	ctx = ensureContext(ctx)

	result := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("is_active", active)
	if result.Error != nil {
		return fmt.Errorf("user service: set active: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListActiveProfiles projects every active user onto their targeting profile.
// This is the directory used for broadcast recipient estimates.
func (s *UserService) ListActiveProfiles(ctx context.Context) ([]targeting.Profile, error) {
	ctx = ensureContext(ctx)

	var users []models.User
	if err := s.db.WithContext(ctx).
		Select("role", "institutional_id").
		Where("is_active = ?", true).
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("user service: list active profiles: %w", err)
	}

	profiles := make([]targeting.Profile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Profile())
	}
	return profiles, nil
}
