package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/campustrade/campustrade/internal/models"
	apperrors "github.com/campustrade/campustrade/pkg/errors"
)

// CategoryService manages the browsing taxonomy.
type CategoryService struct {
	db *gorm.DB
}

// NewCategoryService constructs a CategoryService.
func NewCategoryService(db *gorm.DB) (*CategoryService, error) {
	if db == nil {
		return nil, errors.New("category service: db is required")
	}
	return &CategoryService{db: db}, nil
}

// List returns every category ordered by name.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	ctx = ensureContext(ctx)

	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("category service: list: %w", err)
	}
	return categories, nil
}

// Create adds a category. Names are unique.
func (s *CategoryService) Create(ctx context.Context, name, description string) (*models.Category, error) {
	ctx = ensureContext(ctx)

	name = strings.TrimSpace(name)
	if len(name) < 2 || len(name) > 100 {
		return nil, apperrors.NewValidation("name must be between 2 and 100 characters")
	}

	category := models.Category{
		Name:        name,
		Description: strings.TrimSpace(description),
	}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.NewValidation("category name already exists")
		}
		return nil, fmt.Errorf("category service: create: %w", err)
	}
	return &category, nil
}

// Update renames a category or changes its description.
func (s *CategoryService) Update(ctx context.Context, id, name, description string) (*models.Category, error) {
	ctx = ensureContext(ctx)

	name = strings.TrimSpace(name)
	if len(name) < 2 || len(name) > 100 {
		return nil, apperrors.NewValidation("name must be between 2 and 100 characters")
	}

	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("category service: load: %w", err)
	}

	category.Name = name
	category.Description = strings.TrimSpace(description)
	if err := s.db.WithContext(ctx).Save(&category).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.NewValidation("category name already exists")
		}
		return nil, fmt.Errorf("category service: update: %w", err)
	}
	return &category, nil
}

// Delete removes an empty category; categories still holding listings are kept.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	ctx = ensureContext(ctx)

	var inUse int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).
		Where("category_id = ?", id).
		Count(&inUse).Error; err != nil {
		return fmt.Errorf("category service: check usage: %w", err)
	}
	if inUse > 0 {
		return apperrors.NewValidation("category still has listings")
	}

	result := s.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("category service: delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
