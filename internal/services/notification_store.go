package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/campustrade/campustrade/internal/models"
	"github.com/campustrade/campustrade/internal/targeting"
	apperrors "github.com/campustrade/campustrade/pkg/errors"
)

// NotificationDraft defines the attributes required to persist a notification.
type NotificationDraft struct {
	Title       string
	Body        string
	Severity    models.Severity
	Target      targeting.Rule
	Priority    int
	IsPermanent bool
	CreatedBy   string
}

// AdminNotification decorates a notification with its receipt count for the
// admin listing.
type AdminNotification struct {
	models.Notification
	ReadCount int64 `json:"read_count"`
}

// NotificationStore owns durable persistence of notification records.
type NotificationStore struct {
	db       *gorm.DB
	idLength int
}

// NewNotificationStore constructs a NotificationStore. institutionalIDLength
// is the configured digit count used to validate specific-ID targeting rules.
func NewNotificationStore(db *gorm.DB, institutionalIDLength int) (*NotificationStore, error) {
	if db == nil {
		return nil, errors.New("notification store: db is required")
	}
	if institutionalIDLength <= 0 {
		return nil, errors.New("notification store: institutional id length must be positive")
	}
	return &NotificationStore{db: db, idLength: institutionalIDLength}, nil
}

// Create validates and persists a new notification, returning the stored row.
func (s *NotificationStore) Create(ctx context.Context, draft NotificationDraft) (*models.Notification, error) {
	ctx = ensureContext(ctx)

	if err := s.validateDraft(&draft); err != nil {
		return nil, err
	}

	notification := models.Notification{
		Title:                 strings.TrimSpace(draft.Title),
		Body:                  strings.TrimSpace(draft.Body),
		Severity:              draft.Severity,
		TargetKind:            draft.Target.Kind,
		TargetRole:            draft.Target.Role,
		TargetInstitutionalID: draft.Target.InstitutionalID,
		Priority:              draft.Priority,
		IsPermanent:           draft.IsPermanent,
		CreatedBy:             draft.CreatedBy,
	}

	if err := s.db.WithContext(ctx).Create(&notification).Error; err != nil {
		return nil, fmt.Errorf("notification store: create: %w", err)
	}

	return &notification, nil
}

// GetByID loads a single notification.
func (s *NotificationStore) GetByID(ctx context.Context, id uint) (*models.Notification, error) {
	ctx = ensureContext(ctx)

	var notification models.Notification
	if err := s.db.WithContext(ctx).First(&notification, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("notification store: load: %w", err)
	}
	return &notification, nil
}

// List returns every stored notification in insertion order. There is no
// automatic expiry: rows remain listed until explicitly deleted.
func (s *NotificationStore) List(ctx context.Context) ([]models.Notification, error) {
	ctx = ensureContext(ctx)

	var rows []models.Notification
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("notification store: list: %w", err)
	}
	return rows, nil
}

// ListAdmin returns a page of notifications annotated with read counts,
// ordered by priority then recency, plus the total row count.
func (s *NotificationStore) ListAdmin(ctx context.Context, page, perPage int) ([]AdminNotification, int64, error) {
	ctx = ensureContext(ctx)

	if page < 1 {
		page = 1
	}
	if perPage <= 0 || perPage > 100 {
		perPage = 20
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Notification{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("notification store: count: %w", err)
	}

	var rows []AdminNotification
	err := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Select("notifications.*, COUNT(read_receipts.user_id) AS read_count").
		Joins("LEFT JOIN read_receipts ON read_receipts.notification_id = notifications.id").
		Group("notifications.id").
		Order("notifications.priority DESC, notifications.created_at DESC, notifications.id DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("notification store: admin list: %w", err)
	}

	return rows, total, nil
}

// Delete hard-deletes a notification and all of its read receipts in one
// transaction; both succeed or neither does.
func (s *NotificationStore) Delete(ctx context.Context, id uint) error {
	ctx = ensureContext(ctx)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("notification_id = ?", id).Delete(&models.ReadReceipt{}).Error; err != nil {
			return fmt.Errorf("notification store: delete receipts: %w", err)
		}

		result := tx.Delete(&models.Notification{}, id)
		if result.Error != nil {
			return fmt.Errorf("notification store: delete: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}

func (s *NotificationStore) validateDraft(draft *NotificationDraft) error {
	title := strings.TrimSpace(draft.Title)
	if len(title) < 5 || len(title) > 200 {
		return apperrors.NewValidation("title must be between 5 and 200 characters")
	}

	body := strings.TrimSpace(draft.Body)
	if len(body) < 10 || len(body) > 1000 {
		return apperrors.NewValidation("body must be between 10 and 1000 characters")
	}

	if draft.Severity == "" {
		draft.Severity = models.SeverityInfo
	}
	if !draft.Severity.Valid() {
		return apperrors.NewValidation("severity must be one of info, success, warning, danger")
	}

	switch draft.Target.Kind {
	case targeting.KindEveryone:
		if draft.Target.Role != "" || draft.Target.InstitutionalID != "" {
			return apperrors.NewValidation("an everyone rule carries no role or institutional id")
		}
	case targeting.KindRole:
		if !models.ValidRole(draft.Target.Role) {
			return apperrors.NewValidation("target role must be one of admin, seller, buyer")
		}
		if draft.Target.InstitutionalID != "" {
			return apperrors.NewValidation("a role rule carries no institutional id")
		}
	case targeting.KindInstitutionalID:
		if draft.Target.Role != "" {
			return apperrors.NewValidation("an institutional id rule carries no role")
		}
		if !digitsOfLength(draft.Target.InstitutionalID, s.idLength) {
			return apperrors.NewValidation(fmt.Sprintf("target institutional id must be exactly %d digits", s.idLength))
		}
	default:
		return apperrors.NewValidation("target kind must be one of everyone, role, institutional_id")
	}

	return nil
}

func digitsOfLength(value string, length int) bool {
	if len(value) != length {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
