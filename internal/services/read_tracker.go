package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/campustrade/campustrade/internal/models"
	apperrors "github.com/campustrade/campustrade/pkg/errors"
)

// ReadTracker records and queries per-user read state. It knows nothing about
// targeting rules; callers decide which notification IDs are visible.
type ReadTracker struct {
	db *gorm.DB
}

// NewReadTracker constructs a ReadTracker.
func NewReadTracker(db *gorm.DB) (*ReadTracker, error) {
	if db == nil {
		return nil, errors.New("read tracker: db is required")
	}
	return &ReadTracker{db: db}, nil
}

// MarkRead records that the user has seen the notification. The insert is
// idempotent: a second call for an already-read pair is a no-op, and two
// concurrent calls leave exactly one receipt.
func (t *ReadTracker) MarkRead(ctx context.Context, notificationID uint, userID string) error {
	ctx = ensureContext(ctx)

	var exists int64
	if err := t.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ?", notificationID).
		Count(&exists).Error; err != nil {
		return fmt.Errorf("read tracker: check notification: %w", err)
	}
	if exists == 0 {
		return apperrors.ErrNotFound
	}

	receipt := models.ReadReceipt{
		NotificationID: notificationID,
		UserID:         userID,
		ReadAt:         time.Now().UTC(),
	}
	if err := t.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&receipt).Error; err != nil {
		return fmt.Errorf("read tracker: mark read: %w", err)
	}
	return nil
}

// MarkAllRead creates receipts for every supplied ID the user has not read
// yet, all sharing one timestamp, and returns how many were newly marked.
// The visible set is computed by the caller; the tracker only bookkeeps.
func (t *ReadTracker) MarkAllRead(ctx context.Context, userID string, visibleIDs []uint) (int64, error) {
	ctx = ensureContext(ctx)

	if len(visibleIDs) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	receipts := make([]models.ReadReceipt, 0, len(visibleIDs))
	for _, id := range visibleIDs {
		receipts = append(receipts, models.ReadReceipt{
			NotificationID: id,
			UserID:         userID,
			ReadAt:         now,
		})
	}

	result := t.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&receipts)
	if result.Error != nil {
		return 0, fmt.Errorf("read tracker: mark all read: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// IsRead reports whether a receipt exists for the (notification, user) pair.
func (t *ReadTracker) IsRead(ctx context.Context, notificationID uint, userID string) (bool, error) {
	ctx = ensureContext(ctx)

	var count int64
	if err := t.db.WithContext(ctx).Model(&models.ReadReceipt{}).
		Where("notification_id = ? AND user_id = ?", notificationID, userID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("read tracker: is read: %w", err)
	}
	return count > 0, nil
}

// Receipts returns the user's read timestamps for the supplied IDs in one
// query, keyed by notification ID.
func (t *ReadTracker) Receipts(ctx context.Context, userID string, notificationIDs []uint) (map[uint]time.Time, error) {
	ctx = ensureContext(ctx)

	read := make(map[uint]time.Time, len(notificationIDs))
	if len(notificationIDs) == 0 {
		return read, nil
	}

	var rows []models.ReadReceipt
	if err := t.db.WithContext(ctx).
		Where("user_id = ? AND notification_id IN ?", userID, notificationIDs).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("read tracker: receipts: %w", err)
	}

	for _, row := range rows {
		read[row.NotificationID] = row.ReadAt
	}
	return read, nil
}

// UnreadCount reports how many of the supplied IDs have no receipt for the user.
func (t *ReadTracker) UnreadCount(ctx context.Context, userID string, notificationIDs []uint) (int64, error) {
	ctx = ensureContext(ctx)

	if len(notificationIDs) == 0 {
		return 0, nil
	}

	var read int64
	if err := t.db.WithContext(ctx).Model(&models.ReadReceipt{}).
		Where("user_id = ? AND notification_id IN ?", userID, notificationIDs).
		Count(&read).Error; err != nil {
		return 0, fmt.Errorf("read tracker: unread count: %w", err)
	}

	return int64(len(notificationIDs)) - read, nil
}
