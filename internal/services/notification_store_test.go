package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/campustrade/campustrade/internal/database/testutil"
	"github.com/campustrade/campustrade/internal/models"
	"github.com/campustrade/campustrade/internal/targeting"
	apperrors "github.com/campustrade/campustrade/pkg/errors"
)

func newTestStore(t *testing.T) (*NotificationStore, *gorm.DB) {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	store, err := NewNotificationStore(db, 9)
	require.NoError(t, err)
	return store, db
}

func validDraft() NotificationDraft {
	return NotificationDraft{
		Title:    "Midterm book exchange",
		Body:     "Trade your used textbooks at the student center this Friday.",
		Severity: models.SeverityInfo,
		Target:   targeting.Rule{Kind: targeting.KindEveryone},
	}
}

func TestNotificationStoreCreate(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, validDraft())
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, models.SeverityInfo, created.Severity)
	assert.False(t, created.CreatedAt.IsZero())

	loaded, err := store.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, loaded.Title)
	assert.Equal(t, targeting.KindEveryone, loaded.TargetKind)
}

func TestNotificationStoreCreateDefaultsSeverity(t *testing.T) {
	store, _ := newTestStore(t)

	draft := validDraft()
	draft.Severity = ""

	created, err := store.Create(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, models.SeverityInfo, created.Severity)
}

func TestNotificationStoreCreateValidation(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*NotificationDraft)
		message string
	}{
		{
			name:    "title too short",
			mutate:  func(d *NotificationDraft) { d.Title = "Hey" },
			message: "title",
		},
		{
			name:    "title too long",
			mutate:  func(d *NotificationDraft) { d.Title = strings.Repeat("x", 201) },
			message: "title",
		},
		{
			name:    "body too short",
			mutate:  func(d *NotificationDraft) { d.Body = "short" },
			message: "body",
		},
		{
			name:    "body too long",
			mutate:  func(d *NotificationDraft) { d.Body = strings.Repeat("x", 1001) },
			message: "body",
		},
		{
			name:    "unknown severity",
			mutate:  func(d *NotificationDraft) { d.Severity = "urgent" },
			message: "severity",
		},
		{
			name:    "unknown target kind",
			mutate:  func(d *NotificationDraft) { d.Target = targeting.Rule{Kind: "department"} },
			message: "target kind",
		},
		{
			name: "role rule with invalid role",
			mutate: func(d *NotificationDraft) {
				d.Target = targeting.Rule{Kind: targeting.KindRole, Role: "professor"}
			},
			message: "role",
		},
		{
			name: "role rule carrying institutional id",
			mutate: func(d *NotificationDraft) {
				d.Target = targeting.Rule{Kind: targeting.KindRole, Role: models.RoleSeller, InstitutionalID: "123456789"}
			},
			message: "institutional id",
		},
		{
			name: "everyone rule carrying role",
			mutate: func(d *NotificationDraft) {
				d.Target = targeting.Rule{Kind: targeting.KindEveryone, Role: models.RoleBuyer}
			},
			message: "everyone",
		},
		{
			name: "institutional id wrong length",
			mutate: func(d *NotificationDraft) {
				d.Target = targeting.Rule{Kind: targeting.KindInstitutionalID, InstitutionalID: "12345678"}
			},
			message: "9 digits",
		},
		{
			name: "institutional id non numeric",
			mutate: func(d *NotificationDraft) {
				d.Target = targeting.Rule{Kind: targeting.KindInstitutionalID, InstitutionalID: "12345678a"}
			},
			message: "9 digits",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			draft := validDraft()
			tc.mutate(&draft)

			_, err := store.Create(ctx, draft)
			require.Error(t, err)

			appErr := apperrors.FromError(err)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
			assert.Contains(t, strings.ToLower(appErr.Message), tc.message)
		})
	}
}

func TestNotificationStoreListInsertionOrder(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	titles := []string{"First announcement", "Second announcement", "Third announcement"}
	for _, title := range titles {
		draft := validDraft()
		draft.Title = title
		_, err := store.Create(ctx, draft)
		require.NoError(t, err)
	}

	rows, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i, title := range titles {
		assert.Equal(t, title, rows[i].Title)
	}
	assert.True(t, rows[0].ID < rows[1].ID && rows[1].ID < rows[2].ID)
}

func TestNotificationStoreGetByIDNotFound(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.GetByID(context.Background(), 4242)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestNotificationStoreDeleteCascadesReceipts(t *testing.T) {
	store, db := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, validDraft())
	require.NoError(t, err)

	tracker, err := NewReadTracker(db)
	require.NoError(t, err)
	require.NoError(t, tracker.MarkRead(ctx, created.ID, "b2c3d4e5-0000-0000-0000-000000000001"))
	require.NoError(t, tracker.MarkRead(ctx, created.ID, "b2c3d4e5-0000-0000-0000-000000000002"))

	require.NoError(t, store.Delete(ctx, created.ID))

	_, err = store.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	var receipts int64
	require.NoError(t, db.Model(&models.ReadReceipt{}).
		Where("notification_id = ?", created.ID).
		Count(&receipts).Error)
	assert.Zero(t, receipts)
}

func TestNotificationStoreDeleteNotFound(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.Delete(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestNotificationStoreListAdmin(t *testing.T) {
	store, db := newTestStore(t)
	ctx := context.Background()

	low := validDraft()
	low.Title = "Low priority notice"
	lowRow, err := store.Create(ctx, low)
	require.NoError(t, err)

	high := validDraft()
	high.Title = "High priority notice"
	high.Priority = 5
	highRow, err := store.Create(ctx, high)
	require.NoError(t, err)

	tracker, err := NewReadTracker(db)
	require.NoError(t, err)
	require.NoError(t, tracker.MarkRead(ctx, highRow.ID, "b2c3d4e5-0000-0000-0000-000000000001"))
	require.NoError(t, tracker.MarkRead(ctx, highRow.ID, "b2c3d4e5-0000-0000-0000-000000000002"))

	rows, total, err := store.ListAdmin(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, rows, 2)

	assert.Equal(t, highRow.ID, rows[0].ID)
	assert.Equal(t, int64(2), rows[0].ReadCount)
	assert.Equal(t, lowRow.ID, rows[1].ID)
	assert.Zero(t, rows[1].ReadCount)
}
