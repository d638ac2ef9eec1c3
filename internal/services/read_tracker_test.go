package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campustrade/campustrade/internal/database/testutil"
	apperrors "github.com/campustrade/campustrade/pkg/errors"
)

const (
	readerAlice = "c1000000-0000-0000-0000-00000000000a"
	readerBob   = "c1000000-0000-0000-0000-00000000000b"
)

func newTestTracker(t *testing.T) (*ReadTracker, *NotificationStore) {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	store, err := NewNotificationStore(db, 9)
	require.NoError(t, err)
	tracker, err := NewReadTracker(db)
	require.NoError(t, err)
	return tracker, store
}

func mustCreateNotifications(t *testing.T, store *NotificationStore, n int) []uint {
	t.Helper()

	ids := make([]uint, 0, n)
	for i := 0; i < n; i++ {
		created, err := store.Create(context.Background(), validDraft())
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}
	return ids
}

func TestReadTrackerMarkReadIdempotent(t *testing.T) {
	tracker, store := newTestTracker(t)
	ctx := context.Background()

	ids := mustCreateNotifications(t, store, 1)

	require.NoError(t, tracker.MarkRead(ctx, ids[0], readerAlice))
	require.NoError(t, tracker.MarkRead(ctx, ids[0], readerAlice))

	read, err := tracker.IsRead(ctx, ids[0], readerAlice)
	require.NoError(t, err)
	assert.True(t, read)

	receipts, err := tracker.Receipts(ctx, readerAlice, ids)
	require.NoError(t, err)
	require.Len(t, receipts, 1)
}

func TestReadTrackerMarkReadUnknownNotification(t *testing.T) {
	tracker, _ := newTestTracker(t)

	err := tracker.MarkRead(context.Background(), 777, readerAlice)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestReadTrackerReadStateIsPerUser(t *testing.T) {
	tracker, store := newTestTracker(t)
	ctx := context.Background()

	ids := mustCreateNotifications(t, store, 1)
	require.NoError(t, tracker.MarkRead(ctx, ids[0], readerAlice))

	read, err := tracker.IsRead(ctx, ids[0], readerBob)
	require.NoError(t, err)
	assert.False(t, read)
}

func TestReadTrackerMarkAllRead(t *testing.T) {
	tracker, store := newTestTracker(t)
	ctx := context.Background()

	ids := mustCreateNotifications(t, store, 4)
	require.NoError(t, tracker.MarkRead(ctx, ids[0], readerAlice))

	marked, err := tracker.MarkAllRead(ctx, readerAlice, ids)
	require.NoError(t, err)
	assert.Equal(t, int64(3), marked)

	// All newly created receipts share one timestamp.
	receipts, err := tracker.Receipts(ctx, readerAlice, ids)
	require.NoError(t, err)
	require.Len(t, receipts, 4)
	assert.Equal(t, receipts[ids[1]], receipts[ids[2]])
	assert.Equal(t, receipts[ids[2]], receipts[ids[3]])

	marked, err = tracker.MarkAllRead(ctx, readerAlice, ids)
	require.NoError(t, err)
	assert.Zero(t, marked)
}

func TestReadTrackerMarkAllReadEmptySet(t *testing.T) {
	tracker, _ := newTestTracker(t)

	marked, err := tracker.MarkAllRead(context.Background(), readerAlice, nil)
	require.NoError(t, err)
	assert.Zero(t, marked)
}

func TestReadTrackerUnreadCount(t *testing.T) {
	tracker, store := newTestTracker(t)
	ctx := context.Background()

	ids := mustCreateNotifications(t, store, 3)

	unread, err := tracker.UnreadCount(ctx, readerAlice, ids)
	require.NoError(t, err)
	assert.Equal(t, int64(3), unread)

	require.NoError(t, tracker.MarkRead(ctx, ids[1], readerAlice))

	unread, err = tracker.UnreadCount(ctx, readerAlice, ids)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)
}
