package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/campustrade/campustrade/internal/models"
	"github.com/campustrade/campustrade/internal/targeting"
	apperrors "github.com/campustrade/campustrade/pkg/errors"
	"github.com/campustrade/campustrade/pkg/logger"
	"github.com/campustrade/campustrade/pkg/metrics"
)

// UserDirectory supplies the active user profiles needed to estimate a
// notification's recipient count at creation time.
type UserDirectory interface {
	ListActiveProfiles(ctx context.Context) ([]targeting.Profile, error)
}

// Caller identifies the authenticated user driving a feed operation.
type Caller struct {
	UserID  string
	Profile targeting.Profile
}

// FeedItem is a notification annotated with the caller's read state.
type FeedItem struct {
	Notification models.Notification `json:"notification"`
	IsRead       bool                `json:"is_read"`
	ReadAt       *time.Time          `json:"read_at,omitempty"`
}

// FeedResult bundles the visible items with the unread badge count. The count
// always reflects the caller's full recipient-eligible set, independent of
// the unread-only display flag.
type FeedResult struct {
	Items       []FeedItem `json:"items"`
	UnreadCount int        `json:"unread_count"`
}

// CreatedNotification is returned from Create alongside the recipient estimate.
type CreatedNotification struct {
	Notification        *models.Notification `json:"notification"`
	EstimatedRecipients int                  `json:"estimated_recipients"`
}

// NotificationFeed composes the store, the recipient rules, and the read
// tracker into the per-user read model.
type NotificationFeed struct {
	store     *NotificationStore
	tracker   *ReadTracker
	directory UserDirectory
	log       *zap.Logger
}

// NewNotificationFeed constructs a NotificationFeed.
func NewNotificationFeed(store *NotificationStore, tracker *ReadTracker, directory UserDirectory) (*NotificationFeed, error) {
	if store == nil {
		return nil, errors.New("notification feed: store is required")
	}
	if tracker == nil {
		return nil, errors.New("notification feed: tracker is required")
	}
	if directory == nil {
		return nil, errors.New("notification feed: user directory is required")
	}
	return &NotificationFeed{
		store:     store,
		tracker:   tracker,
		directory: directory,
		log:       logger.WithModule("notification_feed"),
	}, nil
}

// GetFeed returns the caller's visible notifications, newest and most urgent
// first, annotated with read state. Composition is all-or-nothing: any store
// failure aborts the request rather than returning a partial feed.
func (f *NotificationFeed) GetFeed(ctx context.Context, caller Caller, unreadOnly bool) (*FeedResult, error) {
	ctx = ensureContext(ctx)

	eligible, err := f.eligibleNotifications(ctx, caller)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(eligible))
	for i, n := range eligible {
		ids[i] = n.ID
	}

	receipts, err := f.tracker.Receipts(ctx, caller.UserID, ids)
	if err != nil {
		return nil, err
	}

	items := make([]FeedItem, 0, len(eligible))
	unread := 0
	for _, n := range eligible {
		readAt, isRead := receipts[n.ID]
		if !isRead {
			unread++
		}
		if unreadOnly && isRead {
			continue
		}

		item := FeedItem{Notification: n, IsRead: isRead}
		if isRead {
			at := readAt
			item.ReadAt = &at
		}
		items = append(items, item)
	}

	// Stable sort over rows fetched in insertion order: equal priority and
	// timestamp preserve creation order.
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Notification, items[j].Notification
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		return a.CreatedAt.After(b.CreatedAt)
	})

	return &FeedResult{Items: items, UnreadCount: unread}, nil
}

// MarkOneRead marks a single notification read for the caller. Users may only
// mark notifications addressed to them; anything else is Forbidden.
func (f *NotificationFeed) MarkOneRead(ctx context.Context, caller Caller, notificationID uint) error {
	ctx = ensureContext(ctx)

	notification, err := f.store.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}

	ok, err := targeting.Matches(notification.Target(), caller.Profile)
	if err != nil {
		return f.internalRuleError(notification.ID, err)
	}
	if !ok {
		return apperrors.ErrForbidden
	}

	return f.tracker.MarkRead(ctx, notificationID, caller.UserID)
}

// MarkAllRead computes the caller's full recipient-eligible set and marks
// every member read, returning how many were newly marked.
func (f *NotificationFeed) MarkAllRead(ctx context.Context, caller Caller) (int64, error) {
	ctx = ensureContext(ctx)

	eligible, err := f.eligibleNotifications(ctx, caller)
	if err != nil {
		return 0, err
	}

	ids := make([]uint, len(eligible))
	for i, n := range eligible {
		ids[i] = n.ID
	}

	return f.tracker.MarkAllRead(ctx, caller.UserID, ids)
}

// Create persists a notification on behalf of an admin and estimates its
// recipient count against the active user directory. The admin check is
// defensive; routing already gates this operation.
func (f *NotificationFeed) Create(ctx context.Context, caller Caller, draft NotificationDraft) (*CreatedNotification, error) {
	ctx = ensureContext(ctx)

	if caller.Profile.Role != models.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}

	draft.CreatedBy = caller.UserID
	notification, err := f.store.Create(ctx, draft)
	if err != nil {
		return nil, err
	}

	profiles, err := f.directory.ListActiveProfiles(ctx)
	if err != nil {
		return nil, err
	}

	estimated := 0
	rule := notification.Target()
	for _, profile := range profiles {
		ok, err := targeting.Matches(rule, profile)
		if err != nil {
			return nil, f.internalRuleError(notification.ID, err)
		}
		if ok {
			estimated++
		}
	}

	metrics.NotificationsCreated.WithLabelValues(string(rule.Kind)).Inc()

	return &CreatedNotification{
		Notification:        notification,
		EstimatedRecipients: estimated,
	}, nil
}

// Delete removes a notification and its receipts.
func (f *NotificationFeed) Delete(ctx context.Context, caller Caller, notificationID uint) error {
	ctx = ensureContext(ctx)

	if caller.Profile.Role != models.RoleAdmin {
		return apperrors.ErrForbidden
	}
	return f.store.Delete(ctx, notificationID)
}

func (f *NotificationFeed) eligibleNotifications(ctx context.Context, caller Caller) ([]models.Notification, error) {
	rows, err := f.store.List(ctx)
	if err != nil {
		return nil, err
	}

	eligible := make([]models.Notification, 0, len(rows))
	for _, n := range rows {
		ok, err := targeting.Matches(n.Target(), caller.Profile)
		if err != nil {
			return nil, f.internalRuleError(n.ID, err)
		}
		if ok {
			eligible = append(eligible, n)
		}
	}
	return eligible, nil
}

// internalRuleError logs the offending rule and hides the detail from callers;
// an invalid stored rule is corrupted data, not caller input.
func (f *NotificationFeed) internalRuleError(notificationID uint, err error) error {
	f.log.Error("invalid targeting rule",
		zap.Uint("notification_id", notificationID),
		zap.Error(err),
	)
	return apperrors.ErrInternalServer.WithInternal(fmt.Errorf("notification %d: %w", notificationID, err))
}
