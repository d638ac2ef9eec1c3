package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campustrade/campustrade/internal/handlers/testutil"
	"github.com/campustrade/campustrade/internal/models"
	"github.com/campustrade/campustrade/internal/services"
)

func notificationPayload(kind, role, institutionalID string) map[string]interface{} {
	return map[string]interface{}{
		"title":    "Campus announcement",
		"body":     "The library extends opening hours during finals week.",
		"severity": "info",
		"target": map[string]interface{}{
			"kind":             kind,
			"role":             role,
			"institutional_id": institutionalID,
		},
	}
}

func TestNotificationLifecycle(t *testing.T) {
	env := testutil.NewEnv(t)

	_, adminToken := env.RegisterAdmin(t, "900000100")
	_, sellerToken := env.RegisterUser(t, "900000101", models.RoleSeller)
	_, buyerToken := env.RegisterUser(t, "900000102", models.RoleBuyer)

	// Admin publishes a seller-only notification.
	rec := env.Request(t, http.MethodPost, "/api/notifications", adminToken,
		notificationPayload("role", models.RoleSeller, ""))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created services.CreatedNotification
	testutil.DecodeData(t, rec, &created)
	assert.Equal(t, 1, created.EstimatedRecipients)
	require.NotNil(t, created.Notification)
	notificationID := created.Notification.ID

	// The seller sees it unread.
	rec = env.Request(t, http.MethodGet, "/api/notifications", sellerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var feed services.FeedResult
	testutil.DecodeData(t, rec, &feed)
	require.Len(t, feed.Items, 1)
	assert.False(t, feed.Items[0].IsRead)
	assert.Equal(t, 1, feed.UnreadCount)

	// The buyer does not see it.
	rec = env.Request(t, http.MethodGet, "/api/notifications", buyerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	testutil.DecodeData(t, rec, &feed)
	assert.Empty(t, feed.Items)
	assert.Zero(t, feed.UnreadCount)

	// Seller marks it read; the badge count drops.
	rec = env.Request(t, http.MethodPost,
		"/api/notifications/"+uintToString(notificationID)+"/read", sellerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.Request(t, http.MethodGet, "/api/notifications", sellerToken, nil)
	testutil.DecodeData(t, rec, &feed)
	require.Len(t, feed.Items, 1)
	assert.True(t, feed.Items[0].IsRead)
	assert.NotNil(t, feed.Items[0].ReadAt)
	assert.Zero(t, feed.UnreadCount)

	// Admin deletes it.
	rec = env.Request(t, http.MethodDelete,
		"/api/notifications/"+uintToString(notificationID), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.Request(t, http.MethodGet, "/api/notifications", sellerToken, nil)
	testutil.DecodeData(t, rec, &feed)
	assert.Empty(t, feed.Items)
}

func TestNotificationMarkReadForbiddenForNonRecipient(t *testing.T) {
	env := testutil.NewEnv(t)

	_, adminToken := env.RegisterAdmin(t, "900000100")
	_, buyerToken := env.RegisterUser(t, "900000102", models.RoleBuyer)

	rec := env.Request(t, http.MethodPost, "/api/notifications", adminToken,
		notificationPayload("role", models.RoleSeller, ""))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created services.CreatedNotification
	testutil.DecodeData(t, rec, &created)

	rec = env.Request(t, http.MethodPost,
		"/api/notifications/"+uintToString(created.Notification.ID)+"/read", buyerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	envelope := testutil.DecodeResponse(t, rec)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "FORBIDDEN", envelope.Error.Code)
}

func TestNotificationMarkAllRead(t *testing.T) {
	env := testutil.NewEnv(t)

	_, adminToken := env.RegisterAdmin(t, "900000100")
	_, buyerToken := env.RegisterUser(t, "900000102", models.RoleBuyer)

	for i := 0; i < 3; i++ {
		rec := env.Request(t, http.MethodPost, "/api/notifications", adminToken,
			notificationPayload("everyone", "", ""))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := env.Request(t, http.MethodPost, "/api/notifications/read-all", buyerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var marked struct {
		Marked int64 `json:"marked"`
	}
	testutil.DecodeData(t, rec, &marked)
	assert.Equal(t, int64(3), marked.Marked)

	var feed services.FeedResult
	rec = env.Request(t, http.MethodGet, "/api/notifications?unread_only=true", buyerToken, nil)
	testutil.DecodeData(t, rec, &feed)
	assert.Empty(t, feed.Items)
	assert.Zero(t, feed.UnreadCount)
}

func TestNotificationCreateRequiresAdmin(t *testing.T) {
	env := testutil.NewEnv(t)

	_, sellerToken := env.RegisterUser(t, "900000101", models.RoleSeller)

	rec := env.Request(t, http.MethodPost, "/api/notifications", sellerToken,
		notificationPayload("everyone", "", ""))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.Request(t, http.MethodPost, "/api/notifications", "",
		notificationPayload("everyone", "", ""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNotificationCreateValidation(t *testing.T) {
	env := testutil.NewEnv(t)

	_, adminToken := env.RegisterAdmin(t, "900000100")

	payload := notificationPayload("everyone", "", "")
	payload["title"] = "Hey"
	rec := env.Request(t, http.MethodPost, "/api/notifications", adminToken, payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	payload = notificationPayload("institutional_id", "", "12345678")
	rec = env.Request(t, http.MethodPost, "/api/notifications", adminToken, payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := testutil.DecodeResponse(t, rec)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
}

func TestNotificationAdminList(t *testing.T) {
	env := testutil.NewEnv(t)

	_, adminToken := env.RegisterAdmin(t, "900000100")
	_, buyerToken := env.RegisterUser(t, "900000102", models.RoleBuyer)

	rec := env.Request(t, http.MethodPost, "/api/notifications", adminToken,
		notificationPayload("everyone", "", ""))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created services.CreatedNotification
	testutil.DecodeData(t, rec, &created)

	rec = env.Request(t, http.MethodPost,
		"/api/notifications/"+uintToString(created.Notification.ID)+"/read", buyerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.Request(t, http.MethodGet, "/api/notifications/admin", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []services.AdminNotification
	testutil.DecodeData(t, rec, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0].ReadCount)

	envelope := testutil.DecodeResponse(t, rec)
	require.NotNil(t, envelope.Meta)
	assert.Equal(t, 1, envelope.Meta.Total)

	// Non-admins are turned away from the console.
	rec = env.Request(t, http.MethodGet, "/api/notifications/admin", buyerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
