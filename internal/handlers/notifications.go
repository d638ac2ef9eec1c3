package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campustrade/campustrade/internal/models"
	"github.com/campustrade/campustrade/internal/services"
	"github.com/campustrade/campustrade/internal/targeting"
	"github.com/campustrade/campustrade/pkg/response"
)

// NotificationHandler serves the per-user feed and the admin notification console.
type NotificationHandler struct {
	feed  *services.NotificationFeed
	store *services.NotificationStore
}

// NewNotificationHandler constructs a NotificationHandler.
func NewNotificationHandler(feed *services.NotificationFeed, store *services.NotificationStore) *NotificationHandler {
	return &NotificationHandler{feed: feed, store: store}
}

type createNotificationRequest struct {
	Title    string `json:"title" validate:"required"`
	Body     string `json:"body" validate:"required"`
	Severity string `json:"severity" validate:"omitempty,oneof=info success warning danger"`
	Target   struct {
		Kind            string `json:"kind" validate:"required,oneof=everyone role institutional_id"`
		Role            string `json:"role" validate:"omitempty,oneof=admin seller buyer"`
		InstitutionalID string `json:"institutional_id"`
	} `json:"target"`
	Priority    int  `json:"priority"`
	IsPermanent bool `json:"is_permanent"`
}

// Feed returns the caller's visible notifications with read state and the
// unread badge count. ?unread_only=true hides already-read items without
// changing the count.
func (h *NotificationHandler) Feed(c *gin.Context) {
	unreadOnly := c.Query("unread_only") == "true"

	result, err := h.feed.GetFeed(c.Request.Context(), currentCaller(c), unreadOnly)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// MarkRead marks one notification read for the caller.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.feed.MarkOneRead(c.Request.Context(), currentCaller(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"read": true})
}

// MarkAllRead marks the caller's whole visible feed read.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	marked, err := h.feed.MarkAllRead(c.Request.Context(), currentCaller(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"marked": marked})
}

// Create publishes a notification and reports the estimated recipient count.
func (h *NotificationHandler) Create(c *gin.Context) {
	var req createNotificationRequest
	if err := bindAndValidate(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	created, err := h.feed.Create(c.Request.Context(), currentCaller(c), services.NotificationDraft{
		Title:    req.Title,
		Body:     req.Body,
		Severity: models.Severity(req.Severity),
		Target: targeting.Rule{
			Kind:            targeting.RuleKind(req.Target.Kind),
			Role:            req.Target.Role,
			InstitutionalID: req.Target.InstitutionalID,
		},
		Priority:    req.Priority,
		IsPermanent: req.IsPermanent,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created)
}

// Delete removes a notification and its receipts.
func (h *NotificationHandler) Delete(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.feed.Delete(c.Request.Context(), currentCaller(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// AdminList returns the paginated admin view with per-notification read counts.
func (h *NotificationHandler) AdminList(c *gin.Context) {
	page, perPage := pagination(c)

	rows, total, err := h.store.ListAdmin(c.Request.Context(), page, perPage)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, rows, &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      int(total),
		TotalPages: totalPages(total, perPage),
	})
}
