package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campustrade/campustrade/internal/services"
	"github.com/campustrade/campustrade/pkg/response"
)

// SiteHandler serves the site availability endpoints.
type SiteHandler struct {
	site *services.SiteService
}

// NewSiteHandler constructs a SiteHandler.
func NewSiteHandler(site *services.SiteService) *SiteHandler {
	return &SiteHandler{site: site}
}

type setStatusRequest struct {
	Active  *bool  `json:"active" validate:"required"`
	Message string `json:"message"`
}

// Status reports whether the marketplace is open. Public, unauthenticated.
func (h *SiteHandler) Status(c *gin.Context) {
	status, err := h.site.Status(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, status)
}

// SetStatus toggles availability; disabling publishes a maintenance notice.
func (h *SiteHandler) SetStatus(c *gin.Context) {
	var req setStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	status, err := h.site.SetStatus(c.Request.Context(), currentUserID(c), *req.Active, req.Message)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, status)
}
