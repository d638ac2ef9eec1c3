package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campustrade/campustrade/internal/services"
	apperrors "github.com/campustrade/campustrade/pkg/errors"
	"github.com/campustrade/campustrade/pkg/response"
)

// UserHandler serves the admin user-management endpoints.
type UserHandler struct {
	users *services.UserService
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type setActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// List returns a page of registered users.
func (h *UserHandler) List(c *gin.Context) {
	page, perPage := pagination(c)

	users, total, err := h.users.List(c.Request.Context(), page, perPage)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, users, &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      int(total),
		TotalPages: totalPages(total, perPage),
	})
}

// Get returns one user.
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// SetActive enables or disables an account. Admins cannot disable themselves.
func (h *UserHandler) SetActive(c *gin.Context) {
	var req setActiveRequest
	if err := bindAndValidate(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	id := c.Param("id")
	if id == currentUserID(c) && !*req.Active {
		response.Error(c, apperrors.NewValidation("cannot disable your own account"))
		return
	}

	if err := h.users.SetActive(c.Request.Context(), id, *req.Active); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"active": *req.Active})
}
