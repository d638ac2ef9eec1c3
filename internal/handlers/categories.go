package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campustrade/campustrade/internal/services"
	"github.com/campustrade/campustrade/pkg/response"
)

// CategoryHandler serves the browsing taxonomy endpoints.
type CategoryHandler struct {
	categories *services.CategoryService
}

// NewCategoryHandler constructs a CategoryHandler.
func NewCategoryHandler(categories *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

type categoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description"`
}

// List returns every category.
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, categories)
}

// Create adds a category.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	category, err := h.categories.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, category)
}

// Update renames a category.
func (h *CategoryHandler) Update(c *gin.Context) {
	var req categoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	category, err := h.categories.Update(c.Request.Context(), c.Param("id"), req.Name, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, category)
}

// Delete removes an empty category.
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categories.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
