package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campustrade/campustrade/internal/services"
	"github.com/campustrade/campustrade/pkg/response"
)

// ReviewHandler serves product review endpoints.
type ReviewHandler struct {
	reviews *services.ReviewService
}

// NewReviewHandler constructs a ReviewHandler.
func NewReviewHandler(reviews *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

type reviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=500"`
}

// ListByProduct returns a product's reviews.
func (h *ReviewHandler) ListByProduct(c *gin.Context) {
	reviews, err := h.reviews.ListByProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, reviews)
}

// Create records the caller's review of a product.
func (h *ReviewHandler) Create(c *gin.Context) {
	var req reviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	review, err := h.reviews.Create(c.Request.Context(), currentUserID(c), services.ReviewInput{
		ProductID: c.Param("id"),
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, review)
}

// Delete removes a review owned by the caller (or any review, for admins).
func (h *ReviewHandler) Delete(c *gin.Context) {
	if err := h.reviews.Delete(c.Request.Context(), c.Param("reviewId"), currentUserID(c), currentRole(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
