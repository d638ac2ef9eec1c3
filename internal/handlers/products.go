package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campustrade/campustrade/internal/services"
	"github.com/campustrade/campustrade/pkg/response"
)

// ProductHandler serves the marketplace listing endpoints.
type ProductHandler struct {
	products *services.ProductService
	reviews  *services.ReviewService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(products *services.ProductService, reviews *services.ReviewService) *ProductHandler {
	return &ProductHandler{products: products, reviews: reviews}
}

type productRequest struct {
	CategoryID  string   `json:"category_id" validate:"required"`
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	PriceCents  int64    `json:"price_cents" validate:"required,gt=0"`
	Images      []string `json:"images" validate:"omitempty,dive,url"`
}

func (r productRequest) toInput() services.ProductInput {
	return services.ProductInput{
		CategoryID:  r.CategoryID,
		Title:       r.Title,
		Description: r.Description,
		PriceCents:  r.PriceCents,
		Images:      r.Images,
	}
}

// List returns active listings filtered by query, category, and price range.
func (h *ProductHandler) List(c *gin.Context) {
	page, perPage := pagination(c)
	filter := services.ProductFilter{
		Query:      c.Query("q"),
		CategoryID: c.Query("category_id"),
		MinCents:   int64(parseIntQuery(c, "min_cents", 0)),
		MaxCents:   int64(parseIntQuery(c, "max_cents", 0)),
		Page:       page,
		PerPage:    perPage,
	}

	products, total, err := h.products.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, products, &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      int(total),
		TotalPages: totalPages(total, perPage),
	})
}

// Get returns one listing with its category, seller, and rating summary.
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.products.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	rating, err := h.reviews.Rating(c.Request.Context(), product.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"product": product,
		"rating":  rating,
	})
}

// Create publishes the caller's listing.
func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if err := bindAndValidate(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	product, err := h.products.Create(c.Request.Context(), currentUserID(c), req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, product)
}

// Update edits a listing owned by the caller (or any listing, for admins).
func (h *ProductHandler) Update(c *gin.Context) {
	var req productRequest
	if err := bindAndValidate(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	product, err := h.products.Update(c.Request.Context(), c.Param("id"), currentUserID(c), currentRole(c), req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, product)
}

// Delete removes a listing owned by the caller (or any listing, for admins).
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.products.Delete(c.Request.Context(), c.Param("id"), currentUserID(c), currentRole(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
