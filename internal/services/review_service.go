package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/campustrade/campustrade/internal/models"
	apperrors "github.com/campustrade/campustrade/pkg/errors"
)

// ReviewInput defines a buyer's rating of a product.
type ReviewInput struct {
	ProductID string
	Rating    int
	Comment   string
}

// ProductRating aggregates a product's review stats.
type ProductRating struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// ReviewService manages buyer reviews of listings.
type ReviewService struct {
	db *gorm.DB
}

// NewReviewService constructs a ReviewService.
func NewReviewService(db *gorm.DB) (*ReviewService, error) {
	if db == nil {
		return nil, errors.New("review service: db is required")
	}
	return &ReviewService{db: db}, nil
}

// Create records a buyer's review. One review per buyer per product, and
// sellers cannot review their own listing.
func (s *ReviewService) Create(ctx context.Context, buyerID string, input ReviewInput) (*models.Review, error) {
	ctx = ensureContext(ctx)

	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperrors.NewValidation("rating must be between 1 and 5")
	}
	comment := strings.TrimSpace(input.Comment)
	if len(comment) > 500 {
		return nil, apperrors.NewValidation("comment must be at most 500 characters")
	}

	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, "id = ?", input.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("review service: load product: %w", err)
	}
	if product.SellerID == buyerID {
		return nil, apperrors.NewValidation("sellers cannot review their own listing")
	}

	review := models.Review{
		ProductID: input.ProductID,
		BuyerID:   buyerID,
		Rating:    input.Rating,
		Comment:   comment,
	}
	if err := s.db.WithContext(ctx).Create(&review).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.NewValidation("product already reviewed by this buyer")
		}
		return nil, fmt.Errorf("review service: create: %w", err)
	}
	return &review, nil
}

// ListByProduct returns a product's reviews, newest first, with reviewer info.
func (s *ReviewService) ListByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	ctx = ensureContext(ctx)

	var reviews []models.Review
	err := s.db.WithContext(ctx).
		Preload("Buyer").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("review service: list: %w", err)
	}
	return reviews, nil
}

// Rating computes a product's average rating and review count.
func (s *ReviewService) Rating(ctx context.Context, productID string) (*ProductRating, error) {
	ctx = ensureContext(ctx)

	var rating ProductRating
	err := s.db.WithContext(ctx).Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("product_id = ?", productID).
		Scan(&rating).Error
	if err != nil {
		return nil, fmt.Errorf("review service: rating: %w", err)
	}
	return &rating, nil
}

// Delete removes a review. Only its author or an admin may delete it.
func (s *ReviewService) Delete(ctx context.Context, id, callerID, callerRole string) error {
	ctx = ensureContext(ctx)

	var review models.Review
	if err := s.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("review service: load: %w", err)
	}
	if review.BuyerID != callerID && callerRole != models.RoleAdmin {
		return apperrors.ErrForbidden
	}

	if err := s.db.WithContext(ctx).Delete(&models.Review{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("review service: delete: %w", err)
	}
	return nil
}
