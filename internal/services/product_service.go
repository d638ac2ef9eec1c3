package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/campustrade/campustrade/internal/models"
	apperrors "github.com/campustrade/campustrade/pkg/errors"
)

// ProductInput defines the attributes a seller supplies for a listing.
type ProductInput struct {
	CategoryID  string
	Title       string
	Description string
	PriceCents  int64
	Images      []string
}

// ProductFilter narrows product listings. Zero values mean "no filter".
type ProductFilter struct {
	Query      string
	CategoryID string
	MinCents   int64
	MaxCents   int64
	Page       int
	PerPage    int
}

// ProductService manages seller listings.
type ProductService struct {
	db *gorm.DB
}

// NewProductService constructs a ProductService.
func NewProductService(db *gorm.DB) (*ProductService, error) {
	if db == nil {
		return nil, errors.New("product service: db is required")
	}
	return &ProductService{db: db}, nil
}

// Create publishes a seller's listing. Each seller may hold at most one; the
// unique index backs the rule and a violation surfaces as a validation error.
func (s *ProductService) Create(ctx context.Context, sellerID string, input ProductInput) (*models.Product, error) {
	ctx = ensureContext(ctx)

	product, err := s.buildProduct(ctx, input)
	if err != nil {
		return nil, err
	}
	product.SellerID = sellerID
	product.IsActive = true

	if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.NewValidation("seller already has an active listing")
		}
		return nil, fmt.Errorf("product service: create: %w", err)
	}
	return product, nil
}

// GetByID loads a single listing with its category and seller.
func (s *ProductService) GetByID(ctx context.Context, id string) (*models.Product, error) {
	ctx = ensureContext(ctx)

	var product models.Product
	err := s.db.WithContext(ctx).
		Preload("Category").
		Preload("Seller").
		First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("product service: load: %w", err)
	}
	return &product, nil
}

// List returns active listings matching the filter plus the total match count.
func (s *ProductService) List(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error) {
	ctx = ensureContext(ctx)

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 || filter.PerPage > 100 {
		filter.PerPage = 20
	}

	query := s.db.WithContext(ctx).Model(&models.Product{}).Where("is_active = ?", true)
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + q + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.MinCents > 0 {
		query = query.Where("price_cents >= ?", filter.MinCents)
	}
	if filter.MaxCents > 0 {
		query = query.Where("price_cents <= ?", filter.MaxCents)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("product service: count: %w", err)
	}

	var products []models.Product
	err := query.
		Preload("Category").
		Order("created_at DESC").
		Limit(filter.PerPage).
		Offset((filter.Page - 1) * filter.PerPage).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("product service: list: %w", err)
	}

	return products, total, nil
}

// Update replaces a listing's attributes. Only the owning seller or an admin
// may modify it.
func (s *ProductService) Update(ctx context.Context, id, callerID, callerRole string, input ProductInput) (*models.Product, error) {
	ctx = ensureContext(ctx)

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.SellerID != callerID && callerRole != models.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}

	updated, err := s.buildProduct(ctx, input)
	if err != nil {
		return nil, err
	}

	existing.CategoryID = updated.CategoryID
	existing.Title = updated.Title
	existing.Description = updated.Description
	existing.PriceCents = updated.PriceCents
	existing.Images = updated.Images
	existing.Category = nil

	if err := s.db.WithContext(ctx).Save(existing).Error; err != nil {
		return nil, fmt.Errorf("product service: update: %w", err)
	}
	return existing, nil
}

// Delete removes a listing. Only the owning seller or an admin may delete it.
func (s *ProductService) Delete(ctx context.Context, id, callerID, callerRole string) error {
	ctx = ensureContext(ctx)

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.SellerID != callerID && callerRole != models.RoleAdmin {
		return apperrors.ErrForbidden
	}

	if err := s.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("product service: delete: %w", err)
	}
	return nil
}

func (s *ProductService) buildProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	title := strings.TrimSpace(input.Title)
	if len(title) < 3 || len(title) > 200 {
		return nil, apperrors.NewValidation("title must be between 3 and 200 characters")
	}
	if input.PriceCents <= 0 {
		return nil, apperrors.NewValidation("price must be positive")
	}
	if input.CategoryID == "" {
		return nil, apperrors.NewValidation("category is required")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Category{}).
		Where("id = ?", input.CategoryID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("product service: check category: %w", err)
	}
	if count == 0 {
		return nil, apperrors.NewValidation("category does not exist")
	}

	images := input.Images
	if images == nil {
		images = []string{}
	}
	raw, err := json.Marshal(images)
	if err != nil {
		return nil, fmt.Errorf("product service: encode images: %w", err)
	}

	return &models.Product{
		CategoryID:  input.CategoryID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		PriceCents:  input.PriceCents,
		Images:      datatypes.JSON(raw),
	}, nil
}
