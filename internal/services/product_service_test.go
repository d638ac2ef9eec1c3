package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/campustrade/campustrade/internal/database/testutil"
	"github.com/campustrade/campustrade/internal/models"
	apperrors "github.com/campustrade/campustrade/pkg/errors"
)

type productEnv struct {
	db       *gorm.DB
	products *ProductService
	category models.Category
	sellerID string
}

func newProductEnv(t *testing.T) *productEnv {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithSeedData())
	products, err := NewProductService(db)
	require.NoError(t, err)

	var category models.Category
	require.NoError(t, db.First(&category, "name = ?", "Books").Error)

	users, err := NewUserService(db, 9)
	require.NoError(t, err)
	seller, err := users.Register(context.Background(), RegisterUserInput{
		InstitutionalID: "900000020",
		Email:           "seller20@campus.test",
		Name:            "Listing Seller",
		Password:        "hunter22",
		Role:            models.RoleSeller,
	})
	require.NoError(t, err)

	return &productEnv{db: db, products: products, category: category, sellerID: seller.ID}
}

func (e *productEnv) input() ProductInput {
	return ProductInput{
		CategoryID:  e.category.ID,
		Title:       "Calculus textbook, 3rd edition",
		Description: "Lightly used, no highlighting.",
		PriceCents:  2500,
		Images:      []string{"https://cdn.campus.test/p/1.jpg"},
	}
}

func TestProductCreateAndGet(t *testing.T) {
	env := newProductEnv(t)
	ctx := context.Background()

	created, err := env.products.Create(ctx, env.sellerID, env.input())
	require.NoError(t, err)
	assert.True(t, created.IsActive)

	loaded, err := env.products.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, env.sellerID, loaded.SellerID)
	require.NotNil(t, loaded.Category)
	assert.Equal(t, "Books", loaded.Category.Name)
}

func TestProductOneListingPerSeller(t *testing.T) {
	env := newProductEnv(t)
	ctx := context.Background()

	_, err := env.products.Create(ctx, env.sellerID, env.input())
	require.NoError(t, err)

	second := env.input()
	second.Title = "Another listing entirely"
	_, err = env.products.Create(ctx, env.sellerID, second)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperrors.FromError(err).Code)
}

func TestProductCreateValidation(t *testing.T) {
	env := newProductEnv(t)
	ctx := context.Background()

	bad := env.input()
	bad.Title = "ab"
	_, err := env.products.Create(ctx, env.sellerID, bad)
	assert.Equal(t, "VALIDATION_ERROR", apperrors.FromError(err).Code)

	bad = env.input()
	bad.PriceCents = 0
	_, err = env.products.Create(ctx, env.sellerID, bad)
	assert.Equal(t, "VALIDATION_ERROR", apperrors.FromError(err).Code)

	bad = env.input()
	bad.CategoryID = "d0000000-0000-0000-0000-000000000000"
	_, err = env.products.Create(ctx, env.sellerID, bad)
	assert.Equal(t, "VALIDATION_ERROR", apperrors.FromError(err).Code)
}

func TestProductListFilters(t *testing.T) {
	env := newProductEnv(t)
	ctx := context.Background()

	_, err := env.products.Create(ctx, env.sellerID, env.input())
	require.NoError(t, err)

	matched, total, err := env.products.List(ctx, ProductFilter{Query: "calculus"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, matched, 1)

	_, total, err = env.products.List(ctx, ProductFilter{Query: "bicycle"})
	require.NoError(t, err)
	assert.Zero(t, total)

	_, total, err = env.products.List(ctx, ProductFilter{CategoryID: env.category.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = env.products.List(ctx, ProductFilter{MinCents: 3000})
	require.NoError(t, err)
	assert.Zero(t, total)

	_, total, err = env.products.List(ctx, ProductFilter{MinCents: 1000, MaxCents: 3000})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestProductUpdateOwnership(t *testing.T) {
	env := newProductEnv(t)
	ctx := context.Background()

	created, err := env.products.Create(ctx, env.sellerID, env.input())
	require.NoError(t, err)

	updated := env.input()
	updated.Title = "Calculus textbook, price drop"
	updated.PriceCents = 2000

	_, err = env.products.Update(ctx, created.ID, "someone-else", models.RoleBuyer, updated)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	row, err := env.products.Update(ctx, created.ID, env.sellerID, models.RoleSeller, updated)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), row.PriceCents)

	// Admins may edit any listing.
	updated.PriceCents = 1500
	row, err = env.products.Update(ctx, created.ID, "admin-id", models.RoleAdmin, updated)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), row.PriceCents)
}

func TestProductDeleteOwnership(t *testing.T) {
	env := newProductEnv(t)
	ctx := context.Background()

	created, err := env.products.Create(ctx, env.sellerID, env.input())
	require.NoError(t, err)

	err = env.products.Delete(ctx, created.ID, "someone-else", models.RoleBuyer)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	require.NoError(t, env.products.Delete(ctx, created.ID, env.sellerID, models.RoleSeller))

	_, err = env.products.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
