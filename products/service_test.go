package products

import (
	"context"
	"testing"

	"velora/apperr"
	"velora/models"
	"velora/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validUpsert() UpsertRequest {
	return UpsertRequest{
		Name:        "Headphones",
		Description: "Wireless over-ear headphones",
		Price:       59.99,
		Category:    models.CategoryElectronics,
		InStock:     true,
		Quantity:    25,
	}
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryProducts()

	p, err := Create(ctx, s, validUpsert())
	require.NoError(t, err)
	assert.NotEmpty(t, p.ProductID)
	assert.False(t, p.CreatedAt.IsZero())
	assert.False(t, p.UpdatedAt.IsZero())

	got, err := s.ByID(ctx, p.ProductID)
	require.NoError(t, err)
	assert.Equal(t, "Headphones", got.Name)
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryProducts()

	longName := make([]byte, 101)
	for i := range longName {
		longName[i] = 'x'
	}

	cases := []struct {
		name   string
		mutate func(*UpsertRequest)
	}{
		{"empty name", func(r *UpsertRequest) { r.Name = "" }},
		{"long name", func(r *UpsertRequest) { r.Name = string(longName) }},
		{"empty description", func(r *UpsertRequest) { r.Description = "" }},
		{"negative price", func(r *UpsertRequest) { r.Price = -1 }},
		{"unknown category", func(r *UpsertRequest) { r.Category = "Gadgets" }},
		{"negative quantity", func(r *UpsertRequest) { r.Quantity = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validUpsert()
			tc.mutate(&req)
			_, err := Create(ctx, s, req)
			assert.True(t, apperr.IsValidation(err), "got %v", err)
		})
	}
}

func TestUpdatePreservesRatings(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryProducts()

	p, err := Create(ctx, s, validUpsert())
	require.NoError(t, err)

	p.Rating = 4.5
	p.Reviews = 12
	require.NoError(t, s.Replace(ctx, p))

	req := validUpsert()
	req.Price = 49.99
	req.OriginalPrice = 59.99
	updated, err := Update(ctx, s, p.ProductID, req)
	require.NoError(t, err)

	assert.Equal(t, 49.99, updated.Price)
	assert.Equal(t, 4.5, updated.Rating)
	assert.Equal(t, 12, updated.Reviews)
	assert.Equal(t, 17, updated.Discount)
	assert.Equal(t, p.CreatedAt, updated.CreatedAt)
}

func TestUpdateUnknownProduct(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryProducts()

	_, err := Update(ctx, s, "missing", validUpsert())
	assert.True(t, apperr.IsNotFound(err))
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryProducts()

	p, err := Create(ctx, s, validUpsert())
	require.NoError(t, err)

	require.NoError(t, Delete(ctx, s, p.ProductID))

	_, err = s.ByID(ctx, p.ProductID)
	assert.True(t, apperr.IsNotFound(err))

	assert.True(t, apperr.IsNotFound(Delete(ctx, s, p.ProductID)))
}
