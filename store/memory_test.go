package store

import (
	"context"
	"testing"
	"time"

	"velora/apperr"
	"velora/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProducts(t *testing.T) *MemoryProducts {
	t.Helper()
	ctx := context.Background()
	s := NewMemoryProducts()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seed := []models.Product{
		{ProductID: "p1", Name: "Wireless Headphones", Description: "Over-ear", Price: 60, Category: models.CategoryElectronics, Featured: true, InStock: true, Rating: 4.5, CreatedAt: base},
		{ProductID: "p2", Name: "Coffee Mug", Description: "Ceramic", Price: 10, Category: models.CategoryHome, InStock: true, Rating: 4.0, CreatedAt: base.Add(time.Hour)},
		{ProductID: "p3", Name: "Running Shoes", Description: "Lightweight", Price: 90, Category: models.CategorySports, InStock: false, Rating: 3.5, CreatedAt: base.Add(2 * time.Hour)},
		{ProductID: "p4", Name: "Headphone Stand", Description: "Walnut", Price: 25, Category: models.CategoryAccessories, Featured: true, InStock: true, Rating: 5.0, CreatedAt: base.Add(3 * time.Hour)},
	}
	for i := range seed {
		require.NoError(t, s.Insert(ctx, &seed[i]))
	}
	return s
}

func ids(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ProductID
	}
	return out
}

func TestProductListFilters(t *testing.T) {
	ctx := context.Background()
	s := seedProducts(t)

	list, total, err := s.List(ctx, ProductFilter{Category: "Electronics"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, []string{"p1"}, ids(list))

	min, max := 20.0, 70.0
	list, total, err = s.List(ctx, ProductFilter{MinPrice: &min, MaxPrice: &max, Sort: "price"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, []string{"p4", "p1"}, ids(list))

	list, _, err = s.List(ctx, ProductFilter{Search: "headphone", Sort: "name"})
	require.NoError(t, err)
	assert.Equal(t, []string{"p4", "p1"}, ids(list))

	featured := true
	list, _, err = s.List(ctx, ProductFilter{Featured: &featured, Sort: "price"})
	require.NoError(t, err)
	assert.Equal(t, []string{"p4", "p1"}, ids(list))

	inStock := false
	list, _, err = s.List(ctx, ProductFilter{InStock: &inStock})
	require.NoError(t, err)
	assert.Equal(t, []string{"p3"}, ids(list))
}

func TestProductListSortAndPage(t *testing.T) {
	ctx := context.Background()
	s := seedProducts(t)

	// Default sort is newest first.
	list, total, err := s.List(ctx, ProductFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Equal(t, []string{"p4", "p3", "p2", "p1"}, ids(list))

	list, _, err = s.List(ctx, ProductFilter{Sort: "-price"})
	require.NoError(t, err)
	assert.Equal(t, []string{"p3", "p1", "p4", "p2"}, ids(list))

	list, _, err = s.List(ctx, ProductFilter{Sort: "-rating", Skip: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, ids(list))

	// Skipping past the end yields an empty page, not an error.
	list, total, err = s.List(ctx, ProductFilter{Skip: 10, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Empty(t, list)
}

func TestProductCategories(t *testing.T) {
	ctx := context.Background()
	s := seedProducts(t)

	categories, err := s.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Accessories", "Electronics", "Home", "Sports"}, categories)
}

func TestOrderApplyPatchesOnlyMutableFields(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryOrders()

	require.NoError(t, s.Insert(ctx, &models.Order{
		OrderID:    "ORD1",
		UserID:     "u1",
		Status:     models.StatusPending,
		TotalPrice: 99.95,
		Items:      []models.OrderItem{{ProductID: "p1", Name: "Mug", Price: 9.99, Quantity: 1}},
		CreatedAt:  time.Now(),
	}))

	paid := true
	now := time.Now()
	status := models.StatusProcessing
	got, err := s.Apply(ctx, "ORD1", OrderPatch{
		Status:        &status,
		IsPaid:        &paid,
		PaidAt:        &now,
		PaymentResult: models.PaymentResult{"id": "tx-9"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, got.Status)
	assert.True(t, got.IsPaid)
	assert.Equal(t, 99.95, got.TotalPrice)
	assert.Len(t, got.Items, 1)

	_, err = s.Apply(ctx, "missing", OrderPatch{Status: &status})
	assert.True(t, apperr.IsNotFound(err))
}

func TestUserCartOpsReturnCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryUsers()
	require.NoError(t, s.Insert(ctx, &models.User{UserID: "u1", Cart: []models.CartItem{}}))

	pushed, err := s.PushCartItem(ctx, "u1", models.CartItem{ProductID: "p1", Quantity: 1})
	require.NoError(t, err)
	assert.True(t, pushed)

	items, err := s.CartOf(ctx, "u1")
	require.NoError(t, err)
	items[0].Quantity = 99

	fresh, err := s.CartOf(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, fresh[0].Quantity)
}
