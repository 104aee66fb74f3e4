package orders

import (
	"context"
	"testing"
	"time"

	"velora/apperr"
	"velora/models"
	"velora/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	buyer      = models.Actor{UserID: "u1", Role: models.RoleUser}
	otherUser  = models.Actor{UserID: "u2", Role: models.RoleUser}
	adminActor = models.Actor{UserID: "admin1", Role: models.RoleAdmin}
)

type fixture struct {
	orders   *store.MemoryOrders
	products *store.MemoryProducts
	users    *store.MemoryUsers
}

func newOrderFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{
		orders:   store.NewMemoryOrders(),
		products: store.NewMemoryProducts(),
		users:    store.NewMemoryUsers(),
	}

	require.NoError(t, f.users.Insert(ctx, &models.User{
		UserID: "u1",
		Name:   "Ana",
		Email:  "ana@example.com",
		Role:   models.RoleUser,
		Cart: []models.CartItem{
			{ProductID: "p1", Quantity: 2, AddedAt: time.Now()},
		},
	}))
	require.NoError(t, f.users.Insert(ctx, &models.User{
		UserID: "u2",
		Name:   "Ben",
		Email:  "ben@example.com",
		Role:   models.RoleUser,
	}))

	require.NoError(t, f.products.Insert(ctx, &models.Product{
		ProductID: "p1",
		Name:      "Headphones",
		Image:     "/img/headphones.jpg",
		Price:     59.99,
		Category:  models.CategoryElectronics,
	}))
	require.NoError(t, f.products.Insert(ctx, &models.Product{
		ProductID: "p2",
		Name:      "Mug",
		Price:     9.99,
		Category:  models.CategoryHome,
	}))

	return f
}

func validRequest() CreateRequest {
	return CreateRequest{
		Items: []LineItemRequest{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		},
		ShippingAddress: models.ShippingAddress{
			Street:  "1 Main St",
			City:    "Springfield",
			State:   "IL",
			ZipCode: "62701",
			Country: "US",
		},
		PaymentMethod: models.PaymentCard,
		ItemsPrice:    129.97,
		TaxPrice:      10.40,
		ShippingPrice: 5.00,
		TotalPrice:    145.37,
	}
}

func TestCreateSnapshotsLineItems(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)

	o, err := Create(ctx, f.orders, f.products, f.users, buyer, validRequest())
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, o.Status)
	assert.Equal(t, "u1", o.UserID)
	require.Len(t, o.Items, 2)
	assert.Equal(t, "Headphones", o.Items[0].Name)
	assert.Equal(t, 59.99, o.Items[0].Price)
	assert.Equal(t, "/img/headphones.jpg", o.Items[0].Image)
	assert.False(t, o.IsPaid)
	assert.False(t, o.IsDelivered)

	// Later catalog edits must not leak into the stored order.
	p, err := f.products.ByID(ctx, "p1")
	require.NoError(t, err)
	p.Name = "Renamed"
	p.Price = 999
	require.NoError(t, f.products.Replace(ctx, p))

	got, err := f.orders.ByID(ctx, o.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "Headphones", got.Items[0].Name)
	assert.Equal(t, 59.99, got.Items[0].Price)
}

func TestCreateClearsCart(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)

	_, err := Create(ctx, f.orders, f.products, f.users, buyer, validRequest())
	require.NoError(t, err)

	items, err := f.users.CartOf(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)

	cases := []struct {
		name   string
		mutate func(*CreateRequest)
	}{
		{"empty items", func(r *CreateRequest) { r.Items = nil }},
		{"zero quantity", func(r *CreateRequest) { r.Items[0].Quantity = 0 }},
		{"missing product id", func(r *CreateRequest) { r.Items[0].ProductID = "" }},
		{"missing street", func(r *CreateRequest) { r.ShippingAddress.Street = "" }},
		{"missing city", func(r *CreateRequest) { r.ShippingAddress.City = "" }},
		{"missing country", func(r *CreateRequest) { r.ShippingAddress.Country = "" }},
		{"bad payment method", func(r *CreateRequest) { r.PaymentMethod = "bitcoin" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			_, err := Create(ctx, f.orders, f.products, f.users, buyer, req)
			assert.True(t, apperr.IsValidation(err), "got %v", err)
		})
	}
}

func TestCreateIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)

	req := validRequest()
	req.Items = append(req.Items, LineItemRequest{ProductID: "ghost", Quantity: 1})

	_, err := Create(ctx, f.orders, f.products, f.users, buyer, req)
	assert.True(t, apperr.IsNotFound(err))

	_, total, err := f.orders.List(ctx, store.OrderFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)

	// The cart survives a failed create.
	items, err := f.users.CartOf(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestMarkPaidOwnerOnly(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)

	o, err := Create(ctx, f.orders, f.products, f.users, buyer, validRequest())
	require.NoError(t, err)

	_, err = MarkPaid(ctx, f.orders, otherUser, o.OrderID, nil)
	assert.True(t, apperr.IsForbidden(err))

	// Even admins cannot mark someone else's order paid.
	_, err = MarkPaid(ctx, f.orders, adminActor, o.OrderID, nil)
	assert.True(t, apperr.IsForbidden(err))

	got, err := MarkPaid(ctx, f.orders, buyer, o.OrderID, models.PaymentResult{"id": "tx-1"})
	require.NoError(t, err)
	assert.True(t, got.IsPaid)
	require.NotNil(t, got.PaidAt)
	assert.Equal(t, models.StatusProcessing, got.Status)
	assert.Equal(t, "tx-1", got.PaymentResult["id"])
}

func TestMarkDeliveredAdminOnly(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)

	o, err := Create(ctx, f.orders, f.products, f.users, buyer, validRequest())
	require.NoError(t, err)

	_, err = MarkDelivered(ctx, f.orders, buyer, o.OrderID)
	assert.True(t, apperr.IsForbidden(err))

	// Delivery does not require payment first.
	got, err := MarkDelivered(ctx, f.orders, adminActor, o.OrderID)
	require.NoError(t, err)
	assert.True(t, got.IsDelivered)
	require.NotNil(t, got.DeliveredAt)
	assert.Equal(t, models.StatusDelivered, got.Status)
	assert.False(t, got.IsPaid)
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)

	o, err := Create(ctx, f.orders, f.products, f.users, buyer, validRequest())
	require.NoError(t, err)

	_, err = SetStatus(ctx, f.orders, buyer, o.OrderID, models.StatusShipped)
	assert.True(t, apperr.IsForbidden(err))

	_, err = SetStatus(ctx, f.orders, adminActor, o.OrderID, "teleported")
	assert.True(t, apperr.IsValidation(err))

	got, err := SetStatus(ctx, f.orders, adminActor, o.OrderID, models.StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, models.StatusShipped, got.Status)

	// Setting delivered through the generic path records delivery too.
	got, err = SetStatus(ctx, f.orders, adminActor, o.OrderID, models.StatusDelivered)
	require.NoError(t, err)
	assert.True(t, got.IsDelivered)
	require.NotNil(t, got.DeliveredAt)
}

func TestCancelBlockedAfterShipping(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)

	o, err := Create(ctx, f.orders, f.products, f.users, buyer, validRequest())
	require.NoError(t, err)

	_, err = SetStatus(ctx, f.orders, adminActor, o.OrderID, models.StatusShipped)
	require.NoError(t, err)

	_, err = Cancel(ctx, f.orders, buyer, o.OrderID)
	assert.True(t, apperr.IsInvalidState(err))

	_, err = SetStatus(ctx, f.orders, adminActor, o.OrderID, models.StatusDelivered)
	require.NoError(t, err)

	_, err = Cancel(ctx, f.orders, adminActor, o.OrderID)
	assert.True(t, apperr.IsInvalidState(err))
}

func TestCancelPendingAndProcessing(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)

	o, err := Create(ctx, f.orders, f.products, f.users, buyer, validRequest())
	require.NoError(t, err)

	got, err := Cancel(ctx, f.orders, buyer, o.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, got.Status)

	o2, err := Create(ctx, f.orders, f.products, f.users, buyer, validRequest())
	require.NoError(t, err)
	_, err = MarkPaid(ctx, f.orders, buyer, o2.OrderID, nil)
	require.NoError(t, err)

	_, err = Cancel(ctx, f.orders, otherUser, o2.OrderID)
	assert.True(t, apperr.IsForbidden(err))

	got, err = Cancel(ctx, f.orders, adminActor, o2.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, got.Status)
}

func TestGetAccessControl(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)

	o, err := Create(ctx, f.orders, f.products, f.users, buyer, validRequest())
	require.NoError(t, err)

	_, err = Get(ctx, f.orders, otherUser, o.OrderID)
	assert.True(t, apperr.IsForbidden(err))

	got, err := Get(ctx, f.orders, buyer, o.OrderID)
	require.NoError(t, err)
	assert.Equal(t, o.OrderID, got.OrderID)

	got, err = Get(ctx, f.orders, adminActor, o.OrderID)
	require.NoError(t, err)
	assert.Equal(t, o.OrderID, got.OrderID)

	_, err = Get(ctx, f.orders, adminActor, "missing")
	assert.True(t, apperr.IsNotFound(err))
}

func TestListScoping(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)

	for i := 0; i < 3; i++ {
		o := &models.Order{
			OrderID:   "ORDa" + string(rune('0'+i)),
			UserID:    "u1",
			Status:    models.StatusPending,
			CreatedAt: time.Now().Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, f.orders.Insert(ctx, o))
	}
	require.NoError(t, f.orders.Insert(ctx, &models.Order{
		OrderID:   "ORDb0",
		UserID:    "u2",
		Status:    models.StatusShipped,
		CreatedAt: time.Now().Add(time.Hour),
	}))

	list, total, err := List(ctx, f.orders, buyer, "", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	for _, o := range list {
		assert.Equal(t, "u1", o.UserID)
	}

	// Newest first.
	assert.Equal(t, "ORDa2", list[0].OrderID)

	list, total, err = List(ctx, f.orders, adminActor, "", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Equal(t, "ORDb0", list[0].OrderID)

	list, total, err = List(ctx, f.orders, adminActor, models.StatusShipped, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "ORDb0", list[0].OrderID)

	// Pagination: total counts all matches, page holds the slice.
	list, total, err = List(ctx, f.orders, adminActor, "", 0, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, list, 2)
}
