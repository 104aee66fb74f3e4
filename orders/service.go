package orders

import (
	"context"
	"log"
	"time"

	"velora/apperr"
	"velora/models"
	"velora/store"
	"velora/utils"
)

type LineItemRequest struct {
	ProductID string `json:"product"`
	Quantity  int    `json:"quantity"`
}

type CreateRequest struct {
	Items           []LineItemRequest      `json:"orderItems"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   models.PaymentMethod   `json:"paymentMethod"`
	ItemsPrice      float64                `json:"itemsPrice"`
	TaxPrice        float64                `json:"taxPrice"`
	ShippingPrice   float64                `json:"shippingPrice"`
	TotalPrice      float64                `json:"totalPrice"`
}

func (r *CreateRequest) validate() error {
	if len(r.Items) == 0 {
		return apperr.Validation("orderItems", "order items are required")
	}
	for _, item := range r.Items {
		if item.ProductID == "" {
			return apperr.Validation("orderItems.product", "product id is required")
		}
		if item.Quantity < 1 {
			return apperr.Validation("orderItems.quantity", "quantity must be at least 1")
		}
	}

	addr := r.ShippingAddress
	switch "" {
	case addr.Street:
		return apperr.Validation("shippingAddress.street", "street address is required")
	case addr.City:
		return apperr.Validation("shippingAddress.city", "city is required")
	case addr.State:
		return apperr.Validation("shippingAddress.state", "state is required")
	case addr.ZipCode:
		return apperr.Validation("shippingAddress.zipCode", "zip code is required")
	case addr.Country:
		return apperr.Validation("shippingAddress.country", "country is required")
	}

	if !r.PaymentMethod.Valid() {
		return apperr.Validation("paymentMethod", "invalid payment method")
	}
	return nil
}

// Create persists a new pending order. All line items must resolve in the
// catalog or the whole create fails; resolved products are snapshotted
// (name, image, current price) so later catalog changes never alter the
// order. Pricing totals are taken from the caller as-is. On success the
// actor's cart is cleared as a best-effort follow-up; a clear failure is
// logged but does not undo the order.
func Create(ctx context.Context, orders store.OrderStore, products store.ProductStore, users store.UserStore, actor models.Actor, req CreateRequest) (*models.Order, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		p, err := products.ByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		items = append(items, models.OrderItem{
			ProductID: p.ProductID,
			Name:      p.Name,
			Image:     p.Image,
			Price:     p.Price,
			Quantity:  item.Quantity,
		})
	}

	order := &models.Order{
		OrderID:         "ORD" + utils.GenerateRandomString(12),
		UserID:          actor.UserID,
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		ItemsPrice:      req.ItemsPrice,
		TaxPrice:        req.TaxPrice,
		ShippingPrice:   req.ShippingPrice,
		TotalPrice:      req.TotalPrice,
		Status:          models.StatusPending,
		CreatedAt:       time.Now(),
	}

	if err := orders.Insert(ctx, order); err != nil {
		return nil, err
	}

	if err := users.ClearCart(ctx, actor.UserID); err != nil {
		log.Printf("orders: cart cleanup after %s failed: %v", order.OrderID, err)
	}

	return order, nil
}

// MarkPaid records payment on the order. Only the owner may call it;
// unlike the other mutations there is no admin override.
func MarkPaid(ctx context.Context, orders store.OrderStore, actor models.Actor, orderID string, result models.PaymentResult) (*models.Order, error) {
	o, err := orders.ByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isOwner(actor, o) {
		return nil, apperr.Forbidden("not authorized to update this order")
	}

	if result == nil {
		result = models.PaymentResult{}
	}
	now := time.Now()
	paid := true
	status := models.StatusProcessing
	return orders.Apply(ctx, orderID, store.OrderPatch{
		Status:        &status,
		IsPaid:        &paid,
		PaidAt:        &now,
		PaymentResult: result,
	})
}

// MarkDelivered records delivery, whether or not the order was paid.
// Admin only.
func MarkDelivered(ctx context.Context, orders store.OrderStore, actor models.Actor, orderID string) (*models.Order, error) {
	if !actor.Role.IsAdmin() {
		return nil, apperr.Forbidden("not authorized to update this order")
	}
	if _, err := orders.ByID(ctx, orderID); err != nil {
		return nil, err
	}

	now := time.Now()
	delivered := true
	status := models.StatusDelivered
	return orders.Apply(ctx, orderID, store.OrderPatch{
		Status:      &status,
		IsDelivered: &delivered,
		DeliveredAt: &now,
	})
}

// SetStatus moves the order to any valid status. Admin only. Transitions
// are deliberately unconstrained; setting delivered also records the
// delivery fields.
func SetStatus(ctx context.Context, orders store.OrderStore, actor models.Actor, orderID string, status models.OrderStatus) (*models.Order, error) {
	if !actor.Role.IsAdmin() {
		return nil, apperr.Forbidden("not authorized to update this order")
	}
	if !status.Valid() {
		return nil, apperr.Validation("status", "invalid status")
	}
	if _, err := orders.ByID(ctx, orderID); err != nil {
		return nil, err
	}

	patch := store.OrderPatch{Status: &status}
	if status == models.StatusDelivered {
		now := time.Now()
		delivered := true
		patch.IsDelivered = &delivered
		patch.DeliveredAt = &now
	}
	return orders.Apply(ctx, orderID, patch)
}

// Cancel moves the order to cancelled unless it has already been shipped
// or delivered. Owner or admin.
func Cancel(ctx context.Context, orders store.OrderStore, actor models.Actor, orderID string) (*models.Order, error) {
	o, err := orders.ByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !CanAccessOrder(actor, o) {
		return nil, apperr.Forbidden("not authorized to cancel this order")
	}
	if o.Status == models.StatusShipped || o.Status == models.StatusDelivered {
		return nil, apperr.InvalidState("cannot cancel order that has been shipped or delivered")
	}

	status := models.StatusCancelled
	return orders.Apply(ctx, orderID, store.OrderPatch{Status: &status})
}

// Get returns the order to its owner or an admin.
func Get(ctx context.Context, orders store.OrderStore, actor models.Actor, orderID string) (*models.Order, error) {
	o, err := orders.ByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !CanAccessOrder(actor, o) {
		return nil, apperr.Forbidden("not authorized to access this order")
	}
	return o, nil
}

// List returns orders newest first. Non-admins see only their own orders;
// admins see all, optionally narrowed to one status.
func List(ctx context.Context, orders store.OrderStore, actor models.Actor, status models.OrderStatus, skip, limit int64) ([]models.Order, int64, error) {
	f := store.OrderFilter{Skip: skip, Limit: limit}
	if actor.Role.IsAdmin() {
		f.Status = status
	} else {
		f.UserID = actor.UserID
	}
	return orders.List(ctx, f)
}
