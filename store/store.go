// Package store defines the persistence contracts for users, products and
// orders, with a MongoDB implementation used by the handlers and an
// in-memory implementation used by tests.
package store

import (
	"context"
	"time"

	"velora/models"
)

type ProductFilter struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	Search   string
	Featured *bool
	InStock  *bool
	Tags     []string // match any
	Sort     string   // "name", "price", "rating", "createdAt", optionally "-"-prefixed
	Skip     int64
	Limit    int64
}

type OrderFilter struct {
	UserID string
	Status models.OrderStatus
	Skip   int64
	Limit  int64
}

// OrderPatch carries the only order fields that may change after creation.
// Line items and totals are immutable once persisted.
type OrderPatch struct {
	Status        *models.OrderStatus
	IsPaid        *bool
	PaidAt        *time.Time
	PaymentResult models.PaymentResult
	IsDelivered   *bool
	DeliveredAt   *time.Time
}

type ProfilePatch struct {
	Name   *string
	Email  *string
	Avatar *string
}

type ProductStore interface {
	Insert(ctx context.Context, p *models.Product) error
	ByID(ctx context.Context, id string) (*models.Product, error)
	Replace(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ProductFilter) ([]models.Product, int64, error)
	Categories(ctx context.Context) ([]string, error)
}

type UserStore interface {
	Insert(ctx context.Context, u *models.User) error
	ByID(ctx context.Context, id string) (*models.User, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
	All(ctx context.Context) ([]models.User, error)
	UpdateProfile(ctx context.Context, id string, patch ProfilePatch) error
	SetPassword(ctx context.Context, id, hash string) error
	SetLastLogin(ctx context.Context, id string, at time.Time) error
	SetRefreshToken(ctx context.Context, id, hash string, expiry time.Time) error

	// Cart mutations. Each op is individually atomic against the user
	// document, which lets cart.Add build a merge that never loses a
	// concurrent update.
	IncCartQuantity(ctx context.Context, userID, productID string, qty int) (bool, error)
	PushCartItem(ctx context.Context, userID string, item models.CartItem) (bool, error)
	PullCartItem(ctx context.Context, userID, productID string) error
	ClearCart(ctx context.Context, userID string) error
	CartOf(ctx context.Context, userID string) ([]models.CartItem, error)

	// Wishlist mutations, same atomicity contract.
	PullWishlist(ctx context.Context, userID, productID string) (bool, error)
	AddWishlist(ctx context.Context, userID, productID string) error
	WishlistOf(ctx context.Context, userID string) ([]string, error)
}

type OrderStore interface {
	Insert(ctx context.Context, o *models.Order) error
	ByID(ctx context.Context, id string) (*models.Order, error)
	Apply(ctx context.Context, id string, patch OrderPatch) (*models.Order, error)
	List(ctx context.Context, f OrderFilter) ([]models.Order, int64, error)
}
