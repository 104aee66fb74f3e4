package cart

import (
	"context"
	"fmt"
	"time"

	"velora/apperr"
	"velora/models"
	"velora/store"
)

// Add merges a product into the user's cart: an existing entry has its
// quantity incremented, otherwise a new entry is appended. Built from two
// conditional updates so concurrent adds for the same product never lose
// an increment; when both miss (a concurrent add won the insert race) the
// increment is retried.
func Add(ctx context.Context, users store.UserStore, products store.ProductStore, userID, productID string, qty int) ([]models.PopulatedCartItem, error) {
	if qty < 1 {
		qty = 1
	}

	if _, err := products.ByID(ctx, productID); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < 3; attempt++ {
		matched, err := users.IncCartQuantity(ctx, userID, productID, qty)
		if err != nil {
			return nil, err
		}
		if matched {
			return Current(ctx, users, products, userID)
		}

		pushed, err := users.PushCartItem(ctx, userID, models.CartItem{
			ProductID: productID,
			Quantity:  qty,
			AddedAt:   time.Now(),
		})
		if err != nil {
			return nil, err
		}
		if pushed {
			return Current(ctx, users, products, userID)
		}

		// Neither update matched: either the user is gone, or a concurrent
		// add inserted the entry between the two updates.
		if _, err := users.ByID(ctx, userID); err != nil {
			return nil, err
		}
	}

	return nil, fmt.Errorf("cart add contended for user %s, product %s", userID, productID)
}

// Remove deletes the entry for productID. Removing an absent product is a
// no-op that still succeeds.
func Remove(ctx context.Context, users store.UserStore, products store.ProductStore, userID, productID string) ([]models.PopulatedCartItem, error) {
	if err := users.PullCartItem(ctx, userID, productID); err != nil {
		return nil, err
	}
	return Current(ctx, users, products, userID)
}

// Clear empties the cart. Order creation calls this as a best-effort
// follow-up step.
func Clear(ctx context.Context, users store.UserStore, userID string) error {
	return users.ClearCart(ctx, userID)
}

// Current returns the cart with product records joined in for display.
func Current(ctx context.Context, users store.UserStore, products store.ProductStore, userID string) ([]models.PopulatedCartItem, error) {
	items, err := users.CartOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	populated := make([]models.PopulatedCartItem, 0, len(items))
	for _, item := range items {
		p, err := products.ByID(ctx, item.ProductID)
		if err != nil && !apperr.IsNotFound(err) {
			return nil, err
		}
		if p != nil {
			p.Discount = p.DiscountPercentage()
		}
		populated = append(populated, models.PopulatedCartItem{
			Product:  p,
			Quantity: item.Quantity,
			AddedAt:  item.AddedAt,
		})
	}
	return populated, nil
}
