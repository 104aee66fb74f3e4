package cart

import (
	"context"

	"velora/apperr"
	"velora/models"
	"velora/store"
)

// ToggleAction reports which branch a wishlist toggle took.
type ToggleAction string

const (
	ActionAdded   ToggleAction = "added"
	ActionRemoved ToggleAction = "removed"
)

// Toggle flips the wishlist membership of productID: present entries are
// removed, absent ones added. The pull is conditional on membership, so a
// racing toggle settles as one add and one remove.
func Toggle(ctx context.Context, users store.UserStore, products store.ProductStore, userID, productID string) (ToggleAction, []models.Product, error) {
	removed, err := users.PullWishlist(ctx, userID, productID)
	if err != nil {
		return "", nil, err
	}

	action := ActionRemoved
	if !removed {
		if err := users.AddWishlist(ctx, userID, productID); err != nil {
			return "", nil, err
		}
		action = ActionAdded
	}

	list, err := Wishlist(ctx, users, products, userID)
	if err != nil {
		return "", nil, err
	}
	return action, list, nil
}

// Wishlist returns the user's wishlist populated with product records.
// References to products deleted since they were saved are skipped.
func Wishlist(ctx context.Context, users store.UserStore, products store.ProductStore, userID string) ([]models.Product, error) {
	ids, err := users.WishlistOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	populated := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		p, err := products.ByID(ctx, id)
		if apperr.IsNotFound(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		p.Discount = p.DiscountPercentage()
		populated = append(populated, *p)
	}
	return populated, nil
}
