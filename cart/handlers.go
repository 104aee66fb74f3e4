package cart

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"velora/store"
	"velora/utils"

	"github.com/julienschmidt/httprouter"
)

// AddToCart increments quantity if the item exists, or appends a new entry.
func AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("AddToCart decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if payload.ProductID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Product ID is required")
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	items, err := Add(ctx, store.Users, store.Products, userID, payload.ProductID, payload.Quantity)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Item added to cart", items)
}

// RemoveFromCart deletes the entry for the product; absent products are a
// successful no-op.
func RemoveFromCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	items, err := Remove(ctx, store.Users, store.Products, userID, ps.ByName("productid"))
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Item removed from cart", items)
}

// GetCart returns the user's populated cart.
func GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	items, err := Current(ctx, store.Users, store.Products, userID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, "", items)
}

// ToggleWishlist adds the product to the wishlist, or removes it when
// already present.
func ToggleWishlist(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	action, list, err := Toggle(ctx, store.Users, store.Products, userID, ps.ByName("productid"))
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	msg := "Item added to wishlist"
	if action == ActionRemoved {
		msg = "Item removed from wishlist"
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"message": msg,
		"action":  action,
		"data":    list,
	})
}

// GetWishlist returns the user's populated wishlist.
func GetWishlist(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	list, err := Wishlist(ctx, store.Users, store.Products, userID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, "", list)
}
