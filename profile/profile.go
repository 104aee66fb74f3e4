package profile

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"velora/apperr"
	"velora/cart"
	"velora/store"
	"velora/utils"

	"github.com/julienschmidt/httprouter"
	"golang.org/x/crypto/bcrypt"
)

// GetProfile returns the caller's account with cart and wishlist populated.
func GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	u, err := store.Users.ByID(ctx, userID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	cartItems, err := cart.Current(ctx, store.Users, store.Products, userID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	wishlist, err := cart.Wishlist(ctx, store.Users, store.Products, userID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, "", utils.M{
		"user":     u,
		"cart":     cartItems,
		"wishlist": wishlist,
	})
}

// UpdateProfile patches name, email or avatar. Absent fields are left
// unchanged.
func UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var payload struct {
		Name   *string `json:"name"`
		Email  *string `json:"email"`
		Avatar *string `json:"avatar"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("UpdateProfile decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	patch := store.ProfilePatch{Avatar: payload.Avatar}

	if payload.Name != nil {
		name := strings.TrimSpace(*payload.Name)
		if l := len(name); l < 2 || l > 50 {
			utils.RespondWithAppError(w, apperr.Validation("name", "name must be between 2 and 50 characters"))
			return
		}
		patch.Name = &name
	}

	if payload.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*payload.Email))
		existing, err := store.Users.ByEmail(ctx, email)
		if err == nil && existing.UserID != userID {
			utils.RespondWithAppError(w, apperr.Validation("email", "email is already registered"))
			return
		}
		if err != nil && !apperr.IsNotFound(err) {
			utils.RespondWithAppError(w, err)
			return
		}
		patch.Email = &email
	}

	if err := store.Users.UpdateProfile(ctx, userID, patch); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	u, err := store.Users.ByID(ctx, userID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, "Profile updated", u)
}

// ChangePassword verifies the current password before setting a new one.
func ChangePassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var payload struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("ChangePassword decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if len(payload.NewPassword) < 6 {
		utils.RespondWithAppError(w, apperr.Validation("newPassword", "password must be at least 6 characters"))
		return
	}

	u, err := store.Users.ByID(ctx, userID)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(payload.CurrentPassword)); err != nil {
		utils.RespondWithAppError(w, apperr.Unauthenticated("current password is incorrect"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not process password")
		return
	}

	if err := store.Users.SetPassword(ctx, userID, string(hash)); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, "Password changed", nil)
}
