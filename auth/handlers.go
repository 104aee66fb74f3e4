package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"velora/mq"
	"velora/rdx"
	"velora/store"
	"velora/utils"

	"github.com/julienschmidt/httprouter"
)

func cacheSessionToken(userID, token string) {
	if err := rdx.RdxHset("tokki", userID, token); err != nil {
		log.Printf("auth: redis token cache failed: %v", err)
	}
}

// RegisterUser creates an account and returns a logged-in session.
func RegisterUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Println("RegisterUser decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	session, err := Register(ctx, store.Users, req)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	cacheSessionToken(session.User.UserID, session.Token)
	mq.Emit(ctx, "user-registered", session.User.UserID, session.User.UserID)
	utils.RespondWithData(w, http.StatusCreated, "Registration successful", session)
}

// LoginUser authenticates by email and password.
func LoginUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Println("LoginUser decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	session, err := Login(ctx, store.Users, creds)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	cacheSessionToken(session.User.UserID, session.Token)
	utils.RespondWithData(w, http.StatusOK, "Login successful", session)
}

// RefreshToken exchanges a valid refresh token for a new session.
func RefreshToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload struct {
		UserID       string `json:"userid"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("RefreshToken decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	session, err := Refresh(ctx, store.Users, payload.UserID, payload.RefreshToken)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	cacheSessionToken(session.User.UserID, session.Token)
	utils.RespondWithData(w, http.StatusOK, "Token refreshed", session)
}

// LogoutUser drops the refresh token and the cached access token.
func LogoutUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := Logout(ctx, store.Users, userID); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	if _, err := rdx.RdxHdel("tokki", userID); err != nil {
		log.Printf("auth: redis token eviction failed: %v", err)
	}
	utils.RespondWithData(w, http.StatusOK, "Logged out", nil)
}
