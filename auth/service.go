package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"

	"velora/apperr"
	"velora/globals"
	"velora/middleware"
	"velora/models"
	"velora/store"
	"velora/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 12 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

var emailRx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is what a successful register, login or refresh hands back.
type Session struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	User         *models.User `json:"user"`
}

func generateAccessToken(u *models.User) (string, error) {
	claims := &middleware.Claims{
		Name:   u.Name,
		UserID: u.UserID,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.UserID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
}

func generateRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// hashToken stores only a digest of the refresh token server-side.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func issueSession(ctx context.Context, users store.UserStore, u *models.User) (*Session, error) {
	token, err := generateAccessToken(u)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refresh, err := generateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := users.SetRefreshToken(ctx, u.UserID, hashToken(refresh), time.Now().Add(refreshTokenTTL)); err != nil {
		return nil, err
	}

	return &Session{Token: token, RefreshToken: refresh, User: u}, nil
}

func (r *RegisterRequest) validate() error {
	if l := len(strings.TrimSpace(r.Name)); l < 2 || l > 50 {
		return apperr.Validation("name", "name must be between 2 and 50 characters")
	}
	if !emailRx.MatchString(r.Email) {
		return apperr.Validation("email", "invalid email address")
	}
	if len(r.Password) < 6 {
		return apperr.Validation("password", "password must be at least 6 characters")
	}
	return nil
}

// Register creates a user account and logs it in. Email addresses are
// unique; a duplicate registers as a validation failure rather than a
// conflict so the response shape matches the other field errors.
func Register(ctx context.Context, users store.UserStore, req RegisterRequest) (*Session, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := users.ByEmail(ctx, email); err == nil {
		return nil, apperr.Validation("email", "email is already registered")
	} else if !apperr.IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	u := &models.User{
		UserID:       "u" + utils.GenerateRandomString(10),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		Cart:         []models.CartItem{},
		Wishlist:     []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := users.Insert(ctx, u); err != nil {
		return nil, err
	}

	return issueSession(ctx, users, u)
}

// Login authenticates by email and password. Bad email and bad password
// produce the same error so the response never confirms which accounts
// exist.
func Login(ctx context.Context, users store.UserStore, creds Credentials) (*Session, error) {
	if creds.Email == "" || creds.Password == "" {
		return nil, apperr.Validation("credentials", "email and password are required")
	}

	u, err := users.ByEmail(ctx, strings.ToLower(strings.TrimSpace(creds.Email)))
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthenticated("invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, apperr.Unauthenticated("invalid email or password")
	}

	if err := users.SetLastLogin(ctx, u.UserID, time.Now()); err != nil {
		return nil, err
	}

	return issueSession(ctx, users, u)
}

// Refresh rotates the refresh token and issues a fresh access token. The
// presented token must match the stored digest and be unexpired.
func Refresh(ctx context.Context, users store.UserStore, userID, refreshToken string) (*Session, error) {
	if userID == "" || refreshToken == "" {
		return nil, apperr.Validation("refreshToken", "user id and refresh token are required")
	}

	u, err := users.ByID(ctx, userID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthenticated("invalid refresh token")
		}
		return nil, err
	}

	if u.RefreshToken == "" || u.RefreshToken != hashToken(refreshToken) {
		return nil, apperr.Unauthenticated("invalid refresh token")
	}
	if time.Now().After(u.RefreshExpiry) {
		return nil, apperr.Unauthenticated("refresh token expired")
	}

	return issueSession(ctx, users, u)
}

// Logout invalidates the stored refresh token.
func Logout(ctx context.Context, users store.UserStore, userID string) error {
	return users.SetRefreshToken(ctx, userID, "", time.Time{})
}
