package utils

import (
	"net/http"

	"velora/globals"
	"velora/models"
)

func GetUserIDFromRequest(r *http.Request) string {
	ctx := r.Context()
	requestingUserID, ok := ctx.Value(globals.UserIDKey).(string)
	if !ok || requestingUserID == "" {
		return ""
	}
	return requestingUserID
}

// GetActorFromRequest returns the authenticated identity stored by the
// auth middleware. The zero Actor means the request is unauthenticated.
func GetActorFromRequest(r *http.Request) models.Actor {
	ctx := r.Context()
	userID, _ := ctx.Value(globals.UserIDKey).(string)
	role, _ := ctx.Value(globals.RoleKey).(models.Role)
	return models.Actor{UserID: userID, Role: role}
}
