package admin

import (
	"context"
	"net/http"
	"time"

	"velora/store"
	"velora/utils"

	"github.com/julienschmidt/httprouter"
)

// GetUsers lists every account; admin only. Password hashes never leave
// the model's json mapping, so the raw slice is safe to return.
func GetUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	actor := utils.GetActorFromRequest(r)
	if !actor.Role.IsAdmin() {
		utils.RespondWithError(w, http.StatusForbidden, "Admin access required")
		return
	}

	users, err := store.Users.All(ctx)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, "", users)
}
