package orders

import "velora/models"

// CanAccessOrder reports whether the actor may read or mutate the order:
// the owner always can, admins can too.
func CanAccessOrder(actor models.Actor, o *models.Order) bool {
	return o.UserID == actor.UserID || actor.Role.IsAdmin()
}

// isOwner is the stricter predicate used by MarkPaid, which grants no
// admin override.
func isOwner(actor models.Actor, o *models.Order) bool {
	return o.UserID == actor.UserID
}
