package orders

import (
	"testing"

	"velora/models"

	"github.com/stretchr/testify/assert"
)

func TestCanAccessOrder(t *testing.T) {
	order := &models.Order{OrderID: "ORD1", UserID: "u1"}

	assert.True(t, CanAccessOrder(models.Actor{UserID: "u1", Role: models.RoleUser}, order))
	assert.True(t, CanAccessOrder(models.Actor{UserID: "admin1", Role: models.RoleAdmin}, order))
	assert.False(t, CanAccessOrder(models.Actor{UserID: "u2", Role: models.RoleUser}, order))
}

func TestIsOwnerIgnoresRole(t *testing.T) {
	order := &models.Order{OrderID: "ORD1", UserID: "u1"}

	assert.True(t, isOwner(models.Actor{UserID: "u1", Role: models.RoleUser}, order))
	assert.False(t, isOwner(models.Actor{UserID: "admin1", Role: models.RoleAdmin}, order))
}
