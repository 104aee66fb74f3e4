package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusValid(t *testing.T) {
	for _, s := range OrderStatuses {
		assert.True(t, s.Valid())
	}
	assert.False(t, OrderStatus("teleported").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestPaymentMethodValid(t *testing.T) {
	for _, m := range []PaymentMethod{PaymentCard, PaymentPaypal, PaymentStripe, PaymentCash} {
		assert.True(t, m.Valid())
	}
	assert.False(t, PaymentMethod("bitcoin").Valid())
}
