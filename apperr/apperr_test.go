package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{NotFound("product", "p1"), http.StatusNotFound},
		{Forbidden("not yours"), http.StatusForbidden},
		{Validation("name", "too short"), http.StatusBadRequest},
		{InvalidState("already shipped"), http.StatusBadRequest},
		{Unauthenticated("bad credentials"), http.StatusUnauthorized},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Status(tc.err), tc.err.Error())
	}
}

func TestPredicatesUnwrap(t *testing.T) {
	wrapped := fmt.Errorf("loading order: %w", NotFound("order", "ORD1"))
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsForbidden(wrapped))
}

func TestValidationErrorMessage(t *testing.T) {
	assert.Equal(t, "name: too short", Validation("name", "too short").Error())
	assert.Equal(t, "too short", Validation("", "too short").Error())
}
