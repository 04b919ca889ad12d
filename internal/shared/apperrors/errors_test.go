package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatusFollowsWrappedChain(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", fmt.Errorf("create event: %w", NewValidation("bad rows")), http.StatusBadRequest},
		{"conflict", fmt.Errorf("reserve: %w", NewConflict("seat 14", "ANA PEREZ")), http.StatusConflict},
		{"not found", NewNotFound("reservation", "abc"), http.StatusNotFound},
		{"forbidden", fmt.Errorf("cancel: %w", ErrForbidden), http.StatusForbidden},
		{"external", NewExternal("insert reservation", errors.New("connection refused")), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.err))
		})
	}
}

func TestConflictCarriesOccupant(t *testing.T) {
	err := fmt.Errorf("assign vip: %w", NewConflict("seat 27 in session1", "MARIA LOPEZ"))

	conflict, ok := AsConflict(err)
	require.True(t, ok)
	assert.Equal(t, "MARIA LOPEZ", conflict.Occupant)
	assert.Contains(t, err.Error(), "already taken by MARIA LOPEZ")
}

func TestExternalUnwrapsCause(t *testing.T) {
	cause := errors.New("timeout")
	err := NewExternal("list seats", cause)

	assert.True(t, errors.Is(err, cause))
	assert.True(t, IsExternal(err))
	assert.Nil(t, NewExternal("noop", nil))
}

func TestValidationMessageJoinsProblems(t *testing.T) {
	err := NewValidation("name too short", "no sessions")
	assert.Equal(t, "validation failed: name too short; no sessions", err.Error())
}
