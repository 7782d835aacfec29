package fail

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"not found", NotFound("playlist not found"), KindNotFound},
		{"forbidden", Forbidden("no access"), KindForbidden},
		{"conflict", Conflict("already exists"), KindConflict},
		{"unavailable", Unavailable("cache down", errors.New("dial tcp")), KindUnavailable},
		{"plain error", errors.New("boom"), KindInternal},
		{"wrapped keeps kind", fmt.Errorf("add collaborator: %w", Conflict("dup")), KindConflict},
		{"nil-ish internal", Internal("query failed", nil), KindInternal},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, KindOf(tc.err))
		})
	}
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsNotFound(NotFound("x")))
	assert.True(t, IsForbidden(Forbidden("x")))
	assert.True(t, IsConflict(Conflict("x")))
	assert.True(t, IsUnavailable(Unavailable("x", nil)))

	assert.False(t, IsForbidden(NotFound("x")))
	assert.False(t, IsNotFound(nil))
}

func TestErrorMessage(t *testing.T) {
	err := Unavailable("likes cache read failed", errors.New("connection refused"))
	assert.Equal(t, "likes cache read failed: connection refused", err.Error())

	var e *Error
	assert.True(t, errors.As(err, &e))
	assert.EqualError(t, errors.Unwrap(e), "connection refused")
}
