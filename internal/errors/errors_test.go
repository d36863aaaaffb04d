package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/pricepulse/internal/errors"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *errors.AppError
		code   string
		status int
		msg    string
	}{
		{"not found", errors.NewNotFoundError("game", "abc"), errors.ErrCodeNotFound, http.StatusNotFound, "game not found: abc"},
		{"validation", errors.NewValidationError("rounds", "must be positive"), errors.ErrCodeValidation, http.StatusBadRequest, "validation failed for rounds: must be positive"},
		{"bad request", errors.NewBadRequestError("nope"), errors.ErrCodeBadRequest, http.StatusBadRequest, "nope"},
		{"conflict", errors.NewConflictError("already answered"), errors.ErrCodeConflict, http.StatusConflict, "already answered"},
		{"capacity", errors.NewCapacityError("game sessions", 3), errors.ErrCodeCapacity, http.StatusServiceUnavailable, "too many game sessions (limit 3)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.msg, tt.err.Message)
			assert.Equal(t, tt.code+": "+tt.msg, tt.err.Error())
		})
	}
}

func TestInternalErrorWraps(t *testing.T) {
	cause := stderrors.New("disk full")
	err := errors.NewInternalError(cause)

	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")
}

func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", errors.NewNotFoundError("game", 7))

	appErr, ok := errors.As(wrapped)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeNotFound, appErr.Code)

	_, ok = errors.As(stderrors.New("plain"))
	assert.False(t, ok)
}
