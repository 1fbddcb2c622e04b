package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"minishop/internal/apperrors"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("loading cart: %w", apperrors.NotFound("cart not found"))

	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(wrapped))
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(errors.New("plain")))
	assert.True(t, errors.Is(wrapped, apperrors.ErrNotFound))
	assert.False(t, errors.Is(wrapped, apperrors.ErrForbidden))
}

func TestMessage(t *testing.T) {
	err := apperrors.Internal("could not save order", errors.New("disk full"))

	assert.Equal(t, "could not save order", apperrors.Message(err))
	assert.Equal(t, "could not save order: disk full", err.Error())
	assert.Equal(t, "plain", apperrors.Message(errors.New("plain")))
	assert.Equal(t, "rating must be between 1 and 5", apperrors.Message(apperrors.Invalid("rating must be between %d and %d", 1, 5)))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "FORBIDDEN", apperrors.KindForbidden.String())
	assert.Equal(t, "INTERNAL", apperrors.Kind(99).String())
}
