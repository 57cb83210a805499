package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserError(t *testing.T) {
	t.Run("message only", func(t *testing.T) {
		err := NewUserError("groq API key not found; set llm.groq.api_key or GROQ_API_KEY", nil)
		assert.Equal(t, "groq API key not found; set llm.groq.api_key or GROQ_API_KEY", err.Error())
	})

	t.Run("wraps the underlying error", func(t *testing.T) {
		err := NewUserError("classification failed", ErrProvidersExhausted)
		assert.Equal(t, "classification failed: all providers failed", err.Error())
		assert.ErrorIs(t, err, ErrProvidersExhausted)
	})

	t.Run("unwraps to nil without a cause", func(t *testing.T) {
		var userErr *UserError
		err := NewUserError("something went wrong", nil)
		assert.True(t, errors.As(err, &userErr))
		assert.NoError(t, userErr.Unwrap())
	})
}
