package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigError(t *testing.T) {
	t.Run("detail only", func(t *testing.T) {
		err := NewConfigError("selection requires an attribute", nil)
		assert.Equal(t, "selection requires an attribute", err.Error())
		assert.True(t, IsConfigError(err))
	})

	t.Run("wraps a cause", func(t *testing.T) {
		err := NewConfigError("custom variable filter", ErrUnknownAttribute)
		assert.ErrorIs(t, err, ErrUnknownAttribute)
		assert.Contains(t, err.Error(), "custom variable filter")
		assert.True(t, IsConfigError(err))
	})

	t.Run("survives further wrapping", func(t *testing.T) {
		err := fmt.Errorf("loading spec: %w", NewConfigError("bad filter", nil))
		assert.True(t, IsConfigError(err))
	})

	t.Run("plain errors are not config errors", func(t *testing.T) {
		assert.False(t, IsConfigError(errors.New("boom")))
		assert.False(t, IsConfigError(nil))
	})
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrRateLimit))
	assert.True(t, IsRetryable(fmt.Errorf("fetch: %w", ErrRateLimit)))
	assert.True(t, IsRetryable(&RetryableError{Err: errors.New("503"), Retryable: true}))
	assert.False(t, IsRetryable(&RetryableError{Err: errors.New("401"), Retryable: false}))
	assert.False(t, IsRetryable(errors.New("boom")))
}
