package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapWithContext(t *testing.T) {
	t.Run("wraps error with operation", func(t *testing.T) {
		err := WrapWithContext(ErrTest, "list pull requests")
		require.Error(t, err)
		assert.Equal(t, "failed to list pull requests: test error", err.Error())
		assert.ErrorIs(t, err, ErrTest)
	})

	t.Run("returns nil for nil error", func(t *testing.T) {
		assert.NoError(t, WrapWithContext(nil, "anything"))
	})
}

func TestCommandFailedError(t *testing.T) {
	t.Run("includes command and cause", func(t *testing.T) {
		err := CommandFailedError("git fetch source main", ErrTest)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "git fetch source main")
		assert.ErrorIs(t, err, ErrTest)
	})

	t.Run("returns nil for nil error", func(t *testing.T) {
		assert.NoError(t, CommandFailedError("git status", nil))
	})
}

func TestValidationError(t *testing.T) {
	err := ValidationError("target.url", "must not be empty")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target.url")
	assert.Contains(t, err.Error(), "must not be empty")
}

func TestFieldErrors(t *testing.T) {
	empty := EmptyFieldError("source_branch")
	required := RequiredFieldError("auth_token")

	assert.Contains(t, empty.Error(), "source_branch")
	assert.Contains(t, required.Error(), "auth_token")
	assert.NotErrorIs(t, empty, required)
}

func TestFormatError(t *testing.T) {
	err := FormatError("repository", "no-slash", "owner/repo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-slash")
	assert.Contains(t, err.Error(), "owner/repo")
	assert.False(t, errors.Is(err, ErrTest))
}
