package errors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-nuzlocke/internal/errors"
)

func TestValidationBuilder(t *testing.T) {
	t.Run("no errors builds nil", func(t *testing.T) {
		assert.NoError(t, errors.NewValidationBuilder().Build())
	})

	t.Run("fields are collected", func(t *testing.T) {
		err := errors.NewValidationBuilder().
			RequiredField("RunRepo").
			Fieldf("AreaCount", "must be positive, got %d", 0).
			Build()

		require.Error(t, err)
		assert.True(t, errors.IsInvalidArgument(err))
		assert.Contains(t, err.Error(), "RunRepo: is required")
		assert.Contains(t, err.Error(), "AreaCount: must be positive, got 0")
		assert.NotNil(t, errors.GetMeta(err)["validation_errors"])
	})
}
