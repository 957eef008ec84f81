package kernel_test

import (
	"errors"
	"testing"

	"restoonline/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/require"
)

func TestConstructorGuard(t *testing.T) {
	errNotConstructed := errors.New("thing must be created via NewThing")

	t.Run("constructed guard passes validation", func(t *testing.T) {
		g := kernel.NewConstructorGuard()
		require.NoError(t, g.Validate(errNotConstructed))
	})

	t.Run("zero-value guard fails with the given error", func(t *testing.T) {
		var g kernel.ConstructorGuard
		require.ErrorIs(t, g.Validate(errNotConstructed), errNotConstructed)
	})

	t.Run("zero-value guard falls back to the default error", func(t *testing.T) {
		var g kernel.ConstructorGuard
		require.ErrorIs(t, g.Validate(nil), kernel.ErrDefaultConstructorGuard)
	})
}
