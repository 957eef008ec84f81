package kernel_test

import (
	"testing"

	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderNumber(t *testing.T) {
	t.Run("has the fixed prefix and an 8-char uppercase hex suffix", func(t *testing.T) {
		n := kernel.NewOrderNumber()

		assert.Regexp(t, `^ORD-[0-9A-F]{8}$`, n.String())
		assert.NoError(t, n.Validate())
	})

	t.Run("successive numbers differ", func(t *testing.T) {
		seen := make(map[string]bool)
		for range 100 {
			seen[kernel.NewOrderNumber().String()] = true
		}
		assert.Greater(t, len(seen), 1)
	})
}

func TestOrderNumberFromString(t *testing.T) {
	t.Run("accepts a well-formed number", func(t *testing.T) {
		n, err := kernel.OrderNumberFromString("ORD-0A1B2C3D")

		require.NoError(t, err)
		assert.Equal(t, "ORD-0A1B2C3D", n.String())
	})

	t.Run("rejects malformed numbers", func(t *testing.T) {
		for _, input := range []string{
			"",
			"ORD-",
			"ORD-0a1b2c3d", // lowercase
			"ORD-0A1B2C3",  // too short
			"ORD-0A1B2C3DE",
			"XYZ-0A1B2C3D",
			"ORD-0A1B2C3G", // non-hex
		} {
			_, err := kernel.OrderNumberFromString(input)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, "input: %q", input)
		}
	})

	t.Run("round-trips a generated number", func(t *testing.T) {
		n := kernel.NewOrderNumber()
		parsed, err := kernel.OrderNumberFromString(n.String())

		require.NoError(t, err)
		assert.True(t, n.IsEqual(parsed))
	})
}

func TestOrderNumberValidate(t *testing.T) {
	var zero kernel.OrderNumber
	require.ErrorIs(t, zero.Validate(), kernel.ErrOrderNumberIsNotConstructed)
}
