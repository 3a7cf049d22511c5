package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderBounds_New_RejectsInverted(t *testing.T) {
	min := MustNew("USD", decimal.NewFromInt(100), 2)
	max := MustNew("USD", decimal.NewFromInt(10), 2)
	_, err := NewOrderBounds(min, max)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestOrderBounds_ContainsAndClamp(t *testing.T) {
	min := MustNew("USD", decimal.NewFromInt(10), 2)
	max := MustNew("USD", decimal.NewFromInt(200), 2)
	bounds, err := NewOrderBounds(min, max)
	require.NoError(t, err)

	below := MustNew("USD", decimal.NewFromInt(5), 2)
	within := MustNew("USD", decimal.NewFromInt(50), 2)
	above := MustNew("USD", decimal.NewFromInt(500), 2)

	ok, err := bounds.Contains(below)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = bounds.Contains(within)
	require.NoError(t, err)
	assert.True(t, ok)

	clamped, err := bounds.Clamp(below)
	require.NoError(t, err)
	assert.True(t, clamped.Equals(min))

	clamped, err = bounds.Clamp(above)
	require.NoError(t, err)
	assert.True(t, clamped.Equals(max))

	clamped, err = bounds.Clamp(within)
	require.NoError(t, err)
	assert.True(t, clamped.Equals(within))
}
