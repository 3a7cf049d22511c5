package rank

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCostFunc_IsInverseOfCumulativeRate(t *testing.T) {
	cost, err := DefaultCostFunc(decimal.RequireFromString("2"))
	require.NoError(t, err)
	assert.True(t, cost.Equal(decimal.RequireFromString("0.5")))
}

func TestDefaultCostFunc_RejectsZeroProduct(t *testing.T) {
	_, err := DefaultCostFunc(decimal.Zero)
	assert.Error(t, err)
}

func TestNewSignature_JoinsWithArrows(t *testing.T) {
	sig := NewSignature([]string{"USD", "EUR", "JPY"})
	assert.Equal(t, Signature("USD->EUR->JPY"), sig)
}

func TestNewSignature_SingleCurrency(t *testing.T) {
	sig := NewSignature([]string{"USD"})
	assert.Equal(t, Signature("USD"), sig)
}

func TestDefaultStrategy_Less_TieBreaksInOrder(t *testing.T) {
	s := DefaultStrategy{}

	cheaper := PathOrderKey{Cost: decimal.RequireFromString("1.0"), Hops: 3, Signature: "USD->EUR", InsertionOrder: 5}
	pricier := PathOrderKey{Cost: decimal.RequireFromString("2.0"), Hops: 1, Signature: "USD->EUR", InsertionOrder: 1}
	assert.True(t, s.Less(cheaper, pricier), "lower cost wins regardless of hops or insertion order")

	fewerHops := PathOrderKey{Cost: decimal.RequireFromString("1.0"), Hops: 1, Signature: "USD->JPY", InsertionOrder: 9}
	moreHops := PathOrderKey{Cost: decimal.RequireFromString("1.0"), Hops: 2, Signature: "USD->GBP", InsertionOrder: 0}
	assert.True(t, s.Less(fewerHops, moreHops), "equal cost falls back to hop count")

	lexFirst := PathOrderKey{Cost: decimal.RequireFromString("1.0"), Hops: 1, Signature: "USD->EUR", InsertionOrder: 9}
	lexSecond := PathOrderKey{Cost: decimal.RequireFromString("1.0"), Hops: 1, Signature: "USD->GBP", InsertionOrder: 0}
	assert.True(t, s.Less(lexFirst, lexSecond), "equal cost and hops falls back to signature lexicographic order")

	earlier := PathOrderKey{Cost: decimal.RequireFromString("1.0"), Hops: 1, Signature: "USD->EUR", InsertionOrder: 0}
	later := PathOrderKey{Cost: decimal.RequireFromString("1.0"), Hops: 1, Signature: "USD->EUR", InsertionOrder: 1}
	assert.True(t, s.Less(earlier, later), "identical cost, hops and signature falls back to insertion order")
	assert.False(t, s.Less(later, earlier))
}
