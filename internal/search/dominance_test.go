package search

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestDominanceRegistry_RejectsDominatedState(t *testing.T) {
	r := NewDominanceRegistry()
	assert.True(t, r.Register("EUR", "sig", d("1.0"), 2))
	assert.False(t, r.Register("EUR", "sig", d("1.5"), 3), "worse cost and worse hops must be rejected")
}

func TestDominanceRegistry_ReplacesDominatedExisting(t *testing.T) {
	r := NewDominanceRegistry()
	assert.True(t, r.Register("EUR", "sig", d("2.0"), 3))
	assert.True(t, r.Register("EUR", "sig", d("1.0"), 2), "strictly better on both axes must be accepted")
	// the 2.0/3 record should now be gone: a record at 2.0/3 again must
	// still be rejected by the surviving 1.0/2 record.
	assert.False(t, r.Register("EUR", "sig", d("2.0"), 3))
}

func TestDominanceRegistry_IncomparableRecordsCoexist(t *testing.T) {
	r := NewDominanceRegistry()
	assert.True(t, r.Register("EUR", "sig", d("1.0"), 5))
	assert.True(t, r.Register("EUR", "sig", d("2.0"), 1), "lower hops but higher cost is incomparable, not dominated")
	assert.Equal(t, 2, r.Accepted())
}

func TestDominanceRegistry_SignatureIsolatesCurrencyAndRange(t *testing.T) {
	r := NewDominanceRegistry()
	assert.True(t, r.Register("EUR", "sig-a", d("1.0"), 1))
	assert.True(t, r.Register("EUR", "sig-b", d("1.0"), 1), "different signature must not be rejected by unrelated record")
	assert.True(t, r.Register("GBP", "sig-a", d("1.0"), 1), "different currency must not be rejected by unrelated record")
}
