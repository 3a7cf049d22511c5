package search

import (
	"testing"

	"github.com/mExOms/planroute/internal/graph"
	"github.com/mExOms/planroute/pkg/money"
	"github.com/mExOms/planroute/pkg/orderbook"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSearchOrder(t *testing.T, id string, base, quote string, rate string) *orderbook.Order {
	t.Helper()
	bounds, err := money.NewOrderBounds(
		money.MustNew(base, decimal.NewFromInt(1), 2),
		money.MustNew(base, decimal.NewFromInt(1000), 2),
	)
	require.NoError(t, err)
	r, err := money.NewExchangeRate(base, quote, decimal.RequireFromString(rate), 6)
	require.NoError(t, err)
	o, err := orderbook.New(id, orderbook.Buy, orderbook.AssetPair{Base: base, Quote: quote}, bounds, r, nil)
	require.NoError(t, err)
	return o
}

func buildTestGraph(t *testing.T) *graph.Graph {
	t.Helper()
	direct := mustSearchOrder(t, "direct", "USD", "EUR", "0.90")
	leg1 := mustSearchOrder(t, "leg1", "USD", "GBP", "0.80")
	leg2 := mustSearchOrder(t, "leg2", "GBP", "EUR", "1.2")
	book := orderbook.NewBook([]*orderbook.Order{direct, leg1, leg2})
	g, err := graph.NewBuilder().Build(book)
	require.NoError(t, err)
	return g
}

func wideTolerance(t *testing.T) money.ToleranceWindow {
	t.Helper()
	w, err := money.NewToleranceWindow(decimal.RequireFromString("0.5"), decimal.RequireFromString("0.5"))
	require.NoError(t, err)
	return w
}

func TestRun_PrefersCheaperMultiHopRouteOverDirect(t *testing.T) {
	g := buildTestGraph(t)
	cfg := Config{
		SpendAmount: money.MustNew("USD", decimal.NewFromInt(100), 2),
		Tolerance:   wideTolerance(t),
		MinHops:     1,
		MaxHops:     3,
		ResultLimit: 2,
	}
	out, err := Run(g, "EUR", cfg)
	require.NoError(t, err)
	require.Len(t, out.Candidates, 2)

	best := out.Candidates[0]
	require.Len(t, best.Edges, 2, "USD->GBP->EUR should rank ahead of the direct route")
	assert.Equal(t, "GBP", best.Edges[0].To)
	assert.Equal(t, "EUR", best.Edges[1].To)

	second := out.Candidates[1]
	require.Len(t, second.Edges, 1)
	assert.Equal(t, "EUR", second.Edges[0].To)

	assert.True(t, best.Key.Cost.LessThan(second.Key.Cost))
}

func TestRun_MaxHopsExcludesLongerRoutes(t *testing.T) {
	g := buildTestGraph(t)
	cfg := Config{
		SpendAmount: money.MustNew("USD", decimal.NewFromInt(100), 2),
		Tolerance:   wideTolerance(t),
		MinHops:     1,
		MaxHops:     1,
		ResultLimit: 2,
	}
	out, err := Run(g, "EUR", cfg)
	require.NoError(t, err)
	require.Len(t, out.Candidates, 1)
	assert.Len(t, out.Candidates[0].Edges, 1)
}

func TestRun_ValidatorRejectsEveryCandidate(t *testing.T) {
	g := buildTestGraph(t)
	cfg := Config{
		SpendAmount: money.MustNew("USD", decimal.NewFromInt(100), 2),
		Tolerance:   wideTolerance(t),
		MinHops:     1,
		MaxHops:     3,
		ResultLimit: 2,
		Validate: func(edges []*graph.Edge, spend money.Money) (bool, error) {
			return false, nil
		},
	}
	out, err := Run(g, "EUR", cfg)
	require.NoError(t, err)
	assert.Empty(t, out.Candidates)
}

func TestRun_ExpansionGuardStopsSearchEarly(t *testing.T) {
	g := buildTestGraph(t)
	cfg := Config{
		SpendAmount: money.MustNew("USD", decimal.NewFromInt(100), 2),
		Tolerance:   wideTolerance(t),
		MinHops:     1,
		MaxHops:     3,
		ResultLimit: 2,
		Guards:      Guards{MaxExpansions: 1},
	}
	out, err := Run(g, "EUR", cfg)
	require.NoError(t, err)
	assert.True(t, out.Guards.ExpansionsBreached)
}

func TestRun_ThrowOnBreachRaisesGuardLimitExceeded(t *testing.T) {
	g := buildTestGraph(t)
	cfg := Config{
		SpendAmount: money.MustNew("USD", decimal.NewFromInt(100), 2),
		Tolerance:   wideTolerance(t),
		MinHops:     1,
		MaxHops:     3,
		ResultLimit: 2,
		Guards:      Guards{MaxExpansions: 1, ThrowOnBreach: true},
	}
	_, err := Run(g, "EUR", cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, money.ErrGuardLimitExceeded)
}

func TestRun_UnknownCurrencyIsRejected(t *testing.T) {
	g := buildTestGraph(t)
	cfg := Config{
		SpendAmount: money.MustNew("USD", decimal.NewFromInt(100), 2),
		Tolerance:   wideTolerance(t),
		MinHops:     1,
		MaxHops:     3,
		ResultLimit: 1,
	}
	_, err := Run(g, "JPY", cfg)
	assert.Error(t, err)
}
