package planner

import (
	"testing"

	"github.com/mExOms/planroute/internal/search"
	"github.com/mExOms/planroute/pkg/money"
	"github.com/mExOms/planroute/pkg/orderbook"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// End-to-end scenarios exercising the whole stack from the public facade:
// order book in, ranked materialized plans out.

func scenarioOrder(t *testing.T, id string, side orderbook.Side, base, quote, min, max string, boundsScale int32, rate string, rateScale int32, fee orderbook.FeePolicy) *orderbook.Order {
	t.Helper()
	bounds, err := money.NewOrderBounds(
		money.MustNew(base, decimal.RequireFromString(min), boundsScale),
		money.MustNew(base, decimal.RequireFromString(max), boundsScale),
	)
	require.NoError(t, err)
	r, err := money.NewExchangeRate(base, quote, decimal.RequireFromString(rate), rateScale)
	require.NoError(t, err)
	o, err := orderbook.New(id, side, orderbook.AssetPair{Base: base, Quote: quote}, bounds, r, fee)
	require.NoError(t, err)
	return o
}

func scenarioTolerance(t *testing.T, under, over string) money.ToleranceWindow {
	t.Helper()
	w, err := money.NewToleranceWindow(decimal.RequireFromString(under), decimal.RequireFromString(over))
	require.NoError(t, err)
	return w
}

func TestScenario_DirectBuy(t *testing.T) {
	book := orderbook.NewBook([]*orderbook.Order{
		scenarioOrder(t, "o1", orderbook.Buy, "USD", "BTC", "10", "10000", 2, "0.000033", 8, nil),
	})

	cfg := NewPathSearchConfig(
		money.MustNew("USD", decimal.NewFromInt(100), 2),
		scenarioTolerance(t, "0", "0.05"),
	)
	cfg.MinHops, cfg.MaxHops = 1, 3

	out, err := FindBestPlans(book, "BTC", cfg)
	require.NoError(t, err)
	require.Len(t, out.Plans, 1)

	plan := out.Plans[0]
	require.Len(t, plan.Steps, 1)
	assert.Equal(t, "100.00", plan.ActualSpend.Decimal().StringFixed(2))
	assert.Equal(t, "0.00330000", plan.Received.Decimal().StringFixed(8))
	assert.True(t, plan.Residual.IsZero())
	assert.Equal(t, "USD->BTC", string(plan.Signature))
}

func TestScenario_TwoHopSellThenBuy(t *testing.T) {
	book := orderbook.NewBook([]*orderbook.Order{
		scenarioOrder(t, "sell-usd-eur", orderbook.Sell, "USD", "EUR", "10", "200", 3, "0.900", 3, nil),
		scenarioOrder(t, "buy-usd-jpy", orderbook.Buy, "USD", "JPY", "50", "200", 3, "150.000", 3, nil),
	})

	cfg := NewPathSearchConfig(
		money.MustNew("EUR", decimal.NewFromInt(100), 3),
		scenarioTolerance(t, "0", "0.25"),
	)
	cfg.MinHops, cfg.MaxHops = 1, 3

	out, err := FindBestPlans(book, "JPY", cfg)
	require.NoError(t, err)
	require.Len(t, out.Plans, 1)

	plan := out.Plans[0]
	require.Len(t, plan.Steps, 2)
	assert.Equal(t, "EUR->USD->JPY", string(plan.Signature))

	assert.Equal(t, "100.000", plan.Steps[0].Input.Decimal().StringFixed(3))
	assert.Equal(t, "111.100", plan.Steps[0].Output.Decimal().StringFixed(3))
	assert.Equal(t, "111.100", plan.Steps[1].Input.Decimal().StringFixed(3))
	assert.Equal(t, "16665.000", plan.Steps[1].Output.Decimal().StringFixed(3))

	assert.Equal(t, "100.000", plan.ActualSpend.Decimal().StringFixed(3))
	assert.Equal(t, "16665.000", plan.Received.Decimal().StringFixed(3))
	assert.Equal(t, "JPY", plan.TargetCurrency)
}

func TestScenario_FeeAwareBuy(t *testing.T) {
	fee := orderbook.NewPercentageFeePolicy(decimal.RequireFromString("0.02"), decimal.RequireFromString("0.05"))
	book := orderbook.NewBook([]*orderbook.Order{
		scenarioOrder(t, "o1", orderbook.Buy, "EUR", "USD", "10", "1000", 3, "1.200", 3, fee),
	})

	cfg := NewPathSearchConfig(
		money.MustNew("EUR", decimal.NewFromInt(100), 3),
		scenarioTolerance(t, "0", "0.05"),
	)
	cfg.MinHops, cfg.MaxHops = 1, 3

	out, err := FindBestPlans(book, "USD", cfg)
	require.NoError(t, err)
	require.Len(t, out.Plans, 1)

	plan := out.Plans[0]
	assert.Equal(t, "102.000", plan.ActualSpend.Decimal().StringFixed(3), "the 2% base fee rides on top of the requested spend")
	assert.Equal(t, "114.000", plan.Received.Decimal().StringFixed(3))
	assert.Equal(t, "2.000", plan.FeeBreakdown["EUR"].Decimal().StringFixed(3))
	assert.Equal(t, "6.000", plan.FeeBreakdown["USD"].Decimal().StringFixed(3))
	assert.True(t, plan.Residual.Equal(decimal.RequireFromString("0.02")))
}

func TestScenario_ToleranceRejectionReturnsEmpty(t *testing.T) {
	// The order caps out at 89.99 EUR while the under-tolerance only allows
	// a 5% shortfall from 100: no acceptable plan exists.
	book := orderbook.NewBook([]*orderbook.Order{
		scenarioOrder(t, "thin", orderbook.Buy, "EUR", "USD", "10", "89.99", 2, "1.20", 6, nil),
	})

	cfg := NewPathSearchConfig(
		money.MustNew("EUR", decimal.NewFromInt(100), 2),
		scenarioTolerance(t, "0.05", "0.10"),
	)
	cfg.MinHops, cfg.MaxHops = 1, 3

	out, err := FindBestPlans(book, "USD", cfg)
	require.NoError(t, err)
	assert.Empty(t, out.Plans)
	assert.False(t, out.Guards.Breached())
}

func TestScenario_ExpansionGuardBreach(t *testing.T) {
	// A wide first layer keeps the frontier busy long enough that the
	// expansion limit trips before the only three-hop route to JPY is found.
	mids := []string{"CAA", "CAB", "CAC", "CAD", "CAE", "CAF", "CAG", "CAH", "CAI", "CAJ", "CAK", "CAL"}
	orders := make([]*orderbook.Order, 0, len(mids)+2)
	for _, mid := range mids {
		orders = append(orders, scenarioOrder(t, "usd-"+mid, orderbook.Buy, "USD", mid, "1", "1000", 2, "0.90", 6, nil))
	}
	orders = append(orders,
		scenarioOrder(t, "cae-ddd", orderbook.Buy, "CAE", "DDD", "1", "1000", 2, "0.90", 6, nil),
		scenarioOrder(t, "ddd-jpy", orderbook.Buy, "DDD", "JPY", "1", "1000", 2, "0.90", 6, nil),
	)
	book := orderbook.NewBook(orders)

	cfg := NewPathSearchConfig(
		money.MustNew("USD", decimal.NewFromInt(100), 2),
		scenarioTolerance(t, "0.5", "0.5"),
	)
	cfg.MinHops, cfg.MaxHops = 1, 3
	cfg.Guards = search.NoGuards()
	cfg.Guards.MaxExpansions = 10

	out, err := FindBestPlans(book, "JPY", cfg)
	require.NoError(t, err)
	assert.Empty(t, out.Plans)
	assert.True(t, out.Guards.ExpansionsBreached)
	assert.Equal(t, 10, out.Guards.Expansions)
}

func TestScenario_TopKDisjointCapsAtAvailableOrders(t *testing.T) {
	book := orderbook.NewBook([]*orderbook.Order{
		scenarioOrder(t, "s1", orderbook.Sell, "USDT", "RUB", "10", "1000", 2, "75.00", 2, nil),
		scenarioOrder(t, "s2", orderbook.Sell, "USDT", "RUB", "10", "1000", 2, "74.50", 2, nil),
	})

	cfg := NewPathSearchConfig(
		money.MustNew("USDT", decimal.NewFromInt(100), 2),
		scenarioTolerance(t, "0.5", "0.5"),
	)
	cfg.MinHops, cfg.MaxHops = 1, 3
	cfg.ResultLimit = 5
	cfg.Mode = Disjoint

	out, err := FindBestPlans(book, "RUB", cfg)
	require.NoError(t, err)
	require.Len(t, out.Plans, 2, "five were requested but only two disjoint order sets exist")

	assert.Equal(t, "s1", out.Plans[0].Steps[0].OrderID)
	assert.Equal(t, "s2", out.Plans[1].Steps[0].OrderID)

	used := make(map[string]int)
	for _, plan := range out.Plans {
		for _, step := range plan.Steps {
			used[step.OrderID]++
		}
	}
	for id, n := range used {
		assert.Equal(t, 1, n, "order %s appears in more than one disjoint plan", id)
	}
}

func TestScenario_TopKReusableNeverRepeatsACostSignaturePair(t *testing.T) {
	book := orderbook.NewBook([]*orderbook.Order{
		scenarioOrder(t, "s1", orderbook.Sell, "USDT", "RUB", "10", "1000", 2, "75.00", 2, nil),
		scenarioOrder(t, "s2", orderbook.Sell, "USDT", "RUB", "10", "1000", 2, "74.50", 2, nil),
	})

	cfg := NewPathSearchConfig(
		money.MustNew("USDT", decimal.NewFromInt(100), 2),
		scenarioTolerance(t, "0.5", "0.5"),
	)
	cfg.MinHops, cfg.MaxHops = 1, 3
	cfg.ResultLimit = 5
	cfg.Mode = Reusable

	out, err := FindBestPlans(book, "RUB", cfg)
	require.NoError(t, err)
	require.Len(t, out.Plans, 2, "the two distinct routes survive, repeats collapse")

	for i := 0; i < len(out.Plans); i++ {
		for j := i + 1; j < len(out.Plans); j++ {
			same := out.Plans[i].Cost.Equal(out.Plans[j].Cost) && out.Plans[i].Signature == out.Plans[j].Signature
			assert.False(t, same, "plans %d and %d share an identical (cost, signature) pair", i, j)
		}
	}
}
