package graph

import (
	"github.com/mExOms/planroute/pkg/money"
	"github.com/mExOms/planroute/pkg/orderbook"
)

// Edge is a directed traversal across one currency pair, derived from one
// order and one side of that order. Two edges derived from the same Order
// share identity via the Order pointer.
type Edge struct {
	From  string
	To    string
	Side  orderbook.Side // the acting side for *this* direction of travel
	Order *orderbook.Order
	Rate  money.ExchangeRate // oriented From -> To

	// NetBase, Quote and GrossBase are the three capacity envelopes,
	// always denominated respectively in the order's own base currency
	// (net of base fees), the order's quote currency (net of quote fees),
	// and the order's base currency (gross, including base-fee overhead)
	// regardless of which of {From,To} they equal.
	NetBase   money.OrderBounds
	Quote     money.OrderBounds
	GrossBase money.OrderBounds

	// Capacity is the feasibility envelope denominated in From (the edge's
	// source currency): GrossBase when From is the order's base currency,
	// Quote when From is the order's quote currency. The search engine
	// intersects a state's feasible spend range against this field.
	Capacity money.OrderBounds

	Segments []Segment
}

// IsForward reports whether this edge travels in the order's own base
// currency -> quote currency direction (as opposed to the inverted
// quote -> base direction).
func (e *Edge) IsForward() bool {
	return e.From == e.Order.Pair.Base
}
