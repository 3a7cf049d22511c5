// Package orderbook defines the tradable-offer value model: Order, the
// read-only OrderBook snapshot, and the pluggable FeePolicy hook. Nothing
// in this package holds mutable state or talks to the network; an
// OrderBook is supplied fresh per search query by the caller.
package orderbook

import (
	"github.com/mExOms/planroute/pkg/money"
)

// Side is the direction of an order.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// AssetPair names the base and quote currencies an Order is denominated in.
type AssetPair struct {
	Base  string
	Quote string
}

// Order is an immutable standing offer: side, asset pair, input bounds (in
// base-currency units), the fixed base->quote exchange rate, and an
// optional fee policy. Identity equality is reference equality on the
// containing *Order; two orders with identical fields are still distinct
// offers.
type Order struct {
	ID         string
	Side       Side
	Pair       AssetPair
	Bounds     money.OrderBounds
	Rate       money.ExchangeRate
	FeePolicy  FeePolicy
}

// New validates that bounds are denominated in Pair.Base and that Rate's
// base/quote match Pair, then returns the Order. FeePolicy may be nil,
// equivalent to NoFee().
func New(id string, side Side, pair AssetPair, bounds money.OrderBounds, rate money.ExchangeRate, fee FeePolicy) (*Order, error) {
	const op = "Order.New"
	if side != Buy && side != Sell {
		return nil, money.ErrInvalidInput
	}
	if bounds.Currency() != pair.Base {
		return nil, money.WrapInvalidInput(op, "bounds currency %s does not match pair base %s", bounds.Currency(), pair.Base)
	}
	if rate.Base() != pair.Base || rate.Quote() != pair.Quote {
		return nil, money.WrapInvalidInput(op, "rate %s/%s does not match pair %s/%s", rate.Base(), rate.Quote(), pair.Base, pair.Quote)
	}
	if fee == nil {
		fee = NoFee()
	}
	return &Order{ID: id, Side: side, Pair: pair, Bounds: bounds, Rate: rate, FeePolicy: fee}, nil
}

// EffectiveRate is the order's exchange rate. It is exposed as a method
// (rather than a field read) so future policy-driven rate adjustments
// (e.g. maker/taker spread) have a single seam to extend.
func (o *Order) EffectiveRate() money.ExchangeRate {
	return o.Rate
}
