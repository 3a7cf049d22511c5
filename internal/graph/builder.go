package graph

import (
	"github.com/mExOms/planroute/pkg/money"
	"github.com/mExOms/planroute/pkg/orderbook"
)

// Builder assembles a Graph from an OrderBook. It caches zero-valued Money
// per (currency, scale) to avoid repeat allocation during construction.
type Builder struct {
	zeroCache map[string]map[int32]money.Money
}

func NewBuilder() *Builder {
	return &Builder{zeroCache: make(map[string]map[int32]money.Money)}
}

func (b *Builder) zero(currency string, scale int32) money.Money {
	byScale, ok := b.zeroCache[currency]
	if !ok {
		byScale = make(map[int32]money.Money)
		b.zeroCache[currency] = byScale
	}
	if z, ok := byScale[scale]; ok {
		return z
	}
	z := money.Zero(currency, scale)
	byScale[scale] = z
	return z
}

// Build turns every order in book into a forward (base->quote) and reverse
// (quote->base) edge, in input order, so the edges emitted per node follow
// the order sequence deterministically.
func (b *Builder) Build(book orderbook.Book) (*Graph, error) {
	g := newGraph()
	for _, order := range book.Orders() {
		forward, err := b.buildEdge(order, true)
		if err != nil {
			return nil, err
		}
		g.addEdge(forward)

		reverse, err := b.buildEdge(order, false)
		if err != nil {
			return nil, err
		}
		g.addEdge(reverse)
	}
	return g, nil
}

// buildEdge computes the full envelope/segment set for one direction of one
// order. forward=true yields the order's own base->quote edge; forward=false
// yields the inverted quote->base edge.
func (b *Builder) buildEdge(order *orderbook.Order, forward bool) (*Edge, error) {
	rateScale := order.Rate.Scale()
	minBase, maxBase := order.Bounds.Min(), order.Bounds.Max()

	netBaseBounds := order.Bounds
	grossBaseMin, quoteMin, err := b.settle(order, minBase, rateScale)
	if err != nil {
		return nil, err
	}
	grossBaseMax, quoteMax, err := b.settle(order, maxBase, rateScale)
	if err != nil {
		return nil, err
	}
	grossBaseBounds, err := money.NewOrderBounds(grossBaseMin, grossBaseMax)
	if err != nil {
		return nil, err
	}
	quoteBounds, err := money.NewOrderBounds(quoteMin, quoteMax)
	if err != nil {
		return nil, err
	}

	zeroNetBase := b.zero(order.Pair.Base, minBase.Scale())
	zeroGrossBase := b.zero(order.Pair.Base, grossBaseMin.Scale())
	zeroQuote := b.zero(order.Pair.Quote, quoteMin.Scale())

	mandatoryNetBase, err := money.NewOrderBounds(zeroNetBase, minBase)
	if err != nil {
		return nil, err
	}
	mandatoryGrossBase, err := money.NewOrderBounds(zeroGrossBase, grossBaseMin)
	if err != nil {
		return nil, err
	}
	mandatoryQuote, err := money.NewOrderBounds(zeroQuote, quoteMin)
	if err != nil {
		return nil, err
	}
	optionalNetBase, err := money.NewOrderBounds(minBase, maxBase)
	if err != nil {
		return nil, err
	}
	optionalGrossBase, err := money.NewOrderBounds(grossBaseMin, grossBaseMax)
	if err != nil {
		return nil, err
	}
	optionalQuote, err := money.NewOrderBounds(quoteMin, quoteMax)
	if err != nil {
		return nil, err
	}

	segments := []Segment{
		{Mandatory: true, NetBase: mandatoryNetBase, Quote: mandatoryQuote, GrossBase: mandatoryGrossBase},
		{Mandatory: false, NetBase: optionalNetBase, Quote: optionalQuote, GrossBase: optionalGrossBase},
	}

	var from, to string
	var rate money.ExchangeRate
	var side orderbook.Side
	var capacity money.OrderBounds
	if forward {
		from, to = order.Pair.Base, order.Pair.Quote
		rate = order.EffectiveRate()
		side = order.Side
		capacity = grossBaseBounds
	} else {
		from, to = order.Pair.Quote, order.Pair.Base
		inv, err := order.EffectiveRate().Invert()
		if err != nil {
			return nil, err
		}
		rate = inv
		side = oppositeSide(order.Side)
		capacity = quoteBounds
	}

	return &Edge{
		From:      from,
		To:        to,
		Side:      side,
		Order:     order,
		Rate:      rate,
		NetBase:   netBaseBounds,
		Quote:     quoteBounds,
		GrossBase: grossBaseBounds,
		Capacity:  capacity,
		Segments:  segments,
	}, nil
}

// settle computes, for a given base-currency boundary amount, the
// gross-base outlay (net base plus base fee) and net quote receipt (gross
// quote minus quote fee) that the order's fee policy implies.
func (b *Builder) settle(order *orderbook.Order, baseAmount money.Money, rateScale int32) (grossBase, netQuote money.Money, err error) {
	grossQuote, err := order.EffectiveRate().Convert(baseAmount, rateScale)
	if err != nil {
		return money.Money{}, money.Money{}, err
	}
	fees, err := order.FeePolicy.Fees(order.Side, baseAmount, grossQuote)
	if err != nil {
		return money.Money{}, money.Money{}, err
	}
	baseFee, ok := fees[order.Pair.Base]
	if !ok || baseFee.Currency() != order.Pair.Base {
		baseFee = b.zero(order.Pair.Base, baseAmount.Scale())
	}
	quoteFee, ok := fees[order.Pair.Quote]
	if !ok || quoteFee.Currency() != order.Pair.Quote {
		quoteFee = b.zero(order.Pair.Quote, grossQuote.Scale())
	}
	grossBase, err = baseAmount.Add(baseFee, baseAmount.Scale())
	if err != nil {
		return money.Money{}, money.Money{}, err
	}
	netQuote, err = grossQuote.Subtract(quoteFee, grossQuote.Scale())
	if err != nil {
		return money.Money{}, money.Money{}, err
	}
	return grossBase, netQuote, nil
}

func oppositeSide(s orderbook.Side) orderbook.Side {
	if s == orderbook.Buy {
		return orderbook.Sell
	}
	return orderbook.Buy
}
