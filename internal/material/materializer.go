// Package material replays a candidate route's edge sequence leg by leg,
// producing the concrete per-order amounts and fees the execution plan
// would actually move. internal/search reasons about ranges and rates;
// this package is where a specific path finally becomes specific numbers.
package material

import (
	"github.com/mExOms/planroute/internal/graph"
	"github.com/mExOms/planroute/pkg/money"
	"github.com/mExOms/planroute/pkg/orderbook"
	"github.com/shopspring/decimal"
)

// maxSellIterations bounds the refinement loop settleReverse runs to size
// a sell leg; a path whose sell leg has not converged within this many
// rounds is rejected rather than accepted on a stale estimate.
const maxSellIterations = 8

// convergenceRatio is the relative tolerance a sell-leg refinement accepts:
// the candidate base amount is good enough once the quote it implies is
// within this fraction of the quote actually on hand. The first analytic
// pass through the inverted rate already lands inside this window whenever
// the order carries no quote-denominated fee.
var convergenceRatio = decimal.RequireFromString("0.0001")

// Leg is one executed hop of a materialized path. Input is the full outlay
// in the From currency, base-denominated fees included.
type Leg struct {
	Sequence int
	Order    *orderbook.Order
	From     string
	To       string
	Side     orderbook.Side
	Input    money.Money
	Output   money.Money
	Fees     map[string]money.Money
}

// PathResult is a fully materialized route: every leg's concrete input and
// output amounts, plus the gross spend actually committed at the first leg,
// which may exceed the requested amount by that leg's base-denominated fee
// or fall short of it when capacity clamps the trade.
type PathResult struct {
	Legs        []Leg
	Requested   money.Money
	ActualSpend money.Money
	Received    money.Money
}

// Materialize replays edges starting from spend (in edges[0].From's
// currency), sizing each leg against its order's bounds and settling fees
// leg by leg. The amount flowing between hops is always the net output of
// one leg and the gross budget of the next; an intermediate leg whose gross
// outlay would exceed that budget rejects the whole path. ok is false (with
// a nil error) when any leg cannot be sized, whether a mandatory minimum
// sits above the available budget or a sell-leg refinement fails to
// converge, so the caller can simply try the next candidate rather than
// treat it as a hard failure.
func Materialize(edges []*graph.Edge, spend money.Money) (result *PathResult, ok bool, err error) {
	const op = "material.Materialize"
	if len(edges) == 0 {
		return nil, false, money.WrapInvalidInput(op, "empty edge sequence")
	}

	legs := make([]Leg, 0, len(edges))
	current := spend
	for i, edge := range edges {
		var input, output money.Money
		var fees map[string]money.Money
		if edge.IsForward() {
			net := current
			if i > 0 {
				reduced, fits, rErr := reduceByBaseFee(edge, current)
				if rErr != nil {
					return nil, false, rErr
				}
				if !fits {
					return nil, false, nil
				}
				net = reduced
			}
			net, err = edge.NetBase.Clamp(net)
			if err != nil {
				return nil, false, err
			}
			gross, netQuote, legFees, sErr := settleForward(edge, net)
			if sErr != nil {
				return nil, false, sErr
			}
			if i > 0 {
				over, cErr := gross.GreaterThan(current)
				if cErr != nil {
					return nil, false, cErr
				}
				if over {
					return nil, false, nil
				}
			}
			input, output, fees = gross, netQuote, legFees
		} else {
			quote, cErr := edge.Capacity.Clamp(current)
			if cErr != nil {
				return nil, false, cErr
			}
			if i > 0 {
				over, gErr := quote.GreaterThan(current)
				if gErr != nil {
					return nil, false, gErr
				}
				if over {
					return nil, false, nil
				}
			}
			netBase, legFees, settled, sErr := settleReverse(edge, quote)
			if sErr != nil {
				return nil, false, sErr
			}
			if !settled {
				return nil, false, nil
			}
			input, output, fees = quote, netBase, legFees
		}
		legs = append(legs, Leg{
			Sequence: i + 1,
			Order:    edge.Order,
			From:     edge.From,
			To:       edge.To,
			Side:     edge.Side,
			Input:    input,
			Output:   output,
			Fees:     fees,
		})
		current = output
	}

	return &PathResult{
		Legs:        legs,
		Requested:   spend,
		ActualSpend: legs[0].Input,
		Received:    current,
	}, true, nil
}

// feeOrZero reads a fee map defensively: a policy that omits a currency
// charged nothing in it.
func feeOrZero(fees map[string]money.Money, currency string, scale int32) money.Money {
	if f, ok := fees[currency]; ok && f.Currency() == currency {
		return f
	}
	return money.Zero(currency, scale)
}

// settleForward is the analytic buy-leg: netBase flows straight through the
// order's rate and fee policy, the base-denominated fee is added on top to
// give the gross outlay, and the quote-denominated fee reduces what the
// next hop may spend.
func settleForward(edge *graph.Edge, netBase money.Money) (grossBase, netQuote money.Money, fees map[string]money.Money, err error) {
	order := edge.Order
	grossQuote, err := edge.Rate.Convert(netBase, order.Rate.Scale())
	if err != nil {
		return money.Money{}, money.Money{}, nil, err
	}
	fees, err = order.FeePolicy.Fees(order.Side, netBase, grossQuote)
	if err != nil {
		return money.Money{}, money.Money{}, nil, err
	}
	baseFee := feeOrZero(fees, order.Pair.Base, netBase.Scale())
	quoteFee := feeOrZero(fees, order.Pair.Quote, grossQuote.Scale())
	grossBase, err = netBase.Add(baseFee, netBase.Scale())
	if err != nil {
		return money.Money{}, money.Money{}, nil, err
	}
	netQuote, err = grossQuote.Subtract(quoteFee, grossQuote.Scale())
	if err != nil {
		return money.Money{}, money.Money{}, nil, err
	}
	return grossBase, netQuote, fees, nil
}

// reduceByBaseFee reserves an intermediate buy-leg's base-denominated fee
// out of the budget on hand before the remainder is traded. One fee
// evaluation at the full budget is enough: a fee schedule charges a small
// fraction of the amount it applies to, so trading the budget minus its own
// fee never overdraws. fits is false when the fee alone consumes the budget.
func reduceByBaseFee(edge *graph.Edge, held money.Money) (reduced money.Money, fits bool, err error) {
	order := edge.Order
	grossQuote, err := edge.Rate.Convert(held, order.Rate.Scale())
	if err != nil {
		return money.Money{}, false, err
	}
	fees, err := order.FeePolicy.Fees(order.Side, held, grossQuote)
	if err != nil {
		return money.Money{}, false, err
	}
	baseFee := feeOrZero(fees, order.Pair.Base, held.Scale())
	if baseFee.IsZero() {
		return held, true, nil
	}
	c, err := baseFee.Compare(held)
	if err != nil {
		return money.Money{}, false, err
	}
	if c >= 0 {
		return money.Money{}, false, nil
	}
	reduced, err = held.Subtract(baseFee, held.Scale())
	if err != nil {
		return money.Money{}, false, err
	}
	return reduced, true, nil
}

// settleReverse is the iterative sell-leg: quoteHeld is the amount of the
// order's quote currency on hand, and the order's fee policy is only
// expressed forward (base, quote -> fees), so the base amount that nets
// exactly quoteHeld is found by a fixed-point refinement seeded at the
// zero-fee analytic estimate (quoteHeld converted through edge.Rate, the
// already-inverted quote->base rate) and corrected each round by the
// residual error scaled through that same rate. The zero-fee slope stands
// in for the true fee-dependent derivative, which converges within a
// handful of rounds for any fee policy whose marginal rate is well below
// 100%.
func settleReverse(edge *graph.Edge, quoteHeld money.Money) (baseReceived money.Money, fees map[string]money.Money, ok bool, err error) {
	order := edge.Order
	baseScale := order.Bounds.Max().Scale()

	if quoteHeld.IsZero() {
		zero := money.Zero(order.Pair.Base, baseScale)
		zeroFees, zErr := order.FeePolicy.Fees(order.Side, zero, quoteHeld)
		if zErr != nil {
			return money.Money{}, nil, false, zErr
		}
		return zero, zeroFees, true, nil
	}

	epsilon := quoteHeld.Decimal().Mul(convergenceRatio)
	if epsilon.IsZero() {
		epsilon = decimal.New(1, -quoteHeld.Scale())
	}

	rateInv := edge.Rate.Rate() // quote -> base
	maxBase := order.Bounds.Max().Decimal()
	guess := quoteHeld.Decimal().Mul(rateInv)

	var lastFees map[string]money.Money
	for i := 0; i < maxSellIterations; i++ {
		if guess.IsNegative() {
			guess = decimal.Zero
		}
		if guess.GreaterThan(maxBase) {
			guess = maxBase
		}
		guessMoney, mErr := money.New(order.Pair.Base, guess, baseScale)
		if mErr != nil {
			return money.Money{}, nil, false, mErr
		}
		grossQuote, cErr := order.EffectiveRate().Convert(guessMoney, order.Rate.Scale())
		if cErr != nil {
			return money.Money{}, nil, false, cErr
		}
		lastFees, err = order.FeePolicy.Fees(order.Side, guessMoney, grossQuote)
		if err != nil {
			return money.Money{}, nil, false, err
		}
		netQuote, sErr := grossQuote.Subtract(feeOrZero(lastFees, order.Pair.Quote, grossQuote.Scale()), grossQuote.Scale())
		if sErr != nil {
			return money.Money{}, nil, false, sErr
		}
		diff := quoteHeld.Decimal().Sub(netQuote.Decimal())
		if diff.Abs().LessThanOrEqual(epsilon) {
			baseFee := feeOrZero(lastFees, order.Pair.Base, guessMoney.Scale())
			received, bErr := guessMoney.Subtract(baseFee, guessMoney.Scale())
			if bErr != nil {
				return money.Money{}, nil, false, bErr
			}
			return received, lastFees, true, nil
		}
		guess = guess.Add(diff.Mul(rateInv))
	}
	return money.Money{}, nil, false, nil
}
