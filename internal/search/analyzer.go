package search

import (
	"github.com/mExOms/planroute/pkg/money"
	"github.com/shopspring/decimal"
)

// IntersectCapacity narrows feasible (the range of acceptable spend in a
// currency) against capacity (an edge's envelope in that same currency),
// returning ok=false when the two ranges do not overlap at all.
func IntersectCapacity(feasible, capacity money.OrderBounds) (money.OrderBounds, bool, error) {
	lowerIsFeasible, err := feasible.Min().GreaterThan(capacity.Min())
	if err != nil {
		return money.OrderBounds{}, false, err
	}
	lower := capacity.Min()
	if lowerIsFeasible {
		lower = feasible.Min()
	}
	upperIsFeasible, err := feasible.Max().LessThan(capacity.Max())
	if err != nil {
		return money.OrderBounds{}, false, err
	}
	upper := capacity.Max()
	if upperIsFeasible {
		upper = feasible.Max()
	}
	gt, err := lower.GreaterThan(upper)
	if err != nil {
		return money.OrderBounds{}, false, err
	}
	if gt {
		return money.OrderBounds{}, false, nil
	}
	bounds, err := money.NewOrderBounds(lower, upper)
	if err != nil {
		return money.OrderBounds{}, false, err
	}
	return bounds, true, nil
}

// ToleranceRange builds the [requested*(1-underMax), requested*(1+overMax)]
// window around requested, clamped at zero, that seeds a search's very
// first feasible spend range before any edge capacity has been applied.
func ToleranceRange(requested money.Money, tolerance money.ToleranceWindow) (money.OrderBounds, error) {
	const op = "search.ToleranceRange"
	one := decimal.NewFromInt(1)
	underFactor := one.Sub(tolerance.UnderMax())
	overFactor := one.Add(tolerance.OverMax())
	lower, err := requested.Multiply(underFactor)
	if err != nil {
		return money.OrderBounds{}, err
	}
	upper, err := requested.Multiply(overFactor)
	if err != nil {
		return money.OrderBounds{}, err
	}
	zero := money.Zero(requested.Currency(), requested.Scale())
	if lt, err := lower.LessThan(zero); err != nil {
		return money.OrderBounds{}, err
	} else if lt {
		lower = zero
	}
	bounds, err := money.NewOrderBounds(lower, upper)
	if err != nil {
		return money.OrderBounds{}, money.WrapInvalidInput(op, "tolerance window produced inverted range: %v", err)
	}
	return bounds, nil
}

// Seed determines an edge's initial feasible spend range in its own source
// currency by intersecting the tolerance-derived range around requested
// with capacity, the edge's capacity envelope, returning ok=false when the
// edge cannot carry any amount within tolerance of requested at all.
func Seed(capacity money.OrderBounds, requested money.Money, tolerance money.ToleranceWindow) (money.OrderBounds, bool, error) {
	toleranceRange, err := ToleranceRange(requested, tolerance)
	if err != nil {
		return money.OrderBounds{}, false, err
	}
	return IntersectCapacity(toleranceRange, capacity)
}

// EvaluateTolerance reports whether actual falls within tolerance of
// requested, delegating to money.ToleranceWindow so the search package has
// one named entry point for the tolerance evaluator.
func EvaluateTolerance(tolerance money.ToleranceWindow, requested, actual money.Money) (decimal.Decimal, bool, error) {
	return tolerance.EvaluateResidual(requested, actual)
}
