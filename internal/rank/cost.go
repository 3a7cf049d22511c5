package rank

import (
	"github.com/mExOms/planroute/pkg/money"
	"github.com/shopspring/decimal"
)

// CanonicalScale is the scale every PathCost and cumulative rate product is
// carried at.
const CanonicalScale = money.CanonicalScale

// CostFunc computes a path's cost from its cumulative rate product (the
// product, across every hop so far, of each edge's exchange rate). The
// default implementation is the inverse of that product: cheaper cost for
// routes whose cumulative rate is larger (more output per unit spent).
type CostFunc func(cumulativeRateProduct decimal.Decimal) (decimal.Decimal, error)

// DefaultCostFunc is 1 / cumulativeRateProduct at CanonicalScale.
func DefaultCostFunc(cumulativeRateProduct decimal.Decimal) (decimal.Decimal, error) {
	const op = "rank.DefaultCostFunc"
	if cumulativeRateProduct.IsZero() {
		return decimal.Decimal{}, money.WrapPrecisionViolation(op, "cumulative rate product is zero")
	}
	return money.Div(op, decimal.NewFromInt(1), cumulativeRateProduct, CanonicalScale)
}
