package topk

import (
	"github.com/mExOms/planroute/internal/graph"
	"github.com/shopspring/decimal"
)

// PenaltyTracker multiplies an edge's contribution to path cost by
// surcharge raised to the number of times its underlying order has already
// been used by a previously admitted Top-K result. Reused liquidity gets
// progressively more expensive to route through again without ever being
// excluded outright, which is what separates reusable mode from disjoint
// mode.
type PenaltyTracker struct {
	surcharge decimal.Decimal
	usage     map[string]int
}

func NewPenaltyTracker(surcharge decimal.Decimal) *PenaltyTracker {
	return &PenaltyTracker{surcharge: surcharge, usage: make(map[string]int)}
}

// Factor returns surcharge^n where n is how many admitted results have
// already used edge's order.
func (p *PenaltyTracker) Factor(edge *graph.Edge) decimal.Decimal {
	n := p.usage[edge.Order.ID]
	factor := decimal.NewFromInt(1)
	for i := 0; i < n; i++ {
		factor = factor.Mul(p.surcharge)
	}
	return factor
}

// RecordUse increments the usage count of every order in edges, so the
// next Factor call penalizes them more.
func (p *PenaltyTracker) RecordUse(edges []*graph.Edge) {
	for _, e := range edges {
		p.usage[e.Order.ID]++
	}
}
