package search

import (
	"strings"

	"github.com/mExOms/planroute/internal/graph"
	"github.com/mExOms/planroute/internal/rank"
	"github.com/mExOms/planroute/pkg/money"
	"github.com/shopspring/decimal"
)

// State is one frontier node of the best-first search: a partial path that
// has reached Currency after Hops edges, together with everything needed to
// extend it further or admit it as a result. States are never mutated after
// creation; the search's expansion step always builds a new one.
type State struct {
	Currency string
	Cost     decimal.Decimal
	// BaseCost is Cost before any reuse penalty was folded in; Top-K
	// reusable mode deduplicates on it so a penalized repeat of the same
	// route still collapses with its earlier, cheaper incarnation.
	BaseCost              decimal.Decimal
	CumulativeRateProduct decimal.Decimal
	PenaltyProduct        decimal.Decimal
	Hops                  int
	Edges                 []*graph.Edge
	FeasibleSpendRange    money.OrderBounds
	Visited               Bitset
	InsertionOrder        uint64
}

// RouteSignature renders the currency sequence "USD->EUR->JPY" that
// rank.Signature and PathOrderKey order on.
func (s *State) RouteSignature(source string) rank.Signature {
	parts := make([]string, 0, len(s.Edges)+1)
	parts = append(parts, source)
	for _, e := range s.Edges {
		parts = append(parts, e.To)
	}
	return rank.NewSignature(parts)
}

// Key builds the PathOrderKey used for both priority-queue ordering and
// result ranking.
func (s *State) Key(source string) rank.PathOrderKey {
	return rank.PathOrderKey{
		Cost:           s.Cost,
		Hops:           s.Hops,
		Signature:      s.RouteSignature(source),
		InsertionOrder: s.InsertionOrder,
	}
}

// DominanceSignature is the deterministic string two states collapse to for
// dominance comparison: same currency and same feasible spend range compete
// against each other regardless of the edge sequence that produced them.
func (s *State) DominanceSignature() string {
	var b strings.Builder
	b.WriteString(s.Currency)
	b.WriteByte('|')
	b.WriteString(s.FeasibleSpendRange.Min().Decimal().String())
	b.WriteByte(':')
	b.WriteString(s.FeasibleSpendRange.Max().Decimal().String())
	return b.String()
}
