package planner

import (
	"github.com/mExOms/planroute/internal/rank"
	"github.com/mExOms/planroute/pkg/money"
	"github.com/mExOms/planroute/pkg/orderbook"
	"github.com/shopspring/decimal"
)

// ExecutionStep is one materialized hop of an ExecutionPlan: the order it
// executes against, the side, and the concrete amounts and fees that hop
// moves.
type ExecutionStep struct {
	Sequence int
	OrderID  string
	From     string
	To       string
	Side     orderbook.Side
	Input    money.Money
	Output   money.Money
	Fees     map[string]money.Money
}

// ExecutionPlan is one fully materialized, ranked route from the requested
// spend currency to the target currency.
type ExecutionPlan struct {
	Steps []ExecutionStep

	SourceCurrency string
	TargetCurrency string

	Requested   money.Money
	ActualSpend money.Money
	Received    money.Money

	// Residual is (ActualSpend-Requested)/Requested, the same signed ratio
	// money.ToleranceWindow.EvaluateResidual computes; it is always within
	// the configured tolerance window, since a plan that fell outside it
	// was never admitted.
	Residual decimal.Decimal

	// FeeBreakdown sums every step's per-currency fees across the whole
	// plan, keyed by currency.
	FeeBreakdown map[string]money.Money

	// Signature is the arrow-joined currency route, e.g. "USD->GBP->EUR",
	// the same value the search engine ranked this plan by.
	Signature rank.Signature

	Cost decimal.Decimal
	Hops int
}

// IsLinear reports whether every step's destination currency feeds
// directly into the next step's source currency, with no split or merge
// topology. This implementation only ever produces linear plans, so
// IsLinear always returns true for a non-empty plan; the method exists so
// callers have a stable seam if a future split/merge topology is added.
func (p ExecutionPlan) IsLinear() bool {
	for i := 0; i+1 < len(p.Steps); i++ {
		if p.Steps[i].To != p.Steps[i+1].From {
			return false
		}
	}
	return true
}

// GuardReport mirrors internal/search.GuardReport for callers outside this
// module: cumulative counters across every search iteration a Top-K run
// performed, and whether any guard stopped a search before it was
// exhaustive.
type GuardReport struct {
	Expansions    int
	VisitedStates int
	ElapsedMillis int64

	ExpansionsBreached    bool
	VisitedStatesBreached bool
	DurationBreached      bool
}

// Breached reports whether any individual guard tripped.
func (r GuardReport) Breached() bool {
	return r.ExpansionsBreached || r.VisitedStatesBreached || r.DurationBreached
}

// SearchOutcome is everything one FindBestPlans call produced: the ranked,
// materialized plans (best first) and the guard report summarizing how
// exhaustive the underlying search was.
type SearchOutcome struct {
	Plans  []ExecutionPlan
	Guards GuardReport
}
