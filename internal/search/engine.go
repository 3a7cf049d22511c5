// Package search implements the best-first execution-plan search: the
// spend analyzer that seeds feasible ranges, the dominance-pruned frontier,
// and the priority-queue-driven traversal that discovers candidate routes
// from a source currency to a target currency.
package search

import (
	"github.com/mExOms/planroute/internal/graph"
	"github.com/mExOms/planroute/internal/rank"
	"github.com/mExOms/planroute/pkg/money"
	"github.com/shopspring/decimal"
)

// Validator lets a caller gate which terminal candidates the engine admits
// to its result set, without the search package needing to know how a
// route is actually materialized into per-leg amounts. A nil Validator
// accepts every terminal candidate the graph topology admits.
type Validator func(edges []*graph.Edge, spend money.Money) (bool, error)

// Config drives one Run.
type Config struct {
	SpendAmount money.Money
	Tolerance   money.ToleranceWindow
	MinHops     int
	MaxHops     int
	ResultLimit int
	Guards      Guards
	CostFunc    rank.CostFunc
	Strategy    rank.OrderingStrategy
	Validate    Validator

	// EdgePenalty lets a caller (internal/topk's reusable Top-K mode)
	// apply a ranking-only surcharge to routes that lean on specific
	// orders, without touching the rates or amounts a materialized plan
	// would actually use. A nil EdgePenalty leaves cost unchanged.
	EdgePenalty func(edge *graph.Edge) decimal.Decimal
}

// Candidate is one admitted terminal route: the edge sequence from source
// to target and the key it was ranked by. BaseCost is Key.Cost with any
// reuse penalty stripped back out.
type Candidate struct {
	Edges    []*graph.Edge
	Key      rank.PathOrderKey
	BaseCost decimal.Decimal
}

// resultPayload is what the engine stashes in a rank.Entry so Candidate can
// be reassembled at extraction time.
type resultPayload struct {
	edges    []*graph.Edge
	baseCost decimal.Decimal
}

// Outcome is everything one Run produced.
type Outcome struct {
	Candidates []Candidate
	Guards     GuardReport
}

// Run searches g from cfg.SpendAmount's currency to targetCurrency,
// returning up to cfg.ResultLimit best candidates per cfg.Strategy.
func Run(g *graph.Graph, targetCurrency string, cfg Config) (Outcome, error) {
	const op = "search.Run"

	costFunc := cfg.CostFunc
	if costFunc == nil {
		costFunc = rank.DefaultCostFunc
	}
	strategy := cfg.Strategy
	if strategy == nil {
		strategy = rank.DefaultStrategy{}
	}
	resultLimit := cfg.ResultLimit
	if resultLimit <= 0 {
		resultLimit = 1
	}

	source := cfg.SpendAmount.Currency()
	if !g.HasNode(source) {
		return Outcome{}, money.WrapInvalidInput(op, "source currency %s not present in the order graph", source)
	}
	if !g.HasNode(targetCurrency) {
		return Outcome{}, money.WrapInvalidInput(op, "target currency %s not present in the order graph", targetCurrency)
	}

	currencyIdx := NewCurrencyIndex(g.Nodes())
	startIdx, ok := currencyIdx.IndexOf(source)
	if !ok {
		return Outcome{}, money.WrapInvalidInput(op, "source currency %s not indexed", source)
	}

	startRange, err := ToleranceRange(cfg.SpendAmount, cfg.Tolerance)
	if err != nil {
		return Outcome{}, err
	}

	dominance := NewDominanceRegistry()
	guards := newGuardTracker(cfg.Guards)
	pq := NewPriorityQueue(strategy)
	results := rank.NewResultHeap(resultLimit, strategy)

	var insertionCounter uint64
	nextInsertion := func() uint64 {
		v := insertionCounter
		insertionCounter++
		return v
	}

	start := &State{
		Currency:              source,
		Cost:                  decimal.Zero,
		BaseCost:              decimal.Zero,
		CumulativeRateProduct: decimal.NewFromInt(1),
		PenaltyProduct:        decimal.NewFromInt(1),
		Hops:                  0,
		Edges:                 nil,
		FeasibleSpendRange:    startRange,
		Visited:               NewBitset(currencyIdx.Size()).With(startIdx),
		InsertionOrder:        nextInsertion(),
	}
	pq.Push(start.Key(source), start)

	for pq.Len() > 0 {
		if guards.breached() {
			if cfg.Guards.ThrowOnBreach {
				return Outcome{}, guards.report().BreachError(op)
			}
			break
		}
		cur, ok := pq.Pop()
		if !ok {
			break
		}
		guards.recordExpansion()
		if guards.breached() {
			if cfg.Guards.ThrowOnBreach {
				return Outcome{}, guards.report().BreachError(op)
			}
			break
		}
		if results.Full() {
			worst, _ := results.Worst()
			if strategy.Less(worst.Key, cur.Key(source)) {
				break
			}
		}
		if cur.Hops >= cfg.MaxHops {
			continue
		}
		for _, edge := range g.EdgesFrom(cur.Currency) {
			toIdx, ok := currencyIdx.IndexOf(edge.To)
			if !ok || cur.Visited.Has(toIdx) {
				continue
			}
			feasible, ok, err := IntersectCapacity(cur.FeasibleSpendRange, edge.Capacity)
			if err != nil {
				return Outcome{}, err
			}
			if !ok {
				continue
			}
			nextRange, ok, err := convertRange(feasible, edge)
			if err != nil {
				return Outcome{}, err
			}
			if !ok {
				continue
			}
			cumRate := cur.CumulativeRateProduct.Mul(edge.Rate.Rate())
			penaltyProduct := cur.PenaltyProduct
			if cfg.EdgePenalty != nil {
				penaltyProduct = penaltyProduct.Mul(cfg.EdgePenalty(edge))
			}
			baseCost, err := costFunc(cumRate)
			if err != nil {
				return Outcome{}, err
			}
			cost := baseCost.Mul(penaltyProduct)
			next := &State{
				Currency:              edge.To,
				Cost:                  cost,
				BaseCost:              baseCost,
				CumulativeRateProduct: cumRate,
				PenaltyProduct:        penaltyProduct,
				Hops:                  cur.Hops + 1,
				Edges:                 appendEdge(cur.Edges, edge),
				FeasibleSpendRange:    nextRange,
				Visited:               cur.Visited.With(toIdx),
				InsertionOrder:        nextInsertion(),
			}
			if err := considerState(next, source, targetCurrency, cfg, dominance, pq, results); err != nil {
				return Outcome{}, err
			}
			guards.setVisitedStates(dominance.Accepted())
		}
	}

	entries := results.Extract()
	candidates := make([]Candidate, 0, len(entries))
	for _, e := range entries {
		p := e.Payload.(resultPayload)
		candidates = append(candidates, Candidate{Edges: p.edges, Key: e.Key, BaseCost: p.baseCost})
	}
	return Outcome{Candidates: candidates, Guards: guards.report()}, nil
}

func considerState(st *State, source, target string, cfg Config, dominance *DominanceRegistry, pq *PriorityQueue, results *rank.ResultHeap) error {
	if st.Currency == target && st.Hops >= cfg.MinHops && st.Hops <= cfg.MaxHops {
		accepted := true
		if cfg.Validate != nil {
			ok, err := cfg.Validate(st.Edges, cfg.SpendAmount)
			if err != nil {
				return err
			}
			accepted = ok
		}
		if accepted {
			results.Offer(rank.Entry{Key: st.Key(source), Payload: resultPayload{edges: st.Edges, baseCost: st.BaseCost}})
		}
		return nil
	}
	if !dominance.Register(st.Currency, st.DominanceSignature(), st.Cost, st.Hops) {
		return nil
	}
	pq.Push(st.Key(source), st)
	return nil
}

func convertRange(feasible money.OrderBounds, edge *graph.Edge) (money.OrderBounds, bool, error) {
	lower, err := edge.Rate.Convert(feasible.Min(), edge.Rate.Scale())
	if err != nil {
		return money.OrderBounds{}, false, err
	}
	upper, err := edge.Rate.Convert(feasible.Max(), edge.Rate.Scale())
	if err != nil {
		return money.OrderBounds{}, false, err
	}
	bounds, err := money.NewOrderBounds(lower, upper)
	if err != nil {
		return money.OrderBounds{}, false, err
	}
	return bounds, true, nil
}

func appendEdge(edges []*graph.Edge, e *graph.Edge) []*graph.Edge {
	out := make([]*graph.Edge, len(edges)+1)
	copy(out, edges)
	out[len(edges)] = e
	return out
}
