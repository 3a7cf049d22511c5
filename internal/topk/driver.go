// Package topk drives a search.Run to produce up to K ranked routes rather
// than just the single best one, in one of two modes: Disjoint excludes
// every order a previously admitted result used before searching again;
// Reusable allows repeats but surcharges them more heavily each time.
package topk

import (
	"github.com/mExOms/planroute/internal/graph"
	"github.com/mExOms/planroute/internal/rank"
	"github.com/mExOms/planroute/internal/search"
	"github.com/mExOms/planroute/pkg/orderbook"
	"github.com/shopspring/decimal"
)

// Mode selects how repeated Top-K iterations treat liquidity already used
// by a prior result.
type Mode int

const (
	Disjoint Mode = iota
	Reusable
)

// RunConfig drives one Top-K run. Search is the per-iteration search
// configuration; its ResultLimit is overridden to 1 internally, since the
// driver itself is what decides how many results to keep.
// ReusePenaltyFactor is only consulted in Reusable mode and must be greater
// than 1 for repeats to actually cost more.
type RunConfig struct {
	Mode                Mode
	K                   int
	ReusePenaltyFactor  decimal.Decimal
	Search              search.Config
}

// Result is everything one Top-K run produced.
type Result struct {
	Candidates []search.Candidate
	Guards     search.GuardReport
}

// Run dispatches to the disjoint or reusable driver per cfg.Mode.
func Run(book orderbook.Book, target string, cfg RunConfig) (Result, error) {
	if cfg.K <= 0 {
		cfg.K = 1
	}
	if cfg.Mode == Reusable {
		return runReusable(book, target, cfg)
	}
	return runDisjoint(book, target, cfg)
}

func runDisjoint(book orderbook.Book, target string, cfg RunConfig) (Result, error) {
	current := book
	var candidates []search.Candidate
	var reports []search.GuardReport

	for i := 0; i < cfg.K; i++ {
		g, err := graph.NewBuilder().Build(current)
		if err != nil {
			return Result{}, err
		}
		// After the first iteration, exclusions may have emptied the graph
		// of the source or target currency entirely; that is exhaustion,
		// not caller error.
		if i > 0 && (!g.HasNode(cfg.Search.SpendAmount.Currency()) || !g.HasNode(target)) {
			break
		}
		iterCfg := cfg.Search
		iterCfg.ResultLimit = 1
		out, err := search.Run(g, target, iterCfg)
		if err != nil {
			return Result{}, err
		}
		reports = append(reports, out.Guards)
		if len(out.Candidates) == 0 {
			break
		}
		best := out.Candidates[0]
		candidates = append(candidates, best)

		used := make(map[string]struct{}, len(best.Edges))
		for _, e := range best.Edges {
			used[e.Order.ID] = struct{}{}
		}
		current = current.Without(used)

		if out.Guards.Breached() {
			break
		}
	}

	return Result{Candidates: candidates, Guards: MergeGuardReports(reports)}, nil
}

func runReusable(book orderbook.Book, target string, cfg RunConfig) (Result, error) {
	g, err := graph.NewBuilder().Build(book)
	if err != nil {
		return Result{}, err
	}
	penalty := NewPenaltyTracker(cfg.ReusePenaltyFactor)

	var candidates []search.Candidate
	var seen []rank.PathOrderKey
	var reports []search.GuardReport

	maxAttempts := cfg.K * 4
	if maxAttempts < cfg.K {
		maxAttempts = cfg.K
	}

	for attempt := 0; attempt < maxAttempts && len(candidates) < cfg.K; attempt++ {
		iterCfg := cfg.Search
		iterCfg.ResultLimit = 1
		iterCfg.EdgePenalty = penalty.Factor
		out, err := search.Run(g, target, iterCfg)
		if err != nil {
			return Result{}, err
		}
		reports = append(reports, out.Guards)
		if len(out.Candidates) == 0 {
			break
		}
		best := out.Candidates[0]

		// Compare on the unpenalized cost: a repeat of an already-admitted
		// route carries a strictly larger penalized Key.Cost, so only the
		// base cost collapses it with its earlier incarnation.
		bestRank := rank.PathOrderKey{Cost: best.BaseCost, Hops: best.Key.Hops, Signature: best.Key.Signature}
		duplicate := false
		for _, k := range seen {
			if rank.SameRank(k, bestRank) {
				duplicate = true
				break
			}
		}
		penalty.RecordUse(best.Edges)
		if duplicate {
			if out.Guards.Breached() {
				break
			}
			continue
		}
		candidates = append(candidates, best)
		seen = append(seen, bestRank)

		if out.Guards.Breached() {
			break
		}
	}

	return Result{Candidates: candidates, Guards: MergeGuardReports(reports)}, nil
}
