package search

import "github.com/shopspring/decimal"

type dominanceRecord struct {
	cost decimal.Decimal
	hops int
}

// DominanceRegistry tracks, per currency-and-feasible-range signature, the
// set of (cost, hops) pairs no state has yet beaten outright. A candidate is
// rejected when an existing record dominates it (lower-or-equal cost AND
// lower-or-equal hops); it replaces any record it itself dominates; records
// that are mutually incomparable coexist.
type DominanceRegistry struct {
	byKey    map[string][]dominanceRecord
	accepted int
}

func NewDominanceRegistry() *DominanceRegistry {
	return &DominanceRegistry{byKey: make(map[string][]dominanceRecord)}
}

// Register reports whether (cost, hops) survives dominance checking against
// currency's existing records for signature, updating the registry in
// place when it does.
func (d *DominanceRegistry) Register(currency, signature string, cost decimal.Decimal, hops int) bool {
	key := currency + "#" + signature
	existing := d.byKey[key]
	for _, r := range existing {
		if r.cost.LessThanOrEqual(cost) && r.hops <= hops {
			return false
		}
	}
	kept := existing[:0:0]
	for _, r := range existing {
		if cost.LessThanOrEqual(r.cost) && hops <= r.hops {
			continue // new record dominates this one; drop it
		}
		kept = append(kept, r)
	}
	kept = append(kept, dominanceRecord{cost: cost, hops: hops})
	d.byKey[key] = kept
	d.accepted++
	return true
}

// Accepted returns the cumulative count of states ever accepted by
// Register, monotonically increasing; the search engine uses this as its
// "visited states" guard counter.
func (d *DominanceRegistry) Accepted() int { return d.accepted }
