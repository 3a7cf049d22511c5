package rank

import "github.com/shopspring/decimal"

// PathOrderKey totally orders search states and result candidates:
// (cost ascending, hops ascending, route signature lexicographic ascending,
// insertion order ascending). InsertionOrder guarantees a strict total
// order even when every other field ties.
type PathOrderKey struct {
	Cost           decimal.Decimal
	Hops           int
	Signature      Signature
	InsertionOrder uint64
}

// OrderingStrategy compares two PathOrderKeys, reporting whether a sorts
// strictly before b. It is the pluggable injection point for ranking
// order; DefaultStrategy implements the lexicographic order above.
type OrderingStrategy interface {
	Less(a, b PathOrderKey) bool
}

// DefaultStrategy is the (cost, hops, signature, insertionOrder)
// lexicographic comparison.
type DefaultStrategy struct{}

func (DefaultStrategy) Less(a, b PathOrderKey) bool {
	if c := a.Cost.Cmp(b.Cost); c != 0 {
		return c < 0
	}
	if a.Hops != b.Hops {
		return a.Hops < b.Hops
	}
	if a.Signature != b.Signature {
		return a.Signature < b.Signature
	}
	return a.InsertionOrder < b.InsertionOrder
}

// SameRank reports whether a and b collapse to the same (cost, hops,
// signature) triple, ignoring insertion order. Used by Top-K reusable mode
// to deduplicate.
func SameRank(a, b PathOrderKey) bool {
	return a.Cost.Equal(b.Cost) && a.Hops == b.Hops && a.Signature == b.Signature
}
