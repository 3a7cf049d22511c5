// Package rank implements path cost, route signature, the ordered path
// key, the pluggable ordering strategy, and the bounded result heap the
// search engine pushes candidates into.
package rank

import "strings"

// Signature is an arrow-joined, uppercase currency sequence, e.g.
// "USD->EUR->JPY", compared lexicographically as a tie-breaker and used as
// a Top-K-reusable deduplication key.
type Signature string

// NewSignature builds a Signature from a currency path in traversal order.
func NewSignature(currencies []string) Signature {
	return Signature(strings.Join(currencies, "->"))
}
