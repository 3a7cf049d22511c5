// Package graph turns an orderbook.Book into an immutable, acyclic-per-query
// directed multigraph of currency nodes and capacity-annotated edges. It
// owns no mutable state beyond what is built once per query; Without
// returns a new, possibly-aliased Graph rather than mutating in place.
package graph

import "github.com/mExOms/planroute/pkg/money"

// Segment is a slice of an edge's capacity. The first segment of an edge is
// always mandatory (the order's minimum must be met to use the order at
// all); any subsequent segment is optional headroom up to the order's
// maximum.
type Segment struct {
	Mandatory bool
	NetBase   money.OrderBounds
	Quote     money.OrderBounds
	GrossBase money.OrderBounds
}
