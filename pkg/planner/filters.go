package planner

import (
	"github.com/mExOms/planroute/pkg/money"
	"github.com/mExOms/planroute/pkg/orderbook"
)

// OrderFilter reports whether order should remain in the book FindBestPlans
// searches over. Filters compose: an order survives only if every filter
// in PathSearchConfig.Filters keeps it.
type OrderFilter func(order *orderbook.Order) bool

// applyFilters returns a Book containing only the orders every filter
// keeps, preserving input order. An empty filter list returns book
// unchanged.
func applyFilters(book orderbook.Book, filters []OrderFilter) orderbook.Book {
	if len(filters) == 0 {
		return book
	}
	kept := make([]*orderbook.Order, 0, book.Len())
	for _, order := range book.Orders() {
		keep := true
		for _, f := range filters {
			if !f(order) {
				keep = false
				break
			}
		}
		if keep {
			kept = append(kept, order)
		}
	}
	return orderbook.NewBook(kept)
}

// MinLiquidity keeps only orders whose base currency matches min's currency
// and whose maximum base amount is at least min, dropping thinly
// capitalized orders that would only ever contribute a token leg. Orders
// denominated in a different base currency are kept unconditionally, since
// the threshold does not apply to them.
func MinLiquidity(min money.Money) OrderFilter {
	return func(order *orderbook.Order) bool {
		if order.Pair.Base != min.Currency() {
			return true
		}
		return order.Bounds.Max().Decimal().GreaterThanOrEqual(min.Decimal())
	}
}

// ExcludeOrders drops every order whose ID appears in excluded.
func ExcludeOrders(excluded map[string]struct{}) OrderFilter {
	return func(order *orderbook.Order) bool {
		_, dropped := excluded[order.ID]
		return !dropped
	}
}

// RestrictSide keeps only orders on the given side.
func RestrictSide(side orderbook.Side) OrderFilter {
	return func(order *orderbook.Order) bool {
		return order.Side == side
	}
}
