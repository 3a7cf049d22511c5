package orderbook

// Book is a read-only ordered sequence of orders, treated as an immutable
// snapshot for the duration of one search query.
type Book struct {
	orders []*Order
}

// NewBook copies orders into an immutable snapshot, preserving input order
// (graph construction determinism relies on this order being stable).
func NewBook(orders []*Order) Book {
	snapshot := make([]*Order, len(orders))
	copy(snapshot, orders)
	return Book{orders: snapshot}
}

// Orders returns the snapshot's orders in their original order. The
// returned slice is a defensive copy; mutating it does not affect the Book.
func (b Book) Orders() []*Order {
	out := make([]*Order, len(b.orders))
	copy(out, b.orders)
	return out
}

func (b Book) Len() int { return len(b.orders) }

// Without returns a new Book excluding any order whose ID is in excluded.
// When no order is removed, the returned Book aliases the same underlying
// slice (safe, since Book never mutates it).
func (b Book) Without(excluded map[string]struct{}) Book {
	if len(excluded) == 0 {
		return b
	}
	removedAny := false
	for _, o := range b.orders {
		if _, drop := excluded[o.ID]; drop {
			removedAny = true
			break
		}
	}
	if !removedAny {
		return b
	}
	kept := make([]*Order, 0, len(b.orders))
	for _, o := range b.orders {
		if _, drop := excluded[o.ID]; !drop {
			kept = append(kept, o)
		}
	}
	return Book{orders: kept}
}
