package rank

// Entry pairs a PathOrderKey with an opaque search-defined payload (the
// edge sequence or materialized plan it ranks).
type Entry struct {
	Key     PathOrderKey
	Payload interface{}
}

// ResultHeap holds up to Capacity entries ordered by Strategy, evicting the
// single worst entry when a strictly better candidate arrives at capacity.
// Entries are kept in a slice in ascending (best-first) order; Capacity is
// expected to be small (a Top-K result count), so a linear insert is
// simpler and just as fast as a binary heap at this size, and keeps
// iteration order trivially deterministic.
type ResultHeap struct {
	capacity int
	strategy OrderingStrategy
	items    []Entry
}

func NewResultHeap(capacity int, strategy OrderingStrategy) *ResultHeap {
	if strategy == nil {
		strategy = DefaultStrategy{}
	}
	return &ResultHeap{capacity: capacity, strategy: strategy}
}

// Offer inserts e in sorted position. When already at capacity, e is kept
// only if it compares strictly better than the current worst entry, which
// is then evicted. Returns true iff e was kept.
func (h *ResultHeap) Offer(e Entry) bool {
	insertAt := len(h.items)
	for i, existing := range h.items {
		if h.strategy.Less(e.Key, existing.Key) {
			insertAt = i
			break
		}
	}
	if len(h.items) < h.capacity {
		h.items = append(h.items, Entry{})
		copy(h.items[insertAt+1:], h.items[insertAt:len(h.items)-1])
		h.items[insertAt] = e
		return true
	}
	if insertAt >= h.capacity {
		return false
	}
	h.items = append(h.items, Entry{})
	copy(h.items[insertAt+1:], h.items[insertAt:len(h.items)-1])
	h.items[insertAt] = e
	h.items = h.items[:h.capacity]
	return true
}

// Worst returns the current worst-admitted entry and true, or the zero
// Entry and false when the heap is not yet full (there being no "worst"
// that bars entry).
func (h *ResultHeap) Worst() (Entry, bool) {
	if len(h.items) < h.capacity || len(h.items) == 0 {
		return Entry{}, false
	}
	return h.items[len(h.items)-1], true
}

// Len reports the number of entries currently held.
func (h *ResultHeap) Len() int { return len(h.items) }

// Full reports whether the heap holds Capacity entries.
func (h *ResultHeap) Full() bool { return len(h.items) >= h.capacity }

// Extract drains every entry in ascending (best-first) order.
func (h *ResultHeap) Extract() []Entry {
	out := make([]Entry, len(h.items))
	copy(out, h.items)
	return out
}
