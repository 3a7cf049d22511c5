package search

import (
	"container/heap"

	"github.com/mExOms/planroute/internal/rank"
)

type pqItem struct {
	key   rank.PathOrderKey
	state *State
}

type heapSlice struct {
	items    []pqItem
	strategy rank.OrderingStrategy
}

func (h heapSlice) Len() int { return len(h.items) }
func (h heapSlice) Less(i, j int) bool {
	return h.strategy.Less(h.items[i].key, h.items[j].key)
}
func (h heapSlice) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *heapSlice) Push(x interface{}) {
	h.items = append(h.items, x.(pqItem))
}

func (h *heapSlice) Pop() interface{} {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}

// PriorityQueue is the frontier of the best-first search, ordered by
// rank.PathOrderKey via the configured OrderingStrategy. Insertion order is
// assigned by the caller (the engine's monotonic counter) before Push, so
// ties break deterministically regardless of heap internals.
type PriorityQueue struct {
	h *heapSlice
}

func NewPriorityQueue(strategy rank.OrderingStrategy) *PriorityQueue {
	if strategy == nil {
		strategy = rank.DefaultStrategy{}
	}
	h := &heapSlice{strategy: strategy}
	heap.Init(h)
	return &PriorityQueue{h: h}
}

func (q *PriorityQueue) Push(key rank.PathOrderKey, state *State) {
	heap.Push(q.h, pqItem{key: key, state: state})
}

func (q *PriorityQueue) Pop() (*State, bool) {
	if q.h.Len() == 0 {
		return nil, false
	}
	item := heap.Pop(q.h).(pqItem)
	return item.state, true
}

// Peek returns the best (not-yet-popped) state without removing it.
func (q *PriorityQueue) Peek() (*State, bool) {
	if q.h.Len() == 0 {
		return nil, false
	}
	return q.h.items[0].state, true
}

func (q *PriorityQueue) Len() int { return q.h.Len() }
