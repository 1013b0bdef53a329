package ngramcorpus

import "container/heap"

// ScoredKey pairs a key-id with its similarity score, the unit of a
// search result.
type ScoredKey struct {
	KeyID int
	Score float64
}

// topKHeap is a bounded min-heap of size at most capacity, ordered by
// score ascending so the current minimum always sits at index 0 and can
// be evicted in O(log cap) when a better candidate arrives. Ties break
// by key-id descending so that, among equal scores, the smallest
// key-id is the hardest to evict — which is what makes the final
// sorted-descending output end up with ascending key-id on ties.
type topKHeap struct {
	items    []ScoredKey
	capacity int
}

func newTopKHeap(capacity int) *topKHeap {
	return &topKHeap{capacity: capacity}
}

func (h *topKHeap) Len() int { return len(h.items) }

func (h *topKHeap) Less(i, j int) bool {
	if h.items[i].Score != h.items[j].Score {
		return h.items[i].Score < h.items[j].Score
	}
	return h.items[i].KeyID > h.items[j].KeyID
}

func (h *topKHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *topKHeap) Push(x any) { h.items = append(h.items, x.(ScoredKey)) }

func (h *topKHeap) Pop() any {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}

// Offer admits a candidate if there is room, or if it beats the current
// minimum; otherwise it is dropped.
func (h *topKHeap) Offer(candidate ScoredKey) {
	if h.Len() < h.capacity {
		heap.Push(h, candidate)
		return
	}
	if h.capacity == 0 {
		return
	}
	min := h.items[0]
	if candidate.Score > min.Score || (candidate.Score == min.Score && candidate.KeyID < min.KeyID) {
		h.items[0] = candidate
		heap.Fix(h, 0)
	}
}

// Results drains the heap into a slice sorted descending by score, with
// ties broken by ascending key-id, and resets the heap to empty.
func (h *topKHeap) Results() []ScoredKey {
	n := h.Len()
	out := make([]ScoredKey, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = heap.Pop(h).(ScoredKey)
	}
	return out
}
