package ngramcorpus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTopKHeapOrdersDescendingByScore(t *testing.T) {
	h := newTopKHeap(10)
	h.Offer(ScoredKey{KeyID: 1, Score: 0.5})
	h.Offer(ScoredKey{KeyID: 2, Score: 0.9})
	h.Offer(ScoredKey{KeyID: 3, Score: 0.1})

	got := h.Results()
	require.Equal(t, []ScoredKey{
		{KeyID: 2, Score: 0.9},
		{KeyID: 1, Score: 0.5},
		{KeyID: 3, Score: 0.1},
	}, got)
}

func TestTopKHeapEvictsMinimumOnOverflow(t *testing.T) {
	h := newTopKHeap(2)
	h.Offer(ScoredKey{KeyID: 1, Score: 0.3})
	h.Offer(ScoredKey{KeyID: 2, Score: 0.9})
	h.Offer(ScoredKey{KeyID: 3, Score: 0.1}) // dropped, below current min
	h.Offer(ScoredKey{KeyID: 4, Score: 0.5}) // evicts key 1

	got := h.Results()
	require.Equal(t, []ScoredKey{
		{KeyID: 2, Score: 0.9},
		{KeyID: 4, Score: 0.5},
	}, got)
}

func TestTopKHeapTieBreaksAscendingKeyID(t *testing.T) {
	h := newTopKHeap(10)
	h.Offer(ScoredKey{KeyID: 5, Score: 0.7})
	h.Offer(ScoredKey{KeyID: 2, Score: 0.7})
	h.Offer(ScoredKey{KeyID: 9, Score: 0.7})

	got := h.Results()
	require.Equal(t, []ScoredKey{
		{KeyID: 2, Score: 0.7},
		{KeyID: 5, Score: 0.7},
		{KeyID: 9, Score: 0.7},
	}, got)
}

func TestTopKHeapZeroCapacity(t *testing.T) {
	h := newTopKHeap(0)
	h.Offer(ScoredKey{KeyID: 1, Score: 1.0})
	require.Empty(t, h.Results())
}
