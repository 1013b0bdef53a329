package ngramcorpus

import "container/heap"

// CandidateEdge is one query gram's overlap with a candidate key: the
// query's multiplicity for that gram and the key's stored weight for
// the same gram.
type CandidateEdge struct {
	NgramID     int
	QueryWeight uint32
	KeyWeight   uint32
}

// Candidate is a key reached by at least one query gram, together with
// every edge the merge discovered for it.
type Candidate struct {
	KeyID int
	Edges []CandidateEdge
}

// postingList is one query gram's posting list cursor: the ordered
// key-ids containing that gram, walked in lockstep with the other
// lists during the k-way merge.
type postingList struct {
	ngramID     int
	queryWeight uint32
	keys        []int
	pos         int
}

// mergeEntry is a heap element: the next unconsumed key-id from one
// posting list.
type mergeEntry struct {
	keyID   int
	listIdx int
}

type mergeHeap []mergeEntry

func (h mergeHeap) Len() int            { return len(h) }
func (h mergeHeap) Less(i, j int) bool  { return h[i].keyID < h[j].keyID }
func (h mergeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *mergeHeap) Push(x any)         { *h = append(*h, x.(mergeEntry)) }
func (h *mergeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// EnumerateCandidates performs the common candidate-enumeration phase
// shared by every search kernel: a min-heap k-way merge of the posting
// lists of every query gram present in the dictionary, grouping
// contiguous runs of the same key-id into one Candidate. Candidates are
// returned in ascending key-id order.
func EnumerateCandidates(graph Graph, dict *Dictionary, queryGrams []GramCount) []Candidate {
	lists := make([]*postingList, 0, len(queryGrams))
	for _, qg := range queryGrams {
		ngramID, ok := dict.Lookup(qg.Gram)
		if !ok {
			continue // out-of-vocabulary gram contributes nothing
		}
		keys := graph.KeysOf(ngramID)
		if len(keys) == 0 {
			continue
		}
		lists = append(lists, &postingList{ngramID: ngramID, queryWeight: qg.Count, keys: keys})
	}
	if len(lists) == 0 {
		return nil
	}

	h := make(mergeHeap, 0, len(lists))
	for i, l := range lists {
		h = append(h, mergeEntry{keyID: l.keys[0], listIdx: i})
	}
	heap.Init(&h)

	var out []Candidate
	for h.Len() > 0 {
		top := h[0]
		keyID := top.keyID

		var edges []CandidateEdge
		for h.Len() > 0 && h[0].keyID == keyID {
			entry := heap.Pop(&h).(mergeEntry)
			l := lists[entry.listIdx]
			w, ok := graph.WeightAt(keyID, l.ngramID)
			if ok {
				edges = append(edges, CandidateEdge{NgramID: l.ngramID, QueryWeight: l.queryWeight, KeyWeight: w})
			}
			l.pos++
			if l.pos < len(l.keys) {
				heap.Push(&h, mergeEntry{keyID: l.keys[l.pos], listIdx: entry.listIdx})
			}
		}
		out = append(out, Candidate{KeyID: keyID, Edges: edges})
	}
	return out
}

// IntersectionWeight computes Σ_g min(w(k,g), q_g) over a candidate's
// discovered edges, the Ruzicka-style multiset intersection used by the
// warped n-gram similarity kernel.
func (c Candidate) IntersectionWeight() uint64 {
	var total uint64
	for _, e := range c.Edges {
		total += uint64(minUint32(e.QueryWeight, e.KeyWeight))
	}
	return total
}

func minUint32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}
