package ngramcorpus

import (
	"github.com/RoaringBitmap/roaring"
	"golang.org/x/exp/slices"

	"github.com/sourcegraph/ngramcorpus/succinct"
)

// RoaringGraph is the compressed-bitmap alternative to SuccinctGraph:
// forward adjacency is identical (bit-packed destinations plus a
// varint weight stream), but each gram's reverse posting list is a
// github.com/RoaringBitmap/roaring bitmap of key-ids rather than a
// slice packed into a shared bit-packed vector. This trades CPU (a
// bitmap iterator is slower than a flat array walk) for memory on
// corpora where reverse posting lists are sparse or highly compressible
// runs, while satisfying exactly the same Graph contract.
type RoaringGraph struct {
	numKeys, numNgrams, numEdges int

	forwardOffsets *succinct.EliasFano
	forwardDest    *succinct.BitPacked
	forwardWeights *WeightStream

	reversePostings []*roaring.Bitmap // indexed by ngram-id
}

// NewRoaringGraph builds a RoaringGraph from the same gram-sorted rows
// BuildCorpus works from, producing bit-identical forward adjacency to
// SuccinctGraph and a roaring-bitmap reverse index.
func NewRoaringGraph(rows []buildRow, dict *Dictionary, numKeys int) (*RoaringGraph, error) {
	numNgrams := dict.Len()

	edgeCount := 0
	forwardOffsetsRaw := make([]uint64, numKeys+1)
	for i, r := range rows {
		forwardOffsetsRaw[i+1] = forwardOffsetsRaw[i] + uint64(len(r.counts))
		edgeCount += len(r.counts)
	}

	destWidth := succinct.BitsForMax(uint64(maxInt(numNgrams-1, 0)))
	forwardDest := succinct.NewBitPacked(edgeCount, destWidth)
	weightBuilder := NewWeightStreamBuilder(numKeys)

	postings := make([]*roaring.Bitmap, numNgrams)
	for i := range postings {
		postings[i] = roaring.New()
	}

	for keyID, r := range rows {
		weightBuilder.StartRow()
		base := int(forwardOffsetsRaw[keyID])
		for j, c := range r.counts {
			id, ok := dict.Lookup(c.Gram)
			if !ok {
				return nil, errGramMissing
			}
			forwardDest.Set(base+j, uint64(id))
			weightBuilder.AppendWeight(c.Count)
			postings[id].Add(uint32(keyID))
		}
	}

	for _, p := range postings {
		p.RunOptimize()
	}

	return &RoaringGraph{
		numKeys:         numKeys,
		numNgrams:       numNgrams,
		numEdges:        edgeCount,
		forwardOffsets:  succinct.NewEliasFano(forwardOffsetsRaw, uint64(edgeCount)+1),
		forwardDest:     forwardDest,
		forwardWeights:  weightBuilder.Build(),
		reversePostings: postings,
	}, nil
}

func (g *RoaringGraph) NumKeys() int   { return g.numKeys }
func (g *RoaringGraph) NumNgrams() int { return g.numNgrams }
func (g *RoaringGraph) NumEdges() int  { return g.numEdges }

func (g *RoaringGraph) DegreeKey(k int) uint32 {
	return uint32(g.forwardOffsets.Get(k+1) - g.forwardOffsets.Get(k))
}

func (g *RoaringGraph) DegreeNgram(ngramID int) uint32 {
	return uint32(g.reversePostings[ngramID].GetCardinality())
}

func (g *RoaringGraph) GramsOf(k int) []WeightedEdge {
	start := g.forwardOffsets.Get(k)
	end := g.forwardOffsets.Get(k + 1)
	degree := uint32(end - start)
	if degree == 0 {
		return nil
	}
	weights := g.forwardWeights.ReadRow(k, degree)
	out := make([]WeightedEdge, degree)
	for i := uint64(0); i < uint64(degree); i++ {
		out[i] = WeightedEdge{
			NgramID: int(g.forwardDest.Get(int(start + i))),
			Weight:  weights[i],
		}
	}
	return out
}

// KeysOf returns gram ngramID's posting list in ascending key-id order,
// which roaring.Bitmap.ToArray already guarantees.
func (g *RoaringGraph) KeysOf(ngramID int) []int {
	arr := g.reversePostings[ngramID].ToArray()
	if len(arr) == 0 {
		return nil
	}
	out := make([]int, len(arr))
	for i, v := range arr {
		out[i] = int(v)
	}
	return out
}

func (g *RoaringGraph) WeightAt(k, ngramID int) (uint32, bool) {
	edges := g.GramsOf(k)
	i, found := slices.BinarySearchFunc(edges, ngramID, func(e WeightedEdge, target int) int {
		return e.NgramID - target
	})
	if !found {
		return 0, false
	}
	return edges[i].Weight, true
}

func (g *RoaringGraph) SizeBytes() int {
	total := g.forwardOffsets.SizeBytes() + g.forwardDest.SizeBytes() + g.forwardWeights.SizeBytes()
	for _, p := range g.reversePostings {
		total += int(p.GetSizeInBytes())
	}
	return total + 32
}
