package ngramcorpus

import (
	"golang.org/x/exp/slices"

	"github.com/sourcegraph/ngramcorpus/succinct"
)

// SuccinctGraph is the dense, bit-packed realization of Graph: forward
// and reverse adjacency each stored as an Elias-Fano offsets sequence
// plus a bit-packed destinations vector, with a single varint weight
// stream shared by both directions (reverse weight lookups re-derive
// the weight from the forward row, since the forward stream is the one
// source of truth for edge weights).
type SuccinctGraph struct {
	numKeys, numNgrams, numEdges int

	forwardOffsets *succinct.EliasFano
	forwardDest    *succinct.BitPacked
	forwardWeights *WeightStream

	reverseOffsets *succinct.EliasFano
	reverseDest    *succinct.BitPacked
}

func (g *SuccinctGraph) NumKeys() int   { return g.numKeys }
func (g *SuccinctGraph) NumNgrams() int { return g.numNgrams }
func (g *SuccinctGraph) NumEdges() int  { return g.numEdges }

func (g *SuccinctGraph) DegreeKey(k int) uint32 {
	return uint32(g.forwardOffsets.Get(k+1) - g.forwardOffsets.Get(k))
}

func (g *SuccinctGraph) DegreeNgram(ngramID int) uint32 {
	return uint32(g.reverseOffsets.Get(ngramID+1) - g.reverseOffsets.Get(ngramID))
}

func (g *SuccinctGraph) GramsOf(k int) []WeightedEdge {
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

func (g *SuccinctGraph) KeysOf(ngramID int) []int {
	start := g.reverseOffsets.Get(ngramID)
	end := g.reverseOffsets.Get(ngramID + 1)
	degree := int(end - start)
	if degree == 0 {
		return nil
	}
	out := make([]int, degree)
	for i := 0; i < degree; i++ {
		out[i] = int(g.reverseDest.Get(int(start) + i))
	}
	return out
}

func (g *SuccinctGraph) WeightAt(k, ngramID int) (uint32, bool) {
	edges := g.GramsOf(k)
	i, found := slices.BinarySearchFunc(edges, ngramID, func(e WeightedEdge, target int) int {
		return e.NgramID - target
	})
	if !found {
		return 0, false
	}
	return edges[i].Weight, true
}

func (g *SuccinctGraph) SizeBytes() int {
	total := g.forwardOffsets.SizeBytes() + g.forwardDest.SizeBytes() + g.forwardWeights.SizeBytes()
	total += g.reverseOffsets.SizeBytes() + g.reverseDest.SizeBytes()
	return total + 32
}
