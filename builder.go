package ngramcorpus

import (
	"sort"

	"golang.org/x/exp/slices"

	"github.com/sourcegraph/ngramcorpus/succinct"
)

// buildRow is one key's deduplicated, gram-sorted edge list, computed
// once during gram discovery and reused during CSR assembly so that
// extraction never runs twice over the same key.
type buildRow struct {
	counts []GramCount
}

// BuildCorpus constructs a Corpus over keys sequentially: a single pass
// discovers every distinct gram and every key's row, a second pass
// assembles the forward CSR structure, and a transposition pass derives
// the reverse adjacency.
func BuildCorpus(keys Keys, extractor Extractor) (*Corpus, error) {
	k := keys.Len()
	if k == 0 {
		return emptyCorpus(keys, extractor), nil
	}

	rows, dict, totalWeight := discoverSequential(keys, extractor, k)

	graph, err := assembleGraph(rows, dict, k)
	if err != nil {
		return nil, newBuildError("forward CSR assembly", err)
	}

	return &Corpus{
		keys:         keys,
		dict:         dict,
		graph:        graph,
		avgKeyLength: float64(totalWeight) / float64(k),
		extractor:    extractor,
	}, nil
}

// BuildCorpusRoaring constructs a Corpus identical in search semantics
// to BuildCorpus, but backed by a RoaringGraph: forward adjacency is
// the same bit-packed CSR, while reverse posting lists are compressed
// roaring bitmaps instead of a bit-packed vector. Useful when the
// corpus's gram popularity distribution is skewed enough that
// compressed runs beat fixed-width packing.
func BuildCorpusRoaring(keys Keys, extractor Extractor) (*Corpus, error) {
	k := keys.Len()
	if k == 0 {
		return emptyCorpus(keys, extractor), nil
	}

	rows, dict, totalWeight := discoverSequential(keys, extractor, k)

	graph, err := NewRoaringGraph(rows, dict, k)
	if err != nil {
		return nil, newBuildError("forward CSR assembly", err)
	}

	return &Corpus{
		keys:         keys,
		dict:         dict,
		graph:        graph,
		avgKeyLength: float64(totalWeight) / float64(k),
		extractor:    extractor,
	}, nil
}

// discoverSequential runs the gram-discovery pass shared by every
// sequential builder variant: per-key extraction and gram-sorting, plus
// assembly of the sorted, duplicate-free dictionary gram list.
func discoverSequential(keys Keys, extractor Extractor, k int) ([]buildRow, *Dictionary, uint64) {
	rows := make([]buildRow, k)
	seen := make(map[Gram]struct{})
	var totalWeight uint64

	for id := 0; id < k; id++ {
		counts := extractor.Extract(keys.At(id))
		sort.Slice(counts, func(i, j int) bool { return counts[i].Gram < counts[j].Gram })
		rows[id] = buildRow{counts: counts}
		for _, c := range counts {
			seen[c.Gram] = struct{}{}
			totalWeight += uint64(c.Count)
		}
	}

	sortedGrams := make([]Gram, 0, len(seen))
	for g := range seen {
		sortedGrams = append(sortedGrams, g)
	}
	slices.Sort(sortedGrams)
	return rows, NewDictionary(sortedGrams), totalWeight
}

// assembleGraph builds the forward CSR rows (already gram-sorted by the
// caller) and derives the reverse adjacency by transposition: a
// per-gram degree histogram followed by a key-id-ascending-order
// scatter, since rows are visited in key-id order.
func assembleGraph(rows []buildRow, dict *Dictionary, numKeys int) (*SuccinctGraph, error) {
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

	ngramIDs := make([][]int, numKeys)
	ngramDegree := make([]int, numNgrams)

	for keyID, r := range rows {
		weightBuilder.StartRow()
		ids := make([]int, len(r.counts))
		base := int(forwardOffsetsRaw[keyID])
		for j, c := range r.counts {
			id, ok := dict.Lookup(c.Gram)
			if !ok {
				return nil, errGramMissing
			}
			forwardDest.Set(base+j, uint64(id))
			weightBuilder.AppendWeight(c.Count)
			ngramDegree[id]++
			ids[j] = id
		}
		ngramIDs[keyID] = ids
	}
	forwardWeights := weightBuilder.Build()

	reverseOffsetsRaw := make([]uint64, numNgrams+1)
	for g := 0; g < numNgrams; g++ {
		reverseOffsetsRaw[g+1] = reverseOffsetsRaw[g] + uint64(ngramDegree[g])
	}

	srcWidth := succinct.BitsForMax(uint64(maxInt(numKeys-1, 0)))
	reverseDest := succinct.NewBitPacked(edgeCount, srcWidth)

	cursor := make([]int, numNgrams)
	for g := 0; g < numNgrams; g++ {
		cursor[g] = int(reverseOffsetsRaw[g])
	}
	for keyID, ids := range ngramIDs {
		for _, id := range ids {
			pos := cursor[id]
			reverseDest.Set(pos, uint64(keyID))
			cursor[id]++
		}
	}

	return &SuccinctGraph{
		numKeys:        numKeys,
		numNgrams:      numNgrams,
		numEdges:       edgeCount,
		forwardOffsets: succinct.NewEliasFano(forwardOffsetsRaw, uint64(edgeCount)+1),
		forwardDest:    forwardDest,
		forwardWeights: forwardWeights,
		reverseOffsets: succinct.NewEliasFano(reverseOffsetsRaw, uint64(edgeCount)+1),
		reverseDest:    reverseDest,
	}, nil
}

func emptyCorpus(keys Keys, extractor Extractor) *Corpus {
	dict := NewDictionary(nil)
	graph := &SuccinctGraph{
		forwardOffsets: succinct.NewEliasFano([]uint64{0}, 1),
		forwardDest:    succinct.NewBitPacked(0, 0),
		forwardWeights: NewWeightStreamBuilder(0).Build(),
		reverseOffsets: succinct.NewEliasFano([]uint64{0}, 1),
		reverseDest:    succinct.NewBitPacked(0, 0),
	}
	return &Corpus{keys: keys, dict: dict, graph: graph, avgKeyLength: 0, extractor: extractor}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
