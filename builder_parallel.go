package ngramcorpus

import (
	"context"
	"encoding/binary"
	"sort"

	"github.com/bits-and-blooms/bloom/v3"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/sourcegraph/ngramcorpus/succinct"
)

// BuildCorpusParallel builds a Corpus with the same bit-for-bit output
// as BuildCorpus, but tiles the key space across workers: each worker
// extracts and sorts its shard's rows into a thread-local distinct-gram
// set (bloom-filter-accelerated), the sets are tree-reduced
// into one sorted dictionary, and each worker packs its shard's forward
// edges into its own private bit-packed sub-vector (so no two goroutines
// ever read-modify-write the same 64-bit word); those sub-vectors are
// copied into the final forward CSR, and the reverse adjacency is
// scattered, serially afterward, per the two valid transposition
// strategies.
//
// A nil logger is treated as zap.NewNop(). Context cancellation observed
// when a worker starts aborts the build with a BuildError and no partial
// corpus published. Worker goroutines do not recover panics: a panic in a
// worker is not converted into a BuildError and is not returned to the
// caller.
func BuildCorpusParallel(ctx context.Context, keys ParallelKeys, extractor Extractor, workers int, logger *zap.Logger) (*Corpus, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	k := keys.Len()
	if k == 0 {
		return emptyCorpus(keys, extractor), nil
	}
	workers = numWorkers(workers)
	if workers > k {
		workers = k
	}

	logger.Debug("parallel build: gram discovery", zap.Int("keys", k), zap.Int("workers", workers))

	rows := make([]buildRow, k)
	shardSize := (k + workers - 1) / workers
	sem := semaphore.NewWeighted(int64(workers))

	g, gctx := errgroup.WithContext(ctx)
	localDicts := make([][]Gram, workers)
	for w := 0; w < workers; w++ {
		w := w
		start := w * shardSize
		end := start + shardSize
		if end > k {
			end = k
		}
		if start >= end {
			continue
		}
		if err := sem.Acquire(gctx, 1); err != nil {
			return nil, newBuildError("gram discovery", err)
		}
		g.Go(func() error {
			defer sem.Release(1)
			return discoverShard(gctx, keys, extractor, start, end, rows, &localDicts[w])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, newBuildError("gram discovery", err)
	}

	logger.Debug("parallel build: dictionary tree-reduce")
	sortedGrams := treeReduceDictionaries(localDicts)
	dict := NewDictionary(sortedGrams)

	logger.Debug("parallel build: forward CSR assembly", zap.Int("ngrams", dict.Len()))
	graph, totalWeight, err := assembleGraphParallel(ctx, rows, dict, k, workers)
	if err != nil {
		return nil, newBuildError("forward CSR assembly", err)
	}

	logger.Debug("parallel build: done", zap.Int("edges", graph.NumEdges()))

	return &Corpus{
		keys:         keys,
		dict:         dict,
		graph:        graph,
		avgKeyLength: float64(totalWeight) / float64(k),
		extractor:    extractor,
	}, nil
}

// discoverShard extracts and gram-sorts every key in [start,end) into
// rows, and records the shard's distinct grams (sorted) into *outDict.
// A bloom filter short-circuits the first sighting of a gram in this
// shard: when the filter reports the gram unseen, the map probe is
// skipped; only a filter hit pays for the exact map check.
func discoverShard(ctx context.Context, keys ParallelKeys, extractor Extractor, start, end int, rows []buildRow, outDict *[]Gram) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	filter := bloom.NewWithEstimates(uint(end-start)*8+16, 0.01)
	seen := make(map[Gram]struct{})
	var distinct []Gram

	keys.ForEachRange(start, end, func(id int, key string) {
		counts := extractor.Extract(key)
		sort.Slice(counts, func(i, j int) bool { return counts[i].Gram < counts[j].Gram })
		rows[id] = buildRow{counts: counts}
		for _, c := range counts {
			b := gramBloomKey(c.Gram)
			if filter.Test(b) {
				if _, ok := seen[c.Gram]; ok {
					continue
				}
			}
			filter.Add(b)
			seen[c.Gram] = struct{}{}
			distinct = append(distinct, c.Gram)
		}
	})

	slices.Sort(distinct)
	*outDict = dedupeSortedGrams(distinct)
	return nil
}

func gramBloomKey(g Gram) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(g))
	return b[:]
}

func dedupeSortedGrams(sorted []Gram) []Gram {
	if len(sorted) == 0 {
		return sorted
	}
	out := sorted[:1]
	for _, g := range sorted[1:] {
		if g != out[len(out)-1] {
			out = append(out, g)
		}
	}
	return out
}

// treeReduceDictionaries merges per-shard sorted, duplicate-free gram
// slices pairwise until one sorted, duplicate-free slice remains.
func treeReduceDictionaries(shards [][]Gram) []Gram {
	live := make([][]Gram, 0, len(shards))
	for _, s := range shards {
		if len(s) > 0 {
			live = append(live, s)
		}
	}
	if len(live) == 0 {
		return nil
	}
	for len(live) > 1 {
		var next [][]Gram
		for i := 0; i+1 < len(live); i += 2 {
			next = append(next, mergeSortedGrams(live[i], live[i+1]))
		}
		if len(live)%2 == 1 {
			next = append(next, live[len(live)-1])
		}
		live = next
	}
	return live[0]
}

func mergeSortedGrams(a, b []Gram) []Gram {
	out := make([]Gram, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case b[j] < a[i]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

// assembleGraphParallel assembles the forward CSR in parallel. Each
// worker packs its shard's destination ngram-ids into its own private
// succinct.BitPacked sub-vector sized to just that shard — no worker
// ever touches a 64-bit word another worker might also be writing to —
// and writes its shard's weight bytes directly into disjoint byte
// ranges of the shared weight buffer, which is safe since those writes
// are byte-granular and the ranges don't overlap. Once every worker
// finishes, the sub-vectors are copied into the final forward CSR by a
// single goroutine. The reverse adjacency is then transposed serially,
// per the "serialize the scatter" strategy, after a concurrent,
// atomic-counter reverse-degree histogram.
func assembleGraphParallel(ctx context.Context, rows []buildRow, dict *Dictionary, numKeys, workers int) (*SuccinctGraph, uint64, error) {
	numNgrams := dict.Len()

	degrees := make([]int, numKeys)
	rowByteLen := make([]int, numKeys)
	edgeCount := 0
	var totalWeight uint64
	for i, r := range rows {
		degrees[i] = len(r.counts)
		edgeCount += len(r.counts)
		for _, c := range r.counts {
			rowByteLen[i] += uvarintSize(uint64(c.Count))
			totalWeight += uint64(c.Count)
		}
	}

	forwardOffsetsRaw := make([]uint64, numKeys+1)
	rowByteStart := make([]uint64, numKeys+1)
	for i := 0; i < numKeys; i++ {
		forwardOffsetsRaw[i+1] = forwardOffsetsRaw[i] + uint64(degrees[i])
		rowByteStart[i+1] = rowByteStart[i] + uint64(rowByteLen[i])
	}

	destWidth := succinct.BitsForMax(uint64(maxInt(numNgrams-1, 0)))
	weightBytes := make([]byte, rowByteStart[numKeys])

	ngramDegree := make([]*atomic.Int64, numNgrams)
	for g := range ngramDegree {
		ngramDegree[g] = atomic.NewInt64(0)
	}

	// Each worker writes its shard's destination ngram-ids into a
	// private sub-vector addressed from 0, never into the shared
	// forwardDest directly: succinct.BitPacked.Set does a non-atomic
	// read-modify-write of a whole 64-bit word, and two shards' edges
	// routinely land in the same word when the shard boundary isn't
	// word-aligned (destWidth rarely divides 64 evenly).
	localForward := make([]*succinct.BitPacked, workers)
	shardEdgeStart := make([]int, workers)

	shardSize := (numKeys + workers - 1) / workers
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		start := w * shardSize
		end := start + shardSize
		if end > numKeys {
			end = numKeys
		}
		if start >= end {
			continue
		}
		shardEdgeStart[w] = int(forwardOffsetsRaw[start])
		local := succinct.NewBitPacked(int(forwardOffsetsRaw[end])-shardEdgeStart[w], destWidth)
		localForward[w] = local
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for keyID := start; keyID < end; keyID++ {
				r := rows[keyID]
				destBase := int(forwardOffsetsRaw[keyID]) - shardEdgeStart[w]
				bytePos := rowByteStart[keyID]
				for j, c := range r.counts {
					id, ok := dict.Lookup(c.Gram)
					if !ok {
						return errGramMissing
					}
					local.Set(destBase+j, uint64(id))
					n := binary.PutUvarint(weightBytes[bytePos:], uint64(c.Count))
					bytePos += uint64(n)
					ngramDegree[id].Inc()
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	forwardDest := succinct.NewBitPacked(edgeCount, destWidth)
	for w, local := range localForward {
		if local == nil {
			continue
		}
		base := shardEdgeStart[w]
		for i := 0; i < local.Len(); i++ {
			forwardDest.Set(base+i, local.Get(i))
		}
	}

	forwardWeights := &WeightStream{
		bytes:   weightBytes,
		offsets: succinct.NewEliasFano(rowByteStart, rowByteStart[numKeys]+1),
	}

	reverseOffsetsRaw := make([]uint64, numNgrams+1)
	for gid := 0; gid < numNgrams; gid++ {
		reverseOffsetsRaw[gid+1] = reverseOffsetsRaw[gid] + uint64(ngramDegree[gid].Load())
	}

	srcWidth := succinct.BitsForMax(uint64(maxInt(numKeys-1, 0)))
	reverseDest := succinct.NewBitPacked(edgeCount, srcWidth)

	cursor := make([]int, numNgrams)
	for gid := 0; gid < numNgrams; gid++ {
		cursor[gid] = int(reverseOffsetsRaw[gid])
	}
	for keyID, r := range rows {
		for _, c := range r.counts {
			id, _ := dict.Lookup(c.Gram)
			reverseDest.Set(cursor[id], uint64(keyID))
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
	}, totalWeight, nil
}

func uvarintSize(x uint64) int {
	n := 1
	for x >= 0x80 {
		x >>= 7
		n++
	}
	return n
}
