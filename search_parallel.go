package ngramcorpus

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// numWorkers resolves a caller-supplied worker count, defaulting to
// hardware parallelism when non-positive.
func numWorkers(requested int) int {
	if requested > 0 {
		return requested
	}
	return runtime.GOMAXPROCS(0)
}

// parallelRank partitions candidates into contiguous shards, one per
// worker, each maintaining its own bounded top-k heap; heaps are then
// reduced pairwise into one. This is a single bulk-synchronous phase:
// the only blocking operation is waiting for every worker to finish its
// shard, matching the build's own phase-join discipline.
func parallelRank(ctx context.Context, candidates []Candidate, workers, maxResults int, score func(Candidate) (float64, bool)) ([]ScoredKey, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	workers = numWorkers(workers)
	if workers > len(candidates) {
		workers = len(candidates)
	}

	shardSize := (len(candidates) + workers - 1) / workers
	localHeaps := make([]*topKHeap, workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		start := w * shardSize
		end := start + shardSize
		if end > len(candidates) {
			end = len(candidates)
		}
		if start >= end {
			localHeaps[w] = newTopKHeap(maxResults)
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			h := newTopKHeap(maxResults)
			for _, cand := range candidates[start:end] {
				s, ok := score(cand)
				if ok {
					h.Offer(ScoredKey{KeyID: cand.KeyID, Score: s})
				}
			}
			localHeaps[w] = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for len(localHeaps) > 1 {
		var next []*topKHeap
		for i := 0; i+1 < len(localHeaps); i += 2 {
			for _, sk := range localHeaps[i+1].Results() {
				localHeaps[i].Offer(sk)
			}
			next = append(next, localHeaps[i])
		}
		if len(localHeaps)%2 == 1 {
			next = append(next, localHeaps[len(localHeaps)-1])
		}
		localHeaps = next
	}
	return localHeaps[0].Results(), nil
}

// NgramSearchParallel is the parallel variant of NgramSearch: candidate
// enumeration (posting-list merge) runs sequentially since it is
// typically far cheaper than scoring, and the per-candidate scoring
// phase is partitioned across workers. The caller chooses between this
// and NgramSearch; for small query sets, sequential search is expected
// to win.
func (c *Corpus) NgramSearchParallel(ctx context.Context, query string, cfg NgramSearchConfig, workers int) ([]Result, error) {
	queryGrams := c.extractor.Extract(query)
	if len(queryGrams) == 0 {
		return nil, nil
	}
	queryNorm := TotalWeight(queryGrams)
	candidates := EnumerateCandidates(c.graph, c.dict, queryGrams)

	scored, err := parallelRank(ctx, candidates, workers, cfg.MaxResults(), func(cand Candidate) (float64, bool) {
		keyNorm := c.KeyNorm(cand.KeyID)
		sim := ngramSimilarity(cand.IntersectionWeight(), keyNorm, queryNorm, cfg.Warp())
		return sim, sim >= cfg.MinScore()
	})
	if err != nil {
		return nil, err
	}
	return c.materialize(scored), nil
}

// TfidfSearchParallel is the parallel variant of TfidfSearch.
func (c *Corpus) TfidfSearchParallel(ctx context.Context, query string, cfg TfidfSearchConfig, workers int) ([]Result, error) {
	queryGrams := c.extractor.Extract(query)
	if len(queryGrams) == 0 {
		return nil, nil
	}
	numDocs := c.NumKeys()
	avgdl := c.avgKeyLength
	self := bm25SelfScore(queryGrams, c.dict, c.graph, numDocs, avgdl, cfg)
	candidates := EnumerateCandidates(c.graph, c.dict, queryGrams)

	scored, err := parallelRank(ctx, candidates, workers, cfg.MaxResults(), func(cand Candidate) (float64, bool) {
		keyLength := c.KeyNorm(cand.KeyID)
		raw := bm25RawScore(cand, c.graph, numDocs, avgdl, keyLength, cfg)
		normalized := normalizedBM25(raw, self)
		return normalized, normalized >= cfg.MinScore()
	})
	if err != nil {
		return nil, err
	}
	return c.materialize(scored), nil
}

// CombinedSearchParallel is the parallel variant of CombinedSearch.
func (c *Corpus) CombinedSearchParallel(ctx context.Context, query string, cfg TfidfSearchConfig, workers int) ([]Result, error) {
	queryGrams := c.extractor.Extract(query)
	if len(queryGrams) == 0 {
		return nil, nil
	}
	queryNorm := TotalWeight(queryGrams)
	numDocs := c.NumKeys()
	avgdl := c.avgKeyLength
	self := bm25SelfScore(queryGrams, c.dict, c.graph, numDocs, avgdl, cfg)
	candidates := EnumerateCandidates(c.graph, c.dict, queryGrams)

	scored, err := parallelRank(ctx, candidates, workers, cfg.MaxResults(), func(cand Candidate) (float64, bool) {
		keyNorm := c.KeyNorm(cand.KeyID)
		raw := bm25RawScore(cand, c.graph, numDocs, avgdl, keyNorm, cfg)
		normalized := normalizedBM25(raw, self)
		score := combinedScore(cand.IntersectionWeight(), keyNorm, queryNorm, cfg.Warp(), normalized)
		return score, score >= cfg.MinScore()
	})
	if err != nil {
		return nil, err
	}
	return c.materialize(scored), nil
}
