package ngramcorpus

// Result is one ranked hit: a key-id, its original key, and its score.
type Result struct {
	KeyID int
	Key   string
	Score float64
}

// NgramSearch ranks keys by warped n-gram (Jaccard) similarity to query.
// An empty query, or a query with no grams in common with any key,
// yields an empty result list, never an error.
func (c *Corpus) NgramSearch(query string, cfg NgramSearchConfig) []Result {
	queryGrams := c.extractor.Extract(query)
	if len(queryGrams) == 0 {
		return nil
	}
	queryNorm := TotalWeight(queryGrams)

	candidates := EnumerateCandidates(c.graph, c.dict, queryGrams)
	h := newTopKHeap(cfg.MaxResults())
	for _, cand := range candidates {
		keyNorm := c.KeyNorm(cand.KeyID)
		sim := ngramSimilarity(cand.IntersectionWeight(), keyNorm, queryNorm, cfg.Warp())
		if sim >= cfg.MinScore() {
			h.Offer(ScoredKey{KeyID: cand.KeyID, Score: sim})
		}
	}
	return c.materialize(h.Results())
}

// TfidfSearch ranks keys by normalized Okapi BM25 relevance to query.
func (c *Corpus) TfidfSearch(query string, cfg TfidfSearchConfig) []Result {
	queryGrams := c.extractor.Extract(query)
	if len(queryGrams) == 0 {
		return nil
	}

	numDocs := c.NumKeys()
	avgdl := c.avgKeyLength
	self := bm25SelfScore(queryGrams, c.dict, c.graph, numDocs, avgdl, cfg)

	candidates := EnumerateCandidates(c.graph, c.dict, queryGrams)
	h := newTopKHeap(cfg.MaxResults())
	for _, cand := range candidates {
		keyLength := c.KeyNorm(cand.KeyID)
		raw := bm25RawScore(cand, c.graph, numDocs, avgdl, keyLength, cfg)
		normalized := normalizedBM25(raw, self)
		if normalized >= cfg.MinScore() {
			h.Offer(ScoredKey{KeyID: cand.KeyID, Score: normalized})
		}
	}
	return c.materialize(h.Results())
}

// CombinedSearch ranks keys by warped n-gram similarity scaling
// normalized BM25 relevance ("warped TF-IDF").
func (c *Corpus) CombinedSearch(query string, cfg TfidfSearchConfig) []Result {
	queryGrams := c.extractor.Extract(query)
	if len(queryGrams) == 0 {
		return nil
	}
	queryNorm := TotalWeight(queryGrams)

	numDocs := c.NumKeys()
	avgdl := c.avgKeyLength
	self := bm25SelfScore(queryGrams, c.dict, c.graph, numDocs, avgdl, cfg)

	candidates := EnumerateCandidates(c.graph, c.dict, queryGrams)
	h := newTopKHeap(cfg.MaxResults())
	for _, cand := range candidates {
		keyNorm := c.KeyNorm(cand.KeyID)
		raw := bm25RawScore(cand, c.graph, numDocs, avgdl, keyNorm, cfg)
		normalized := normalizedBM25(raw, self)
		score := combinedScore(cand.IntersectionWeight(), keyNorm, queryNorm, cfg.Warp(), normalized)
		if score >= cfg.MinScore() {
			h.Offer(ScoredKey{KeyID: cand.KeyID, Score: score})
		}
	}
	return c.materialize(h.Results())
}

func (c *Corpus) materialize(scored []ScoredKey) []Result {
	if len(scored) == 0 {
		return nil
	}
	out := make([]Result, len(scored))
	for i, s := range scored {
		out[i] = Result{KeyID: s.KeyID, Key: c.keys.At(s.KeyID), Score: s.Score}
	}
	return out
}
