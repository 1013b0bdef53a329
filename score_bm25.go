package ngramcorpus

import "math"

// idf is the Okapi BM25 inverse document frequency for a gram with
// document frequency df, over a corpus of numDocs keys.
func idf(df uint32, numDocs int) float64 {
	return math.Log((float64(numDocs)-float64(df)+0.5)/(float64(df)+0.5) + 1)
}

// bm25Term is one gram's contribution to a key's BM25 score: term
// frequency tf saturated by k1/b against the key's length relative to
// the corpus average.
func bm25Term(tf uint32, keyLength uint64, avgdl, k1, b, idfValue float64) float64 {
	if avgdl == 0 {
		return 0
	}
	denom := float64(tf) + k1*(1-b+b*float64(keyLength)/avgdl)
	if denom == 0 {
		return 0
	}
	return idfValue * (float64(tf) * (k1 + 1)) / denom
}

// bm25RawScore sums q_g * bm25(k,g) over a candidate's discovered edges.
func bm25RawScore(c Candidate, graph Graph, numDocs int, avgdl float64, keyLength uint64, cfg TfidfSearchConfig) float64 {
	var total float64
	for _, e := range c.Edges {
		df := graph.DegreeNgram(e.NgramID)
		total += float64(e.QueryWeight) * bm25Term(e.KeyWeight, keyLength, avgdl, cfg.K1(), cfg.B(), idf(df, numDocs))
	}
	return total
}

// bm25SelfScore computes the normalizing constant Σ_g q_g · bm25_self(g):
// the BM25 score a hypothetical document with exactly the query's own
// gram composition would get against itself. Out-of-vocabulary query
// grams are skipped, matching candidate enumeration.
func bm25SelfScore(queryGrams []GramCount, dict *Dictionary, graph Graph, numDocs int, avgdl float64, cfg TfidfSearchConfig) float64 {
	selfLength := TotalWeight(queryGrams)
	var total float64
	for _, qg := range queryGrams {
		ngramID, ok := dict.Lookup(qg.Gram)
		if !ok {
			continue
		}
		df := graph.DegreeNgram(ngramID)
		total += float64(qg.Count) * bm25Term(qg.Count, selfLength, avgdl, cfg.K1(), cfg.B(), idf(df, numDocs))
	}
	return total
}

// normalizedBM25 brings a raw BM25 score into [0,1] by dividing by the
// query's self-score, clamping the result.
func normalizedBM25(raw, self float64) float64 {
	if self <= 0 {
		return 0
	}
	v := raw / self
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
