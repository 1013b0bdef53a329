package ngramcorpus

import "github.com/dustin/go-humanize"

// Corpus is an immutable, built index over a Keys collection: the
// dictionary of distinct grams, the bipartite key<->gram graph, and the
// average key length cached for BM25 scoring. Every field is fixed at
// build time; searches are pure readers and may run concurrently over
// the same Corpus without locking.
type Corpus struct {
	keys         Keys
	dict         *Dictionary
	graph        Graph
	avgKeyLength float64
	extractor    Extractor
}

// NumKeys returns K, the number of keys in the corpus.
func (c *Corpus) NumKeys() int { return c.keys.Len() }

// NumNgrams returns M, the number of distinct grams in the dictionary.
func (c *Corpus) NumNgrams() int { return c.dict.Len() }

// NumEdges returns E, the number of distinct (key, gram) edges.
func (c *Corpus) NumEdges() int { return c.graph.NumEdges() }

// AverageKeyLength returns the mean, over all keys, of the total gram
// count of that key's row.
func (c *Corpus) AverageKeyLength() float64 { return c.avgKeyLength }

// Key returns the original string for a key-id.
func (c *Corpus) Key(id int) string { return c.keys.At(id) }

// Stats is a snapshot of a corpus's structural and memory profile,
// useful for logging and capacity planning.
type Stats struct {
	NumKeys        int
	NumNgrams      int
	NumEdges       int
	AvgKeyLength   float64
	GraphBytes     int
	DictionaryBytes int
}

// HumanSize renders the combined graph and dictionary footprint in a
// human-readable form, e.g. "4.2 MB".
func (s Stats) HumanSize() string {
	return humanize.Bytes(uint64(s.GraphBytes + s.DictionaryBytes))
}

// Stats reports the corpus's structural counts and in-memory footprint.
func (c *Corpus) Stats() Stats {
	return Stats{
		NumKeys:         c.NumKeys(),
		NumNgrams:       c.NumNgrams(),
		NumEdges:        c.NumEdges(),
		AvgKeyLength:    c.avgKeyLength,
		GraphBytes:      c.graph.SizeBytes(),
		DictionaryBytes: c.dict.SizeBytes(),
	}
}

// DumpNgrams returns every gram in the dictionary, in ngram-id order. A
// debugging aid for diagnosing unexpectedly poor recall.
func (c *Corpus) DumpNgrams() []Gram {
	return c.dict.DumpNgrams()
}

// KeyNorm returns Σ_g w(k,g), the total gram count of key k's row: its
// n-gram length.
func (c *Corpus) KeyNorm(keyID int) uint64 {
	var total uint64
	for _, e := range c.graph.GramsOf(keyID) {
		total += uint64(e.Weight)
	}
	return total
}
