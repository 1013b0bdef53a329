package ngramcorpus

// WeightedEdge pairs an ngram-id with the weight of the key-gram edge it
// belongs to.
type WeightedEdge struct {
	NgramID int
	Weight  uint32
}

// Graph is the weighted bipartite key<->ngram index: for each key, the
// grams it contains with multiplicities; for each gram, the keys
// containing it. Every concrete realization must satisfy the same
// ordering and transpose invariants: rows are strictly ascending by
// destination id, and grams_of/keys_of agree on every edge weight.
//
// Implementations are interchangeable behind this interface — a dense
// bit-packed CSR layout and a compressed-bitmap layout both qualify, at
// different points on the memory/CPU tradeoff.
type Graph interface {
	NumKeys() int
	NumNgrams() int
	NumEdges() int

	// DegreeKey returns the out-degree of key k: how many distinct grams
	// it contains.
	DegreeKey(k int) uint32
	// DegreeNgram returns the in-degree of gram g: how many distinct keys
	// contain it.
	DegreeNgram(g int) uint32

	// GramsOf returns key k's edges ordered ascending by ngram-id.
	GramsOf(k int) []WeightedEdge
	// KeysOf returns, ordered ascending by key-id, the keys containing
	// gram g.
	KeysOf(g int) []int

	// WeightAt returns the weight of the edge (k, g) if it exists.
	WeightAt(k, g int) (uint32, bool)

	// SizeBytes reports the memory footprint of the graph.
	SizeBytes() int
}
