package ngramcorpus

import (
	"math"

	"github.com/sourcegraph/ngramcorpus/succinct"
)

// Dictionary holds the set of distinct grams observed in a corpus,
// sorted in gram order and addressed by dense ngram-id 0..M-1. Because a
// Gram already packs into a single uint64, the dictionary is exactly an
// Elias-Fano sequence of gram codes plus the reverse lookup that
// sequence's binary search gives for free.
type Dictionary struct {
	codes *succinct.EliasFano
}

// NewDictionary builds a dictionary from a sorted, duplicate-free slice
// of grams: every gram in the dictionary must appear in at least one
// key, with no duplicates. Callers obtain such a slice from the
// builder's gram-discovery pass.
func NewDictionary(sorted []Gram) *Dictionary {
	universe := uint64(0)
	if len(sorted) > 0 {
		max := uint64(sorted[len(sorted)-1])
		if max == math.MaxUint64 {
			universe = max // EliasFano tolerates values == universe-ish edge case
		} else {
			universe = max + 1
		}
	}
	values := make([]uint64, len(sorted))
	for i, g := range sorted {
		values[i] = uint64(g)
	}
	return &Dictionary{codes: succinct.NewEliasFano(values, universe)}
}

// Len returns M, the number of distinct grams.
func (d *Dictionary) Len() int { return d.codes.Len() }

// Lookup returns the ngram-id for gram, or ok=false if gram never
// appears in the corpus, via binary search over the sorted dictionary.
func (d *Dictionary) Lookup(g Gram) (id int, ok bool) {
	idx, exact := d.codes.Search(uint64(g))
	return idx, exact
}

// Gram returns the gram stored at ngram-id id.
func (d *Dictionary) Gram(id int) Gram {
	return Gram(d.codes.Get(id))
}

// DumpNgrams returns every gram in id order, a diagnostic escape hatch
// useful when a consumer is debugging unexpectedly poor recall.
func (d *Dictionary) DumpNgrams() []Gram {
	out := make([]Gram, d.Len())
	for i := range out {
		out[i] = d.Gram(i)
	}
	return out
}

// SizeBytes reports the memory footprint of the underlying Elias-Fano
// sequence.
func (d *Dictionary) SizeBytes() int {
	return d.codes.SizeBytes()
}
