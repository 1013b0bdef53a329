package ngramcorpus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testExtractor() Extractor {
	return Extractor{Arity: 2, Kind: ByteElement, Normalizer: LowercaseNormalizer}
}

func TestBuildCorpusGraphInvariants(t *testing.T) {
	keys := SliceKeys{"pie", "animal", "tomato", "seven", "carbon"}
	corpus, err := BuildCorpus(keys, testExtractor())
	require.NoError(t, err)

	graph := corpus.graph
	require.Equal(t, keys.Len(), graph.NumKeys())

	var sumForwardWeight, sumReverseWeight uint64

	for k := 0; k < graph.NumKeys(); k++ {
		edges := graph.GramsOf(k)
		for i, e := range edges {
			require.GreaterOrEqual(t, e.Weight, uint32(1), "P5 weight positivity")
			if i > 0 {
				require.Greater(t, e.NgramID, edges[i-1].NgramID, "P3 row ordering (forward)")
			}
			sumForwardWeight += uint64(e.Weight)

			// P1 round-trip adjacency: k must appear in keys_of(gram)
			// with the identical weight.
			containing := graph.KeysOf(e.NgramID)
			found := false
			for _, kid := range containing {
				if kid == k {
					found = true
				}
			}
			require.True(t, found, "P1: key missing from reverse adjacency")
			w, ok := graph.WeightAt(k, e.NgramID)
			require.True(t, ok)
			require.Equal(t, e.Weight, w, "P1: weight mismatch between directions")
		}
	}

	for g := 0; g < graph.NumNgrams(); g++ {
		keysOf := graph.KeysOf(g)
		for i, kid := range keysOf {
			if i > 0 {
				require.Greater(t, kid, keysOf[i-1], "P3 row ordering (reverse)")
			}
			w, ok := graph.WeightAt(kid, g)
			require.True(t, ok)
			sumReverseWeight += uint64(w)
		}
	}

	require.Equal(t, sumForwardWeight, sumReverseWeight, "forward and reverse weight sums agree")
}

func TestBuildCorpusDictionaryMinimality(t *testing.T) {
	keys := SliceKeys{"pie", "animal", "tomato"}
	corpus, err := BuildCorpus(keys, testExtractor())
	require.NoError(t, err)

	seen := make(map[Gram]bool)
	for _, g := range corpus.DumpNgrams() {
		require.False(t, seen[g], "P4: dictionary must have no duplicates")
		seen[g] = true
	}

	// Every dictionary gram must appear in at least one key's row.
	present := make(map[Gram]bool)
	for k := 0; k < corpus.NumKeys(); k++ {
		for _, e := range corpus.graph.GramsOf(k) {
			present[corpus.dict.Gram(e.NgramID)] = true
		}
	}
	for g := range seen {
		require.True(t, present[g], "P4: dictionary gram must appear in at least one key")
	}
}

func TestBuildCorpusEmpty(t *testing.T) {
	corpus, err := BuildCorpus(SliceKeys{}, testExtractor())
	require.NoError(t, err)
	require.Equal(t, 0, corpus.NumKeys())
	require.Equal(t, 0, corpus.NumNgrams())
	require.Equal(t, 0, corpus.NumEdges())
}

func TestBuildCorpusAverageKeyLength(t *testing.T) {
	keys := SliceKeys{"aa", "aaaa"}
	corpus, err := BuildCorpus(keys, Extractor{Arity: 1, Kind: ByteElement})
	require.NoError(t, err)
	// "aa" -> 2 unigrams (a,a) total weight 2; "aaaa" -> total weight 4.
	require.InDelta(t, 3.0, corpus.AverageKeyLength(), 1e-9)
}
