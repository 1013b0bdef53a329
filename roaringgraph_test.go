package ngramcorpus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildCorpusRoaringMatchesSuccinctSearch(t *testing.T) {
	keys := SliceKeys{"pie", "animal", "tomato", "seven", "carbon"}
	extractor := Extractor{Arity: 2, Kind: ByteElement, Normalizer: LowercaseNormalizer}

	dense, err := BuildCorpus(keys, extractor)
	require.NoError(t, err)
	compressed, err := BuildCorpusRoaring(keys, extractor)
	require.NoError(t, err)

	cfg, err := DefaultNgramSearchConfig(5)
	require.NoError(t, err)
	cfg, err = cfg.WithMinScore(0.1)
	require.NoError(t, err)

	denseResults := dense.NgramSearch("tomacco", cfg)
	compressedResults := compressed.NgramSearch("tomacco", cfg)
	require.Equal(t, denseResults, compressedResults)
}

func TestRoaringGraphReverseAdjacencyAgreesWithForward(t *testing.T) {
	keys := SliceKeys{"pie", "animal", "tomato"}
	extractor := Extractor{Arity: 2, Kind: ByteElement, Normalizer: LowercaseNormalizer}
	corpus, err := BuildCorpusRoaring(keys, extractor)
	require.NoError(t, err)

	for k := 0; k < corpus.NumKeys(); k++ {
		for _, e := range corpus.graph.GramsOf(k) {
			found := false
			for _, kid := range corpus.graph.KeysOf(e.NgramID) {
				if kid == k {
					found = true
				}
			}
			require.True(t, found)
			w, ok := corpus.graph.WeightAt(k, e.NgramID)
			require.True(t, ok)
			require.Equal(t, e.Weight, w)
		}
	}
}
