package ngramcorpus

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func manyKeys(n int) SliceKeys {
	keys := make(SliceKeys, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%d-the-quick-brown-fox-%d", i, i*7%97)
	}
	return keys
}

// TestBuildCorpusParallelDeterminism checks P6: the parallel builder
// must produce structurally identical graphs to the sequential builder
// for the same keys and normalizer, and identical search output for a
// fixed query batch.
func TestBuildCorpusParallelDeterminism(t *testing.T) {
	keys := manyKeys(500)
	extractor := Extractor{Arity: 3, Kind: ByteElement, Normalizer: LowercaseNormalizer}

	seq, err := BuildCorpus(keys, extractor)
	require.NoError(t, err)
	par, err := BuildCorpusParallel(context.Background(), keys, extractor, 4, nil)
	require.NoError(t, err)

	require.Equal(t, seq.NumKeys(), par.NumKeys())
	require.Equal(t, seq.NumNgrams(), par.NumNgrams())
	require.Equal(t, seq.NumEdges(), par.NumEdges())
	require.InDelta(t, seq.AverageKeyLength(), par.AverageKeyLength(), 1e-9)
	require.Equal(t, seq.DumpNgrams(), par.DumpNgrams())

	for k := 0; k < seq.NumKeys(); k++ {
		require.Equal(t, seq.graph.GramsOf(k), par.graph.GramsOf(k), "key %d", k)
	}

	cfg, err := DefaultNgramSearchConfig(5)
	require.NoError(t, err)

	for _, q := range []string{"quick", "fox", "key-12", "zzz-not-present"} {
		require.Equal(t, seq.NgramSearch(q, cfg), par.NgramSearch(q, cfg), "query %q", q)
	}
}

func TestBuildCorpusParallelEmpty(t *testing.T) {
	par, err := BuildCorpusParallel(context.Background(), SliceKeys{}, testExtractor(), 4, nil)
	require.NoError(t, err)
	require.Equal(t, 0, par.NumKeys())
}
