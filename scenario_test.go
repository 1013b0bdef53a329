package ngramcorpus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestScenarioFuzzyTypo mirrors a small fuzzy-correction workload: a
// misspelled query should surface its closest corpus neighbor above a
// chosen threshold.
func TestScenarioFuzzyTypo(t *testing.T) {
	keys := SliceKeys{"pie", "animal", "tomato", "seven", "carbon"}
	corpus, err := BuildCorpus(keys, Extractor{Arity: 2, Kind: ByteElement, Normalizer: LowercaseNormalizer})
	require.NoError(t, err)

	cfg, err := DefaultNgramSearchConfig(5)
	require.NoError(t, err)
	cfg, err = cfg.WithMinScore(0.25)
	require.NoError(t, err)

	results := corpus.NgramSearch("tomacco", cfg)
	require.NotEmpty(t, results)
	require.Equal(t, "tomato", results[0].Key)
	require.Greater(t, results[0].Score, 0.5)
}

// TestScenarioArityThreePrefixFamily checks that a short exact query
// scores 1.0 against its identical padded form, and that closer
// relatives outrank more distant ones.
func TestScenarioArityThreePrefixFamily(t *testing.T) {
	keys := SliceKeys{"Cat", "Cats", "Caterpillar"}
	corpus, err := BuildCorpus(keys, Extractor{Arity: 3, Kind: ByteElement, Normalizer: LowercaseNormalizer})
	require.NoError(t, err)

	cfg, err := DefaultNgramSearchConfig(5)
	require.NoError(t, err)
	cfg, err = cfg.WithMinScore(0.1)
	require.NoError(t, err)

	results := corpus.NgramSearch("cat", cfg)
	require.Len(t, results, 3)

	byKey := make(map[string]float64, len(results))
	for _, r := range results {
		byKey[r.Key] = r.Score
	}
	require.InDelta(t, 1.0, byKey["Cat"], 1e-9)
	require.Greater(t, byKey["Cats"], byKey["Caterpillar"])

	require.Equal(t, "Cat", results[0].Key)
}

// TestScenarioEmptyQuery asserts that an empty query after normalization
// yields an empty result list, never an error.
func TestScenarioEmptyQuery(t *testing.T) {
	keys := SliceKeys{"pie", "animal", "tomato", "seven", "carbon"}
	corpus, err := BuildCorpus(keys, Extractor{Arity: 2, Kind: ByteElement, Normalizer: LowercaseNormalizer})
	require.NoError(t, err)

	cfg, err := DefaultNgramSearchConfig(5)
	require.NoError(t, err)

	require.Empty(t, corpus.NgramSearch("", cfg))
	require.Empty(t, corpus.TfidfSearch("", cfg.withTfidfDefaults(t)))
}

// TestScenarioOutOfVocabularyQuery asserts that a query whose grams never
// appear in the corpus returns an empty result list.
func TestScenarioOutOfVocabularyQuery(t *testing.T) {
	keys := SliceKeys{"pie", "animal", "tomato", "seven", "carbon"}
	corpus, err := BuildCorpus(keys, Extractor{Arity: 2, Kind: ByteElement, Normalizer: LowercaseNormalizer})
	require.NoError(t, err)

	cfg, err := DefaultNgramSearchConfig(5)
	require.NoError(t, err)

	require.Empty(t, corpus.NgramSearch("zzzzz", cfg))
}

// withTfidfDefaults is scenario-test-only sugar to avoid repeating error
// handling when a second config of a different type is needed.
func (c NgramSearchConfig) withTfidfDefaults(t *testing.T) TfidfSearchConfig {
	t.Helper()
	cfg, err := DefaultTfidfSearchConfig(c.MaxResults())
	require.NoError(t, err)
	return cfg
}

// TestScenarioBM25NgramOrthogonality builds a corpus where one key
// carries a rare gram among otherwise-common ones, and several keys
// carry only the common gram at high multiplicity. Plain n-gram Jaccard
// favors the high-multiplicity common-only keys; BM25, which discounts
// common terms by inverse document frequency, must rank the rare-gram
// key above them for the same query.
func TestScenarioBM25NgramOrthogonality(t *testing.T) {
	keys := SliceKeys{
		"rcc",          // rare gram 'r' plus a little common gram 'c'
		"cccccccccc",   // common-only, 10 'c's
		"cccccccccc",
		"cccccccccc",
		"cccccccccc",
	}
	corpus, err := BuildCorpus(keys, Extractor{Arity: 1, Kind: ByteElement})
	require.NoError(t, err)

	query := "rcccccccccc"

	ngramCfg, err := DefaultNgramSearchConfig(5)
	require.NoError(t, err)
	ngramCfg, err = ngramCfg.WithMinScore(0)
	require.NoError(t, err)
	ngramResults := corpus.NgramSearch(query, ngramCfg)
	require.NotEmpty(t, ngramResults)
	require.Equal(t, "cccccccccc", ngramResults[0].Key, "plain Jaccard favors the common-heavy key")

	tfidfCfg, err := DefaultTfidfSearchConfig(5)
	require.NoError(t, err)
	tfidfCfg, err = tfidfCfg.WithMinScore(0)
	require.NoError(t, err)
	tfidfResults := corpus.TfidfSearch(query, tfidfCfg)
	require.NotEmpty(t, tfidfResults)
	require.Equal(t, "rcc", tfidfResults[0].Key, "BM25 favors the rare-gram key")

	require.NotEqual(t, ngramResults[0].Key, tfidfResults[0].Key)
}
