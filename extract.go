package ngramcorpus

// GramCount pairs a gram with its multiplicity within one key or query:
// a positive integer weight equal to the count of occurrences of that
// gram in the normalized key.
type GramCount struct {
	Gram  Gram
	Count uint32
}

// Extractor turns a raw key into its deterministic gram sequence. The
// same Extractor must be used at build time and query time: it is the
// single source of truth for normalization, padding and windowing, which
// is what makes padding and normalization deterministic and identical
// between build-time and query-time.
type Extractor struct {
	// Arity is N, the fixed gram length, 1 <= Arity <= MaxArity.
	Arity int
	// Kind selects whether grams are packed from bytes or runes.
	Kind ElementKind
	// Normalizer runs before windowing. Defaults to IdentityNormalizer
	// if nil.
	Normalizer Normalizer
}

func (e Extractor) normalizer() Normalizer {
	if e.Normalizer == nil {
		return IdentityNormalizer
	}
	return e.Normalizer
}

// Extract returns key's grams deduplicated into (gram, count) pairs, a
// stable duplicate-counting pass that preserves first-occurrence order
// of distinct grams. An empty result is a normal outcome, never an
// error.
func (e Extractor) Extract(key string) []GramCount {
	normalized := e.normalizer().Normalize(key)

	switch e.Kind {
	case ByteElement:
		return e.extractBytes([]byte(normalized))
	default:
		return e.extractRunes([]rune(normalized))
	}
}

func (e Extractor) extractBytes(normalized []byte) []GramCount {
	if len(normalized) == 0 {
		return nil
	}
	padded := padBytes(normalized, e.Arity)
	if len(padded) < e.Arity {
		return nil
	}
	return accumulate(padded, e.Arity, packBytes)
}

func (e Extractor) extractRunes(normalized []rune) []GramCount {
	if len(normalized) == 0 {
		return nil
	}
	padded := padRunes(normalized, e.Arity)
	if len(padded) < e.Arity {
		return nil
	}
	return accumulateRunes(padded, e.Arity)
}

// accumulate performs the stable duplicate-counting windowing pass for
// byte-backed grams.
func accumulate(padded []byte, arity int, pack func([]byte) Gram) []GramCount {
	var counts []GramCount
	index := make(map[Gram]int, len(padded)-arity+1)
	for i := 0; i+arity <= len(padded); i++ {
		g := pack(padded[i : i+arity])
		if idx, ok := index[g]; ok {
			counts[idx].Count++
			continue
		}
		index[g] = len(counts)
		counts = append(counts, GramCount{Gram: g, Count: 1})
	}
	return counts
}

func accumulateRunes(padded []rune, arity int) []GramCount {
	var counts []GramCount
	index := make(map[Gram]int, len(padded)-arity+1)
	for i := 0; i+arity <= len(padded); i++ {
		g := packRunes(padded[i : i+arity])
		if idx, ok := index[g]; ok {
			counts[idx].Count++
			continue
		}
		index[g] = len(counts)
		counts = append(counts, GramCount{Gram: g, Count: 1})
	}
	return counts
}

// TotalWeight sums the multiplicities of a gram-count sequence: the
// n-gram length of the key or query the sequence was extracted from.
func TotalWeight(counts []GramCount) uint64 {
	var total uint64
	for _, c := range counts {
		total += uint64(c.Count)
	}
	return total
}
