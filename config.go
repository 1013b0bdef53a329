package ngramcorpus

// NgramSearchConfig controls a warped-Jaccard n-gram similarity search.
// Values are immutable; With* setters return a new config and config
// construction never panics on an out-of-range value, it returns
// ErrInvalidConfig instead.
type NgramSearchConfig struct {
	minScore   float64
	maxResults int
	warp       float64
}

// DefaultNgramSearchConfig returns the documented defaults: min_score
// 0.3, warp 2.0, and a caller-supplied result cap.
func DefaultNgramSearchConfig(maxResults int) (NgramSearchConfig, error) {
	return NgramSearchConfig{minScore: 0.3, maxResults: maxResults, warp: 2.0}.validate()
}

func (c NgramSearchConfig) validate() (NgramSearchConfig, error) {
	if c.minScore < 0 || c.minScore > 1 {
		return c, invalidConfigf("min_score %v outside [0,1]", c.minScore)
	}
	if c.maxResults <= 0 {
		return c, invalidConfigf("max_results must be positive, got %d", c.maxResults)
	}
	if c.warp < 1.0 || c.warp > 10.0 {
		return c, invalidConfigf("warp %v outside [1.0, 10.0]", c.warp)
	}
	return c, nil
}

// WithMinScore returns a copy with min_score set.
func (c NgramSearchConfig) WithMinScore(v float64) (NgramSearchConfig, error) {
	c.minScore = v
	return c.validate()
}

// WithMaxResults returns a copy with max_results set.
func (c NgramSearchConfig) WithMaxResults(v int) (NgramSearchConfig, error) {
	c.maxResults = v
	return c.validate()
}

// WithWarp returns a copy with warp set. Integer values in [1,8] take the
// integer-exponent fast path at scoring time; all other in-range values
// use the real-exponent path.
func (c NgramSearchConfig) WithWarp(v float64) (NgramSearchConfig, error) {
	c.warp = v
	return c.validate()
}

func (c NgramSearchConfig) MinScore() float64 { return c.minScore }
func (c NgramSearchConfig) MaxResults() int   { return c.maxResults }
func (c NgramSearchConfig) Warp() float64     { return c.warp }

// TfidfSearchConfig controls an Okapi BM25 search, optionally combined
// with warped n-gram similarity via CombinedSearch.
type TfidfSearchConfig struct {
	minScore   float64
	maxResults int
	warp       float64
	k1         float64
	b          float64
}

// DefaultTfidfSearchConfig returns the documented defaults: min_score
// 0.3, k1 1.2, b 0.75, warp 2.0 (used only by CombinedSearch).
func DefaultTfidfSearchConfig(maxResults int) (TfidfSearchConfig, error) {
	return TfidfSearchConfig{minScore: 0.3, maxResults: maxResults, warp: 2.0, k1: 1.2, b: 0.75}.validate()
}

func (c TfidfSearchConfig) validate() (TfidfSearchConfig, error) {
	if c.minScore < 0 || c.minScore > 1 {
		return c, invalidConfigf("min_score %v outside [0,1]", c.minScore)
	}
	if c.maxResults <= 0 {
		return c, invalidConfigf("max_results must be positive, got %d", c.maxResults)
	}
	if c.warp < 1.0 || c.warp > 10.0 {
		return c, invalidConfigf("warp %v outside [1.0, 10.0]", c.warp)
	}
	if c.k1 < 0 {
		return c, invalidConfigf("k1 must be >= 0, got %v", c.k1)
	}
	if c.b < 0 || c.b > 1 {
		return c, invalidConfigf("b %v outside [0,1]", c.b)
	}
	return c, nil
}

func (c TfidfSearchConfig) WithMinScore(v float64) (TfidfSearchConfig, error) {
	c.minScore = v
	return c.validate()
}

func (c TfidfSearchConfig) WithMaxResults(v int) (TfidfSearchConfig, error) {
	c.maxResults = v
	return c.validate()
}

func (c TfidfSearchConfig) WithWarp(v float64) (TfidfSearchConfig, error) {
	c.warp = v
	return c.validate()
}

func (c TfidfSearchConfig) WithK1(v float64) (TfidfSearchConfig, error) {
	c.k1 = v
	return c.validate()
}

func (c TfidfSearchConfig) WithB(v float64) (TfidfSearchConfig, error) {
	c.b = v
	return c.validate()
}

func (c TfidfSearchConfig) MinScore() float64 { return c.minScore }
func (c TfidfSearchConfig) MaxResults() int   { return c.maxResults }
func (c TfidfSearchConfig) Warp() float64     { return c.warp }
func (c TfidfSearchConfig) K1() float64       { return c.k1 }
func (c TfidfSearchConfig) B() float64        { return c.b }
