package ngramcorpus

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// ErrEmptyQuery is returned by nothing: an empty query after normalization
// is a normal outcome, not an error, and every search returns an empty
// result list for it. The sentinel is exported for callers that want to
// name that case in their own code; no function in this package returns
// it.
var ErrEmptyQuery = errors.New("ngramcorpus: query has no grams after normalization")

// ErrEmptyCorpus marks a corpus with zero keys. Construction of such a
// corpus always succeeds; this sentinel exists only for callers that want
// to special-case it, e.g. to skip a doomed search early.
var ErrEmptyCorpus = errors.New("ngramcorpus: corpus has no keys")

// ErrInvalidConfig is returned by search-config constructors when a
// parameter falls outside its documented range. Config constructors never
// panic; they return this error instead.
var ErrInvalidConfig = errors.New("ngramcorpus: invalid search configuration")

// BuildError wraps an irrecoverable failure during corpus construction.
// No partial corpus is ever published when a BuildError is returned.
type BuildError struct {
	// Stage names the build phase that failed, e.g. "gram discovery" or
	// "forward CSR assembly".
	Stage string
	cause error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("ngramcorpus: build failed during %s: %v", e.Stage, e.cause)
}

func (e *BuildError) Unwrap() error { return e.cause }

// newBuildError wraps cause with a stack trace (via github.com/pkg/errors)
// so a BuildError surfaced to a caller carries enough context to debug a
// bad worker shard without re-running the build under a profiler.
func newBuildError(stage string, cause error) error {
	return &BuildError{Stage: stage, cause: pkgerrors.Wrap(cause, stage)}
}

func invalidConfigf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// errGramMissing indicates a build-time invariant violation: a gram
// observed during discovery is absent from the dictionary assembled
// from that same discovery pass. This should never happen; it signals
// a bug in dictionary assembly, not a caller error.
var errGramMissing = errors.New("ngramcorpus: dictionary missing observed gram")
