package ngramcorpus

import (
	"strings"
	"unicode"
)

// Normalizer maps a raw key into its normalized form before gram
// extraction. Normalization is total: implementations must never fail.
type Normalizer interface {
	Normalize(s string) string
}

// NormalizerFunc adapts a plain function to the Normalizer interface.
type NormalizerFunc func(string) string

func (f NormalizerFunc) Normalize(s string) string { return f(s) }

// IdentityNormalizer performs no transformation.
var IdentityNormalizer Normalizer = NormalizerFunc(func(s string) string { return s })

// LowercaseNormalizer lowercases the key. This is the default choice for
// case-insensitive matching.
var LowercaseNormalizer Normalizer = NormalizerFunc(strings.ToLower)

// ASCIIAlnumNormalizer lowercases and restricts to ASCII letters and
// digits, dropping everything else, so it composes with the fast
// byte-packing path in extract.go.
var ASCIIAlnumNormalizer Normalizer = NormalizerFunc(func(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r > unicode.MaxASCII {
			continue
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else if r >= 'A' && r <= 'Z' {
			b.WriteRune(r - 'A' + 'a')
		}
	}
	return b.String()
})

// CollapseWhitespaceNormalizer trims leading/trailing whitespace and
// collapses interior runs of whitespace to a single space.
var CollapseWhitespaceNormalizer Normalizer = NormalizerFunc(func(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
})

// TrimNormalizer trims whitespace and NUL sentinels from both ends.
var TrimNormalizer Normalizer = NormalizerFunc(func(s string) string {
	return strings.Trim(s, " \t\r\n\x00")
})

// ChainNormalizers composes normalizers left to right.
func ChainNormalizers(ns ...Normalizer) Normalizer {
	return NormalizerFunc(func(s string) string {
		for _, n := range ns {
			s = n.Normalize(s)
		}
		return s
	})
}

// padRunes symmetrically pads a normalized rune sequence so that it has
// at least `arity` elements: left pad ⌈(N-len)/2⌉, right pad ⌊(N-len)/2⌋
// with the zero element. This single helper is shared by build-time and
// query-time extraction so padding is, by construction, deterministic and
// identical between the two.
func padRunes(runes []rune, arity int) []rune {
	deficit := arity - len(runes)
	if deficit <= 0 {
		return runes
	}
	left := (deficit + 1) / 2
	right := deficit / 2
	out := make([]rune, 0, arity)
	for i := 0; i < left; i++ {
		out = append(out, 0)
	}
	out = append(out, runes...)
	for i := 0; i < right; i++ {
		out = append(out, 0)
	}
	return out
}

func padBytes(bs []byte, arity int) []byte {
	deficit := arity - len(bs)
	if deficit <= 0 {
		return bs
	}
	left := (deficit + 1) / 2
	right := deficit / 2
	out := make([]byte, 0, arity)
	for i := 0; i < left; i++ {
		out = append(out, 0)
	}
	out = append(out, bs...)
	for i := 0; i < right; i++ {
		out = append(out, 0)
	}
	return out
}
