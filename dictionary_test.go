package ngramcorpus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDictionaryLookupAndGram(t *testing.T) {
	grams := []Gram{1, 5, 9, 100, 1000}
	d := NewDictionary(grams)
	require.Equal(t, len(grams), d.Len())

	for id, g := range grams {
		gotID, ok := d.Lookup(g)
		require.True(t, ok)
		require.Equal(t, id, gotID)
		require.Equal(t, g, d.Gram(id))
	}

	_, ok := d.Lookup(42)
	require.False(t, ok)
}

func TestDictionaryEmpty(t *testing.T) {
	d := NewDictionary(nil)
	require.Equal(t, 0, d.Len())
	_, ok := d.Lookup(7)
	require.False(t, ok)
	require.Empty(t, d.DumpNgrams())
}

func TestDictionaryDumpNgramsOrder(t *testing.T) {
	grams := []Gram{3, 7, 11}
	d := NewDictionary(grams)
	require.Equal(t, grams, d.DumpNgrams())
}
