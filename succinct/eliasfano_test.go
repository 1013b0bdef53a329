package succinct

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEliasFanoRoundTrip(t *testing.T) {
	values := []uint64{0, 2, 2, 5, 9, 9, 9, 20, 100}
	ef := NewEliasFano(values, 101)
	require.Equal(t, len(values), ef.Len())
	for i, v := range values {
		require.Equal(t, v, ef.Get(i), "index %d", i)
	}
}

func TestEliasFanoSearch(t *testing.T) {
	values := []uint64{0, 4, 4, 10, 20, 20, 50}
	ef := NewEliasFano(values, 51)

	idx, exact := ef.Search(10)
	require.True(t, exact)
	require.Equal(t, 3, idx)

	idx, exact = ef.Search(11)
	require.False(t, exact)
	require.Equal(t, 4, idx)

	idx, exact = ef.Search(51)
	require.False(t, exact)
	require.Equal(t, len(values), idx)
}

func TestEliasFanoEmpty(t *testing.T) {
	ef := NewEliasFano(nil, 0)
	require.Equal(t, 0, ef.Len())
	idx, exact := ef.Search(0)
	require.False(t, exact)
	require.Equal(t, 0, idx)
}
