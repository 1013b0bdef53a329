package succinct

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitPackedRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 5, 17, 31, 9, 0, 31}
	bp := NewBitPacked(len(values), BitsForMax(31))
	for i, v := range values {
		bp.Set(i, v)
	}
	for i, v := range values {
		require.Equal(t, v, bp.Get(i), "index %d", i)
	}
}

func TestBitPackedStraddlesWordBoundary(t *testing.T) {
	// width=5 means element 12 occupies bits 60-64, straddling word 0/1.
	bp := NewBitPacked(32, 5)
	for i := 0; i < 32; i++ {
		bp.Set(i, uint64(i%32))
	}
	for i := 0; i < 32; i++ {
		require.Equal(t, uint64(i%32), bp.Get(i))
	}
}

func TestBitsForMax(t *testing.T) {
	require.Equal(t, uint(0), BitsForMax(0))
	require.Equal(t, uint(1), BitsForMax(1))
	require.Equal(t, uint(3), BitsForMax(5))
	require.Equal(t, uint(8), BitsForMax(255))
}
