package ngramcorpus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWeightStreamRoundTrip(t *testing.T) {
	rows := [][]uint32{
		{1, 2, 3},
		nil,
		{200, 1},
		{1},
	}

	b := NewWeightStreamBuilder(len(rows))
	for _, row := range rows {
		b.StartRow()
		for _, w := range row {
			b.AppendWeight(w)
		}
	}
	ws := b.Build()

	for i, row := range rows {
		got := ws.ReadRow(i, uint32(len(row)))
		require.Equal(t, row, got, "row %d", i)
	}
}

func TestWeightStreamEmpty(t *testing.T) {
	b := NewWeightStreamBuilder(0)
	ws := b.Build()
	require.Equal(t, []uint32(nil), ws.ReadRow(0, 0))
}
