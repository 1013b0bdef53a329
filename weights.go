package ngramcorpus

import (
	"encoding/binary"

	"github.com/sourcegraph/ngramcorpus/succinct"
)

// WeightStream is an append-only, varint-encoded byte stream of per-row
// edge weights, addressed by a monotone Elias-Fano offsets sequence
// giving the byte-start of each row's block. A row of D weights decodes
// to exactly D values; the reader does not need to know D in advance
// when it has it from the corresponding degree, but ReadRow takes it
// explicitly since callers always have the degree at hand.
type WeightStream struct {
	bytes   []byte
	offsets *succinct.EliasFano
}

// WeightStreamBuilder accumulates varint-encoded weight runs row by row
// in forward order, recording the byte-offset at the start of each row.
type WeightStreamBuilder struct {
	buf      []byte
	rowStart []uint64
	scratch  [binary.MaxVarintLen64]byte
}

// NewWeightStreamBuilder allocates a builder with room for numRows row
// boundaries.
func NewWeightStreamBuilder(numRows int) *WeightStreamBuilder {
	return &WeightStreamBuilder{rowStart: make([]uint64, 0, numRows+1)}
}

// StartRow records the current stream position as the start of the next
// row. Callers must call this once per row, in row order, immediately
// before appending that row's weights.
func (b *WeightStreamBuilder) StartRow() {
	b.rowStart = append(b.rowStart, uint64(len(b.buf)))
}

// AppendWeight writes one varint-encoded weight to the current row.
func (b *WeightStreamBuilder) AppendWeight(w uint32) {
	n := binary.PutUvarint(b.scratch[:], uint64(w))
	b.buf = append(b.buf, b.scratch[:n]...)
}

// Build finalizes the stream. numRows must equal the number of StartRow
// calls made; the terminal offset (total byte length) is appended so
// that offsets has length numRows+1, matching the monotone-offsets
// convention used elsewhere in the graph.
func (b *WeightStreamBuilder) Build() *WeightStream {
	total := uint64(len(b.buf))
	allOffsets := append(append([]uint64(nil), b.rowStart...), total)
	universe := total + 1
	return &WeightStream{
		bytes:   b.buf,
		offsets: succinct.NewEliasFano(allOffsets, universe),
	}
}

// ReadRow decodes the count weights belonging to row i, in order.
func (ws *WeightStream) ReadRow(i int, count uint32) []uint32 {
	if count == 0 {
		return nil
	}
	pos := ws.offsets.Get(i)
	out := make([]uint32, count)
	for j := uint32(0); j < count; j++ {
		v, n := binary.Uvarint(ws.bytes[pos:])
		out[j] = uint32(v)
		pos += uint64(n)
	}
	return out
}

// SizeBytes reports the memory footprint of the stream and its offsets.
func (ws *WeightStream) SizeBytes() int {
	return len(ws.bytes) + ws.offsets.SizeBytes() + 24
}
