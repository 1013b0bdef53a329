package succinct

import "math/bits"

// EliasFano stores a sorted, non-decreasing sequence of n values each less
// than a known universe u using roughly n*(2 + log2(u/n)) bits. Random
// access goes through BitVector.Select1, which binary-searches the rank
// blocks, so Get costs O(log n) rather than O(1). It is used wherever a
// monotone offsets array
// (forward, reverse, or weight offsets) or a sorted dictionary of gram
// codes is needed.
type EliasFano struct {
	n       int
	u       uint64
	lowBits uint
	low     *BitPacked
	high    *BitVector
}

// NewEliasFano builds an Elias-Fano sequence from a sorted, non-decreasing
// slice of values, each strictly less than universe (values may equal
// universe only in the conventional terminal-offset sense, e.g.
// off[K]=E; callers pass universe = E+1 in that case).
func NewEliasFano(values []uint64, universe uint64) *EliasFano {
	n := len(values)
	ef := &EliasFano{n: n, u: universe}

	if n == 0 {
		ef.lowBits = 0
		ef.low = NewBitPacked(0, 0)
		ef.high = NewBitVector(1)
		ef.high.Build()
		return ef
	}

	ef.lowBits = lowBitWidth(universe, n)
	ef.low = NewBitPacked(n, ef.lowBits)

	numBuckets := int(universe>>ef.lowBits) + 1
	ef.high = NewBitVector(uint(n + numBuckets + 1))

	lowMask := uint64(1)<<ef.lowBits - 1
	if ef.lowBits == 64 {
		lowMask = ^uint64(0)
	}

	for i, v := range values {
		highPart := v >> ef.lowBits
		ef.low.Set(i, v&lowMask)
		ef.high.Set(uint(int(highPart) + i))
	}
	ef.high.Build()
	return ef
}

func lowBitWidth(universe uint64, n int) uint {
	if n == 0 || universe <= uint64(n) {
		return 0
	}
	ratio := universe / uint64(n)
	if ratio == 0 {
		return 0
	}
	return uint(bits.Len64(ratio)) - 1
}

// Len returns n, the number of stored values.
func (ef *EliasFano) Len() int { return ef.n }

// Get returns the i-th value.
func (ef *EliasFano) Get(i int) uint64 {
	highPart := ef.high.Select1(uint(i)) - uint(i)
	if ef.lowBits == 0 {
		return uint64(highPart)
	}
	return uint64(highPart)<<ef.lowBits | ef.low.Get(i)
}

// Search returns the smallest index i such that Get(i) >= target, and
// whether Get(i) == target exactly (a binary search over the monotone
// sequence).
func (ef *EliasFano) Search(target uint64) (idx int, exact bool) {
	lo, hi := 0, ef.n
	for lo < hi {
		mid := (lo + hi) / 2
		if ef.Get(mid) < target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo, lo < ef.n && ef.Get(lo) == target
}

// SizeBytes reports the memory footprint of the low and high parts.
func (ef *EliasFano) SizeBytes() int {
	return ef.low.SizeBytes() + ef.high.SizeBytes() + 32
}
