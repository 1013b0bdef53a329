package succinct

import (
	"math/bits"

	"github.com/bits-and-blooms/bitset"
)

const rankBlockBits = 512 // 8 words per rank block

// BitVector is a fixed-length boolean array with O(1) rank and O(log n)
// select. It is backed by github.com/bits-and-blooms/bitset for the raw
// bit storage and adds the rank index and select support that package
// does not provide.
type BitVector struct {
	bits   *bitset.BitSet
	n      uint
	blocks []uint32 // cumulative popcount at the start of each rank block
	built  bool
}

// NewBitVector allocates a zeroed bit-vector of length n.
func NewBitVector(n uint) *BitVector {
	return &BitVector{bits: bitset.New(n), n: n}
}

func (v *BitVector) Len() uint { return v.n }

// Set marks position i as 1. Build-time only, like BitPacked.Set.
func (v *BitVector) Set(i uint) {
	v.bits.Set(i)
	v.built = false
}

// Test reports whether position i is set.
func (v *BitVector) Test(i uint) bool {
	return v.bits.Test(i)
}

// Build precomputes the rank index. Must be called once after all Set
// calls and before any Rank1/Select1 call.
func (v *BitVector) Build() {
	nblocks := int(v.n)/rankBlockBits + 2
	v.blocks = make([]uint32, nblocks)

	var cum uint32
	words := v.bits.Bytes() // underlying []uint64 words, LSB-first
	wordsPerBlock := rankBlockBits / 64

	for blk := 0; blk < nblocks-1; blk++ {
		v.blocks[blk] = cum
		start := blk * wordsPerBlock
		for w := 0; w < wordsPerBlock; w++ {
			idx := start + w
			if idx >= len(words) {
				break
			}
			cum += uint32(bits.OnesCount64(words[idx]))
		}
	}
	v.blocks[nblocks-1] = cum
	v.built = true
}

// Rank1 returns the number of set bits in [0, i).
func (v *BitVector) Rank1(i uint) uint {
	if !v.built {
		v.Build()
	}
	blk := i / rankBlockBits
	rank := uint(v.blocks[blk])

	wordsPerBlock := uint(rankBlockBits / 64)
	words := v.bits.Bytes()
	startWord := blk * wordsPerBlock
	endBit := i
	endWord := endBit / 64

	for w := startWord; w < endWord && int(w) < len(words); w++ {
		rank += uint(bits.OnesCount64(words[w]))
	}
	if int(endWord) < len(words) {
		rem := endBit % 64
		if rem > 0 {
			mask := uint64(1)<<rem - 1
			rank += uint(bits.OnesCount64(words[endWord] & mask))
		}
	}
	return rank
}

// Select1 returns the position of the k-th set bit (0-based). It panics
// if fewer than k+1 bits are set. EliasFano.Get does not check its index
// itself; its high-part vector holds exactly Len() set bits, so a Get
// with an index below Len() never triggers the panic.
func (v *BitVector) Select1(k uint) uint {
	if !v.built {
		v.Build()
	}
	// Binary search over rank blocks for the block containing the k-th
	// set bit, then scan within the block.
	lo, hi := 0, len(v.blocks)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if uint(v.blocks[mid]) <= k {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	blk := uint(lo)
	remaining := k - uint(v.blocks[blk])

	wordsPerBlock := uint(rankBlockBits / 64)
	words := v.bits.Bytes()
	startWord := blk * wordsPerBlock

	for w := startWord; int(w) < len(words); w++ {
		word := words[w]
		c := uint(bits.OnesCount64(word))
		if remaining < c {
			// The (remaining)-th set bit is within this word.
			for b := uint(0); b < 64; b++ {
				if word&(1<<b) != 0 {
					if remaining == 0 {
						return w*64 + b
					}
					remaining--
				}
			}
		}
		remaining -= c
	}
	panic("succinct: Select1 index out of range")
}

// SizeBytes reports the memory footprint of the raw bits plus rank index.
func (v *BitVector) SizeBytes() int {
	return int(v.n+7)/8 + 4*len(v.blocks) + 24
}
