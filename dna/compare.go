package dna

import (
	"math/bits"

	"github.com/grailbio/seqset/biosimd"
)

// CompareResult is the 5-valued outcome of comparing two DNA slices
// base by base from each slice's start (see Compare for how this yields
// the colex order the seqset's prefix closure relies on). A strict prefix is
// neither "less" nor "equal": FIRST_IS_PREFIX/SECOND_IS_PREFIX let
// callers (notably the expander's dedup/merge pass) distinguish a true
// tie from one sequence being a strict extension of the other.
type CompareResult int

const (
	FirstIsLess CompareResult = iota - 2
	FirstIsPrefix
	Equal
	SecondIsPrefix
	SecondIsLess
)

func (r CompareResult) String() string {
	switch r {
	case FirstIsLess:
		return "FIRST_IS_LESS"
	case FirstIsPrefix:
		return "FIRST_IS_PREFIX"
	case Equal:
		return "EQUAL"
	case SecondIsPrefix:
		return "SECOND_IS_PREFIX"
	case SecondIsLess:
		return "SECOND_IS_LESS"
	default:
		return "INVALID"
	}
}

// Flip returns the result of swapping the two compared operands.
func (r CompareResult) Flip() CompareResult { return -r }

// Compare orders a and b base-by-base from their respective starts
// (which, for a RevComp'd Slice, is the sequence's 3' end — this is
// what makes the order a colex order over the owning Sequence). It
// proceeds in up to biosimd.BlockBases-base blocks so that long runs of
// shared prefix cost one 64-bit subtraction per 28 bases instead of one
// comparison per base.
func Compare(a, b Slice) CompareResult {
	minLen := a.size
	if b.size < minLen {
		minLen = b.size
	}
	ai, bi := a.it, b.it
	remaining := minLen
	for remaining > 0 {
		blockBases := remaining
		if blockBases > biosimd.BlockBases {
			blockBases = biosimd.BlockBases
		}
		diff := biosimd.CompareBlock(
			ai.data, ai.byteIdx(), ai.offset(), ai.rc,
			bi.data, bi.byteIdx(), bi.offset(), bi.rc,
			8, blockBases)
		if diff < 0 {
			return FirstIsLess
		}
		if diff > 0 {
			return SecondIsLess
		}
		ai = ai.advance(blockBases)
		bi = bi.advance(blockBases)
		remaining -= blockBases
	}
	switch {
	case a.size == b.size:
		return Equal
	case a.size < b.size:
		return FirstIsPrefix
	default:
		return SecondIsPrefix
	}
}

// SharedPrefixLength returns the number of leading bases a and b have
// in common (capped at min(a.Len(), b.Len())).
func SharedPrefixLength(a, b Slice) int {
	minLen := a.size
	if b.size < minLen {
		minLen = b.size
	}
	ai, bi := a.it, b.it
	total := 0
	remaining := minLen
	for remaining > 0 {
		blockBases := remaining
		if blockBases > biosimd.BlockBases {
			blockBases = biosimd.BlockBases
		}
		lhs := loadShiftedMasked(ai, blockBases)
		rhs := loadShiftedMasked(bi, blockBases)
		xor := lhs ^ rhs
		if xor == 0 {
			total += blockBases
			ai = ai.advance(blockBases)
			bi = bi.advance(blockBases)
			remaining -= blockBases
			continue
		}
		// Our values occupy at most the low 56 bits (7 bytes); the
		// top 8 bits of a uint64 are always zero, so subtract those
		// guaranteed leading zeros before converting to base pairs.
		equalBits := bits.LeadingZeros64(xor) - 8
		equalBases := equalBits / 2
		if equalBases > blockBases {
			equalBases = blockBases
		}
		return total + equalBases
	}
	return total
}

func loadShiftedMasked(it iter, blockBases int) uint64 {
	var block uint64
	if it.rc {
		block = biosimd.LoadReverseComplementBlock(it.data, it.byteIdx(), 8)
	} else {
		block = biosimd.LoadForwardBlock(it.data, it.byteIdx(), 8)
	}
	shift := uint(8 - 2*ternary(it.rc, 3-it.offset(), it.offset()))
	block >>= shift
	mask := uint64(1)<<56 - 1
	if blockBases < biosimd.BlockBases {
		mask &= ^uint64(0) << uint(2*(biosimd.BlockBases-blockBases))
	}
	return block & mask
}

func ternary(cond bool, a, b int) int {
	if cond {
		return a
	}
	return b
}
