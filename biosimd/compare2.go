package biosimd

import "encoding/binary"

// BlockBases is the number of 2-bit base slots covered by one comparator
// block: 7 bytes' worth (56 bits) out of the 8 loaded, leaving one spare
// byte of headroom so a shifted block never needs to read past a
// 64-bit load. Grounded on dna_sequence.cpp's full_block = 28 (7 bytes
// of a word, the 8th byte dropped by the shift/mask).
const BlockBases = 28

// LoadForwardBlock returns the host-order (base 0 in the most
// significant bits), zero-tail-padded value of the n bytes of data
// starting at byteIdx, as if by be64toh(get_fwd_compare_block(...)).
// n must be in [1,8]; byteIdx may run past len(data), in which case the
// missing bytes read as zero (the packed sequence's logical length
// governs how many of the returned bases are meaningful, not this load).
func LoadForwardBlock(data []byte, byteIdx, n int) uint64 {
	var buf [8]byte
	for i := 0; i < n; i++ {
		p := byteIdx + i
		if p >= 0 && p < len(data) {
			buf[i] = data[p]
		}
	}
	return binary.BigEndian.Uint64(buf[:])
}

// LoadReverseComplementBlock returns the host-order, zero-tail-padded,
// reverse-complemented value of the n bytes of data ending at byteIdx
// (inclusive), i.e. data[byteIdx-n+1 .. byteIdx] read in increasing
// address order and then bit-reversed/complemented at the 2-bit-field
// level. Equivalent to be64toh_and_rc(get_rc_compare_block(...)).
func LoadReverseComplementBlock(data []byte, byteIdx, n int) uint64 {
	var buf [8]byte
	start := byteIdx - n + 1
	for i := 0; i < n; i++ {
		p := start + i
		if p >= 0 && p < len(data) {
			buf[8-n+i] = data[p]
		}
	}
	raw := binary.LittleEndian.Uint64(buf[:])
	return WordRevCompSwap(raw)
}

// CompareBlock compares up to BlockBases bases starting at the given
// byte/offset/reverse-complement cursor on each side. shift is
// 2*(rc ? 3-offset : offset) worth of leading bases to discard from the
// loaded block (those bases belong to an earlier, already-compared
// byte). n is the number of bytes to load (8 for a full block, fewer
// for a final partial block) and compareBases bounds how many base
// slots of the loaded+shifted value actually participate in the
// subtraction (the rest are masked to zero on both sides).
//
// Returns a signed difference: negative if lhs < rhs, zero if the
// compared bases are equal, positive if lhs > rhs, exactly mirroring
// compare_shifted's int64 subtraction of the two masked blocks.
func CompareBlock(lhs []byte, lhsByteIdx, lhsOffset int, lhsRC bool,
	rhs []byte, rhsByteIdx, rhsOffset int, rhsRC bool,
	n int, compareBases int) int64 {

	var lhsBlock, rhsBlock uint64
	if lhsRC {
		lhsBlock = LoadReverseComplementBlock(lhs, lhsByteIdx, n)
	} else {
		lhsBlock = LoadForwardBlock(lhs, lhsByteIdx, n)
	}
	if rhsRC {
		rhsBlock = LoadReverseComplementBlock(rhs, rhsByteIdx, n)
	} else {
		rhsBlock = LoadForwardBlock(rhs, rhsByteIdx, n)
	}

	lhsShift := uint(8 - 2*ternary(lhsRC, 3-lhsOffset, lhsOffset))
	rhsShift := uint(8 - 2*ternary(rhsRC, 3-rhsOffset, rhsOffset))
	lhsBlock >>= lhsShift
	rhsBlock >>= rhsShift

	mask := uint64(1)<<56 - 1
	if compareBases < BlockBases {
		mask &= ^uint64(0) << uint(2*(BlockBases-compareBases))
	}

	return int64(lhsBlock&mask) - int64(rhsBlock&mask)
}

func ternary(cond bool, a, b int) int {
	if cond {
		return a
	}
	return b
}
