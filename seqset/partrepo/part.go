package partrepo

import "github.com/grailbio/seqset/dna"

// MaxDepth is the largest supported partition depth (spec §4.C: "1..7
// in practice"); 4^7 = 16384 partitions, the point past which the
// per-partition file-handle count stops being a win.
const MaxDepth = 7

// MinDepth is the smallest supported partition depth.
const MinDepth = 1

// NumPartitions returns 4^depth.
func NumPartitions(depth int) int { return 1 << uint(2*depth) }

// PartitionIndex returns the first depth bases of seq, treated as a
// 2*depth-bit big-endian integer — the same addressing scheme as a
// packed byte, just depth bases instead of 4. Sequences shorter than
// depth are treated as if zero-padded on the right, which places them
// at the start of the partition range their available prefix shares.
func PartitionIndex(seq dna.Slice, depth int) int {
	idx := 0
	n := seq.Len()
	if n > depth {
		n = depth
	}
	for i := 0; i < n; i++ {
		idx = (idx << 2) | int(seq.At(i))
	}
	idx <<= uint(2 * (depth - n))
	return idx
}

// Base returns the base at position i of the depth-base partition
// prefix identified by idx (the inverse mapping PartitionIndex uses).
func Base(idx, depth, i int) dna.Base {
	shift := uint(2 * (depth - 1 - i))
	return dna.Base((idx >> shift) & 3)
}

// neighborIndex returns the partition index obtained by prepending
// base b to the depth-base prefix idx and dropping its last base —
// i.e. the partition that a sequence in idx would have come from, one
// pop-front ago, from the perspective of the neighbor search in
// Partitions(includePushed=true).
func neighborIndex(idx, depth int, b dna.Base) int {
	shifted := idx >> 2
	return shifted | (int(b) << uint(2*(depth-1)))
}
