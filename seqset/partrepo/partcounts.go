package partrepo

import "github.com/grailbio/seqset/dna"

// PartCounts is a histogram over 4^(depth+3) sub-partitions (one per
// D+3-base prefix), used by the expander's prefetch stage to bucket
// new entries without a full sort (spec §4.C/§4.D "Prefetch").
//
// Grounded on original_source/modules/build_seqset/part_counts.{h,cpp}.
type PartCounts struct {
	depth   int
	subDept int // depth + 3
	counts  []uint32
}

// NewPartCounts returns a zeroed histogram for the given partition
// depth.
func NewPartCounts(depth int) *PartCounts {
	subDepth := depth + 3
	return &PartCounts{
		depth:   depth,
		subDept: subDepth,
		counts:  make([]uint32, NumPartitions(subDepth)),
	}
}

// Add records one entry with the given sequence, bucketing it by its
// first depth+3 bases.
func (pc *PartCounts) Add(seq dna.Slice) {
	idx := PartitionIndex(seq, pc.subDept)
	pc.counts[idx]++
}

// Count returns the number of entries recorded under sub-partition
// index idx (a depth+3-base prefix, as returned by PartitionIndex with
// depth+3).
func (pc *PartCounts) Count(idx int) uint32 { return pc.counts[idx] }

// SubDepth returns depth+3, the prefix length this histogram buckets
// on.
func (pc *PartCounts) SubDepth() int { return pc.subDept }

// Offsets returns, for the partition whose sub-partition indices span
// [firstSubIdx, firstSubIdx+n), the starting offset of each
// sub-bucket within a flat array sized to hold the whole partition —
// i.e. a prefix sum, used by the prefetch stage to place each entry
// directly into its bucket in one pass.
func (pc *PartCounts) Offsets(firstSubIdx, n int) []uint32 {
	offsets := make([]uint32, n+1)
	for i := 0; i < n; i++ {
		offsets[i+1] = offsets[i] + pc.counts[firstSubIdx+i]
	}
	return offsets
}
