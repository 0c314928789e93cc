package dna

import "math"

// shannonEntropy computes -sum(p_i * log2(p_i)) over the given symbol
// counts out of total observations. Grounded on the original's
// low-complexity-region filter (modules/build_seqset/kmer_counter.h),
// re-expressed here as a standalone helper rather than folded into the
// counter itself, so both dna.Slice and package kmer can share it.
func shannonEntropy(counts []int, total int) float64 {
	if total == 0 {
		return 0
	}
	var h float64
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / float64(total)
		h -= p * math.Log2(p)
	}
	return h
}
