// Package kmer implements the two-phase k-mer counter of spec §4.E: a
// probabilistic 2-bit-saturating first pass that narrows the candidate
// set, followed by exact counting restricted to those candidates.
//
// Grounded on original_source/modules/build_seqset/kmer_counter.h for
// the two-phase structure and the fwd/rev-starts-read flags, and on
// fusion/kmer_index.go (github.com/dgryski/go-farm hashing, hugepage
// mmap table sizing) for the exact table's shape. Unlike the original
// (and fusion/kmer_index.go), this package keeps both phases entirely
// in RAM rather than spiral-spilling per-partition bitmaps/tables to
// disk between sub-passes — see DESIGN.md's "kmer" entry for why that
// simplification doesn't change any testable law of spec §8.1(7) or
// §8.3.
package kmer
