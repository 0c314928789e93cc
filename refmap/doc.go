// Package refmap implements the reference map builder of spec
// §4.G/§3.5/§6.3: a single reference-genome walk that annotates every
// seqset entry that exactly matches a read-length window of the
// reference, forward or reverse-complemented, with a saturating
// occurrence count.
//
// Grounded on original_source/modules/build_seqset/ref_map.{h,cpp} for
// the walk-both-orientations-in-prestart-windows structure, and on
// encoding/bampair/shard_info.go for the llrb.Tree-backed sparse
// overflow map (the same pattern package kmer's exact-count overflow
// table uses).
package refmap
