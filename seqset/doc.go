// Package seqset implements the seqset finalizer and reader of spec
// §4.F/§3.2/§6.1: it consumes the expander's converged output
// (seqset/expand, seqset/partrepo) and produces the final, queryable
// seqset — per-entry size, shared-prefix-with-previous length, and
// four per-base has_prev bitmaps, plus O(log n) prefix-push navigation
// (Seqset.PushFront, a binary search over the sorted entries).
//
// Grounded on original_source/modules/build_seqset/builder.{h,cpp} for
// the builder's single forward sweep over a converged pass, and on
// spec §6.1 for the on-disk spiral-file section names. One section not
// named in spec §6.1 — the packed tail-base stream every entry's
// "new" suffix bases are drawn from — is added as `bases`; §6.1's list
// of sections has no way to reconstruct sequence content without it,
// and spec §4.F explicitly describes reconstruction "from (shared,
// sizes, base stream)", so the stream has to live somewhere in the
// container. See DESIGN.md.
package seqset
