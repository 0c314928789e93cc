package tracer

import (
	"github.com/grailbio/seqset/dna"
	"github.com/grailbio/seqset/variants"
)

// AlignedVariant is one replacement region within an Assembly's
// sequence, in reference coordinates (spec §3.6). Populated by
// variants/align, not by the tracer itself — Assembly carries a (nil)
// slot for it so the tracer's output type already matches the
// pipeline's final shape.
type AlignedVariant struct {
	// Bounds is the reference-coordinate span this variant replaces.
	// A zero-length Bounds denotes a pure insertion.
	Bounds variants.RefCoordRange
	// Replacement is the sequence substituted for Bounds. A zero-length
	// Replacement denotes a pure deletion.
	Replacement *dna.Sequence
}

// Assembly is the tracer's unit of output (spec §3.6): a candidate
// sequence, its two reference anchors (either of which may be
// anchor-dropped), and the bookkeeping needed to later align and split
// it into variant calls.
type Assembly struct {
	// ID is a unique, monotonically increasing identifier assigned at
	// emission time (spec §3.6 "a unique monotonic id").
	ID int

	// Seq is the assembled candidate sequence.
	Seq *dna.Sequence

	// Left and Right are the reference coordinates the assembly
	// anchors to on either side; variants.AnchorDropped marks a side
	// that never found a reference anchor (spec §3.6).
	Left, Right variants.RefCoord

	// LeftAnchorLen and RightAnchorLen are the lengths, in bases, of
	// the shared-with-reference runs at each end (spec §3.6 "left/right
	// anchor lengths"); meaningless on a dropped side.
	LeftAnchorLen, RightAnchorLen int

	// MatchesReference is true when Seq, in full, reproduces the
	// reference span between Left and Right with no variants (spec
	// §3.6).
	MatchesReference bool

	// ReadIDs is the set of originating read ids this assembly was
	// built from (spec §3.6 "a set of originating read ids").
	ReadIDs []int

	// Variants is filled in by variants/align.Align/Split; nil on a
	// freshly traced Assembly.
	Variants []AlignedVariant
}

// invariant (spec §3.6): concatenating the reference prefix up to
// Left, each Variants[i].Replacement alternating with the reference
// span between consecutive variants, and the reference suffix from
// Right, reproduces Seq. Not checked at runtime — align.Split is the
// only producer of a populated Variants slice and is responsible for
// upholding it.
