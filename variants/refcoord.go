// Package variants implements the variant-discovery pipeline of spec
// §3.6/§4.H/§4.I: the tracer's best-first graph walk over a seqset
// (variants/tracer) and the aligner/align-splitter that turns a raw
// assembly into reference-coordinate variant calls (variants/align).
//
// RefCoord and Scaffold in this file are re-grounded, by hand, from
// the teacher's generated biopb.Coord/CoordRange comparison methods
// (biopb/coord.go) — the generated message definitions themselves
// were dropped along with gogo/protobuf (see DESIGN.md), but the
// ordering/containment logic they supported is exactly what a
// scaffold-relative coordinate needs, so it is kept as plain structs
// and methods instead of generated protobuf types.
package variants

import "math"

// AnchorDropped is the sentinel offset recorded when a tracer path's
// end ran off the edge of its scaffold without anchoring to a
// reference position (spec §3.6 "either may be anchor-dropped").
const AnchorDropped = math.MaxInt32

// RefCoord is a position within one named scaffold (spec glossary
// "Scaffold"). Offset is relative to the scaffold's own coordinate
// space, not the underlying reference's absolute coordinates — a
// scaffold already elides gaps, so its offsets are contiguous.
type RefCoord struct {
	Scaffold string
	Offset   int
}

// Dropped reports whether c is the anchor-dropped sentinel.
func (c RefCoord) Dropped() bool { return c.Offset == AnchorDropped }

// Compare returns <0, 0, >0 as c sorts before, equal to, or after o.
// Scaffold name is the primary key, purely so two coordinates in
// different scaffolds have a total, if arbitrary, order; callers that
// care about cross-scaffold distance should not call this and instead
// reject the comparison outright.
func (c RefCoord) Compare(o RefCoord) int {
	if c.Scaffold != o.Scaffold {
		if c.Scaffold < o.Scaffold {
			return -1
		}
		return 1
	}
	return c.Offset - o.Offset
}

func (c RefCoord) LT(o RefCoord) bool { return c.Scaffold == o.Scaffold && c.Compare(o) < 0 }
func (c RefCoord) LE(o RefCoord) bool { return c.Scaffold == o.Scaffold && c.Compare(o) <= 0 }
func (c RefCoord) GE(o RefCoord) bool { return c.Scaffold == o.Scaffold && c.Compare(o) >= 0 }
func (c RefCoord) GT(o RefCoord) bool { return c.Scaffold == o.Scaffold && c.Compare(o) > 0 }
func (c RefCoord) EQ(o RefCoord) bool { return c.Scaffold == o.Scaffold && c.Offset == o.Offset }

// Distance returns the absolute offset difference between c and o,
// which must be in the same scaffold and neither anchor-dropped.
// Neither the tracer nor the aligner calls it: the tracer's rejoin
// deviation is always zero, and the aligner ranks offsets with its own
// distSet.
func (c RefCoord) Distance(o RefCoord) int {
	d := c.Offset - o.Offset
	if d < 0 {
		return -d
	}
	return d
}

// RefCoordRange is a half-open [Start,Limit) span of scaffold
// coordinates, the unit an aligned_variant's bounds and a scaffold
// extent are both expressed in (spec §3.6, §4.I.3).
type RefCoordRange struct {
	Start, Limit RefCoord
}

// Len returns the span's length in bases. Both ends must share a
// scaffold.
func (r RefCoordRange) Len() int { return r.Limit.Offset - r.Start.Offset }

// Empty reports whether the range spans zero bases.
func (r RefCoordRange) Empty() bool { return r.Len() <= 0 }

// Intersects reports whether r and o overlap.
func (r RefCoordRange) Intersects(o RefCoordRange) bool {
	return r.Start.Scaffold == o.Start.Scaffold && r.Start.LT(o.Limit) && o.Start.LT(r.Limit)
}

// Contains reports whether a falls within r.
func (r RefCoordRange) Contains(a RefCoord) bool {
	return r.Start.Scaffold == a.Scaffold && r.Start.LE(a) && a.LT(r.Limit)
}
