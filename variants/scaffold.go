package variants

import (
	"sort"

	"github.com/grailbio/seqset/dna"
	"github.com/grailbio/seqset/refmap"
	"github.com/pkg/errors"
)

// Scaffold is a named contiguous region of reference with gaps elided
// (spec glossary "Scaffold"): the concatenation of one or more disjoint
// extents of the underlying reference, in ascending absolute-position
// order, addressed by a single contiguous scaffold-relative offset
// space.
type Scaffold struct {
	Name   string
	Seq    dna.Slice
	extent []scaffoldExtent
}

// scaffoldExtent records one constituent extent's absolute reference
// start alongside the scaffold-relative offset range it occupies,
// sorted by ScaffoldStart for binary search in ToAbsolute.
type scaffoldExtent struct {
	AbsStart      int
	ScaffoldStart int
	Len           int
}

// BuildScaffold concatenates extents (already gap-free segments of one
// chromosome/contig, spec glossary "Supercontig / extent") in ascending
// AbsStart order into a single scaffold sequence, recording the
// absolute-to-scaffold offset mapping needed to translate a tracer
// rejoin position back into reference coordinates. Extents must be
// disjoint; overlapping extents are a construction error.
func BuildScaffold(name string, extents []refmap.Extent) (*Scaffold, error) {
	sorted := append([]refmap.Extent(nil), extents...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	sc := &Scaffold{Name: name}
	seq := dna.NewSequence()
	prevEnd := -1
	for _, ext := range sorted {
		if ext.Start < prevEnd {
			return nil, errors.Errorf("variants: overlapping extents in scaffold %q at %d", name, ext.Start)
		}
		sc.extent = append(sc.extent, scaffoldExtent{
			AbsStart:      ext.Start,
			ScaffoldStart: seq.Len(),
			Len:           ext.Seq.Len(),
		})
		seq.PushBackSlice(ext.Seq)
		prevEnd = ext.Start + ext.Seq.Len()
	}
	sc.Seq = seq.Slice()
	return sc, nil
}

// ToAbsolute translates a scaffold-relative offset back into an
// absolute reference position, using the extent that contains it.
// Returns false if offset lies outside [0, Seq.Len()) (checked since
// callers may hand back arbitrary RefCoords after tracer search).
func (sc *Scaffold) ToAbsolute(offset int) (abs int, ok bool) {
	i := sort.Search(len(sc.extent), func(i int) bool {
		return sc.extent[i].ScaffoldStart+sc.extent[i].Len > offset
	})
	if i == len(sc.extent) || offset < sc.extent[i].ScaffoldStart {
		return 0, false
	}
	e := sc.extent[i]
	return e.AbsStart + (offset - e.ScaffoldStart), true
}

// Coord builds a RefCoord for a scaffold-relative offset, or the
// anchor-dropped sentinel if offset is out of range.
func (sc *Scaffold) Coord(offset int) RefCoord {
	if offset < 0 || offset > sc.Seq.Len() {
		return RefCoord{Scaffold: sc.Name, Offset: AnchorDropped}
	}
	return RefCoord{Scaffold: sc.Name, Offset: offset}
}
