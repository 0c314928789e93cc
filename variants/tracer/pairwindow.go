package tracer

import (
	bi "github.com/grailbio/seqset/interval"

	"github.com/grailbio/seqset/circular"
)

// pairRowWords is the number of machine words per pairWindow row,
// giving pairRowWords*circular.BitsPerWord buckets for read ids to
// hash into. Collisions only ever cause a path to look paired
// slightly more often than it is (a false "mate seen" at some other
// position happening to hash to the same bucket), never a missed true
// positive, so a handful of words is enough: the tracer's pair
// tracking is a cost-shaping heuristic (spec §4.H.5), not a
// correctness-critical index.
const pairRowWords = 4

// pairWindow tracks, for a circular window of the last
// 2*max_pair_distance+1 bases walked, which read ids have been seen
// (as the originating read of a path step) at each position — so a
// later step can ask "has this read's mate appeared within
// max_pair_distance on either side" in O(max_pair_distance) instead of
// rescanning every path (spec §4.H.5).
//
// Adapted from circular.Bitmap, the teacher's position-keyed circular
// 2-D bitmap (grounded on original_source/modules/variants/tracer.cpp's
// pair-window bookkeeping): the major (circular) axis here is "bases
// walked since the scaffold position under search started", and the
// per-row bit column is a hash of the read id rather than the
// teacher's own column semantics.
type pairWindow struct {
	bm      circular.Bitmap
	mask    int
	numCols uint32
	maxDist int
	// slotPos[circPos] is the logical position last written to that
	// circular slot, or slotEmpty if the slot has never been written.
	// mark uses it to detect when the window has wrapped back onto a
	// slot that belongs to an earlier, now out-of-range position, so
	// that position's stale marks can be evicted before new ones
	// accumulate on top of them.
	slotPos []int
}

const slotEmpty = -1

// newPairWindow builds a pairWindow sized to hold maxPairDistance bases
// on either side of the current search position.
func newPairWindow(maxPairDistance int) *pairWindow {
	if maxPairDistance < 1 {
		maxPairDistance = 1
	}
	// circular.NextExp2 returns the smallest power of two strictly
	// greater than its argument, so NextExp2(2*maxPairDistance) is the
	// smallest power of two at least 2*maxPairDistance+1 (the window
	// needed on both sides of the current position plus the position
	// itself); 2*maxPairDistance+1 is always odd and so never itself a
	// power of two, which keeps that off-by-one exact.
	nCirc := circular.NextExp2(2 * maxPairDistance)
	slotPos := make([]int, nCirc)
	for i := range slotPos {
		slotPos[i] = slotEmpty
	}
	return &pairWindow{
		bm:      circular.NewBitmap(bi.PosType(nCirc), pairRowWords),
		mask:    nCirc - 1,
		numCols: uint32(pairRowWords) * uint32(circular.BitsPerWord),
		maxDist: maxPairDistance,
		slotPos: slotPos,
	}
}

func (w *pairWindow) column(readID int) uint32 {
	c := uint32(readID) % w.numCols
	return c
}

// mark records that readID's step landed at pos.
func (w *pairWindow) mark(pos int, readID int) {
	circPos := pos & w.mask
	if w.slotPos[circPos] != pos {
		w.bm.ClearRow(bi.PosType(circPos))
		w.slotPos[circPos] = pos
	}
	w.bm.Set(bi.PosType(circPos), w.column(readID))
}

// seenNear reports whether readID was marked anywhere within
// max_pair_distance bases of pos (spec §4.H.5's "mate that has been
// seen within max_pair_distance on either side").
func (w *pairWindow) seenNear(pos int, readID int) bool {
	col := w.column(readID)
	wordIdx := col / uint32(circular.BitsPerWord)
	bitIdx := col % uint32(circular.BitsPerWord)
	bitVal := uintptr(1) << bitIdx
	for d := -w.maxDist; d <= w.maxDist; d++ {
		p := pos + d
		if p < 0 {
			continue
		}
		// A slot last written for another position holds stale marks.
		if w.slotPos[p&w.mask] != p {
			continue
		}
		row := w.bm.Row(bi.PosType(p & w.mask))
		if row[wordIdx]&bitVal != 0 {
			return true
		}
	}
	return false
}
