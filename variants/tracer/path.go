package tracer

import (
	"github.com/grailbio/seqset/dna"
	"github.com/grailbio/seqset/seqset"
)

// path is one in-flight search node: a seqset range reached by pushing
// bases one at a time from the seed, plus the cost and bookkeeping
// needed to price its next step and, eventually, to turn it into an
// Assembly (spec §4.H "nodes are (seqset_range, path-so-far)").
//
// A seqset entry id doubles as a "read id" here: a path that reaches a
// range whose single entry has Size == seqset.MaxReadLen has walked
// exactly one full read, and that entry's id stands in for the
// originating read's identity (spec §3.6's "originating read ids").
// The corpus's seq_repo entries carry no separate read-id field
// distinct from their own id, so this is the natural, lossless choice
// rather than an invented indirection table.
type path struct {
	rng seqset.Range
	seq *dna.Sequence

	cost        float64
	basesWalked int
	overlap     int

	unpairedBases    int
	unpairedBranches int

	readIDs []int

	// reached is true once this path has walked onto at least one
	// full-length read (spec §4.H.2 "the path has already hit a
	// read"); extension becomes branch-cost-free once true, per the
	// same clause.
	reached bool
}

func (p *path) clone() *path {
	q := *p
	q.seq = dna.NewSequence()
	q.seq.PushBackSlice(p.seq.Slice())
	q.readIDs = append([]int(nil), p.readIDs...)
	return &q
}

// recordIfRead appends id to readIDs and marks the path as having
// reached a read, if rng now denotes exactly one full-length entry.
func (p *path) recordIfRead(ss *seqset.Seqset) {
	if !p.rng.Single() {
		return
	}
	id := p.rng.Begin
	if ss.Size(id) != ss.MaxReadLen {
		return
	}
	p.reached = true
	p.readIDs = append(p.readIDs, id)
}

// resetPair applies opts.PairResetPolicy's reset behavior for a mate
// sighting. onFirstSighting is whether this is the first time this
// path has ever observed a nearby mate (tracked by the caller, since
// path itself doesn't retain sighting history beyond the counters this
// clears).
func (p *path) resetPair(opts Options, onFirstSighting bool) {
	switch opts.PairResetPolicy {
	case PairResetOnFirst:
		if onFirstSighting {
			p.unpairedBases = 0
			p.unpairedBranches = 0
		}
	default: // PairResetOnEvery
		p.unpairedBases = 0
		p.unpairedBranches = 0
	}
}

// exceedsPairBudget reports whether p has accumulated too many
// unpaired bases or branches since its last reset to keep extending
// (spec §4.H.5).
func (p *path) exceedsPairBudget(opts Options) bool {
	return p.unpairedBases > opts.MaxUnpairedBases || p.unpairedBranches > opts.MaxUnpairedBranches
}

// pathHeap is a container/heap min-heap of *path ordered by
// accumulated cost (spec §4.H "min-heap of next_path items prioritized
// by accumulated cost").
type pathHeap []*path

func (h pathHeap) Len() int            { return len(h) }
func (h pathHeap) Less(i, j int) bool  { return h[i].cost < h[j].cost }
func (h pathHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *pathHeap) Push(x interface{}) { *h = append(*h, x.(*path)) }
func (h *pathHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
