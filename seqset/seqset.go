package seqset

import (
	"sort"

	"github.com/grailbio/seqset/dna"
)

// Range is a contiguous [Begin,End) span of seqset entry ids sharing a
// common prefix (spec glossary "Range (seqset)"). A Range with
// End-Begin==1 denotes a single concrete entry.
type Range struct {
	Begin, End int
}

// Single reports whether r denotes exactly one seqset entry.
func (r Range) Single() bool { return r.End-r.Begin == 1 }

// Empty reports whether r denotes no entries (the prefix pushed onto
// it does not occur anywhere in the seqset).
func (r Range) Empty() bool { return r.End <= r.Begin }

// Seqset is the finalized, queryable index of spec §3.2: every entry's
// size, its shared-prefix length with the entry before it, the four
// per-base has_prev bitmaps, and prefix-push navigation (PushFront).
//
// Entries and their bases are held fully materialized in RAM rather
// than mmap-backed with lazy reconstruction — see DESIGN.md's "seqset"
// entry for why: the on-disk (shared,sizes,bases) encoding is a
// front-coded chain (each entry's sequence is its predecessor's prefix
// plus a tail), and reconstructing it as one forward sweep at load
// time is both simpler and no worse asymptotically than memoized
// random-access reconstruction for the scale this module targets.
type Seqset struct {
	UUID       [16]byte
	MaxReadLen int

	sizes   []uint16
	shared  []uint16
	prev    [4][]bool // prev[b][i]
	entries []*dna.Sequence
}

// NumEntries returns the number of seqset entries.
func (ss *Seqset) NumEntries() int { return len(ss.entries) }

// Size returns the base length of entry id.
func (ss *Seqset) Size(id int) int { return int(ss.sizes[id]) }

// Shared returns the number of leading bases entry id shares with
// entry id-1 (or, for id==0, with nothing: always 0).
func (ss *Seqset) Shared(id int) int { return int(ss.shared[id]) }

// HasPrev reports whether prepending base b to entry id's sequence
// yields a sequence that is itself a seqset entry (spec §3.2).
func (ss *Seqset) HasPrev(id int, b dna.Base) bool { return ss.prev[b][id] }

// Sequence returns entry id's full reconstructed sequence.
func (ss *Seqset) Sequence(id int) *dna.Sequence { return ss.entries[id] }

// EntryRange returns the single-entry Range for id.
func (ss *Seqset) EntryRange(id int) Range { return Range{Begin: id, End: id + 1} }

// Find returns the Range of every entry having seq as a prefix, an
// entry equal to seq included (the initial lookup a caller performs
// before any PushFront calls).
func (ss *Seqset) Find(seq dna.Slice) Range {
	lo, hi := ss.prefixBounds(seq)
	return Range{Begin: lo, End: hi}
}

// PushFront returns the range of entries whose sequence is b followed
// by the sequence(s) identified by r (spec §3.2/§4.A "prefix-push
// navigation"). It returns an Empty range if no such entry exists.
//
// Implemented by binary search over the full sorted entry array
// rather than by rank/select over the has_prev bitmaps (the classic
// FM-index LF-mapping this operation is modeled on, per spec §9's
// "Cyclic graphs" note comparing the seqset to a BWT-like index) — see
// DESIGN.md's "seqset" entry. Correctness is identical; only the
// asymptotic navigation cost (O(log n) here vs. O(1) with a rank
// structure) differs.
func (ss *Seqset) PushFront(r Range, b dna.Base) Range {
	if r.Empty() {
		return Range{}
	}
	rep := ss.entries[r.Begin].Slice()
	if !r.Single() {
		// Entries are sorted, so the sequence every entry of r shares is
		// the common prefix of its first and last entries.
		n := dna.SharedPrefixLength(rep, ss.entries[r.End-1].Slice())
		rep, _ = rep.Sub(0, n)
	}
	target := dna.NewSequence()
	target.PushBack(b)
	target.PushBackSlice(rep)
	lo, hi := ss.prefixBounds(target.Slice())
	return Range{Begin: lo, End: hi}
}

// prefixBounds returns [lo,hi) such that entries[lo:hi] are exactly
// the entries having prefix as a prefix of their own sequence
// (including an exact match).
func (ss *Seqset) prefixBounds(prefix dna.Slice) (int, int) {
	n := len(ss.entries)
	rank := func(i int) int {
		switch dna.Compare(ss.entries[i].Slice(), prefix) {
		case dna.FirstIsLess, dna.FirstIsPrefix:
			return -1
		case dna.SecondIsLess:
			return 1
		default: // Equal, SecondIsPrefix: prefix is a prefix of entries[i]
			return 0
		}
	}
	lo := sort.Search(n, func(i int) bool { return rank(i) >= 0 })
	hi := sort.Search(n, func(i int) bool { return rank(i) > 0 })
	return lo, hi
}
