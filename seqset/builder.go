package seqset

import (
	"crypto/rand"

	"github.com/grailbio/seqset/dna"
	"github.com/grailbio/seqset/seqset/partrepo"
	"github.com/grailbio/seqset/seqset/reposeq"
)

// Build finalizes a converged partitioned pass into a queryable
// Seqset (spec §4.F). rp must have been opened with pushed-neighbor
// readers available (partrepo.ReadPass.Partitions(true)), since
// has_prev needs to look across partition boundaries.
//
// Grounded on original_source/modules/build_seqset/builder.cpp's
// single forward sweep: walk every partition in index order (index
// order already interleaves colex order, since the partition index IS
// the entry's leading D-base prefix), materializing each entry's full
// sequence as we go and comparing it against the previous entry for
// shared-prefix length, and against each pushed-neighbor partition for
// has_prev.
func Build(rp *partrepo.ReadPass, maxReadLen int) (*Seqset, error) {
	parts := rp.Partitions(true)

	total := 0
	for _, p := range parts {
		total += p.Reader.Len()
	}

	ss := &Seqset{
		MaxReadLen: maxReadLen,
		sizes:      make([]uint16, 0, total),
		shared:     make([]uint16, 0, total),
		entries:    make([]*dna.Sequence, 0, total),
	}
	for b := range ss.prev {
		ss.prev[b] = make([]bool, 0, total)
	}
	if _, err := rand.Read(ss.UUID[:]); err != nil {
		return nil, err
	}

	// partEntries[i] holds every materialized sequence of partition i,
	// needed up front since neighborIndex can route to any partition,
	// not just an adjacent one.
	partEntries := make([][]*dna.Sequence, len(parts))
	for i, p := range parts {
		n := p.Reader.Len()
		seqs := make([]*dna.Sequence, n)
		for j := 0; j < n; j++ {
			seq, err := p.Reader.Sequence(p.Reader.At(j))
			if err != nil {
				return nil, err
			}
			seqs[j] = seq
		}
		partEntries[i] = seqs
	}

	var prev *dna.Sequence
	for pi, seqs := range partEntries {
		pushed := parts[pi].Pushed
		for _, seq := range seqs {
			shared := 0
			if prev != nil {
				shared = dna.SharedPrefixLength(prev.Slice(), seq.Slice())
			}
			ss.entries = append(ss.entries, seq)
			ss.sizes = append(ss.sizes, uint16(seq.Len()))
			ss.shared = append(ss.shared, uint16(shared))
			for _, b := range [4]dna.Base{dna.A, dna.C, dna.G, dna.T} {
				ss.prev[b] = append(ss.prev[b], hasPushedMatch(pushed[b], b, seq))
			}
			prev = seq
		}
	}

	return ss, nil
}

// FromSequences builds a Seqset directly from an already colex-sorted,
// pop-front-closed list of sequences, computing shared/has_prev by
// comparison against the full set rather than against partition
// neighbors. Useful for small in-memory seqsets (tests, and any
// caller that already has every suffix materialized rather than
// spread across an on-disk partitioned pass).
func FromSequences(seqs []*dna.Sequence, maxReadLen int) (*Seqset, error) {
	ss := &Seqset{
		MaxReadLen: maxReadLen,
		sizes:      make([]uint16, len(seqs)),
		shared:     make([]uint16, len(seqs)),
		entries:    append([]*dna.Sequence(nil), seqs...),
	}
	for b := range ss.prev {
		ss.prev[b] = make([]bool, len(seqs))
	}
	if _, err := rand.Read(ss.UUID[:]); err != nil {
		return nil, err
	}

	var prev *dna.Sequence
	for i, seq := range ss.entries {
		ss.sizes[i] = uint16(seq.Len())
		if prev != nil {
			ss.shared[i] = uint16(dna.SharedPrefixLength(prev.Slice(), seq.Slice()))
		}
		prev = seq
	}
	for i, seq := range ss.entries {
		for _, b := range [4]dna.Base{dna.A, dna.C, dna.G, dna.T} {
			target := dna.NewSequence()
			target.PushBack(b)
			target.PushBackSlice(seq.Slice())
			lo, hi := ss.prefixBounds(target.Slice())
			// lo is the minimal-length match in [lo,hi) (target's own
			// prefix-bucket), since any other entry in the bucket is a
			// strict extension of target and so sorts after it; an exact
			// entry equal to target, if present, is therefore always at
			// lo. The seqset's pop-front closure does not imply closure
			// under tail-truncation, so a non-empty bucket alone (an
			// entry extending target) would be a false positive here.
			ss.prev[b][i] = lo < hi && ss.entries[lo].Len() == target.Len()
		}
	}
	return ss, nil
}

// hasPushedMatch reports whether prepending b to seq's sequence yields
// a sequence present anywhere in the neighbor partition reader nb (a
// linear scan — the partition is small and already sorted, but a
// binary search isn't worth the complexity at this stage since Build
// runs once, offline, per finalize).
func hasPushedMatch(nb *reposeq.Reader, b dna.Base, seq *dna.Sequence) bool {
	if nb == nil {
		return false
	}
	target := dna.NewSequence()
	target.PushBack(b)
	target.PushBackSlice(seq.Slice())
	n := nb.Len()
	for i := 0; i < n; i++ {
		cand, err := nb.Sequence(nb.At(i))
		if err != nil {
			continue
		}
		if cand.Equal(target) {
			return true
		}
	}
	return false
}
