package expand

import (
	"sort"

	"github.com/grailbio/seqset/biosubstrate"
	"github.com/grailbio/seqset/dna"
	"github.com/grailbio/seqset/seqset/reposeq"
	"github.com/grailbio/seqset/seqset/partrepo"
	"github.com/pkg/errors"
)

// entryBytesEstimate approximates the in-RAM cost of one materialized
// entry for the pool's memory-reservation gate — enough to keep
// concurrent partitions from all peaking at once, without porting the
// original's separate sort_memory/dedup_memory cost models (see
// DESIGN.md's "seqset/expand" entry).
const entryBytesEstimate = 64

// Result summarizes one SortDedupExpand call.
type Result struct {
	Dedups int // entries dropped as exact duplicates or redundant prefixes
}

// SortDedupExpand performs one partitioned sort+dedup(+expand) pass
// (spec §4.D): existingPass (may be "" for none yet) holds the
// already-sorted set, newPass holds freshly written candidate
// entries. The merged, deduplicated result is written to
// sortedOutPass; if expandedOutPass is non-empty, every surviving new
// entry also has up to count pop-front descendants (stepping by
// stride bases) written there, to seed the next pass.
func SortDedupExpand(store *partrepo.Store, pool *biosubstrate.Pool, existingPass, newPass, sortedOutPass, expandedOutPass string, stride, count int) (Result, error) {
	depth := store.Depth
	n := partrepo.NumPartitions(depth)

	var existingRP *partrepo.ReadPass
	if existingPass != "" && store.PassExists(existingPass) {
		rp, err := store.OpenReadPass(existingPass)
		if err != nil {
			return Result{}, errors.Wrap(err, "expand: open existing pass")
		}
		defer rp.Close()
		existingRP = rp
	}
	newRP, err := store.OpenReadPass(newPass)
	if err != nil {
		return Result{}, errors.Wrap(err, "expand: open new pass")
	}
	defer newRP.Close()

	sortedWP, err := store.OpenWritePass(sortedOutPass, false)
	if err != nil {
		return Result{}, errors.Wrap(err, "expand: open sorted output pass")
	}
	var expandedWP *partrepo.WritePass
	if expandedOutPass != "" {
		expandedWP, err = store.OpenWritePass(expandedOutPass, true)
		if err != nil {
			return Result{}, errors.Wrap(err, "expand: open expanded output pass")
		}
	}

	newRefs := newRP.Partitions(false)
	var existingRefs []partrepo.PartitionRef
	if existingRP != nil {
		existingRefs = existingRP.Partitions(false)
	}

	dedupCounts := make([]int, n)
	err = pool.Each(n, func(i int) error {
		newEntries, err := materializePartition(newRefs[i].Reader)
		if err != nil {
			return err
		}
		var existingEntries []*dna.Sequence
		if existingRefs != nil {
			existingEntries, err = materializePartition(existingRefs[i].Reader)
			if err != nil {
				return err
			}
		}

		reserve := int64(len(newEntries)+len(existingEntries)) * entryBytesEstimate
		pool.Reserve(reserve)
		defer pool.Release(reserve)

		sortByColex(newEntries)

		sortedBuf := sortedWP.EntryBuffer(i)
		expandedBuffers := make(map[int]*reposeq.EntryBuffer)
		bufferFor := func(idx int) *reposeq.EntryBuffer {
			b := expandedBuffers[idx]
			if b == nil {
				b = expandedWP.EntryBuffer(idx)
				expandedBuffers[idx] = b
			}
			return b
		}

		dedups, err := mergeDedupExpand(existingEntries, newEntries, depth, sortedWP, sortedBuf, expandedWP, bufferFor, stride, count)
		if err != nil {
			return err
		}
		dedupCounts[i] = dedups

		if err := sortedBuf.Flush(); err != nil {
			return err
		}
		for _, b := range expandedBuffers {
			if err := b.Flush(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	if err := sortedWP.Close(); err != nil {
		return Result{}, err
	}
	if expandedWP != nil {
		if err := expandedWP.Close(); err != nil {
			return Result{}, err
		}
	}

	total := 0
	for _, c := range dedupCounts {
		total += c
	}
	return Result{Dedups: total}, nil
}

func materializePartition(r *reposeq.Reader) ([]*dna.Sequence, error) {
	out := make([]*dna.Sequence, r.Len())
	for i := range out {
		seq, err := r.Sequence(r.At(i))
		if err != nil {
			return nil, errors.Wrap(err, "expand: materialize entry")
		}
		out[i] = seq
	}
	return out, nil
}

func sortByColex(seqs []*dna.Sequence) {
	// Plain sort.Slice with the block comparator (dna.Compare already
	// implements the 28-base fast path — see DESIGN.md's "biosimd"
	// entry) meets the spec's performance-sensitive comparator
	// requirement without a bespoke parallel merge sort; see
	// DESIGN.md's "seqset/expand" entry for what that trades away.
	sort.Slice(seqs, func(i, j int) bool { return dna.Compare(seqs[i].Slice(), seqs[j].Slice()) < dna.Equal })
}

// emit appends seq as a new entry to wp (writing its bases to the
// shared blob and its record to buf).
func emit(wp *partrepo.WritePass, buf *reposeq.EntryBuffer, seq *dna.Sequence) error {
	offset, err := wp.WriteSeq(seq.Slice())
	if err != nil {
		return err
	}
	return buf.WriteEntry(reposeq.NewEntryFromSlice(seq.Slice(), offset))
}

// mergeDedupExpand walks existing and new (both already colex-sorted)
// with a two-pointer merge, emitting the deduplicated union to
// sortedWP/sortedBuf and, for every surviving new entry, its
// pop-front expansions to expandedWP (when non-nil).
func mergeDedupExpand(
	existing, newEntries []*dna.Sequence,
	depth int,
	sortedWP *partrepo.WritePass, sortedBuf *reposeq.EntryBuffer,
	expandedWP *partrepo.WritePass, bufferFor func(int) *reposeq.EntryBuffer,
	stride, count int,
) (int, error) {
	dedups := 0
	ei, ni := 0, 0
	for ei < len(existing) && ni < len(newEntries) {
		cmp := dna.Compare(existing[ei].Slice(), newEntries[ni].Slice())
		switch cmp {
		case dna.FirstIsLess:
			if err := emit(sortedWP, sortedBuf, existing[ei]); err != nil {
				return 0, err
			}
			ei++
		case dna.SecondIsLess:
			if err := emitNew(newEntries[ni], depth, sortedWP, sortedBuf, expandedWP, bufferFor, stride, count); err != nil {
				return 0, err
			}
			ni++
		case dna.Equal:
			if err := emit(sortedWP, sortedBuf, existing[ei]); err != nil {
				return 0, err
			}
			ei++
			ni++
			dedups++
		case dna.FirstIsPrefix:
			// existing is a strict prefix of new: existing is the
			// already-expanded, now-redundant shorter form.
			ei++
			dedups++
		case dna.SecondIsPrefix:
			// new is a strict prefix of existing: drop the new entry,
			// existing (the longer form) will be emitted later.
			ni++
			dedups++
		}
	}
	for ; ei < len(existing); ei++ {
		if err := emit(sortedWP, sortedBuf, existing[ei]); err != nil {
			return 0, err
		}
	}
	for ; ni < len(newEntries); ni++ {
		if err := emitNew(newEntries[ni], depth, sortedWP, sortedBuf, expandedWP, bufferFor, stride, count); err != nil {
			return 0, err
		}
	}
	return dedups, nil
}

func emitNew(
	seq *dna.Sequence,
	depth int,
	sortedWP *partrepo.WritePass, sortedBuf *reposeq.EntryBuffer,
	expandedWP *partrepo.WritePass, bufferFor func(int) *reposeq.EntryBuffer,
	stride, count int,
) error {
	if err := emit(sortedWP, sortedBuf, seq); err != nil {
		return err
	}
	if expandedWP == nil {
		return nil
	}
	return writeExpansions(seq, depth, expandedWP, bufferFor, stride, count)
}

// writeExpansions emits up to count pop-front descendants of seq,
// each stride bases shorter than the last (spec §4.D:
// "write_with_expansions(entry, stride, count) emits at most count
// descendants of the pop-front chain, stepping by stride bases
// between each").
func writeExpansions(seq *dna.Sequence, depth int, wp *partrepo.WritePass, bufferFor func(int) *reposeq.EntryBuffer, stride, count int) error {
	cur := seq
	for k := 0; k < count; k++ {
		if cur.Len() <= stride {
			return nil
		}
		next, err := popFront(cur, stride)
		if err != nil {
			return err
		}
		offset, err := wp.WriteSeq(next.Slice())
		if err != nil {
			return err
		}
		idx := partrepo.PartitionIndex(next.Slice(), depth)
		if err := bufferFor(idx).WriteEntry(reposeq.NewEntryFromSlice(next.Slice(), offset)); err != nil {
			return err
		}
		cur = next
	}
	return nil
}

func popFront(seq *dna.Sequence, n int) (*dna.Sequence, error) {
	sub, err := seq.Slice().Sub(n, seq.Len()-n)
	if err != nil {
		return nil, err
	}
	out := dna.NewSequence()
	out.PushBackSlice(sub)
	return out, nil
}
