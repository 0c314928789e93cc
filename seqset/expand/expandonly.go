package expand

import (
	"github.com/grailbio/seqset/biosubstrate"
	"github.com/grailbio/seqset/seqset/reposeq"
	"github.com/grailbio/seqset/seqset/partrepo"
	"github.com/pkg/errors"
)

// ExpandOnly writes the pop-front expansions of every entry of
// sortedPass (not the entries themselves), without merging against
// any new input — the
// middle step of the outer (sort+dedup+expand, expand-only,
// sort+dedup+expand) cycle (spec §4.D), used to probe deeper
// pop-front descendants of an already-closed set before the next
// merge.
func ExpandOnly(store *partrepo.Store, pool *biosubstrate.Pool, sortedPass, outPass string, stride, count int) error {
	depth := store.Depth
	n := partrepo.NumPartitions(depth)

	rp, err := store.OpenReadPass(sortedPass)
	if err != nil {
		return errors.Wrap(err, "expand: open sorted pass")
	}
	defer rp.Close()

	wp, err := store.OpenWritePass(outPass, true)
	if err != nil {
		return errors.Wrap(err, "expand: open expand-only output pass")
	}

	refs := rp.Partitions(false)
	err = pool.Each(n, func(i int) error {
		buffers := make(map[int]*reposeq.EntryBuffer)
		bufferFor := func(idx int) *reposeq.EntryBuffer {
			b := buffers[idx]
			if b == nil {
				b = wp.EntryBuffer(idx)
				buffers[idx] = b
			}
			return b
		}
		r := refs[i].Reader
		for j := 0; j < r.Len(); j++ {
			seq, err := r.Sequence(r.At(j))
			if err != nil {
				return errors.Wrap(err, "expand: materialize entry")
			}
			if err := writeExpansions(seq, depth, wp, bufferFor, stride, count); err != nil {
				return err
			}
		}
		for _, b := range buffers {
			if err := b.Flush(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return wp.Close()
}
