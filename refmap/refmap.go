package refmap

import (
	"sync"

	"github.com/biogo/store/llrb"
	"github.com/grailbio/seqset/dna"
	"github.com/grailbio/seqset/seqset"
	"github.com/pkg/errors"
)

const (
	fwdFlag    = byte(1) << 7
	revFlag    = byte(1) << 6
	countMask  = byte(0x3f)
	countSatMax = 0x3f
)

// overflowCount is one llrb row recording the full occurrence count of
// a seqset entry whose 6-bit in-byte counter has saturated — the same
// sparse-overflow idiom package kmer's exactTable uses for its own
// saturating counters.
type overflowCount struct {
	id    int
	count uint32
}

func (o overflowCount) Compare(c llrb.Comparable) int {
	other := c.(overflowCount)
	switch {
	case o.id < other.id:
		return -1
	case o.id > other.id:
		return 1
	default:
		return 0
	}
}

const numStripes = 256

// RefMap is the finished reference annotation of spec §3.5: one byte
// per seqset entry (fwd/rev flags + saturating 6-bit count) plus an
// overflow side table for entries whose reference occurrence count
// exceeds what 6 bits can hold.
type RefMap struct {
	bytes    []byte
	mu       [numStripes]sync.Mutex
	overflow llrb.Tree
	overflowMu sync.Mutex
}

// New allocates a RefMap sized for numEntries seqset entries.
func New(numEntries int) *RefMap {
	return &RefMap{bytes: make([]byte, numEntries)}
}

// Fwd reports whether id was ever observed as a forward reference
// match.
func (rm *RefMap) Fwd(id int) bool { return rm.bytes[id]&fwdFlag != 0 }

// Rev reports whether id was ever observed as a reverse-complement
// reference match.
func (rm *RefMap) Rev(id int) bool { return rm.bytes[id]&revFlag != 0 }

// Count returns id's total reference occurrence count, combining the
// saturated in-byte count with any overflow addition.
func (rm *RefMap) Count(id int) uint32 {
	c := uint32(rm.bytes[id] & countMask)
	if c == countSatMax {
		rm.overflowMu.Lock()
		if ov := rm.overflow.Get(overflowCount{id: id}); ov != nil {
			c = ov.(overflowCount).count
		}
		rm.overflowMu.Unlock()
	}
	return c
}

// record marks id as seen in the given orientation, bumping its
// saturating count. Safe for concurrent use across different ids; two
// goroutines racing on the same id serialize through a striped mutex.
func (rm *RefMap) record(id int, fwd bool) {
	m := &rm.mu[id%numStripes]
	m.Lock()
	b := rm.bytes[id]
	if fwd {
		b |= fwdFlag
	} else {
		b |= revFlag
	}
	cur := b & countMask
	if cur < countSatMax {
		b = (b &^ countMask) | (cur + 1)
	} else {
		rm.bumpOverflow(id)
	}
	rm.bytes[id] = b
	m.Unlock()
}

func (rm *RefMap) bumpOverflow(id int) {
	rm.overflowMu.Lock()
	key := overflowCount{id: id, count: countSatMax}
	if existing := rm.overflow.Get(key); existing != nil {
		key = existing.(overflowCount)
	}
	key.count++
	rm.overflow.Insert(key)
	rm.overflowMu.Unlock()
}

// Extent is one gap-free reference segment to walk (spec glossary
// "Supercontig / extent"). Start is the extent's absolute reference
// coordinate, used by callers (variants.BuildScaffold) to map a
// scaffold offset back to an absolute position; refmap itself only
// reads Seq.
type Extent struct {
	Name  string
	Start int
	Seq   dna.Slice
}

// Options configures Build's parallel chunking.
type Options struct {
	// ChunkSize is the number of consecutive window-start positions
	// processed per parallel job (spec §4.G "256-base-prestart
	// windows"). 0 selects DefaultChunkSize.
	ChunkSize int
}

// DefaultChunkSize is spec §4.G's default prestart window size.
const DefaultChunkSize = 256

// Pool runs n independent jobs, used to parallelize Build's walk
// across chunks (satisfied by *biosubstrate.Pool).
type Pool interface {
	Each(n int, fn func(i int) error) error
}

// serialPool runs jobs sequentially, for callers (tests, small
// references) that don't need a biosubstrate.Pool.
type serialPool struct{}

func (serialPool) Each(n int, fn func(i int) error) error {
	for i := 0; i < n; i++ {
		if err := fn(i); err != nil {
			return err
		}
	}
	return nil
}

// SerialPool is a Pool that runs every job on the calling goroutine.
var SerialPool Pool = serialPool{}

// Build walks every extent both forward and reverse-complemented,
// recording each read-length window that exactly matches a single
// seqset entry (spec §4.G). windowSize is normally ss.MaxReadLen.
//
// For the forward walk, a window is looked up by its reverse
// complement; for the reverse walk (over each extent's own reverse
// complement), the window is looked up as read — matching spec §4.G's
// literal "(reverse-complemented for forward walk)" qualifier. This
// asymmetry falls out of entries being stored in colex order: a window
// W occurring at reference position p in forward orientation is
// exactly the seqset suffix reached by reading the reference backward
// from p+windowSize, i.e. rev_comp(W)'s entry.
func Build(ss *seqset.Seqset, extents []Extent, windowSize int, pool Pool, opts Options) (*RefMap, error) {
	if windowSize <= 0 {
		return nil, errors.New("refmap: windowSize must be positive")
	}
	if pool == nil {
		pool = SerialPool
	}
	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	rm := New(ss.NumEntries())
	for _, ext := range extents {
		if err := walkOrientation(rm, ss, ext.Seq, windowSize, chunkSize, pool, true); err != nil {
			return nil, errors.Wrapf(err, "refmap: forward walk of extent %q", ext.Name)
		}
		if err := walkOrientation(rm, ss, ext.Seq.RevComp(), windowSize, chunkSize, pool, false); err != nil {
			return nil, errors.Wrapf(err, "refmap: reverse walk of extent %q", ext.Name)
		}
	}
	return rm, nil
}

// walkOrientation slides a windowSize window across seq (already the
// correct strand for this orientation), recording each position whose
// query range collapses to exactly one matching seqset entry.
func walkOrientation(rm *RefMap, ss *seqset.Seqset, seq dna.Slice, windowSize, chunkSize int, pool Pool, forward bool) error {
	n := seq.Len()
	if n < windowSize {
		return nil
	}
	lastStart := n - windowSize
	numChunks := lastStart/chunkSize + 1

	return pool.Each(numChunks, func(chunk int) error {
		start := chunk * chunkSize
		end := start + chunkSize
		if end > lastStart+1 {
			end = lastStart + 1
		}
		for p := start; p < end; p++ {
			window, err := seq.Sub(p, windowSize)
			if err != nil {
				return err
			}
			query := window
			if forward {
				query = window.RevComp()
			}
			r := ss.Find(query)
			if !r.Single() {
				continue
			}
			id := r.Begin
			if ss.Size(id) != windowSize {
				continue
			}
			rm.record(id, forward)
		}
		return nil
	})
}
