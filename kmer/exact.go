package kmer

import (
	"sync"

	farm "github.com/dgryski/go-farm"
	"github.com/biogo/store/llrb"
)

// exactEntry is one row of the exact-count hash table (spec §3.4):
// the canonical kmer plus saturating forward/reverse counts and the
// two "starts a read" flags.
type exactEntry struct {
	kmer      Kmer
	valid     bool
	fwd, rev  uint8
	fwdStarts bool
	revStarts bool
}

// overflowCounts holds the fwd/rev occurrences beyond 255 for a kmer
// whose 8-bit in-table counters saturated at 255 (extract adds them to
// the in-table 255 to get the full count), keyed into an
// llrb.Tree the way bampair.ShardInfo keys its own sparse overflow map
// (spec §3.4 "side overflow table", §3.5 and §5's CAS-guarded
// saturating-counter pattern).
type overflowCounts struct {
	kmer     Kmer
	fwd, rev uint32
}

// Compare implements llrb.Comparable.
func (o overflowCounts) Compare(c llrb.Comparable) int {
	other := c.(overflowCounts)
	switch {
	case o.kmer < other.kmer:
		return -1
	case o.kmer > other.kmer:
		return 1
	default:
		return 0
	}
}

const satMax = 255

// exactTable is one open-addressing hash table over canonical kmers,
// sized up front for a fixed candidate-set capacity (spec §4.E phase
// 2: "allocate an open-addressing hash table keyed by canonical
// kmer").
type exactTable struct {
	entries []exactEntry
	mask    uint64

	mu       sync.Mutex
	overflow llrb.Tree
}

func newExactTable(capacityHint int, loadFactor float64) *exactTable {
	size := 1
	minSize := int(float64(capacityHint+1) / loadFactor)
	if minSize < 1 {
		minSize = 1
	}
	for size < minSize {
		size *= 2
	}
	return &exactTable{entries: make([]exactEntry, size), mask: uint64(size - 1)}
}

func (t *exactTable) find(km Kmer) int {
	h := farm.Hash64WithSeed(nil, uint64(km))
	idx := h & t.mask
	for {
		e := &t.entries[idx]
		if !e.valid || e.kmer == km {
			return int(idx)
		}
		idx = (idx + 1) & t.mask
	}
}

// Add records one occurrence of km in the given orientation (fwd=true
// for the kmer as observed; false if this occurrence was the
// canonicalized form of its reverse complement), optionally marking
// that this occurrence starts its read.
func (t *exactTable) Add(km Kmer, fwd bool, startsRead bool) {
	idx := t.find(km)
	e := &t.entries[idx]
	if !e.valid {
		e.valid = true
		e.kmer = km
	}
	t.bump(e, fwd, startsRead)
}

func (t *exactTable) bump(e *exactEntry, fwd bool, startsRead bool) {
	if fwd {
		if e.fwd < satMax {
			e.fwd++
		} else {
			t.bumpOverflow(e.kmer, true)
		}
		if startsRead {
			e.fwdStarts = true
		}
	} else {
		if e.rev < satMax {
			e.rev++
		} else {
			t.bumpOverflow(e.kmer, false)
		}
		if startsRead {
			e.revStarts = true
		}
	}
}

func (t *exactTable) bumpOverflow(km Kmer, fwd bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	key := overflowCounts{kmer: km}
	if existing := t.overflow.Get(key); existing != nil {
		key = existing.(overflowCounts)
	}
	if fwd {
		key.fwd++
	} else {
		key.rev++
	}
	t.overflow.Insert(key)
}

// KmerCount is one emitted row of ExtractExactCounts (spec §4.E's
// final "(kmer, fwd_count, rev_count, fwd_flag, rev_flag)").
type KmerCount struct {
	Kmer          Kmer
	FwdCount      uint32
	RevCount      uint32
	FwdStartsRead bool
	RevStartsRead bool
}

// extract walks every valid table row whose total count reaches
// minCount, combining the saturated in-table count with any
// overflow-table addition.
func (t *exactTable) extract(minCount int) []KmerCount {
	var out []KmerCount
	for i := range t.entries {
		e := &t.entries[i]
		if !e.valid {
			continue
		}
		fwd := uint32(e.fwd)
		rev := uint32(e.rev)
		if e.fwd == satMax || e.rev == satMax {
			if ov := t.overflow.Get(overflowCounts{kmer: e.kmer}); ov != nil {
				o := ov.(overflowCounts)
				fwd += o.fwd
				rev += o.rev
			}
		}
		if int(fwd+rev) < minCount {
			continue
		}
		out = append(out, KmerCount{
			Kmer:          e.kmer,
			FwdCount:      fwd,
			RevCount:      rev,
			FwdStartsRead: e.fwdStarts,
			RevStartsRead: e.revStarts,
		})
	}
	return out
}
