package partrepo

import (
	"github.com/grailbio/seqset/dna"
	"github.com/grailbio/seqset/seqset/reposeq"
)

// WriteSuffixes writes fwdSuffixes forward suffixes and rcSuffixes
// reverse-complement suffixes of seq into wp, routing each suffix to
// the partition its own first Depth bases select (spec §4.C: "the
// caller declares fwd_suffixes and rc_suffixes counts ... the store
// enumerates those suffixes in place").
//
// bufferFor must return a stable *reposeq.EntryBuffer for a given
// partition index, reused across calls from the same goroutine — a
// caller processing many sequences typically keeps one map[int]*reposeq.EntryBuffer
// for the lifetime of its worker and passes a closure over it here.
func WriteSuffixes(wp *WritePass, seq dna.Slice, fwdSuffixes, rcSuffixes, depth int, bufferFor func(idx int) *reposeq.EntryBuffer) error {
	for i := 0; i < fwdSuffixes && i < seq.Len(); i++ {
		sub, err := seq.Sub(i, seq.Len()-i)
		if err != nil {
			return err
		}
		if err := writeOneSuffix(wp, sub, depth, bufferFor); err != nil {
			return err
		}
	}
	for i := 0; i < rcSuffixes && i < seq.Len(); i++ {
		sub, err := seq.Sub(0, seq.Len()-i)
		if err != nil {
			return err
		}
		if err := writeOneSuffix(wp, sub.RevComp(), depth, bufferFor); err != nil {
			return err
		}
	}
	return nil
}

func writeOneSuffix(wp *WritePass, s dna.Slice, depth int, bufferFor func(int) *reposeq.EntryBuffer) error {
	offset, err := wp.WriteSeq(s)
	if err != nil {
		return err
	}
	idx := PartitionIndex(s, depth)
	return bufferFor(idx).WriteEntry(reposeq.NewEntryFromSlice(s, offset))
}
