package refmap

import (
	"testing"

	"github.com/grailbio/seqset/dna"
	"github.com/grailbio/seqset/seqset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqsetFromReads builds every pop-front-closed suffix of each read,
// sorts them in colex order, and dedups — a minimal from-scratch
// construction for tests that don't need the full partrepo/expand
// pipeline.
func seqsetFromReads(t *testing.T, reads []string, maxReadLen int) *seqset.Seqset {
	t.Helper()
	seen := map[string]bool{}
	var all []*dna.Sequence
	for _, r := range reads {
		full := dna.NewSequenceFromString(r)
		s := full.Slice()
		for start := 0; start < s.Len(); start++ {
			sub, err := s.Sub(start, s.Len()-start)
			require.NoError(t, err)
			str := sub.String()
			if seen[str] {
				continue
			}
			seen[str] = true
			all = append(all, dna.NewSequenceFromString(str))
		}
	}
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			if dna.Compare(all[j].Slice(), all[i].Slice()) == dna.FirstIsLess {
				all[i], all[j] = all[j], all[i]
			}
		}
	}
	ss, err := seqset.FromSequences(all, maxReadLen)
	require.NoError(t, err)
	return ss
}

func TestBuildRecordsMatchingEntry(t *testing.T) {
	// The seqset's only length-9 entry is the read itself. A
	// single-window (extent length == window length) walk's forward
	// query is revcomp(extent), and its reverse-walk window is
	// extent.RevComp() itself — so setting the extent to revcomp(read)
	// makes both orientations resolve to the same exact entry.
	const read = "ACGTACGGT"
	ss := seqsetFromReads(t, []string{read}, len(read))

	extent := dna.NewSequenceFromString(read).RevComp().Slice()
	rm, err := Build(ss, []Extent{{Name: "chr1", Seq: extent}}, len(read), SerialPool, Options{})
	require.NoError(t, err)

	r := ss.Find(dna.NewSequenceFromString(read).Slice())
	require.True(t, r.Single())
	assert.True(t, rm.Fwd(r.Begin))
	assert.True(t, rm.Rev(r.Begin))
	assert.EqualValues(t, 2, rm.Count(r.Begin))
}

func TestBuildSkipsAmbiguousRanges(t *testing.T) {
	ss := seqsetFromReads(t, []string{"ACGT", "ACGA"}, 4)
	// A window of 2 over extent "CG": both walks look up "CG" (its own
	// reverse complement), which matches two entries, CGA and CGT.
	extents := []Extent{{Name: "chr1", Seq: dna.NewSequenceFromString("CG").Slice()}}
	rm, err := Build(ss, extents, 2, SerialPool, Options{})
	require.NoError(t, err)
	for i := 0; i < ss.NumEntries(); i++ {
		assert.EqualValues(t, 0, rm.Count(i))
	}
}

func TestRefMapSaturatingCountOverflow(t *testing.T) {
	rm := New(1)
	for i := 0; i < 100; i++ {
		rm.record(0, true)
	}
	assert.True(t, rm.Fwd(0))
	assert.EqualValues(t, 100, rm.Count(0))
}

func TestDefaultChunkSizeUsedWhenZero(t *testing.T) {
	ss := seqsetFromReads(t, []string{"ACGTACGTAC"}, 10)
	extents := []Extent{{Name: "chr1", Seq: dna.NewSequenceFromString("ACGTACGTAC").Slice()}}
	_, err := Build(ss, extents, 10, nil, Options{ChunkSize: 0})
	require.NoError(t, err)
}
