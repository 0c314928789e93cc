package kmer

import (
	"math/rand"
	"testing"

	"github.com/grailbio/seqset/dna"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeRejectsOutOfRangeLength(t *testing.T) {
	_, err := Encode(dna.NewSequenceFromString("").Slice())
	assert.Error(t, err)

	long := make([]byte, MaxK+1)
	for i := range long {
		long[i] = 'A'
	}
	_, err = Encode(dna.NewSequenceFromString(string(long)).Slice())
	assert.Error(t, err)
}

func TestRevCompInvolution(t *testing.T) {
	seq := dna.NewSequenceFromString("ACGTACGTA")
	km, err := Encode(seq.Slice())
	require.NoError(t, err)
	k := seq.Len()
	assert.Equal(t, km, RevComp(RevComp(km, k), k))
}

func TestCanonicalIsLexicographicMin(t *testing.T) {
	fwd, err := Encode(dna.NewSequenceFromString("ACG").Slice())
	require.NoError(t, err)
	rc, err := Encode(dna.NewSequenceFromString("CGT").Slice())
	require.NoError(t, err)
	require.Equal(t, rc, RevComp(fwd, 3))

	canonFwd, flippedFwd := Canonical(fwd, 3)
	canonRC, flippedRC := Canonical(rc, 3)
	assert.Equal(t, canonFwd, canonRC)
	assert.False(t, flippedFwd)
	assert.True(t, flippedRC)
}

func TestKmerStringRoundTrip(t *testing.T) {
	for _, s := range []string{"A", "AC", "ACGT", "ACGTACGTACG"} {
		seq := dna.NewSequenceFromString(s)
		km, err := Encode(seq.Slice())
		require.NoError(t, err)
		assert.Equal(t, s, km.String(len(s)))
	}
}

// countGroundTruth slides a length-k window across read and tallies
// canonical-kmer occurrences with a plain map, independent of Counter.
func countGroundTruth(read string, k int) map[Kmer]int {
	out := map[Kmer]int{}
	seq := dna.NewSequenceFromString(read)
	s := seq.Slice()
	for i := 0; i+k <= s.Len(); i++ {
		sub, err := s.Sub(i, k)
		if err != nil {
			continue
		}
		km, err := Encode(sub)
		if err != nil {
			continue
		}
		canon, _ := Canonical(km, k)
		out[canon]++
	}
	return out
}

func TestCounterTwoPhaseMatchesGroundTruth(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	bases := "ACGT"
	buf := make([]byte, 2000)
	for i := range buf {
		buf[i] = bases[rnd.Intn(4)]
	}
	read := string(buf)

	const k = 11
	truth := countGroundTruth(read, k)

	opts := Options{K: k, MinCount: 1, Partitions: 8}
	c := NewCounter(opts)
	seq := dna.NewSequenceFromString(read)
	c.AddProb(seq.Slice())
	c.CloseProbPass(len(truth))
	c.AddExact(seq.Slice())

	got := map[Kmer]int{}
	for _, kc := range c.ExtractExactCounts() {
		got[kc.Kmer] = int(kc.FwdCount + kc.RevCount)
	}
	for km, want := range truth {
		assert.Equal(t, want, got[km], "kmer %s", km.String(k))
	}
}

func TestCounterMinCountFiltersRareKmers(t *testing.T) {
	const k = 4
	opts := Options{K: k, MinCount: 2, Partitions: 2}
	c := NewCounter(opts)

	seq := dna.NewSequenceFromString("AAAAA") // AAAA occurs twice
	c.AddProb(seq.Slice())
	c.CloseProbPass(4)
	c.AddExact(seq.Slice())

	counts := c.ExtractExactCounts()
	require.Len(t, counts, 1)
	assert.EqualValues(t, 2, counts[0].FwdCount+counts[0].RevCount)
}

func TestProbCountersSaturateAtThree(t *testing.T) {
	p := newProbCounters(4, 1<<12)
	km := Kmer(12345)
	for i := 0; i < 10; i++ {
		p.Increment(km)
	}
	assert.EqualValues(t, 3, p.Get(km))
	assert.True(t, p.Candidate(km, 3))
	assert.False(t, p.Candidate(Kmer(999999), 1))
}

func TestExactTableOverflow(t *testing.T) {
	tbl := newExactTable(4, 0.5)
	km := Kmer(42)
	for i := 0; i < 300; i++ {
		tbl.Add(km, true, false)
	}
	rows := tbl.extract(1)
	require.Len(t, rows, 1)
	assert.EqualValues(t, 300, rows[0].FwdCount)
}

func TestOptionsValidate(t *testing.T) {
	assert.NoError(t, Options{K: 21, Partitions: 1, MinCount: 1}.Validate())
	assert.Error(t, Options{K: 0, Partitions: 1, MinCount: 1}.Validate())
	assert.Error(t, Options{K: MaxK + 1, Partitions: 1, MinCount: 1}.Validate())
	assert.Error(t, Options{K: 21, Partitions: 0, MinCount: 1}.Validate())
	assert.Error(t, Options{K: 21, Partitions: 1, MinCount: 0}.Validate())
}
