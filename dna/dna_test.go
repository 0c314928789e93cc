package dna

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseComplement(t *testing.T) {
	assert.Equal(t, T, A.Complement())
	assert.Equal(t, A, T.Complement())
	assert.Equal(t, G, C.Complement())
	assert.Equal(t, C, G.Complement())
}

func TestParseBaseRejectsAmbiguityCodes(t *testing.T) {
	_, err := ParseBase('N')
	assert.Error(t, err)
	assert.False(t, IsBase('N'))
	assert.True(t, IsBase('a'))
}

func TestSequencePushBackAndString(t *testing.T) {
	seq := NewSequence()
	for _, c := range "ACGTACGTAC" {
		b, err := ParseBase(byte(c))
		require.NoError(t, err)
		seq.PushBack(b)
	}
	assert.Equal(t, 10, seq.Len())
	assert.Equal(t, "ACGTACGTAC", seq.String())
}

func TestSequenceFromStringRoundTrip(t *testing.T) {
	for _, s := range []string{"", "A", "AC", "ACG", "ACGT", strings.Repeat("ACGT", 20) + "ACG"} {
		seq := NewSequenceFromString(s)
		assert.Equal(t, len(s), seq.Len())
		assert.Equal(t, s, seq.String())
	}
}

func TestSequenceRevCompIsInvolution(t *testing.T) {
	seq := NewSequenceFromString(strings.Repeat("ACGTTGCA", 10) + "ACGT")
	rc := seq.RevComp()
	rcrc := rc.RevComp()
	assert.True(t, seq.Equal(rcrc))
}

func TestSliceRevCompFlipsWithoutCopy(t *testing.T) {
	seq := NewSequenceFromString("ACGTACGTACGTACGTACGTACGTACGTACGTA")
	s := seq.Slice()
	rc := s.RevComp()
	require.Equal(t, s.Len(), rc.Len())
	for i := 0; i < s.Len(); i++ {
		assert.Equal(t, s.At(s.Len()-1-i).Complement(), rc.At(i))
	}
	assert.Equal(t, s, rc.RevComp())
}

func TestCompareEqualAndPrefix(t *testing.T) {
	a := NewSequenceFromString("ACGTACGT")
	b := NewSequenceFromString("ACGTACGT")
	assert.Equal(t, Equal, Compare(a.Slice(), b.Slice()))

	prefix := NewSequenceFromString("ACGTAC")
	assert.Equal(t, SecondIsPrefix, Compare(a.Slice(), prefix.Slice()))
	assert.Equal(t, FirstIsPrefix, Compare(prefix.Slice(), a.Slice()))
}

func TestCompareOrdering(t *testing.T) {
	lo := NewSequenceFromString("AAAA")
	hi := NewSequenceFromString("AAAT")
	assert.Equal(t, FirstIsLess, Compare(lo.Slice(), hi.Slice()))
	assert.Equal(t, SecondIsLess, Compare(hi.Slice(), lo.Slice()))
}

func TestCompareFlip(t *testing.T) {
	assert.Equal(t, SecondIsLess, FirstIsLess.Flip())
	assert.Equal(t, SecondIsPrefix, FirstIsPrefix.Flip())
	assert.Equal(t, Equal, Equal.Flip())
}

// TestCompareAcrossOffsetsAndLengths exercises the block comparator at
// every (forward|revcomp) x (byte-aligned|off-by-1..3) x (length up to
// three full blocks) combination, since the 28-base block loop and its
// final partial block are where off-by-one errors in the shift/mask
// arithmetic would show up.
func TestCompareAcrossOffsetsAndLengths(t *testing.T) {
	pattern := strings.Repeat("ACGTACGTAC", 10) // 100 bases, aperiodic-ish at block scale
	base := NewSequenceFromString(pattern)

	for _, offset := range []int{0, 1, 2, 3} {
		for _, length := range []int{1, 4, 27, 28, 29, 56, 57, 84} {
			if offset+length > base.Len() {
				continue
			}
			full := base.Slice()
			sub, err := full.Sub(offset, length)
			require.NoError(t, err)

			for _, rc := range []bool{false, true} {
				s := sub
				if rc {
					s = sub.RevComp()
				}
				other := NewSequenceFromString(s.String())
				assert.Equal(t, Equal, Compare(s, other.Slice()),
					"offset=%d length=%d rc=%v", offset, length, rc)
				assert.Equal(t, length, SharedPrefixLength(s, other.Slice()),
					"offset=%d length=%d rc=%v", offset, length, rc)
			}
		}
	}
}

func TestSharedPrefixLengthDivergence(t *testing.T) {
	a := NewSequenceFromString("ACGTACGTACGTACGTACGTACGTACGTACGTAAAA")
	b := NewSequenceFromString("ACGTACGTACGTACGTACGTACGTACGTACGTACCC")
	n := SharedPrefixLength(a.Slice(), b.Slice())
	assert.Equal(t, 33, n)
}

func TestSliceSubOutOfBounds(t *testing.T) {
	seq := NewSequenceFromString("ACGT")
	_, err := seq.Slice().Sub(2, 10)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestShannonEntropy(t *testing.T) {
	homopolymer := NewSequenceFromString(strings.Repeat("A", 20))
	assert.Equal(t, 0.0, homopolymer.Slice().ShannonEntropy())

	balanced := NewSequenceFromString(strings.Repeat("ACGT", 20))
	assert.InDelta(t, 2.0, balanced.Slice().ShannonEntropy(), 1e-9)
}
