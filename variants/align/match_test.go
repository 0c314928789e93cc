package align

import (
	"testing"

	"github.com/grailbio/seqset/dna"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slice(s string) dna.Slice {
	return dna.NewSequenceFromString(s).Slice()
}

func TestEqualSlices(t *testing.T) {
	a := slice("ACGTACGT")
	b := slice("TTACGTTT")
	assert.True(t, equalSlices(a, 0, b, 2, 4))
	assert.False(t, equalSlices(a, 0, b, 0, 4))
}

func TestFindMiddleMatchFindsSharedSubstring(t *testing.T) {
	varSeq := slice("AAACGTAAA")
	refSub := slice("TTTCGTTTT")
	c, ok := findMiddleMatch(varSeq, refSub, 1)
	require.True(t, ok)
	assert.Equal(t, 3, c.varStart)
	assert.Equal(t, 3, c.refStart)
	assert.Equal(t, 3, c.length)
}

func TestFindMiddleMatchNoneAboveMinMatch(t *testing.T) {
	varSeq := slice("AAAA")
	refSub := slice("TTTT")
	_, ok := findMiddleMatch(varSeq, refSub, 1)
	assert.False(t, ok)
}

func TestFindEndAnchoredMatchLeftAnchored(t *testing.T) {
	varSeq := slice("ACGTTTTTTT")
	refSub := slice("ACGGGGGGGG")
	c, ok := findEndAnchoredMatch(varSeq, refSub, 4, 2)
	require.True(t, ok)
	assert.True(t, c.leftAnchored)
	assert.Equal(t, 0, c.varStart)
	assert.Equal(t, 0, c.refStart)
}

func TestFindEndAnchoredMatchRightAnchored(t *testing.T) {
	varSeq := slice("TTTTTTTACG")
	refSub := slice("GGGGGGGACG")
	c, ok := findEndAnchoredMatch(varSeq, refSub, 4, 2)
	require.True(t, ok)
	assert.False(t, c.leftAnchored)
	assert.Equal(t, 7, c.varStart)
	assert.Equal(t, 7, c.refStart)
}
