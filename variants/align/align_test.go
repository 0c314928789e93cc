package align

import (
	"testing"

	"github.com/grailbio/seqset/dna"
	"github.com/grailbio/seqset/variants"
	"github.com/grailbio/seqset/variants/tracer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssembly(scaffold string, left, right int, seq string) tracer.Assembly {
	s := dna.NewSequenceFromString(seq)
	return tracer.Assembly{
		Seq:   s,
		Left:  variants.RefCoord{Scaffold: scaffold, Offset: left},
		Right: variants.RefCoord{Scaffold: scaffold, Offset: right},
	}
}

func TestAlignRejectsDroppedAnchor(t *testing.T) {
	a := newAssembly("chr1", 0, 10, "ACGTACGTAC")
	a.Right = variants.RefCoord{Scaffold: "chr1", Offset: variants.AnchorDropped}
	_, err := Align(a, dna.NewSequenceFromString("ACGTACGTAC").Slice(), DefaultOptions)
	assert.Error(t, err)
}

func TestAlignExactMatchHasNoVariants(t *testing.T) {
	seq := "ACGTACGTACGTACGTACGT"
	a := newAssembly("chr1", 100, 100+len(seq), seq)
	ref := dna.NewSequenceFromString(seq).Slice()
	out, err := Align(a, ref, DefaultOptions)
	require.NoError(t, err)
	assert.True(t, out.MatchesReference)
	assert.Empty(t, out.Variants)
	assert.Equal(t, len(seq), out.LeftAnchorLen)
}

func TestAlignFindsSingleBaseSubstitution(t *testing.T) {
	ref := "AAAAAAAAAACGTGGGGGGGGGG" // 10 A's, CGT, 10 G's
	alt := "AAAAAAAAAACATGGGGGGGGGG" // single substitution G->A at the middle base
	a := newAssembly("chr1", 1000, 1000+len(ref), alt)
	out, err := Align(a, dna.NewSequenceFromString(ref).Slice(), DefaultOptions)
	require.NoError(t, err)
	assert.False(t, out.MatchesReference)
	require.Len(t, out.Variants, 1)

	v := out.Variants[0]
	assert.Equal(t, "chr1", v.Bounds.Start.Scaffold)
	assert.Equal(t, 1, v.Bounds.Limit.Offset-v.Bounds.Start.Offset)
	assert.Equal(t, "A", v.Replacement.String())
	assert.Equal(t, 1000+11, v.Bounds.Start.Offset)
}
