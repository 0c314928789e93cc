package align

import (
	"testing"

	"github.com/grailbio/seqset/dna"
	"github.com/grailbio/seqset/variants"
	"github.com/grailbio/seqset/variants/tracer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitWithNoVariantsReturnsWholeAsMatch(t *testing.T) {
	a := tracer.Assembly{
		Seq:   dna.NewSequenceFromString("ACGTACGT"),
		Left:  variants.RefCoord{Scaffold: "chr1", Offset: 10},
		Right: variants.RefCoord{Scaffold: "chr1", Offset: 18},
	}
	out := Split(a, tracer.NewIDCounter())
	require.Len(t, out, 1)
	assert.True(t, out[0].MatchesReference)
	assert.Nil(t, out[0].Variants)
}

func TestSplitEmitsRefSpansAroundEachVariant(t *testing.T) {
	seq := "AAAAATTTTT" // 5-base ref-matching prefix, 5-base substitution region collapsed to one variant below
	a := tracer.Assembly{
		Seq:           dna.NewSequenceFromString(seq),
		Left:           variants.RefCoord{Scaffold: "chr1", Offset: 100},
		Right:          variants.RefCoord{Scaffold: "chr1", Offset: 110},
		LeftAnchorLen:  0,
		RightAnchorLen: 0,
		Variants: []tracer.AlignedVariant{
			{
				Bounds: variants.RefCoordRange{
					Start: variants.RefCoord{Scaffold: "chr1", Offset: 105},
					Limit: variants.RefCoord{Scaffold: "chr1", Offset: 110},
				},
				Replacement: dna.NewSequenceFromString("TTTTT"),
			},
		},
	}
	ids := tracer.NewIDCounter()
	out := Split(a, ids)
	require.Len(t, out, 2)

	assert.True(t, out[0].MatchesReference)
	assert.Equal(t, 100, out[0].Left.Offset)
	assert.Equal(t, 105, out[0].Right.Offset)
	assert.Equal(t, "AAAAA", out[0].Seq.String())

	assert.False(t, out[1].MatchesReference)
	assert.Equal(t, 105, out[1].Left.Offset)
	assert.Equal(t, 110, out[1].Right.Offset)
	assert.Equal(t, "TTTTT", out[1].Seq.String())

	assert.NotEqual(t, out[0].ID, out[1].ID)
}
