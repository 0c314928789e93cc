package align

import (
	"github.com/grailbio/seqset/dna"
	"github.com/grailbio/seqset/variants"
	"github.com/grailbio/seqset/variants/tracer"
)

// Split consumes an already-Align'd assembly and emits one assembly
// per AlignedVariant plus one reference-matching assembly for each
// intervening reference span, each carrying correct absolute
// reference offsets and a matches_reference flag (spec §4.I.4). This
// is the final output stage of the variant pipeline.
func Split(a tracer.Assembly, ids *tracer.IDCounter) []tracer.Assembly {
	if len(a.Variants) == 0 {
		whole := a
		whole.MatchesReference = true
		whole.Variants = nil
		return []tracer.Assembly{whole}
	}

	scaffold := a.Left.Scaffold
	out := make([]tracer.Assembly, 0, len(a.Variants)*2+1)
	seq := a.Seq.Slice()
	seqPos := a.LeftAnchorLen
	refPos := a.Left.Offset + a.LeftAnchorLen

	emitRefSpan := func(refStart, refLimit int) {
		if refLimit <= refStart {
			return
		}
		length := refLimit - refStart
		sub, err := seq.Sub(seqPos, length)
		if err != nil {
			return
		}
		refSeq := dna.NewSequence()
		refSeq.PushBackSlice(sub)
		out = append(out, tracer.Assembly{
			Seq:              refSeq,
			Left:             variants.RefCoord{Scaffold: scaffold, Offset: refStart},
			Right:            variants.RefCoord{Scaffold: scaffold, Offset: refLimit},
			MatchesReference: true,
		})
		seqPos += length
	}

	for _, v := range a.Variants {
		emitRefSpan(refPos, v.Bounds.Start.Offset)
		refPos = v.Bounds.Start.Offset

		replLen := 0
		if v.Replacement != nil {
			replLen = v.Replacement.Len()
		}
		out = append(out, tracer.Assembly{
			Seq:              v.Replacement,
			Left:             v.Bounds.Start,
			Right:            v.Bounds.Limit,
			MatchesReference: false,
			ReadIDs:          append([]int(nil), a.ReadIDs...),
		})
		seqPos += replLen
		refPos = v.Bounds.Limit.Offset
	}

	refEnd := a.Right.Offset - a.RightAnchorLen
	emitRefSpan(refPos, refEnd)

	for i := range out {
		out[i].ID = ids.Take()
	}
	return out
}
