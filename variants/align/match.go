package align

import "github.com/grailbio/seqset/dna"

// matchCandidate is one exact k-mer match found between a variant
// region and its reference sub-region during findBiggestMatch.
type matchCandidate struct {
	varStart, refStart, length int
	leftAnchored               bool // only meaningful for end-anchored candidates
}

// equalSlices reports whether the length-length windows of a starting
// at aStart and b starting at bStart are identical, base for base.
// Spec §4.I.2 calls for a k-mer-hash probe (capped at 30 bases) before
// a base-by-base verification for longer matches; this port always
// does the base-by-base comparison directly (see DESIGN.md's align
// entry) since assembly-scale inputs make the hash probe's benefit
// negligible here.
func equalSlices(a dna.Slice, aStart int, b dna.Slice, bStart, length int) bool {
	for i := 0; i < length; i++ {
		if a.At(aStart+i) != b.At(bStart+i) {
			return false
		}
	}
	return true
}

// findMiddleMatch searches for the largest k in [minMatch,
// min(|varSeq|,|refSub|)] for which some position pair matches
// exactly, preferring (via distSet) the candidate whose ref-minus-var
// offset is closest to the pair's expected center alignment (spec
// §4.I.2).
func findMiddleMatch(varSeq, refSub dna.Slice, minMatch int) (matchCandidate, bool) {
	maxK := varSeq.Len()
	if refSub.Len() < maxK {
		maxK = refSub.Len()
	}
	for k := maxK; k >= minMatch; k-- {
		var ds distSet
		byOffset := map[int][]matchCandidate{}
		for vs := 0; vs+k <= varSeq.Len(); vs++ {
			for rs := 0; rs+k <= refSub.Len(); rs++ {
				if !equalSlices(varSeq, vs, refSub, rs, k) {
					continue
				}
				diff := rs - vs
				ds.insert(diff)
				byOffset[diff] = append(byOffset[diff], matchCandidate{varStart: vs, refStart: rs, length: k})
			}
		}
		if ds.empty() {
			continue
		}
		ideal := (refSub.Len() - varSeq.Len()) / 2
		chosen := ideal - ds.closestDistanceTo(ideal)
		cands := byOffset[chosen]
		best := cands[0]
		for _, c := range cands[1:] {
			if c.varStart < best.varStart {
				best = c
			}
		}
		return best, true
	}
	return matchCandidate{}, false
}

// findEndAnchoredMatch looks for a match anchored to the shared start
// or the shared end of (varSeq, refSub), searching match sizes
// decreasing from maxK to 1 and positions within window bases of the
// relevant end (spec §4.I.2 "try end-anchored matches").
func findEndAnchoredMatch(varSeq, refSub dna.Slice, maxK, window int) (matchCandidate, bool) {
	if c, ok := searchAnchored(varSeq, refSub, maxK, window, true); ok {
		return c, true
	}
	return searchAnchored(varSeq, refSub, maxK, window, false)
}

func searchAnchored(varSeq, refSub dna.Slice, maxK, window int, left bool) (matchCandidate, bool) {
	for k := maxK; k >= 1; k-- {
		if k > varSeq.Len() || k > refSub.Len() {
			continue
		}
		if left {
			vsMax := min(window, varSeq.Len()-k)
			rsMax := min(window, refSub.Len()-k)
			for vs := 0; vs <= vsMax; vs++ {
				for rs := 0; rs <= rsMax; rs++ {
					if equalSlices(varSeq, vs, refSub, rs, k) {
						return matchCandidate{varStart: vs, refStart: rs, length: k, leftAnchored: true}, true
					}
				}
			}
			continue
		}
		vsMin := max(0, varSeq.Len()-k-window)
		rsMin := max(0, refSub.Len()-k-window)
		for vs := varSeq.Len() - k; vs >= vsMin; vs-- {
			for rs := refSub.Len() - k; rs >= rsMin; rs-- {
				if equalSlices(varSeq, vs, refSub, rs, k) {
					return matchCandidate{varStart: vs, refStart: rs, length: k, leftAnchored: false}, true
				}
			}
		}
	}
	return matchCandidate{}, false
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
