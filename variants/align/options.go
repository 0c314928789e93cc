package align

// Options configures the match-search clamps of spec §4.I.2.
type Options struct {
	// RefAlignFactor divides the larger of the variant/reference region
	// length to derive the minimum acceptable match size (spec §4.I.2
	// "min_match = max(|variant|,|ref|) / ref_align_factor").
	RefAlignFactor int

	// MaxRefAlignBases upper-bounds both the minimum match size and the
	// end-anchored search window width (spec §4.I.2's "clamped into
	// [1, max_ref_align_bases]").
	MaxRefAlignBases int

	// MaxKmerVerify is the largest match size verified via a cheap
	// k-mer-sized probe before falling back to base-by-base comparison
	// (spec §4.I.2 "smaller of k or 30, then verified base-by-base for
	// longer"). This implementation always compares base-by-base (see
	// DESIGN.md's align entry), so MaxKmerVerify is kept only so a
	// future hashing fast path has a named clamp to read.
	MaxKmerVerify int
}

// DefaultOptions are reasonable starting clamps, not values calibrated
// against real data (spec §9's "do not guess ... expose as a parameter
// and measure" applies equally here).
var DefaultOptions = Options{
	RefAlignFactor:   4,
	MaxRefAlignBases: 1000,
	MaxKmerVerify:    30,
}

func clampMinMatch(varLen, refLen int, opts Options) int {
	n := varLen
	if refLen > n {
		n = refLen
	}
	m := n / opts.RefAlignFactor
	if m < 1 {
		m = 1
	}
	if m > opts.MaxRefAlignBases {
		m = opts.MaxRefAlignBases
	}
	return m
}
