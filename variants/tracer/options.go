package tracer

// PairResetPolicy selects when a path's pair-tracking counters reset
// (spec §9 open question: "some pair-distance counters reset on first
// pair and some on every pair; keep both policies behind a feature
// flag until calibrated on real datasets").
type PairResetPolicy int

const (
	// PairResetOnFirst resets pushed-since-pair/branch-count-since-pair
	// only the first time a path observes a mate nearby, staying reset
	// thereafter regardless of further mate sightings.
	PairResetOnFirst PairResetPolicy = iota
	// PairResetOnEvery resets the counters every time a path observes a
	// mate nearby (the plain reading of spec §4.H.5's "when a read id
	// has a mate that has been seen ... the counters reset").
	PairResetOnEvery
)

// Options configures Trace's cost model, search budget, and the
// calibration-pending feature flags of spec §9.
type Options struct {
	// BaseCost is charged per base walked, regardless of branching
	// (spec §4.H.3 "base cost 1x").
	BaseCost float64

	// AmbiguousBranchCost is added, on top of BaseCost, for each base of
	// a step that produced more than one viable extension (spec
	// §4.H.3's "ambiguous branch" cost).
	AmbiguousBranchCost float64

	// AmbiguousBaseCostRejoin and AmbiguousBaseCostDeadEnd are the two
	// denominators spec §9 says differ subtly between a path that ends
	// in a rejoin versus one that dead-ends; kept as separate fields
	// rather than guessed at a single shared constant (see DESIGN.md's
	// Open Question decision).
	AmbiguousBaseCostRejoin  float64
	AmbiguousBaseCostDeadEnd float64

	// DecreaseOverlapCost is the per-base cost of dropping a step's
	// required overlap to keep extending (spec §4.H.1/§4.H.3). Trace does
	// not read it: extendPath never lowers the overlap, so a path that
	// cannot extend at full overlap ends there.
	DecreaseOverlapCost float64

	// TraverseRefCost is charged, in addition to BaseCost, when a step
	// lands on a single full-length seqset entry (spec §4.H.3). stepCost
	// does not check that entry against the reference, so the charge
	// applies whether or not the step matches the reference.
	TraverseRefCost float64

	// RejoinLocalCost is the fixed cost of emitting a rejoin candidate,
	// independent of its deviation from the ideal position (spec
	// §4.H.4).
	RejoinLocalCost float64

	// SizeChangeCostPerBase scales a rejoin's cost by its deviation (in
	// bases) from the ideal rejoin position start_offset+bases_walked
	// (spec §4.H.4).
	SizeChangeCostPerBase float64

	// DeadEndCost is the fixed cost charged when emitting an
	// anchor-dropped assembly for a path that ran out of extensions
	// (spec §4.H, final paragraph).
	DeadEndCost float64

	// AnchorDropScoreBonus is subtracted from a dead-end assembly's
	// cost (i.e. it is a bonus, per spec §4.H's "anchor-drop score
	// bonus") — this module keeps it as a subtracted cost term rather
	// than a separately-scaled score to stay in the same units as every
	// other Options field.
	AnchorDropScoreBonus float64

	// PairUsedCost is charged once a path has consumed pair-awareness
	// (crossed the reset point without exceeding its budget); present
	// so pair-assisted paths aren't unconditionally free (spec §4.H.5).
	PairUsedCost float64

	// MaxCost caps a path's accumulated cost; a path exceeding it is
	// abandoned rather than pushed back onto the heap (spec §4.H,
	// "Cap total cost with max_cost").
	MaxCost float64

	// MaxRejoins bounds the number of rejoin candidates kept; once full,
	// a worse-costing candidate is dropped in favor of fuller ones
	// (spec §4.H "Top max_rejoins by total cost become emitted
	// assemblies").
	MaxRejoins int

	// MaxDeadEnds bounds the number of anchor-dropped dead-end
	// candidates kept (spec §4.H "bounded set of dead-end rejoins").
	MaxDeadEnds int

	// MaxPairDistance is the half-width, in bases, of the pair-sighting
	// window maintained by pairWindow (spec §4.H.5).
	MaxPairDistance int

	// MaxUnpairedBases and MaxUnpairedBranches abort a path once it
	// accumulates this many bases walked, or branch points taken,
	// since its last pair reset (spec §4.H.5 "accumulating too many
	// unpaired bases or too many branches without a pair aborts the
	// path").
	MaxUnpairedBases    int
	MaxUnpairedBranches int

	// MinOverlap is the minimum shared-prefix length a pushed base must
	// retain (spec §4.H.1). Trace does not read it; see
	// DecreaseOverlapCost.
	MinOverlap int

	// MaxSteps bounds the total number of heap pops per scaffold
	// position searched, the "overall step budget" of spec §4.H's
	// termination conditions.
	MaxSteps int

	// PairResetPolicy selects which of the two calibration-pending
	// reset behaviors a path's pair counters follow.
	PairResetPolicy PairResetPolicy
}

// DefaultOptions returns reasonable starting values for every cost and
// budget field, in the same spirit as fusion.DefaultOpts: round numbers
// picked to exercise every code path, not values calibrated against
// real sequencing data (spec §9: "do not guess ... expose as a
// parameter and measure").
var DefaultOptions = Options{
	BaseCost:                 1.0,
	AmbiguousBranchCost:      2.0,
	AmbiguousBaseCostRejoin:  1.0,
	AmbiguousBaseCostDeadEnd: 1.5,
	DecreaseOverlapCost:      3.0,
	TraverseRefCost:          0.1,
	RejoinLocalCost:          1.0,
	SizeChangeCostPerBase:    0.5,
	DeadEndCost:              5.0,
	AnchorDropScoreBonus:     2.0,
	PairUsedCost:             0.5,
	MaxCost:                  1000.0,
	MaxRejoins:               8,
	MaxDeadEnds:              8,
	MaxPairDistance:          1000,
	MaxUnpairedBases:         500,
	MaxUnpairedBranches:      8,
	MinOverlap:               20,
	MaxSteps:                 200000,
	PairResetPolicy:          PairResetOnEvery,
}
