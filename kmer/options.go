package kmer

import "github.com/pkg/errors"

// MaxK is the largest k-mer size representable in one 64-bit word at
// 2 bits/base (spec §3.4).
const MaxK = 31

// Options configures a Counter, mirroring the documented-default style
// of fusion.Opts/fusion.DefaultOpts: every field names the spec
// section it implements and its default.
type Options struct {
	// K is the k-mer length, 1 <= K <= MaxK (spec §3.4).
	K int

	// MinCount is the minimum (fwd+rev) occurrence count a k-mer must
	// reach to be emitted by ExtractExactCounts (spec §4.E "min-count
	// threshold"). The probabilistic first pass only distinguishes
	// counts up to 3 (its counters saturate there, spec §4.E); a
	// MinCount above 3 is honored exactly in the exact phase but the
	// probabilistic phase can only narrow to "occurred more than
	// twice", trading a larger phase-2 candidate set for not needing a
	// wider first-pass counter.
	MinCount int

	// Partitions is the number of hash-partitioned shards the
	// probabilistic and exact phases are split across (spec §4.E
	// default 256).
	Partitions int

	// ProbBits is the total number of counter bits across all
	// partitions, two per 2-bit counter slot (spec §4.E "total bit count
	// is tuned to fit in configured RAM, clamped to a minimum"). 0
	// selects 2 * DefaultProbSlotsPerPartition * Partitions bits, i.e.
	// DefaultProbSlotsPerPartition slots per partition.
	ProbBits int64

	// ExactTableLoadFactor bounds the open-addressing exact table's
	// fill ratio; 0 selects DefaultExactLoadFactor.
	ExactTableLoadFactor float64

	// MinEntropy, when > 0, causes AddProb/AddExact to skip reads whose
	// dna.Slice.ShannonEntropy is below this threshold — a
	// supplemented feature from the original's fast_read_correct
	// low-complexity filter (see SPEC_FULL.md §4.11, "Supplemented
	// features").
	MinEntropy float64
}

// DefaultPartitions is spec §4.E's default partition count.
const DefaultPartitions = 256

// DefaultProbSlotsPerPartition is the per-partition floor on
// probabilistic-counter slots when Options.ProbBits is left at 0,
// chosen so that even a small test corpus gets a low collision rate.
const DefaultProbSlotsPerPartition = 1 << 16

// DefaultExactLoadFactor is the default open-addressing fill ratio.
const DefaultExactLoadFactor = 0.5

// Validate checks o for the input-validation errors named in spec §7
// ("kmer size > 31, partition depth out of range").
func (o Options) Validate() error {
	if o.K < 1 || o.K > MaxK {
		return errors.Errorf("kmer: K=%d out of range [1,%d]", o.K, MaxK)
	}
	if o.Partitions < 1 {
		return errors.Errorf("kmer: Partitions must be >= 1, got %d", o.Partitions)
	}
	if o.MinCount < 1 {
		return errors.Errorf("kmer: MinCount must be >= 1, got %d", o.MinCount)
	}
	return nil
}

// withDefaults returns a copy of o with zero-valued tunables replaced
// by their documented defaults.
func (o Options) withDefaults() Options {
	if o.Partitions == 0 {
		o.Partitions = DefaultPartitions
	}
	if o.ProbBits == 0 {
		o.ProbBits = int64(o.Partitions) * DefaultProbSlotsPerPartition * 2
	}
	if o.ExactTableLoadFactor == 0 {
		o.ExactTableLoadFactor = DefaultExactLoadFactor
	}
	return o
}
