package kmer

import "github.com/grailbio/seqset/dna"

// Counter runs the two-phase k-mer count of spec §4.E: AddProb walks
// every read during phase 1 (probabilistic, 2-bit saturating), then
// after CloseProbPass the caller re-walks the same reads through
// AddExact for phase 2 (exact counting restricted to phase-1
// candidates).
type Counter struct {
	opts Options
	prob *probCounters

	exactOpen bool
	exact     *exactTable
}

// NewCounter allocates a Counter for the given (validated) options.
func NewCounter(opts Options) *Counter {
	opts = opts.withDefaults()
	return &Counter{opts: opts, prob: newProbCounters(opts.Partitions, opts.ProbBits)}
}

// AddProb walks read's overlapping K-mers, canonicalizing each and
// bumping its phase-1 saturating counter. A window that spans an
// invalid base (surfaced by the caller as a short sub-slice boundary,
// since dna.Slice itself can't hold 'N') simply isn't walked across —
// callers ingesting raw ASCII should split on non-ACGT runs and call
// AddProb once per resulting clean sub-read, which is exactly the
// "kmer-in-progress reset" behavior of spec §7.
func (c *Counter) AddProb(read dna.Slice) {
	c.forEachKmer(read, func(km Kmer, _ bool, _ bool) {
		canon, _ := Canonical(km, c.opts.K)
		if c.opts.MinEntropy <= 0 || read.ShannonEntropy() >= c.opts.MinEntropy {
			c.prob.Increment(canon)
		}
	})
}

// CloseProbPass allocates the exact-count table, sized from
// estimatedCandidates and Options.ExactTableLoadFactor, ready for
// AddExact calls. The table does not grow, so estimatedCandidates must
// not be below the number of distinct canonical kmers that will reach
// AddExact's table; it should be the caller's estimate of how many
// distinct canonical kmers will pass Candidate (spec §4.E: "estimate
// ... how many kmers will survive the filter, and use that to size
// phase 2").
func (c *Counter) CloseProbPass(estimatedCandidates int) {
	c.exact = newExactTable(estimatedCandidates, c.opts.ExactTableLoadFactor)
	c.exactOpen = true
}

// AddExact re-walks read's k-mers, adding only those whose canonical
// form passed the phase-1 filter to the exact table.
func (c *Counter) AddExact(read dna.Slice) {
	if !c.exactOpen {
		return
	}
	if c.opts.MinEntropy > 0 && read.ShannonEntropy() < c.opts.MinEntropy {
		return
	}
	c.forEachKmer(read, func(km Kmer, isFirstWindow bool, _ bool) {
		canon, flipped := Canonical(km, c.opts.K)
		if !c.prob.Candidate(canon, c.opts.MinCount) {
			return
		}
		// fwd=true means this occurrence, in its observed orientation,
		// matches the canonical form directly (no flip); flipped means
		// the reverse-complement orientation is what's canonical, so
		// this occurrence counts against the table's "rev" column.
		c.exact.Add(canon, !flipped, isFirstWindow)
	})
}

// ExtractExactCounts returns every surviving (kmer, fwd, rev, flags)
// row whose combined count reaches Options.MinCount (spec §4.E final
// output, §8.1 property 7's count-conservation law).
func (c *Counter) ExtractExactCounts() []KmerCount {
	if c.exact == nil {
		return nil
	}
	return c.exact.extract(c.opts.MinCount)
}

// forEachKmer slides a length-K window across read, invoking fn once
// per window with the window's raw (non-canonical) encoding, whether
// this window starts the read, and whether it ends the read.
func (c *Counter) forEachKmer(read dna.Slice, fn func(km Kmer, isFirst, isLast bool)) {
	k := c.opts.K
	n := read.Len()
	if n < k {
		return
	}
	for i := 0; i+k <= n; i++ {
		sub, err := read.Sub(i, k)
		if err != nil {
			continue
		}
		km, err := Encode(sub)
		if err != nil {
			continue
		}
		fn(km, i == 0, i+k == n)
	}
}
