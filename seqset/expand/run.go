package expand

import (
	"fmt"

	"github.com/grailbio/seqset/biosubstrate"
	"github.com/grailbio/seqset/seqset/partrepo"
)

// RunResult records the outer loop's final state, for callers (the
// build-seqset driver) that need to know which pass holds the
// converged set.
type RunResult struct {
	FinalSortedPass string
	Generations     int
}

// Run drives the outer (sort+dedup+expand, expand-only,
// sort+dedup+expand)* loop of spec §4.D to convergence: it repeats
// the sort+dedup+expand / expand-only cycle, merging each cycle's two
// expansion sources (the sort step's own expansions and the
// expand-only step's deeper ones — see Store.ConcatPasses) into the
// next cycle's new-entries input, until a sort+dedup+expand call
// reports zero new deduplications.
func Run(store *partrepo.Store, pool *biosubstrate.Pool, opts Options, initialNewPass string) (RunResult, error) {
	existingPass := ""
	newPass := initialNewPass
	gen := 0

	for {
		stride, count := opts.Stride2, opts.Count2
		if gen == 0 {
			stride, count = opts.Stride1, opts.Count1
		}
		sortedName := fmt.Sprintf("sorted%d", gen)
		expandedName := fmt.Sprintf("expanded%d", gen)
		res, err := SortDedupExpand(store, pool, existingPass, newPass, sortedName, expandedName, stride, count)
		if err != nil {
			return RunResult{}, err
		}
		gen++
		if gen > 1 && res.Dedups == 0 {
			return RunResult{FinalSortedPass: sortedName, Generations: gen}, nil
		}

		expandOnlyName := fmt.Sprintf("expandonly%d", gen)
		if err := ExpandOnly(store, pool, sortedName, expandOnlyName, opts.Stride2, opts.Count2); err != nil {
			return RunResult{}, err
		}
		mergedName := fmt.Sprintf("newmerged%d", gen)
		if err := store.ConcatPasses(mergedName, expandedName, expandOnlyName); err != nil {
			return RunResult{}, err
		}

		existingPass = sortedName
		newPass = mergedName
	}
}
