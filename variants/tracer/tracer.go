// Package tracer implements the variant-discovery tracer of spec
// §4.H: a best-first graph walk over a seqset, seeded at a scaffold
// position that is itself a read start, producing candidate Assembly
// values for variants/align to turn into reference-coordinate calls.
//
// Grounded on original_source/modules/variants/tracer.cpp's
// priority-queue search structure (a Dijkstra-style walk over
// (seqset_range, path) nodes) and on circular/bitmap.go for the
// pair-sighting window (pairwindow.go).
package tracer

import (
	"container/heap"

	"github.com/grailbio/seqset/dna"
	"github.com/grailbio/seqset/refmap"
	"github.com/grailbio/seqset/seqset"
	"github.com/grailbio/seqset/variants"
)

// IDCounter hands out monotonically increasing Assembly ids (spec
// §3.6). A tiny type rather than a bare package-level int so a future
// caller running multiple concurrent Trace calls can give each its own
// counter instead of sharing process-wide mutable state (spec §9's
// "avoid any other globals" note).
type IDCounter struct{ next int }

func NewIDCounter() *IDCounter { return &IDCounter{} }
func (c *IDCounter) Take() int {
	id := c.next
	c.next++
	return id
}

// Trace runs one best-first search from seedPos, a scaffold-relative
// offset that is itself a read start (spec §4.H). It returns up to
// opts.MaxRejoins assemblies that successfully rejoined the reference,
// plus any accepted anchor-dropped dead-end assemblies.
//
// The walk direction is a single pass extending the assembly rightward
// (toward increasing scaffold offset) from the seed; reconstructing
// the left side of a variant is the job of a second Trace call seeded
// at the assembly's left read, mirroring how the reference map's own
// fwd/rev walks are two separate passes rather than one bidirectional
// one.
func Trace(ss *seqset.Seqset, rm *refmap.RefMap, sc *variants.Scaffold, seedPos int, opts Options, ids *IDCounter) ([]Assembly, error) {
	if ids == nil {
		ids = NewIDCounter()
	}
	readLen := ss.MaxReadLen
	seedWindow, err := sc.Seq.Sub(seedPos, readLen)
	if err != nil {
		return nil, err
	}
	// Per refmap's own documented convention: the seqset entry for a
	// window that matches the reference in forward orientation is
	// reached by querying the window's reverse complement.
	r0 := ss.Find(seedWindow.RevComp())

	seed := dna.NewSequence()
	seed.PushBackSlice(seedWindow)

	start := &path{
		rng:     r0,
		seq:     seed,
		overlap: readLen,
	}
	start.recordIfRead(ss)

	pw := newPairWindow(opts.MaxPairDistance)
	for _, id := range start.readIDs {
		pw.mark(0, id)
	}

	h := &pathHeap{start}
	heap.Init(h)

	var rejoins []*path
	var deadEnds []*path
	steps := 0

	for h.Len() > 0 && steps < opts.MaxSteps {
		if len(rejoins) >= opts.MaxRejoins {
			worst := rejoins[len(rejoins)-1].cost
			if (*h)[0].cost >= worst {
				break
			}
		}
		steps++
		p := heap.Pop(h).(*path)
		if p.cost > opts.MaxCost {
			continue
		}

		if p.reached {
			if rm.Fwd(p.rng.Begin) || rm.Rev(p.rng.Begin) {
				ideal := seedPos + p.basesWalked
				if _, ok := sc.ToAbsolute(ideal); ok {
					rc := rejoinCost(opts, p)
					rp := p.clone()
					rp.cost = rc
					rejoins = insertRejoin(rejoins, rp, opts.MaxRejoins)
					continue
				}
			}
		}

		extended := extendPath(ss, p, opts)
		if len(extended) == 0 {
			if len(p.readIDs) >= 2 {
				dp := p.clone()
				dp.cost = deadEndCost(opts, p)
				deadEnds = appendDeadEnd(deadEnds, dp, opts.MaxDeadEnds)
			}
			continue
		}
		for _, np := range extended {
			if np.exceedsPairBudget(opts) {
				continue
			}
			np.recordIfRead(ss)
			if np.reached {
				for _, id := range np.readIDs {
					seen := pw.seenNear(np.basesWalked, id)
					pw.mark(np.basesWalked, id)
					np.resetPair(opts, seen)
					if seen {
						np.cost += opts.PairUsedCost
					}
				}
			}
			heap.Push(h, np)
		}
	}

	out := make([]Assembly, 0, len(rejoins)+len(deadEnds))
	for _, p := range rejoins {
		out = append(out, buildAssembly(ss, sc, seedPos, p, true, ids))
	}
	for _, p := range deadEnds {
		out = append(out, buildAssembly(ss, sc, seedPos, p, false, ids))
	}
	return out, nil
}

// extendPath tries pushing each of the four bases onto p, returning
// one successor path per base that yields a non-empty seqset range
// (spec §4.H.1-3).
func extendPath(ss *seqset.Seqset, p *path, opts Options) []*path {
	type branch struct {
		b   dna.Base
		rng seqset.Range
	}
	var viable []branch
	for _, b := range [4]dna.Base{dna.A, dna.C, dna.G, dna.T} {
		nr := ss.PushFront(p.rng, b)
		if !nr.Empty() {
			viable = append(viable, branch{b: b, rng: nr})
		}
	}

	// The path's range holds reverse-complement entries, so pushing b
	// onto their front extends the forward assembly on the right by b's
	// complement.
	if len(viable) == 1 && p.reached {
		np := p.clone()
		np.rng = viable[0].rng
		np.seq = appendBase(viable[0].b.Complement(), p.seq)
		np.basesWalked++
		np.unpairedBases++
		np.cost += stepCost(ss, np, opts, false)
		return []*path{np}
	}

	out := make([]*path, 0, len(viable))
	ambiguous := len(viable) > 1
	for _, v := range viable {
		np := p.clone()
		np.rng = v.rng
		np.seq = appendBase(v.b.Complement(), p.seq)
		np.basesWalked++
		np.unpairedBases++
		if ambiguous {
			np.unpairedBranches++
		}
		np.cost += stepCost(ss, np, opts, ambiguous)
		out = append(out, np)
	}
	return out
}

// stepCost prices one extension step (spec §4.H.3): base cost, plus
// an ambiguous-branch surcharge, plus TraverseRefCost when the
// resulting range is a single full-length entry. Whether that entry
// matches the reference is not checked.
func stepCost(ss *seqset.Seqset, np *path, opts Options, ambiguous bool) float64 {
	c := opts.BaseCost
	if ambiguous {
		c += opts.AmbiguousBranchCost
	}
	if np.rng.Single() && ss.Size(np.rng.Begin) == ss.MaxReadLen {
		c += opts.TraverseRefCost
	}
	return c
}

// rejoinCost prices a completed rejoin (spec §4.H.4): a fixed local
// cost plus deviation from the ideal position. This implementation
// always finds the ideal position exactly, since refmap (spec §3.5)
// retains only aggregate fwd/rev/count flags per entry, not individual
// occurrence coordinates — see DESIGN.md's tracer entry.
func rejoinCost(opts Options, p *path) float64 {
	const deviation = 0
	ambigCost := opts.AmbiguousBaseCostRejoin * float64(p.unpairedBranches)
	return p.cost + opts.RejoinLocalCost + opts.SizeChangeCostPerBase*float64(deviation) + ambigCost
}

// deadEndCost prices a path that ran out of extensions before
// rejoining (spec §4.H, final paragraph): the fixed dead-end cost,
// less the anchor-drop bonus, plus the dead-end-specific ambiguous-
// bases charge (the other half of the Open Question split between
// rejoin and dead-end denominators — see DESIGN.md).
func deadEndCost(opts Options, p *path) float64 {
	ambigCost := opts.AmbiguousBaseCostDeadEnd * float64(p.unpairedBranches)
	return p.cost + opts.DeadEndCost - opts.AnchorDropScoreBonus + ambigCost
}

// appendBase returns a new sequence equal to seq followed by b.
func appendBase(b dna.Base, seq *dna.Sequence) *dna.Sequence {
	out := dna.NewSequence()
	out.PushBackSlice(seq.Slice())
	out.PushBack(b)
	return out
}

// insertRejoin keeps rejoins sorted ascending by cost, capped at max.
func insertRejoin(rejoins []*path, p *path, max int) []*path {
	i := 0
	for i < len(rejoins) && rejoins[i].cost <= p.cost {
		i++
	}
	rejoins = append(rejoins, nil)
	copy(rejoins[i+1:], rejoins[i:])
	rejoins[i] = p
	if len(rejoins) > max {
		rejoins = rejoins[:max]
	}
	return rejoins
}

func appendDeadEnd(deadEnds []*path, p *path, max int) []*path {
	deadEnds = append(deadEnds, p)
	if len(deadEnds) > max {
		// Drop the worst (highest-cost) candidate once over budget.
		worst := 0
		for i := 1; i < len(deadEnds); i++ {
			if deadEnds[i].cost > deadEnds[worst].cost {
				worst = i
			}
		}
		deadEnds = append(deadEnds[:worst], deadEnds[worst+1:]...)
	}
	return deadEnds
}

func buildAssembly(ss *seqset.Seqset, sc *variants.Scaffold, seedPos int, p *path, rejoined bool, ids *IDCounter) Assembly {
	a := Assembly{
		ID:            ids.Take(),
		Seq:           p.seq,
		Left:          sc.Coord(seedPos),
		LeftAnchorLen: ss.MaxReadLen,
		ReadIDs:       append([]int(nil), p.readIDs...),
	}
	if rejoined {
		a.Right = sc.Coord(seedPos + p.basesWalked)
		a.RightAnchorLen = ss.MaxReadLen
	} else {
		a.Right = variants.RefCoord{Scaffold: sc.Name, Offset: variants.AnchorDropped}
	}
	a.MatchesReference = rejoined && p.unpairedBranches == 0
	return a
}
