package tracer

import (
	"container/heap"
	"testing"

	"github.com/grailbio/seqset/dna"
	"github.com/stretchr/testify/assert"
)

func newPath(seq string, cost float64) *path {
	p := &path{seq: dna.NewSequenceFromString(seq), cost: cost}
	p.readIDs = append(p.readIDs, 1, 2)
	return p
}

func TestPathCloneIsIndependent(t *testing.T) {
	p := newPath("ACGT", 1.5)
	q := p.clone()

	q.seq.PushBackSlice(dna.NewSequenceFromString("A").Slice())
	q.readIDs = append(q.readIDs, 3)

	assert.Equal(t, "ACGT", p.seq.String())
	assert.Equal(t, "ACGTA", q.seq.String())
	assert.Equal(t, []int{1, 2}, p.readIDs)
	assert.Equal(t, []int{1, 2, 3}, q.readIDs)
}

func TestResetPairOnFirstOnlyResetsOnFirstSighting(t *testing.T) {
	p := &path{unpairedBases: 10, unpairedBranches: 4}
	opts := Options{PairResetPolicy: PairResetOnFirst}

	p.resetPair(opts, false)
	assert.Equal(t, 10, p.unpairedBases)
	assert.Equal(t, 4, p.unpairedBranches)

	p.resetPair(opts, true)
	assert.Equal(t, 0, p.unpairedBases)
	assert.Equal(t, 0, p.unpairedBranches)
}

func TestResetPairOnEveryAlwaysResets(t *testing.T) {
	p := &path{unpairedBases: 10, unpairedBranches: 4}
	opts := Options{PairResetPolicy: PairResetOnEvery}

	p.resetPair(opts, false)
	assert.Equal(t, 0, p.unpairedBases)
	assert.Equal(t, 0, p.unpairedBranches)
}

func TestExceedsPairBudget(t *testing.T) {
	opts := Options{MaxUnpairedBases: 5, MaxUnpairedBranches: 2}
	p := &path{unpairedBases: 5, unpairedBranches: 2}
	assert.False(t, p.exceedsPairBudget(opts))

	p.unpairedBases = 6
	assert.True(t, p.exceedsPairBudget(opts))
}

func TestPathHeapPopsLowestCostFirst(t *testing.T) {
	h := &pathHeap{}
	heap.Init(h)
	heap.Push(h, newPath("A", 5))
	heap.Push(h, newPath("C", 1))
	heap.Push(h, newPath("G", 3))

	var order []float64
	for h.Len() > 0 {
		order = append(order, heap.Pop(h).(*path).cost)
	}
	assert.Equal(t, []float64{1, 3, 5}, order)
}
