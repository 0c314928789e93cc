package biosubstrate

import (
	"sync"

	"github.com/grailbio/base/traverse"
)

// Pool runs parallel-for jobs through grailbio/base/traverse.Each,
// gated by a memory reservation budget: callers that need to allocate a
// large scratch buffer per job (sort buffers in package expand, hash
// tables in package kmer) call Reserve before allocating and Release
// once the buffer is freed, so the pool never runs more big-buffer jobs
// concurrently than fit in the configured budget. This mirrors the
// original thread pool's memory-reservation back-pressure
// (modules/io/parallel.h) without reimplementing its own work-stealing
// scheduler — traverse.Each already load-balances across goroutines.
type Pool struct {
	Parallelism int

	mu        sync.Mutex
	cond      *sync.Cond
	budget    int64
	reserved  int64
	unlimited bool
}

// NewPool returns a Pool that runs up to parallelism goroutines at
// once. memoryBudget bounds the sum of concurrently outstanding
// Reserve() calls; a budget of 0 disables the memory gate (every
// Reserve call succeeds immediately), which is appropriate for tests
// and for stages with no large per-job allocation.
func NewPool(parallelism int, memoryBudget int64) *Pool {
	if parallelism < 1 {
		parallelism = 1
	}
	p := &Pool{Parallelism: parallelism, budget: memoryBudget, unlimited: memoryBudget <= 0}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// Reserve blocks until nbytes of the pool's memory budget are
// available, then marks them reserved. Pair with Release.
func (p *Pool) Reserve(nbytes int64) {
	if p.unlimited {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.reserved+nbytes > p.budget && p.reserved > 0 {
		p.cond.Wait()
	}
	p.reserved += nbytes
}

// Release returns nbytes to the pool's memory budget.
func (p *Pool) Release(nbytes int64) {
	if p.unlimited {
		return
	}
	p.mu.Lock()
	p.reserved -= nbytes
	p.mu.Unlock()
	p.cond.Broadcast()
}

// Each runs fn(i) for i in [0,n), stopping and returning the first
// error any job returns — the same first-exception-capture semantics
// as the original thread pool (and as traverse.Each itself).
func (p *Pool) Each(n int, fn func(i int) error) error {
	return traverse.Limit(p.Parallelism).Each(n, fn)
}
