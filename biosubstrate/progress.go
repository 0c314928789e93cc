package biosubstrate

import (
	"sync/atomic"

	"github.com/grailbio/base/log"
)

// Progress tracks a monotonically increasing count of completed work
// units against a known total, propagating periodic log lines the way
// the original's progress_handler_t propagated progress up through
// nested build stages (prefetch/sort/dedup-merge-expand). It is safe
// for concurrent use by many goroutines calling Add.
type Progress struct {
	label     string
	total     int64
	done      int64
	logEveryN int64
}

// NewProgress returns a Progress for a stage named label, with a known
// total unit count (0 if unknown — percentages are omitted).
func NewProgress(label string, total int64) *Progress {
	logEvery := total / 20
	if logEvery < 1 {
		logEvery = 1
	}
	return &Progress{label: label, total: total, logEveryN: logEvery}
}

// Add advances the counter by delta units and logs a progress line
// whenever the counter crosses a ~5% boundary.
func (p *Progress) Add(delta int64) {
	done := atomic.AddInt64(&p.done, delta)
	if done/p.logEveryN != (done-delta)/p.logEveryN {
		if p.total > 0 {
			log.Printf("%s: %d/%d (%.1f%%)", p.label, done, p.total, 100*float64(done)/float64(p.total))
		} else {
			log.Printf("%s: %d", p.label, done)
		}
	}
}

// Done returns the current completed-unit count.
func (p *Progress) Done() int64 { return atomic.LoadInt64(&p.done) }
