package tracer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPairWindowSeenNearFindsMarkWithinDistance(t *testing.T) {
	w := newPairWindow(5)
	w.mark(10, 42)
	assert.True(t, w.seenNear(12, 42))
	assert.True(t, w.seenNear(8, 42))
	assert.False(t, w.seenNear(12, 43))
}

func TestPairWindowSeenNearFalseBeyondDistance(t *testing.T) {
	w := newPairWindow(5)
	w.mark(10, 7)
	assert.False(t, w.seenNear(20, 7))
}

func TestPairWindowSeenNearIgnoresNegativePositions(t *testing.T) {
	w := newPairWindow(3)
	// No marks at all: every query should come back false, including
	// ones whose window would otherwise wrap to a negative position.
	assert.False(t, w.seenNear(1, 5))
}

func TestPairWindowMarkEvictsStaleSlotOnWraparound(t *testing.T) {
	w := newPairWindow(1)
	nCirc := w.mask + 1

	w.mark(1, 9)
	assert.True(t, w.seenNear(1, 9))

	// pos and pos+nCirc land on the same circular slot; marking the
	// later position must evict the earlier one's bits rather than
	// accumulate on top of them.
	w.mark(1+nCirc, 20)
	assert.False(t, w.seenNear(1, 9))
	assert.True(t, w.seenNear(1+nCirc, 20))
}
