package align

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistSetInsertDedupsAndSorts(t *testing.T) {
	var d distSet
	d.insert(5)
	d.insert(1)
	d.insert(5)
	d.insert(3)
	assert.Equal(t, []int{1, 3, 5}, d.vals)
}

func TestDistSetUnion(t *testing.T) {
	var a, b distSet
	a.insert(1)
	a.insert(4)
	b.insert(4)
	b.insert(7)
	u := a.union(b)
	assert.Equal(t, []int{1, 4, 7}, u.vals)
}

func TestDistSetEmptyAndContains(t *testing.T) {
	var d distSet
	assert.True(t, d.empty())
	d.insert(10)
	assert.False(t, d.empty())
	assert.True(t, d.contains(10))
	assert.False(t, d.contains(11))
}

func TestDistSetClosestDistanceToTiesPreferLesser(t *testing.T) {
	var d distSet
	d.insert(2)
	d.insert(8)
	// target=5 is equidistant (3) from both 2 and 8; tie-break picks 2.
	assert.Equal(t, 3, d.closestDistanceTo(5))
}

func TestDistSetClosestDistanceToEmpty(t *testing.T) {
	var d distSet
	assert.Equal(t, 0, d.closestDistanceTo(42))
}

func TestDistSetAddOffsetClamps(t *testing.T) {
	var d distSet
	d.insert(-1)
	d.insert(0)
	d.insert(5)
	d.insert(9)
	out := d.addOffset(2, 10)
	// -1+2=1, 0+2=2, 5+2=7, 9+2=11 (dropped: > maxVal 10)
	assert.Equal(t, []int{1, 2, 7}, out.vals)
}
