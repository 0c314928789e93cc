package align

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampMinMatchUsesLargerLengthDividedByFactor(t *testing.T) {
	opts := Options{RefAlignFactor: 4, MaxRefAlignBases: 1000}
	assert.Equal(t, 25, clampMinMatch(100, 40, opts))
	assert.Equal(t, 25, clampMinMatch(40, 100, opts))
}

func TestClampMinMatchFloorsAtOne(t *testing.T) {
	opts := Options{RefAlignFactor: 4, MaxRefAlignBases: 1000}
	assert.Equal(t, 1, clampMinMatch(2, 2, opts))
}

func TestClampMinMatchCapsAtMaxRefAlignBases(t *testing.T) {
	opts := Options{RefAlignFactor: 4, MaxRefAlignBases: 10}
	assert.Equal(t, 10, clampMinMatch(1000, 1000, opts))
}
