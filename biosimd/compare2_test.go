package biosimd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByteRevCompBases(t *testing.T) {
	// 0x1b = 00 01 10 11 = A C G T (slots 0..3). Reversing gives T G C A,
	// and complementing that gives A C G T again: ACGT is its own reverse
	// complement, so the byte is unchanged.
	assert.Equal(t, byte(0x1b), ByteRevCompBases(0x1b))
	// Self-inverse.
	assert.Equal(t, byte(0x1b), ByteRevCompBases(ByteRevCompBases(0x1b)))
}

func TestWordRevCompSwapSelfInverse(t *testing.T) {
	vals := []uint64{0, 0xffffffffffffffff, 0x1b1b1b1b1b1b1b1b, 0x0123456789abcdef}
	for _, v := range vals {
		assert.Equal(t, v, WordRevCompSwap(WordRevCompSwap(v)))
	}
}

func TestLoadForwardBlockZeroPad(t *testing.T) {
	data := []byte{0x1b, 0x2c}
	v := LoadForwardBlock(data, 0, 8)
	assert.Equal(t, uint64(0x1b2c000000000000), v)
}

func TestLoadReverseComplementBlockMatchesForwardRevComp(t *testing.T) {
	// ACGT ACGT packed forward: 0x1b 0x1b.
	data := []byte{0x1b, 0x1b}
	fwd := LoadForwardBlock(data, 0, 2)
	// Reverse-complementing the same two bytes read backwards from
	// byteIdx=1 should equal WordRevCompSwap(fwd) since both bytes are
	// identical.
	rc := LoadReverseComplementBlock(data, 1, 2)
	assert.Equal(t, WordRevCompSwap(fwd), rc)
}

func TestPackBasesOddLength(t *testing.T) {
	code := func(b byte) byte {
		switch b {
		case 'A':
			return 0
		case 'C':
			return 1
		case 'G':
			return 2
		case 'T':
			return 3
		}
		panic("bad base")
	}
	out := PackBases(nil, []byte("ACGTA"), code)
	assert.Equal(t, []byte{0x1b, 0x00}, out)
}
