package circular

import (
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/simd"
	bi "github.com/grailbio/seqset/interval"
)

// BitsPerWord is the number of bits per machine word.  (Don't want to import
// base/simd in files where we only need this constant.)
const BitsPerWord = simd.BitsPerWord

// Bitmap is a 2-dimensional bitmap with circular major dimension:
// logical row circPos is reused every nCirc positions. variants/tracer's
// pairWindow is the one consumer: each row holds one bit per read-id
// hash bucket, and a row is reused (via ClearRow) whenever the circular
// window wraps back onto a position that last held a different read's
// marks.
type Bitmap struct {
	// bits stores the raw bits.  Logical row n of the bitmap is
	// bits[n*rowWidth:(n+1)*rowWidth].
	bits []uintptr
	// rowWidth stores the number of words in each logical bitmap row.
	rowWidth bi.PosType
}

// NewBitmap creates an empty Bitmap with nCirc rows of rowWidth words
// each. nCirc must be a power of two.
func NewBitmap(nCirc, rowWidth bi.PosType) Bitmap {
	if (nCirc & (nCirc - 1)) != 0 {
		log.Panicf("circular.Bitmap requires nCirc to be a power of two")
	}
	return Bitmap{bits: make([]uintptr, nCirc*rowWidth), rowWidth: rowWidth}
}

// Row returns a []uintptr corresponding to a single row of the bitmap.
func (b *Bitmap) Row(circPos bi.PosType) []uintptr {
	base := circPos * b.rowWidth
	return b.bits[base : base+b.rowWidth]
}

// Set sets a single bit of the bitmap.  (Nothing bad happens if the bit was
// already set.)
func (b *Bitmap) Set(circPos bi.PosType, colIdx uint32) {
	row := b.Row(circPos)
	colWordIdx := colIdx / BitsPerWord
	row[colWordIdx] |= uintptr(1) << (colIdx % BitsPerWord)
}

// ClearRow zeroes every word in row circPos in one pass. pairWindow
// calls this when the circular window wraps back onto a slot that was
// last written for a different position, evicting that position's
// stale read-id marks before new ones accumulate there.
func (b *Bitmap) ClearRow(circPos bi.PosType) {
	row := b.Row(circPos)
	for i := range row {
		row[i] = 0
	}
}
