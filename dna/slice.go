package dna

import "github.com/pkg/errors"

// ErrOutOfBounds is returned by Slice.Sub when the requested range does
// not fit inside the receiver.
var ErrOutOfBounds = errors.New("dna: slice range out of bounds")

// iter is a cursor into a packed base array: the base index pos (not a
// byte offset — pos/4 is the byte, pos%4 the within-byte slot) together
// with a direction flag. A reverse-complement iterator walks pos
// downward and complements every base it yields, which is what makes
// Slice.RevComp an O(1) operation: it only has to flip rc and recompute
// the start position, never touch the underlying bytes.
type iter struct {
	data []byte
	pos  int
	rc   bool
}

func (it iter) byteIdx() int { return it.pos / 4 }
func (it iter) offset() int  { return it.pos % 4 }

func (it iter) at() Base {
	b := it.data[it.byteIdx()]
	v := Base((b >> uint(6-2*it.offset())) & 3)
	if it.rc {
		return v.Complement()
	}
	return v
}

func (it iter) advance(n int) iter {
	if it.rc {
		it.pos -= n
	} else {
		it.pos += n
	}
	return it
}

// Slice is a read-only, zero-copy view over a span of packed bases,
// optionally read in reverse-complement direction. The zero Slice is
// the empty slice.
type Slice struct {
	it   iter
	size int
}

// SliceFromRaw builds a forward-reading Slice directly over a packed
// buffer with no header-slot offset (unlike a Sequence's owned
// storage): base 0 of the slice is base baseOffset of data. Used by
// callers that maintain their own packed buffers outside of a
// Sequence — the repository blob and its inline-prefix records.
func SliceFromRaw(data []byte, baseOffset, length int) Slice {
	return Slice{it: iter{data: data, pos: baseOffset}, size: length}
}

// Len returns the number of bases in the slice.
func (s Slice) Len() int { return s.size }

// At returns the base at logical position i (0 <= i < s.Len()).
func (s Slice) At(i int) Base {
	if i < 0 || i >= s.size {
		panic("dna: Slice.At index out of range")
	}
	return s.it.advance(i).at()
}

// Sub returns the length-base sub-slice starting at start, reading in
// the same direction as the receiver. It returns ErrOutOfBounds if the
// requested range doesn't fit.
func (s Slice) Sub(start, length int) (Slice, error) {
	if start < 0 || length < 0 || start+length > s.size {
		return Slice{}, errors.Wrapf(ErrOutOfBounds, "Sub(%d,%d) of length %d", start, length, s.size)
	}
	return Slice{it: s.it.advance(start), size: length}, nil
}

// RevComp returns a Slice over the same bases read in the opposite
// direction and complemented — an O(1) flip of the cursor, never a data
// copy. (RevComp(RevComp(s)) is identical to s.)
func (s Slice) RevComp() Slice {
	if s.size == 0 {
		return s
	}
	last := s.it.advance(s.size - 1)
	return Slice{it: iter{data: last.data, pos: last.pos, rc: !last.rc}, size: s.size}
}

// String materializes the slice as an uppercase ASCII string. Intended
// for logging/tests/debug output, not hot paths.
func (s Slice) String() string {
	buf := make([]byte, s.size)
	for i := 0; i < s.size; i++ {
		buf[i] = s.At(i).String()[0]
	}
	return string(buf)
}

// ShannonEntropy computes the order-0 Shannon entropy, in bits per base,
// of the slice's base composition. Used by the low-complexity filter
// ahead of k-mer counting (see Options.MinEntropy in package kmer).
func (s Slice) ShannonEntropy() float64 {
	if s.size == 0 {
		return 0
	}
	var counts [4]int
	for i := 0; i < s.size; i++ {
		counts[s.At(i)]++
	}
	return shannonEntropy(counts[:], s.size)
}
