package dna

// Sequence is an owned, growable, 2-bit-packed DNA sequence.
//
// The packed buffer reuses the original implementation's
// header-in-slot-0 trick: base slot 0 (bits 6-7 of byte 0) never holds a
// real base. Instead it holds size%4, so the same uniform 2-bit-slot
// addressing scheme that indexes bases also indexes the header, and the
// packed byte layout never needs a separate header format. Logical base
// i of the Sequence therefore lives at slot i+1 of the backing array.
type Sequence struct {
	buf  []byte
	size int
}

// minGrowthBases mirrors the spec's geometric-growth floor: the first
// allocation (and every doubling step) rounds up to hold at least this
// many bases, so short sequences don't pay for repeated 1-byte growths.
const minGrowthBases = 127

// NewSequence returns an empty Sequence.
func NewSequence() *Sequence {
	return &Sequence{buf: make([]byte, 1)}
}

// NewSequenceFromString packs an ASCII base string (A/C/G/T, either
// case) into a new Sequence. It panics on any other character; callers
// parsing untrusted input should validate with dna.IsBase first.
func NewSequenceFromString(s string) *Sequence {
	seq := NewSequence()
	seq.Grow(len(s))
	for i := 0; i < len(s); i++ {
		b, err := ParseBase(s[i])
		if err != nil {
			panic(err)
		}
		seq.PushBack(b)
	}
	return seq
}

// Len returns the number of bases in the sequence.
func (s *Sequence) Len() int { return s.size }

// Grow ensures the backing buffer has room for at least extraBases more
// bases without reallocating, using the same doubling-with-a-floor
// policy as PushBack's incremental growth.
func (s *Sequence) Grow(extraBases int) {
	s.reserveBases(s.size + extraBases)
}

func (s *Sequence) reserveBases(totalBases int) {
	neededBytes := (totalBases+1)/4 + 1
	if neededBytes <= len(s.buf) {
		return
	}
	newCap := len(s.buf) * 2
	if newCap < neededBytes {
		newCap = neededBytes
	}
	if newCap < (minGrowthBases+1)/4+1 {
		newCap = (minGrowthBases+1)/4 + 1
	}
	nb := make([]byte, newCap)
	copy(nb, s.buf)
	s.buf = nb
}

// PushBack appends a single base.
func (s *Sequence) PushBack(b Base) {
	s.reserveBases(s.size + 1)
	pos := s.size + 1
	setBase(s.buf, pos, b)
	s.size++
	s.writeHeader()
}

// PushBackSlice appends every base of src, in order.
func (s *Sequence) PushBackSlice(src Slice) {
	s.Grow(src.Len())
	for i := 0; i < src.Len(); i++ {
		s.PushBack(src.At(i))
	}
}

func (s *Sequence) writeHeader() {
	tag := byte(s.size % 4)
	s.buf[0] = (s.buf[0] &^ 0xc0) | (tag << 6)
}

func setBase(data []byte, pos int, v Base) {
	shift := uint(6 - 2*(pos%4))
	idx := pos / 4
	data[idx] = (data[idx] &^ (3 << shift)) | (byte(v) << shift)
}

// Slice returns a zero-copy forward view over the whole sequence.
func (s *Sequence) Slice() Slice {
	return Slice{it: iter{data: s.buf, pos: 1}, size: s.size}
}

// At returns the base at logical position i.
func (s *Sequence) At(i int) Base { return s.Slice().At(i) }

// RevComp materializes a new Sequence holding the reverse complement of
// s. Unlike Slice.RevComp (an O(1) cursor flip), this allocates and
// packs a fresh buffer, because a Sequence — unlike a Slice — owns its
// bytes and must be independently mutable (PushBack-able) afterward.
func (s *Sequence) RevComp() *Sequence {
	out := NewSequence()
	out.PushBackSlice(s.Slice().RevComp())
	return out
}

// String materializes the sequence as an uppercase ASCII string.
func (s *Sequence) String() string { return s.Slice().String() }

// Equal reports whether s and other hold the same bases.
func (s *Sequence) Equal(other *Sequence) bool {
	return Compare(s.Slice(), other.Slice()) == Equal
}
