package reposeq

import "github.com/grailbio/seqset/dna"

// EntrySize is the fixed on-disk size, in bytes, of one repository entry
// record (spec §6.2): a 2-byte base count, a 7-byte (28-base) inline
// prefix, and a 5-byte packed blob offset + rc flag.
const EntrySize = 14

// InlineBases is the number of bases that fit in the inline prefix —
// entries no longer than this need no blob reference at all.
const InlineBases = 28

// Entry is one decoded sequence-repository record.
type Entry struct {
	Size         uint16
	InlinePrefix [7]byte // big-endian 2-bit packed, up to 28 bases
	BlobOffset   uint64  // base offset of the blob TAIL (base InlineBases of the sequence), not of base 0
	RC           bool    // whether the blob tail is read in rc direction
}

// HasBlobTail reports whether bases beyond the inline prefix live in the
// blob.
func (e Entry) HasBlobTail() bool { return int(e.Size) > InlineBases }

// Encode writes e into the first EntrySize bytes of dst.
func (e Entry) Encode(dst []byte) {
	_ = dst[EntrySize-1]
	dst[0] = byte(e.Size >> 8)
	dst[1] = byte(e.Size)
	copy(dst[2:9], e.InlinePrefix[:])

	packed := e.BlobOffset << 1
	if e.RC {
		packed |= 1
	}
	dst[9] = byte(packed >> 32)
	dst[10] = byte(packed >> 24)
	dst[11] = byte(packed >> 16)
	dst[12] = byte(packed >> 8)
	dst[13] = byte(packed)
}

// NewEntryFromSlice builds the Entry for slice, given the base offset
// at which slice's base 0 was written to a shared blob by a prior
// Writer.WriteSeq (or BlobWriter.WriteSeq) call — the whole sequence
// is expected to have been written, inline prefix included; only
// bases beyond InlineBases are ever read back from the blob. Callers
// with no tail (slice.Len() <= InlineBases) may pass any seqOffset;
// it is ignored.
func NewEntryFromSlice(slice dna.Slice, seqOffset uint64) Entry {
	n := slice.Len()
	e := Entry{Size: uint16(n)}
	inline := n
	if inline > InlineBases {
		inline = InlineBases
	}
	for i := 0; i < inline; i++ {
		b := slice.At(i)
		e.InlinePrefix[i/4] |= byte(b) << uint(6-2*(i%4))
	}
	if n > InlineBases {
		e.BlobOffset = seqOffset + uint64(InlineBases)
	}
	return e
}

// DecodeEntry reads one record from the first EntrySize bytes of src.
func DecodeEntry(src []byte) Entry {
	_ = src[EntrySize-1]
	var e Entry
	e.Size = uint16(src[0])<<8 | uint16(src[1])
	copy(e.InlinePrefix[:], src[2:9])

	var packed uint64
	packed |= uint64(src[9]) << 32
	packed |= uint64(src[10]) << 24
	packed |= uint64(src[11]) << 16
	packed |= uint64(src[12]) << 8
	packed |= uint64(src[13])
	e.RC = packed&1 != 0
	e.BlobOffset = packed >> 1
	return e
}
