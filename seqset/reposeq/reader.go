package reposeq

import (
	"github.com/grailbio/seqset/biosubstrate"
	"github.com/grailbio/seqset/dna"
	"github.com/pkg/errors"
)

// Reader provides random access and forward iteration over a finished
// (entries, blob) pair, each held in a caller-supplied
// biosubstrate.MemBuf.
type Reader struct {
	entries *biosubstrate.MemBuf
	blob    *biosubstrate.MemBuf
}

// NewReader wraps the given entry and blob buffers.
func NewReader(entries, blob *biosubstrate.MemBuf) *Reader {
	return &Reader{entries: entries, blob: blob}
}

// Len returns the number of entry records.
func (r *Reader) Len() int {
	return len(r.entries.Bytes()) / EntrySize
}

// At decodes the i'th entry record.
func (r *Reader) At(i int) Entry {
	buf := r.entries.Bytes()
	return DecodeEntry(buf[i*EntrySize : (i+1)*EntrySize])
}

// Sequence materializes the full dna.Sequence for entry e: its inline
// prefix, followed by the blob tail when e.Size exceeds InlineBases.
func (r *Reader) Sequence(e Entry) (*dna.Sequence, error) {
	seq := dna.NewSequence()
	inline := int(e.Size)
	if inline > InlineBases {
		inline = InlineBases
	}
	inlineSeq := unpackInline(e.InlinePrefix, inline)
	for i := 0; i < inline; i++ {
		seq.PushBack(inlineSeq.At(i))
	}
	if !e.HasBlobTail() {
		return seq, nil
	}
	tailLen := int(e.Size) - InlineBases
	tail, err := r.blobSlice(e.BlobOffset, tailLen, e.RC)
	if err != nil {
		return nil, err
	}
	seq.PushBackSlice(tail)
	return seq, nil
}

func (r *Reader) blobSlice(baseOffset uint64, length int, rc bool) (dna.Slice, error) {
	data := r.blob.Bytes()
	if int(baseOffset/4)+(length+3)/4+1 > len(data)+1 {
		return dna.Slice{}, errors.Errorf("reposeq: blob reference out of range: offset=%d length=%d blob_bytes=%d", baseOffset, length, len(data))
	}
	full := packedSliceFromBase(data, int(baseOffset), length)
	if rc {
		return full.RevComp(), nil
	}
	return full, nil
}

// unpackInline interprets raw as a big-endian 2-bit packed buffer
// holding n bases starting at base 0 (the inline prefix has no
// header-slot trick, unlike dna.Sequence's owned storage).
func unpackInline(raw [7]byte, n int) dna.Slice {
	return packedSliceFromBase(raw[:], 0, n)
}

// packedSliceFromBase builds a dna.Slice directly over data (no
// header-slot offset), starting at base index baseOffset.
func packedSliceFromBase(data []byte, baseOffset, length int) dna.Slice {
	return dna.SliceFromRaw(data, baseOffset, length)
}
