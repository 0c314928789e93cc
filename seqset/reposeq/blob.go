package reposeq

import (
	"io"

	"github.com/grailbio/seqset/dna"
	"github.com/pkg/errors"
)

// blobFlushThreshold is how many complete bytes of packed base data
// accumulate before BlobWriter opportunistically durabilizes them to
// the underlying file (spec §4.B: "internally buffer 64 KiB before
// flushing").
const blobFlushThreshold = 64 * 1024

// BlobWriter packs bases into one continuous 2-bit stream. Base
// offsets handed back to callers (for the entry record's
// offset_and_rc field) address into this continuous stream, exactly
// like a dna.Slice iterator.
//
// The whole stream is kept resident in buf for the run's lifetime —
// flush only durabilizes complete bytes to the file, it never
// releases them from memory. A multi-pass run (package expand) reads
// the blob back through Bytes() while the Store that owns this writer
// is still open, rather than reopening the file, which sidesteps
// having to patch an already-flushed partial trailing byte every time
// a new pass's entries extend it (see DESIGN.md's "seqset/reposeq"
// entry).
type BlobWriter struct {
	w         io.Writer
	buf       []byte // every base ever appended, 2-bit packed
	baseCount uint64 // total bases ever appended
	flushed   int64  // prefix of buf already durabilized to w, in bytes
}

func NewBlobWriter(w io.Writer) *BlobWriter {
	return &BlobWriter{w: w}
}

// ReopenBlobWriter resumes a BlobWriter over a blob that already holds
// existing (fully durable) bytes — e.g. a Store reopened in a fresh
// process. Every base in existing is treated as already flushed to w;
// new writes continue appending base offsets right after it.
func ReopenBlobWriter(w io.Writer, existing []byte) *BlobWriter {
	buf := append([]byte(nil), existing...)
	return &BlobWriter{w: w, buf: buf, baseCount: uint64(len(buf)) * 4, flushed: int64(len(buf))}
}

// WriteSeq appends slice's bases to the blob and returns the base
// offset at which they start.
func (b *BlobWriter) WriteSeq(slice dna.Slice) (offset uint64, err error) {
	offset = b.baseCount
	for i := 0; i < slice.Len(); i++ {
		pos := b.baseCount + uint64(i)
		byteIdx := int(pos / 4)
		for byteIdx >= len(b.buf) {
			b.buf = append(b.buf, 0)
		}
		shift := uint(6 - 2*(pos%4))
		b.buf[byteIdx] |= byte(slice.At(i)) << shift
	}
	b.baseCount += uint64(slice.Len())

	completeBytes := int(b.baseCount / 4)
	if completeBytes-int(b.flushed) >= blobFlushThreshold {
		if err := b.flush(completeBytes); err != nil {
			return 0, err
		}
	}
	return offset, nil
}

// Bytes returns the full packed base stream written so far (flushed
// and pending), still owned by the BlobWriter — callers must not
// retain it past the next WriteSeq/Close call.
func (b *BlobWriter) Bytes() []byte { return b.buf }

func (b *BlobWriter) flush(completeBytes int) error {
	if int64(completeBytes) <= b.flushed {
		return nil
	}
	chunk := b.buf[b.flushed:completeBytes]
	n, err := b.w.Write(chunk)
	if err != nil {
		return errors.Wrap(err, "reposeq: blob flush")
	}
	if n != len(chunk) {
		return errors.Errorf("reposeq: short blob write: wrote %d of %d bytes", n, len(chunk))
	}
	b.flushed = int64(completeBytes)
	return nil
}

// Close durabilizes every byte written so far, including a final
// partially-filled byte (zero-padded in its unused bits).
func (b *BlobWriter) Close() error {
	return b.flush(len(b.buf))
}
