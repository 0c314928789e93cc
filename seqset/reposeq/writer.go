package reposeq

import (
	"io"
	"sync"

	"github.com/grailbio/seqset/dna"
	"github.com/pkg/errors"
)

// entryBufferCapacity is the per-goroutine batch size before a bulk
// flush under the Writer's lock, which is taken unconditionally (spec
// §4.B).
const entryBufferCapacity = 4096

// Writer owns one sequence blob and one entry-record stream. Callers
// that write entries from multiple goroutines should each hold their
// own *EntryBuffer (via NewEntryBuffer) rather than call WriteEntry
// directly, so records are batched before the shared lock is taken.
type Writer struct {
	blob     *BlobWriter
	ownsBlob bool

	mu         sync.Mutex
	entriesW   io.Writer
	entryCount int64
}

// NewWriter returns a Writer appending sequence bytes to blobW and
// entry records to entriesW.
func NewWriter(blobW, entriesW io.Writer) *Writer {
	return &Writer{blob: NewBlobWriter(blobW), ownsBlob: true, entriesW: entriesW}
}

// NewWriterWithBlob returns a Writer that appends entry records to
// entriesW but shares an already-open BlobWriter with other Writers —
// the pattern package partrepo uses to give every partition its own
// entry-record stream while every partition's entries reference the
// same global blob offsets. Close on the returned Writer does not
// close the shared blob; the owner of the BlobWriter must do that.
func NewWriterWithBlob(blob *BlobWriter, entriesW io.Writer) *Writer {
	return &Writer{blob: blob, ownsBlob: false, entriesW: entriesW}
}

// WriteSeq appends slice's bases to the blob, returning its base
// offset for later referencing from an Entry.
func (w *Writer) WriteSeq(slice dna.Slice) (offset uint64, err error) {
	return w.blob.WriteSeq(slice)
}

// Close flushes the blob's final partial byte, if this Writer owns it.
func (w *Writer) Close() error {
	if !w.ownsBlob {
		return nil
	}
	return w.blob.Close()
}

// EntryCount returns the number of entries written so far.
func (w *Writer) EntryCount() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.entryCount
}

func (w *Writer) flushEntries(buf [][EntrySize]byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, rec := range buf {
		n, err := w.entriesW.Write(rec[:])
		if err != nil {
			return errors.Wrap(err, "reposeq: entry flush")
		}
		if n != EntrySize {
			return errors.Errorf("reposeq: short entry write: wrote %d of %d bytes", n, EntrySize)
		}
	}
	w.entryCount += int64(len(buf))
	return nil
}

// EntryBuffer batches WriteEntry calls from a single goroutine,
// flushing to the shared Writer in bulk (one lock acquisition per
// batch instead of per entry).
type EntryBuffer struct {
	w   *Writer
	buf [][EntrySize]byte
}

// NewEntryBuffer returns a per-goroutine entry buffer for w.
func (w *Writer) NewEntryBuffer() *EntryBuffer {
	return &EntryBuffer{w: w}
}

// WriteEntry appends one entry record to the buffer, flushing to the
// shared writer once entryBufferCapacity records have accumulated.
func (b *EntryBuffer) WriteEntry(e Entry) error {
	var rec [EntrySize]byte
	e.Encode(rec[:])
	b.buf = append(b.buf, rec)
	if len(b.buf) >= entryBufferCapacity {
		return b.Flush()
	}
	return nil
}

// Flush forces any buffered records out to the shared writer, even if
// the batch is not full. Callers must call Flush when done writing.
func (b *EntryBuffer) Flush() error {
	if len(b.buf) == 0 {
		return nil
	}
	if err := b.w.flushEntries(b.buf); err != nil {
		return err
	}
	b.buf = b.buf[:0]
	return nil
}
