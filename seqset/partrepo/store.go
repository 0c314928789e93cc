package partrepo

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/golang/snappy"
	"github.com/grailbio/seqset/biosubstrate"
	"github.com/grailbio/seqset/dna"
	"github.com/grailbio/seqset/seqset/reposeq"
	"github.com/pkg/errors"
)

// Store owns one shared sequence blob and a directory of named
// "passes", each holding 4^Depth partitioned entry-record files.
// Grounded on original_source/modules/build_seqset/part_repo.h.
type Store struct {
	Dir   string
	Depth int

	blobFile *os.File
	blob     *reposeq.BlobWriter
}

// Open creates (or reopens) a Store rooted at dir with the given
// partition depth, appending to a single shared blob file.
func Open(dir string, depth int) (*Store, error) {
	if depth < MinDepth || depth > MaxDepth {
		return nil, errors.Errorf("partrepo: depth %d out of range [%d,%d]", depth, MinDepth, MaxDepth)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "partrepo: mkdir")
	}
	blobPath := filepath.Join(dir, "blob.bin")
	existing, err := os.ReadFile(blobPath)
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "partrepo: read blob")
	}
	f, err := os.OpenFile(blobPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "partrepo: open blob")
	}
	return &Store{Dir: dir, Depth: depth, blobFile: f, blob: reposeq.ReopenBlobWriter(f, existing)}, nil
}

// WriteSeq appends slice to the shared blob, returning its base
// offset for later referencing from an Entry.
func (s *Store) WriteSeq(slice dna.Slice) (uint64, error) { return s.blob.WriteSeq(slice) }

// CloseBlob flushes and closes the shared blob file. Call once, after
// every write pass that might still reference new blob offsets has
// finished.
func (s *Store) CloseBlob() error {
	if err := s.blob.Close(); err != nil {
		return err
	}
	return s.blobFile.Close()
}

// WritePass is an open-for-writing set of 4^Depth partitioned entry
// streams, all referencing the Store's shared blob. Each partition's
// entry stream is snappy-framed on disk (spec §4.D): partition files
// are rewritten wholesale by every sort/dedup pass, so compression
// ratio matters less than keeping the spill cheap to write and read
// back, which is exactly the tradeoff snappy is for.
type WritePass struct {
	store      *Store
	Name       string
	NumParts   int
	files      []*os.File
	snappyWs   []*snappy.Writer
	writers    []*reposeq.Writer
	PartCounts *PartCounts // nil unless requested
}

// OpenWritePass creates (truncating if present) the 4^Depth
// partition files for a pass named name. If withPartCounts is true, a
// PartCounts histogram is tracked alongside (spec §4.C).
func (s *Store) OpenWritePass(name string, withPartCounts bool) (*WritePass, error) {
	dir := filepath.Join(s.Dir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "partrepo: mkdir pass")
	}
	n := NumPartitions(s.Depth)
	wp := &WritePass{
		store:    s,
		Name:     name,
		NumParts: n,
		files:    make([]*os.File, n),
		snappyWs: make([]*snappy.Writer, n),
		writers:  make([]*reposeq.Writer, n),
	}
	for i := 0; i < n; i++ {
		f, err := os.OpenFile(filepath.Join(dir, partFileName(i)), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			return nil, errors.Wrapf(err, "partrepo: open partition %d", i)
		}
		wp.files[i] = f
		sw := snappy.NewBufferedWriter(f)
		wp.snappyWs[i] = sw
		wp.writers[i] = reposeq.NewWriterWithBlob(s.blob, sw)
	}
	if withPartCounts {
		wp.PartCounts = NewPartCounts(s.Depth)
	}
	return wp, nil
}

// EntryBuffer returns a per-goroutine buffer for writing entries into
// partition idx. Callers must call Flush when done.
func (wp *WritePass) EntryBuffer(idx int) *reposeq.EntryBuffer {
	return wp.writers[idx].NewEntryBuffer()
}

// WriteSeq appends slice to the Store's shared blob.
func (wp *WritePass) WriteSeq(slice dna.Slice) (uint64, error) { return wp.store.WriteSeq(slice) }

// Close flushes and closes every partition file (the shared blob is
// left open — call Store.CloseBlob once all passes are finished).
func (wp *WritePass) Close() error {
	for i, f := range wp.files {
		if err := wp.snappyWs[i].Close(); err != nil {
			return errors.Wrapf(err, "partrepo: close snappy partition %d", i)
		}
		if err := f.Close(); err != nil {
			return errors.Wrapf(err, "partrepo: close partition %d", i)
		}
	}
	return nil
}

// PassExists reports whether a pass directory has already been
// written under this store.
func (s *Store) PassExists(name string) bool {
	_, err := os.Stat(filepath.Join(s.Dir, name))
	return err == nil
}

// ConcatPasses creates (or truncates) a new pass named dest whose
// every partition file is the byte-level concatenation of the
// corresponding partition files of sources, in order. Entry order
// within a partition carries no meaning until the next sort, and every
// blob offset stays valid regardless of which pass names it — so this
// is a plain file copy, not a decode/re-encode. That also means no
// recompression here: each source file is already a self-delimiting
// snappy frame stream, and the snappy framing format is defined to
// tolerate a fresh stream identifier chunk appearing mid-stream, so
// concatenated frame streams still decode correctly as one logical
// stream in OpenReadPass.
func (s *Store) ConcatPasses(dest string, sources ...string) error {
	n := NumPartitions(s.Depth)
	destDir := filepath.Join(s.Dir, dest)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return errors.Wrap(err, "partrepo: mkdir concat dest")
	}
	for i := 0; i < n; i++ {
		out, err := os.OpenFile(filepath.Join(destDir, partFileName(i)), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			return errors.Wrapf(err, "partrepo: open concat dest partition %d", i)
		}
		for _, src := range sources {
			data, err := os.ReadFile(filepath.Join(s.Dir, src, partFileName(i)))
			if err != nil {
				if os.IsNotExist(err) {
					continue
				}
				out.Close()
				return errors.Wrapf(err, "partrepo: read concat source partition %d", i)
			}
			if _, err := out.Write(data); err != nil {
				out.Close()
				return errors.Wrapf(err, "partrepo: write concat dest partition %d", i)
			}
		}
		if err := out.Close(); err != nil {
			return errors.Wrapf(err, "partrepo: close concat dest partition %d", i)
		}
	}
	return nil
}

func partFileName(idx int) string { return "part_" + itoa(idx) + ".entries" }

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var buf [20]byte
	p := len(buf)
	for i > 0 {
		p--
		buf[p] = byte('0' + i%10)
		i /= 10
	}
	return string(buf[p:])
}

// ReadPass is an opened-for-reading pass: one reposeq.Reader per
// partition over its decoded in-memory entries, all sharing the
// Store's in-memory blob mirror.
type ReadPass struct {
	store   *Store
	readers []*reposeq.Reader
	bufs    []*biosubstrate.MemBuf
	blobBuf *biosubstrate.MemBuf
}

// OpenReadPass reads and snappy-decodes every partition file of a
// previously-written pass into memory for reading.
func (s *Store) OpenReadPass(name string) (*ReadPass, error) {
	// The blob is read back from the writer's live in-memory mirror
	// rather than reopened from disk: flush() only durabilizes complete
	// bytes, so a fresh read of blob.bin could miss a partial trailing
	// byte that a later pass is about to extend (see reposeq.BlobWriter's
	// doc comment).
	blobBuf := biosubstrate.BorrowMemBuf(s.blob.Bytes())

	n := NumPartitions(s.Depth)
	rp := &ReadPass{store: s, readers: make([]*reposeq.Reader, n), bufs: make([]*biosubstrate.MemBuf, n), blobBuf: blobBuf}
	dir := filepath.Join(s.Dir, name)
	for i := 0; i < n; i++ {
		f, err := os.Open(filepath.Join(dir, partFileName(i)))
		if err != nil {
			return nil, errors.Wrapf(err, "partrepo: open partition %d", i)
		}
		var decoded bytes.Buffer
		_, err = io.Copy(&decoded, snappy.NewReader(f))
		f.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "partrepo: decode partition %d", i)
		}
		buf := biosubstrate.BorrowMemBuf(decoded.Bytes())
		rp.bufs[i] = buf
		rp.readers[i] = reposeq.NewReader(buf, blobBuf)
	}
	return rp, nil
}

// PartitionRef is one partition's entries plus, when requested, the
// four neighbor partitions whose entries might pop-front into this
// partition's prefix (spec §4.C).
//
// Pushed neighbors are delivered as whole partitions, not narrowed to
// the sub-range that actually pops into this partition's prefix — see
// DESIGN.md's "partrepo" entry for why that narrowing was not ported.
// Consumers (the seqset builder's has_prev computation) must still
// verify the exact pop-front match themselves, which they do anyway.
type PartitionRef struct {
	Index    int
	Reader   *reposeq.Reader
	Pushed   [4]*reposeq.Reader // indexed by dna.Base of the prepended base; nil if not requested
	PushedOK bool
}

// Partitions returns one PartitionRef per partition, optionally
// populated with pushed-neighbor readers.
func (rp *ReadPass) Partitions(includePushed bool) []PartitionRef {
	depth := rp.store.Depth
	out := make([]PartitionRef, len(rp.readers))
	for i := range rp.readers {
		ref := PartitionRef{Index: i, Reader: rp.readers[i]}
		if includePushed {
			ref.PushedOK = true
			for _, b := range [4]dna.Base{dna.A, dna.C, dna.G, dna.T} {
				ref.Pushed[b] = rp.readers[neighborIndex(i, depth, b)]
			}
		}
		out[i] = ref
	}
	return out
}

// Close closes every partition buffer and the blob buffer; all of them
// are borrowed, so no memory is unmapped or freed here.
func (rp *ReadPass) Close() error {
	for _, b := range rp.bufs {
		if err := b.Close(); err != nil {
			return err
		}
	}
	return rp.blobBuf.Close()
}
