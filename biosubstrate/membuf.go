package biosubstrate

import (
	"github.com/grailbio/base/log"
	"golang.org/x/sys/unix"
)

// hugePageSize is the size of a Linux transparent hugetlb page. Owned
// buffers at or above hugePageThreshold are backed by an anonymous mmap
// with MADV_HUGEPAGE, the same trick fusion/kmer_index.go uses for its
// hash table: Ubuntu only activates THP for madvised regions, so
// bypassing the regular Go allocator is the only way to get hugepage
// backing for a large flat buffer.
const hugePageSize = 2 << 20

// hugePageThreshold is the minimum owned-buffer size that triggers
// mmap+madvise instead of a plain make([]byte, n).
const hugePageThreshold = 8 * hugePageSize // 16 MiB

// MemBuf is a flat byte buffer with one of three backing kinds:
// owned (allocated by this package, possibly hugepage-backed),
// borrowed (a slice of someone else's memory — e.g. a parent
// MemBuf's backing array — that this MemBuf does not own and must not
// free), or shared-mmap (a read-only view over a memory-mapped file,
// shared across processes/goroutines).
type MemBuf struct {
	data []byte
	kind membufKind
}

type membufKind int

const (
	kindOwned membufKind = iota
	kindBorrowed
	kindSharedMmap
)

// NewOwnedMemBuf allocates a new buffer of n bytes. Buffers at or above
// hugePageThreshold are backed by an anonymous hugepage-advised mmap
// region; smaller buffers use the ordinary Go heap, since the mmap
// syscall overhead isn't worth it below that size.
func NewOwnedMemBuf(n int) *MemBuf {
	if n >= hugePageThreshold {
		data, err := unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
		if err != nil {
			log.Panicf("biosubstrate: mmap %d bytes: %v", n, err)
		}
		if err := unix.Madvise(data, unix.MADV_HUGEPAGE); err != nil {
			// Hugepage support is an optimization, not a correctness
			// requirement; a kernel without THP configured should
			// still work, just without the backing benefit.
			log.Printf("biosubstrate: madvise(MADV_HUGEPAGE) failed, continuing without it: %v", err)
		}
		return &MemBuf{data: data, kind: kindOwned}
	}
	return &MemBuf{data: make([]byte, n), kind: kindOwned}
}

// BorrowMemBuf returns a MemBuf viewing data without taking ownership:
// Close is a no-op, and the caller remains responsible for data's
// lifetime. Used when handing a sub-range of one MemBuf's bytes to a
// component that only needs read/write access, not ownership (e.g. a
// partition's slice of a partrepo entry buffer).
func BorrowMemBuf(data []byte) *MemBuf {
	return &MemBuf{data: data, kind: kindBorrowed}
}

// NewSharedMmapMemBuf wraps an existing mmap'd slice (e.g. from
// grailbio/base/file or a raw unix.Mmap of a file descriptor) as a
// read-only shared buffer. Close unmaps it.
func NewSharedMmapMemBuf(data []byte) *MemBuf {
	return &MemBuf{data: data, kind: kindSharedMmap}
}

// Bytes returns the buffer's backing slice.
func (m *MemBuf) Bytes() []byte { return m.data }

// Close releases the buffer's resources. For owned buffers below the
// hugepage threshold and for borrowed buffers this is a no-op (the Go
// GC and the original owner, respectively, handle reclamation); for
// mmap-backed owned and shared buffers it unmaps the region.
func (m *MemBuf) Close() error {
	switch m.kind {
	case kindOwned:
		if len(m.data) >= hugePageThreshold {
			return unix.Munmap(m.data)
		}
		return nil
	case kindSharedMmap:
		return unix.Munmap(m.data)
	default:
		return nil
	}
}

// Prefault touches one byte per page of the buffer, forcing the kernel
// to back every page before the first real write — used ahead of a
// parallel fill so page faults don't serialize on a single goroutine.
func (m *MemBuf) Prefault() {
	const pageSize = 4096
	for i := 0; i < len(m.data); i += pageSize {
		m.data[i] = m.data[i]
	}
}
