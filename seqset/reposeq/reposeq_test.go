package reposeq

import (
	"bytes"
	"testing"

	"github.com/grailbio/seqset/biosubstrate"
	"github.com/grailbio/seqset/dna"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryEncodeDecodeRoundTrip(t *testing.T) {
	e := Entry{Size: 42, BlobOffset: 123456789, RC: true}
	copy(e.InlinePrefix[:], []byte{0x1b, 0x2c, 0x3d, 0x00, 0x00, 0x00, 0x00})
	var buf [EntrySize]byte
	e.Encode(buf[:])
	got := DecodeEntry(buf[:])
	assert.Equal(t, e, got)
}

func TestWriterReaderRoundTrip(t *testing.T) {
	var blobBuf, entriesBuf bytes.Buffer
	w := NewWriter(&blobBuf, &entriesBuf)

	short := dna.NewSequenceFromString("ACGT")
	long := dna.NewSequenceFromString("ACGTACGTACGTACGTACGTACGTACGTACGTACGT") // 36 bases > 28

	shortOff, err := w.WriteSeq(short.Slice())
	require.NoError(t, err)
	longOff, err := w.WriteSeq(long.Slice())
	require.NoError(t, err)
	require.NoError(t, w.Close())

	eb := w.NewEntryBuffer()
	var shortEntry, longEntry Entry
	shortEntry.Size = uint16(short.Len())
	copy(shortEntry.InlinePrefix[:], packBasesForTest(short.Slice()))
	shortEntry.BlobOffset = shortOff

	longPrefix, err := long.Slice().Sub(0, InlineBases)
	require.NoError(t, err)
	longEntry.Size = uint16(long.Len())
	copy(longEntry.InlinePrefix[:], packBasesForTest(longPrefix))
	longEntry.BlobOffset = longOff + uint64(InlineBases)

	require.NoError(t, eb.WriteEntry(shortEntry))
	require.NoError(t, eb.WriteEntry(longEntry))
	require.NoError(t, eb.Flush())

	entries := biosubstrate.BorrowMemBuf(entriesBuf.Bytes())
	blob := biosubstrate.BorrowMemBuf(blobBuf.Bytes())
	r := NewReader(entries, blob)
	require.Equal(t, 2, r.Len())

	gotShort, err := r.Sequence(r.At(0))
	require.NoError(t, err)
	assert.Equal(t, "ACGT", gotShort.String())

	gotLong, err := r.Sequence(r.At(1))
	require.NoError(t, err)
	assert.Equal(t, long.String(), gotLong.String())
}

func packBasesForTest(s dna.Slice) []byte {
	buf := make([]byte, 7)
	for i := 0; i < s.Len(); i++ {
		byteIdx := i / 4
		shift := uint(6 - 2*(i%4))
		buf[byteIdx] |= byte(s.At(i)) << shift
	}
	return buf
}
