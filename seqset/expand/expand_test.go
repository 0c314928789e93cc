package expand

import (
	"testing"

	"github.com/grailbio/seqset/biosubstrate"
	"github.com/grailbio/seqset/dna"
	"github.com/grailbio/seqset/seqset/reposeq"
	"github.com/grailbio/seqset/seqset/partrepo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRaw(t *testing.T, wp *partrepo.WritePass, depth int, seqs []string) {
	t.Helper()
	buffers := make(map[int]*reposeq.EntryBuffer)
	for _, s := range seqs {
		slice := dna.NewSequenceFromString(s).Slice()
		idx := partrepo.PartitionIndex(slice, depth)
		buf := buffers[idx]
		if buf == nil {
			buf = wp.EntryBuffer(idx)
			buffers[idx] = buf
		}
		offset, err := wp.WriteSeq(slice)
		require.NoError(t, err)
		require.NoError(t, buf.WriteEntry(reposeq.NewEntryFromSlice(slice, offset)))
	}
	for _, buf := range buffers {
		require.NoError(t, buf.Flush())
	}
}

func readAllSeqs(t *testing.T, store *partrepo.Store, pass string) []string {
	t.Helper()
	rp, err := store.OpenReadPass(pass)
	require.NoError(t, err)
	defer rp.Close()
	var out []string
	for _, ref := range rp.Partitions(false) {
		for i := 0; i < ref.Reader.Len(); i++ {
			seq, err := ref.Reader.Sequence(ref.Reader.At(i))
			require.NoError(t, err)
			out = append(out, seq.String())
		}
	}
	return out
}

func TestSortDedupExpandDropsDuplicatesAndPrefixes(t *testing.T) {
	dir := t.TempDir()
	store, err := partrepo.Open(dir, 2)
	require.NoError(t, err)
	pool := biosubstrate.NewPool(2, -1)

	wp, err := store.OpenWritePass("new0", false)
	require.NoError(t, err)
	// "ACGTT" is a duplicate; "ACG" is a strict prefix of "ACGTT" and
	// should be dropped in favor of the longer form.
	writeRaw(t, wp, store.Depth, []string{"ACGTT", "ACGTT", "ACG", "GATTACA"})
	require.NoError(t, wp.Close())

	res, err := SortDedupExpand(store, pool, "", "new0", "sorted0", "", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Dedups) // one exact dup + one prefix

	got := readAllSeqs(t, store, "sorted0")
	assert.ElementsMatch(t, []string{"ACGTT", "GATTACA"}, got)
}

func TestSortDedupExpandEmitsPopFrontDescendants(t *testing.T) {
	dir := t.TempDir()
	store, err := partrepo.Open(dir, 2)
	require.NoError(t, err)
	pool := biosubstrate.NewPool(2, -1)

	wp, err := store.OpenWritePass("new0", false)
	require.NoError(t, err)
	writeRaw(t, wp, store.Depth, []string{"ACGTACGTACGT"})
	require.NoError(t, wp.Close())

	res, err := SortDedupExpand(store, pool, "", "new0", "sorted0", "expanded0", 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Dedups)

	expanded := readAllSeqs(t, store, "expanded0")
	assert.ElementsMatch(t, []string{"CGTACGTACGT", "GTACGTACGT", "TACGTACGT"}, expanded)
}

func TestRunConvergesToClosedSet(t *testing.T) {
	dir := t.TempDir()
	store, err := partrepo.Open(dir, 2)
	require.NoError(t, err)
	pool := biosubstrate.NewPool(2, -1)

	wp, err := store.OpenWritePass("new0", false)
	require.NoError(t, err)
	writeRaw(t, wp, store.Depth, []string{"ACGTACG"})
	require.NoError(t, wp.Close())

	opts := Options{Stride1: 1, Count1: 2, Stride2: 1, Count2: 2}
	result, err := Run(store, pool, opts, "new0")
	require.NoError(t, err)
	require.NoError(t, store.CloseBlob())

	store2, err := partrepo.Open(dir, 2)
	require.NoError(t, err)
	final := readAllSeqs(t, store2, result.FinalSortedPass)
	assert.Contains(t, final, "ACGTACG")
}
