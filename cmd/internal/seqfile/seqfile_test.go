package seqfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reads.txt")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestReadAllSkipsBlankAndCommentLines(t *testing.T) {
	path := writeTemp(t, "# a comment\nACGT\n\n  \nacgtacgt\n#trailing\nTTTT\n")
	seqs, err := ReadAll(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, seqs, 3)
	assert.Equal(t, "ACGT", seqs[0].String())
	// Base.String() always renders uppercase, regardless of input case.
	assert.Equal(t, "ACGTACGT", seqs[1].String())
	assert.Equal(t, "TTTT", seqs[2].String())
}

func TestReadAllEmptyFile(t *testing.T) {
	path := writeTemp(t, "# only comments\n\n")
	seqs, err := ReadAll(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, seqs)
}

func TestReadOneRequiresExactlyOneSequence(t *testing.T) {
	path := writeTemp(t, "ACGT\n")
	seq, err := ReadOne(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "ACGT", seq.String())

	multi := writeTemp(t, "ACGT\nTTTT\n")
	_, err = ReadOne(context.Background(), multi)
	assert.Error(t, err)
}

func TestReadAllMissingFile(t *testing.T) {
	_, err := ReadAll(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
