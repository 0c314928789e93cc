// Package seqfile reads the plain-text, one-sequence-per-line input
// format shared by this module's CLI drivers. Real read-source and
// reference ingestion (FASTQ/FASTA/BAM parsing) is an external
// collaborator per spec §1 ("file-format adapters ... the design
// assumes these exist"); this format is the minimal stand-in that lets
// the drivers below exercise the real pipeline without reimplementing
// one of those adapters.
//
// Format: one sequence per line, upper- or lower-case ACGT only; blank
// lines and lines starting with '#' are skipped.
package seqfile

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/seqset/dna"
	"github.com/pkg/errors"
)

// ReadAll returns every non-comment, non-blank line of path as a
// *dna.Sequence, in file order.
func ReadAll(ctx context.Context, path string) ([]*dna.Sequence, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "seqfile: open %s", path)
	}
	defer f.Close(ctx) //nolint:errcheck

	var out []*dna.Sequence
	scanner := bufio.NewScanner(f.Reader(ctx))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<24)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, dna.NewSequenceFromString(line))
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "seqfile: read %s", path)
	}
	return out, nil
}

// ReadOne returns the first non-comment, non-blank line of path,
// erroring if the file holds anything other than exactly one such
// line (used for single-scaffold reference files).
func ReadOne(ctx context.Context, path string) (*dna.Sequence, error) {
	seqs, err := ReadAll(ctx, path)
	if err != nil {
		return nil, err
	}
	if len(seqs) != 1 {
		return nil, errors.Errorf("seqfile: %s: expected exactly one sequence, got %d", path, len(seqs))
	}
	return seqs[0], nil
}
