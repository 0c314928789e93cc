// kmerize runs the two-phase k-mer counter of package kmer over a
// read set and writes the surviving (kmer, fwd_count, rev_count,
// fwd_starts_read, rev_starts_read) rows as plain text (spec §6.4).
// Thin driver; see package kmer for the counting algorithm itself.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/log"
	"github.com/grailbio/seqset/cmd/internal/seqfile"
	"github.com/grailbio/seqset/kmer"
)

const (
	exitOK = iota
	exitInvalidArgs
	exitIOError
	exitCorruption
	exitOOM
)

func main() {
	input := flag.String("input", "", "Path to a read-source file (one sequence per line).")
	output := flag.String("output", "", "Path to write k-mer counts to, one row per line.")
	k := flag.Int("k", 20, "K-mer length, 1 <= k <= 31.")
	minCount := flag.Int("min-count", 2, "Minimum combined fwd+rev occurrence count to emit.")
	threads := flag.Int("threads", 1, "Reserved for parity with build-seqset; counting here runs single-threaded over the in-memory read set.")
	flag.Parse()
	_ = threads

	opts := kmer.Options{K: *k, MinCount: *minCount}
	if *input == "" || *output == "" {
		fmt.Fprintln(os.Stderr, "kmerize: --input and --output are required")
		os.Exit(exitInvalidArgs)
	}
	if err := opts.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "kmerize: %v\n", err)
		os.Exit(exitInvalidArgs)
	}

	ctx := context.Background()
	reads, err := seqfile.ReadAll(ctx, *input)
	if err != nil {
		log.Printf("kmerize: %v", err)
		os.Exit(exitIOError)
	}
	if len(reads) == 0 {
		fmt.Fprintln(os.Stderr, "kmerize: --input contained no reads")
		os.Exit(exitInvalidArgs)
	}

	counter := kmer.NewCounter(opts)
	windows := 0
	for _, r := range reads {
		counter.AddProb(r.Slice())
		if n := r.Len() - *k + 1; n > 0 {
			windows += n
		}
	}
	counter.CloseProbPass(windows)
	for _, r := range reads {
		counter.AddExact(r.Slice())
	}
	counts := counter.ExtractExactCounts()

	out, err := os.Create(*output)
	if err != nil {
		log.Printf("kmerize: %v", err)
		os.Exit(exitIOError)
	}
	w := bufio.NewWriter(out)
	for _, c := range counts {
		fmt.Fprintf(w, "%s\t%d\t%d\t%t\t%t\n", c.Kmer.String(*k), c.FwdCount, c.RevCount, c.FwdStartsRead, c.RevStartsRead)
	}
	if err := w.Flush(); err != nil {
		log.Printf("kmerize: %v", err)
		os.Exit(exitIOError)
	}
	if err := out.Close(); err != nil {
		log.Printf("kmerize: %v", err)
		os.Exit(exitIOError)
	}
	log.Printf("kmerize: wrote %d k-mer rows to %s", len(counts), *output)
}
