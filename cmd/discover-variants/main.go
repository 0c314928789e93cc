// discover-variants runs the tracer/aligner/splitter pipeline (spec
// §4.H, §4.I) over one reference scaffold against a built seqset,
// emitting a simplified variant-call text file. A full VCF emitter is
// explicitly out of scope (spec §1 Non-goals), so --output here is a
// minimal tab-separated stand-in, not a conformant VCF file.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/grailbio/base/log"
	"github.com/grailbio/seqset/cmd/internal/seqfile"
	"github.com/grailbio/seqset/refmap"
	"github.com/grailbio/seqset/seqset"
	"github.com/grailbio/seqset/variants"
	"github.com/grailbio/seqset/variants/align"
	"github.com/grailbio/seqset/variants/tracer"
)

const (
	exitOK = iota
	exitInvalidArgs
	exitIOError
	exitCorruption
	exitOOM
)

func main() {
	seqsetDir := flag.String("seqset", "", "Directory holding a seqset container written by build-seqset.")
	referenceDir := flag.String("reference", "", "Directory holding one <scaffold-name>.txt file per reference scaffold.")
	scaffoldArg := flag.String("scaffold", "", "Scaffold to search, optionally 'name:start-end' (0-based, half-open).")
	output := flag.String("output", "", "Path to write discovered variants to.")
	flag.Parse()

	if *seqsetDir == "" || *referenceDir == "" || *scaffoldArg == "" || *output == "" {
		fmt.Fprintln(os.Stderr, "discover-variants: --seqset, --reference, --scaffold and --output are all required")
		os.Exit(exitInvalidArgs)
	}
	name, start, limit, err := parseScaffoldArg(*scaffoldArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "discover-variants: %v\n", err)
		os.Exit(exitInvalidArgs)
	}

	ss, err := seqset.Load(*seqsetDir)
	if err != nil {
		log.Printf("discover-variants: %v", err)
		os.Exit(exitCorruption)
	}

	ctx := context.Background()
	refSeq, err := seqfile.ReadOne(ctx, filepath.Join(*referenceDir, name+".txt"))
	if err != nil {
		log.Printf("discover-variants: %v", err)
		os.Exit(exitIOError)
	}
	refSlice := refSeq.Slice()
	if limit < 0 {
		limit = refSlice.Len()
	}
	if start < 0 || limit > refSlice.Len() || start >= limit {
		fmt.Fprintf(os.Stderr, "discover-variants: scaffold range [%d,%d) out of bounds for a %d-base reference\n", start, limit, refSlice.Len())
		os.Exit(exitInvalidArgs)
	}
	region, err := refSlice.Sub(start, limit-start)
	if err != nil {
		log.Printf("discover-variants: %v", err)
		os.Exit(exitInvalidArgs)
	}

	extents := []refmap.Extent{{Name: name, Start: start, Seq: region}}
	rm, err := refmap.Build(ss, extents, ss.MaxReadLen, nil, refmap.Options{})
	if err != nil {
		log.Printf("discover-variants: refmap: %v", err)
		os.Exit(exitCorruption)
	}
	sc, err := variants.BuildScaffold(name, extents)
	if err != nil {
		log.Printf("discover-variants: %v", err)
		os.Exit(exitCorruption)
	}

	assemblies := traceScaffold(ss, rm, sc)
	log.Printf("discover-variants: %d candidate assemblies from %s", len(assemblies), name)

	out, err := os.Create(*output)
	if err != nil {
		log.Printf("discover-variants: %v", err)
		os.Exit(exitIOError)
	}
	w := bufio.NewWriter(out)
	fmt.Fprintf(w, "#CHROM\tPOS\tREF_LEN\tALT\n")
	n := 0
	ids := tracer.NewIDCounter()
	for _, a := range assemblies {
		if a.Left.Dropped() || a.Right.Dropped() {
			continue
		}
		refSpan, err := sc.Seq.Sub(a.Left.Offset, a.Right.Offset-a.Left.Offset)
		if err != nil {
			log.Printf("discover-variants: %v", err)
			continue
		}
		aligned, err := align.Align(a, refSpan, align.DefaultOptions)
		if err != nil {
			log.Printf("discover-variants: align: %v", err)
			continue
		}
		for _, part := range align.Split(aligned, ids) {
			if part.MatchesReference {
				continue
			}
			abs, ok := sc.ToAbsolute(part.Left.Offset)
			if !ok {
				continue
			}
			refLen := part.Right.Offset - part.Left.Offset
			alt := "."
			if part.Seq != nil {
				alt = part.Seq.String()
			}
			fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", name, abs, refLen, alt)
			n++
		}
	}
	if err := w.Flush(); err != nil {
		log.Printf("discover-variants: %v", err)
		os.Exit(exitIOError)
	}
	if err := out.Close(); err != nil {
		log.Printf("discover-variants: %v", err)
		os.Exit(exitIOError)
	}
	log.Printf("discover-variants: wrote %d variant records to %s", n, *output)
}

// traceScaffold seeds one tracer.Trace call at every scaffold position
// that is itself a read start (spec §4.H), collecting every resulting
// assembly.
func traceScaffold(ss *seqset.Seqset, rm *refmap.RefMap, sc *variants.Scaffold) []tracer.Assembly {
	readLen := ss.MaxReadLen
	ids := tracer.NewIDCounter()
	var out []tracer.Assembly
	for pos := 0; pos+readLen <= sc.Seq.Len(); pos++ {
		window, err := sc.Seq.Sub(pos, readLen)
		if err != nil {
			continue
		}
		r := ss.Find(window.RevComp())
		if !r.Single() || ss.Size(r.Begin) != readLen {
			continue
		}
		assemblies, err := tracer.Trace(ss, rm, sc, pos, tracer.DefaultOptions, ids)
		if err != nil {
			log.Printf("discover-variants: trace at %d: %v", pos, err)
			continue
		}
		out = append(out, assemblies...)
	}
	return out
}

// parseScaffoldArg splits "name" or "name:start-end" (spec §6.4). A
// missing range returns limit=-1, meaning "to the end of the
// reference file".
func parseScaffoldArg(arg string) (name string, start, limit int, err error) {
	i := strings.IndexByte(arg, ':')
	if i < 0 {
		return arg, 0, -1, nil
	}
	name = arg[:i]
	rangeStr := arg[i+1:]
	j := strings.IndexByte(rangeStr, '-')
	if j < 0 {
		return "", 0, 0, fmt.Errorf("discover-variants: malformed scaffold range %q, want start-end", rangeStr)
	}
	start, err = strconv.Atoi(rangeStr[:j])
	if err != nil {
		return "", 0, 0, fmt.Errorf("discover-variants: malformed start in %q: %v", rangeStr, err)
	}
	limit, err = strconv.Atoi(rangeStr[j+1:])
	if err != nil {
		return "", 0, 0, fmt.Errorf("discover-variants: malformed end in %q: %v", rangeStr, err)
	}
	return name, start, limit, nil
}
