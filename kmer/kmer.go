package kmer

import (
	"github.com/grailbio/seqset/dna"
	"github.com/pkg/errors"
)

// Kmer packs up to MaxK bases, 2 bits each, into a 64-bit word, base 0
// in the highest-order pair of bits used (spec §3.4).
type Kmer uint64

// Encode packs s (1 <= s.Len() <= MaxK) into a Kmer.
func Encode(s dna.Slice) (Kmer, error) {
	k := s.Len()
	if k < 1 || k > MaxK {
		return 0, errors.Errorf("kmer: Encode length %d out of range [1,%d]", k, MaxK)
	}
	var km Kmer
	for i := 0; i < k; i++ {
		km = km<<2 | Kmer(s.At(i))
	}
	return km, nil
}

// RevComp returns the reverse complement of the k-base kmer km.
func RevComp(km Kmer, k int) Kmer {
	var out Kmer
	for i := 0; i < k; i++ {
		b := dna.Base(km & 3).Complement()
		out = out<<2 | Kmer(b)
		km >>= 2
	}
	return out
}

// Canonical returns the lexicographic minimum of km and its reverse
// complement, plus whether that minimum required flipping (spec
// §3.4). Canonicalization is what lets the counter treat a k-mer and
// its reverse complement as the same table row, tracking fwd/rev
// occurrence counts against whichever orientation was actually
// observed.
func Canonical(km Kmer, k int) (Kmer, bool) {
	rc := RevComp(km, k)
	if rc < km {
		return rc, true
	}
	return km, false
}

// String renders km as an uppercase ASCII string of length k, for
// debugging and test failure messages.
func (km Kmer) String(k int) string {
	buf := make([]byte, k)
	for i := k - 1; i >= 0; i-- {
		buf[i] = dna.Base(km & 3).String()[0]
		km >>= 2
	}
	return string(buf)
}
