package dna

import "fmt"

// Base is one of the four nucleotides, packed as a 2-bit value. The
// encoding is chosen so that Complement is a single XOR: A<->T and
// C<->G are the bit-complement pairs 00<->11 and 01<->10.
type Base uint8

const (
	A Base = 0
	C Base = 1
	G Base = 2
	T Base = 3
)

// Complement returns the Watson-Crick complement of b.
func (b Base) Complement() Base { return b ^ 3 }

// String renders b as a single-character uppercase base letter.
func (b Base) String() string {
	switch b {
	case A:
		return "A"
	case C:
		return "C"
	case G:
		return "G"
	case T:
		return "T"
	default:
		return "?"
	}
}

// ParseBase maps an ASCII base letter (either case) to a Base. It
// returns an error for anything other than A/C/G/T, including IUPAC
// ambiguity codes — callers that need to tolerate ambiguous input (read
// ingestion, k-mer counting) must filter before calling ParseBase.
func ParseBase(c byte) (Base, error) {
	switch c {
	case 'A', 'a':
		return A, nil
	case 'C', 'c':
		return C, nil
	case 'G', 'g':
		return G, nil
	case 'T', 't':
		return T, nil
	default:
		return 0, fmt.Errorf("dna: invalid base character %q", c)
	}
}

// IsBase reports whether c is one of the four unambiguous base letters.
func IsBase(c byte) bool {
	switch c {
	case 'A', 'a', 'C', 'c', 'G', 'g', 'T', 't':
		return true
	default:
		return false
	}
}
