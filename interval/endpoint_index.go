package interval

import "math"

// PosType is the type used to represent reference coordinates shared
// by circular and variants/tracer. int32 is wide enough for any
// scaffold this module builds a seqset over.
//
// (This should move to a more central package once an appropriate one
// exists. And then, when generics finally become part of the
// language *crosses fingers*, we can allow some applications to
// redefine this as uint32 or a 64-bit type as appropriate.)
type PosType int32

// PosTypeMax is the maximum value that can be represented by a PosType.
const PosTypeMax = math.MaxInt32
