// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package dna implements the 2-bit-packed DNA sequence and slice types
// that every other package in this module is built on: an owned,
// growable Sequence; a zero-copy Slice view with O(1) reverse-complement;
// and a 5-valued colex comparator used throughout the seqset builder and
// expander.
//
// Grounded on modules/bio_base/dna_base.h and dna_sequence.{h,cpp} from
// the original implementation; see DESIGN.md's "dna" entry.
package dna
