// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package biosimd provides the low-level bit-packing primitives that the
// dna package builds its sequence/slice/comparator types on top of.
//
// Unlike the upstream biosimd package (4-bit-per-base BAM seq-field
// encoding, ASCII byte revcomp tables), everything here operates on the
// 2-bit-per-base packed representation: one of {A,C,G,T} per 2 bits,
// big-endian bit order within a byte (base i occupies bits 6-2*(i%4) ..
// 7-2*(i%4) of byte i/4).
//
// See DESIGN.md for the grounding of each function on
// modules/bio_base/dna_sequence.cpp's get_full_block / be64toh_and_rc /
// compare_shifted family.
package biosimd
