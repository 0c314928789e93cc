// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package biosubstrate is the utility substrate shared by the seqset
// builder, k-mer counter, reference mapper and variant tracer: a
// memory-reservation-gated parallel executor, huge-page-backed owned
// buffers, and a packed variable-bit-width vector.
//
// Grounded on fusion/kmer_index.go's hugepage-mmap hash table and
// modules/io/parallel.h's priority thread pool (see DESIGN.md).
package biosubstrate
