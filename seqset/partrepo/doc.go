// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package partrepo groups sequence-repository entries into 4^D
// partitions keyed by their first D bases, backing the expander's
// per-partition sort/dedup/expand passes (package expand).
//
// Grounded on spec.md §4.C and original_source/modules/build_seqset/
// part_repo.h and part_counts.{h,cpp}; see DESIGN.md's "partrepo" entry.
package partrepo
