// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package expand runs the partitioned sort/dedup/expand passes that
// close a sequence set under pop-front: each pass merges freshly
// written entries against an already-sorted partition, drops
// duplicates and prefixes, and emits pop-front expansions for the
// next pass, until a full sort+dedup reports no further
// deduplications.
//
// Grounded on spec.md §4.D and
// original_source/modules/build_seqset/{expand,merge_seqset}.{h,cpp};
// see DESIGN.md's "seqset/expand" entry.
package expand
