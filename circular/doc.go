// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package circular provides sliding-window data structures for
// tracking recently-seen values over a bounded range of positions,
// such as variants/tracer's read-id-hash pair window.
package circular
