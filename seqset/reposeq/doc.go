// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package reposeq is the sequence repository: an append-only packed-base
// blob plus fixed 14-byte entry records that reference it. Writer
// buffers records per-goroutine and flushes them in bulk; Reader
// iterates over the finished entry and blob bytes.
//
// Grounded on markduplicates' per-shard buffered-writer idiom and the
// entry-record layout of spec.md §6.2; see DESIGN.md's "reposeq" entry.
package reposeq
