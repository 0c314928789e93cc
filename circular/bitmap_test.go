// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package circular_test

import (
	"testing"

	"github.com/grailbio/base/bitset"
	"github.com/grailbio/seqset/circular"
	bi "github.com/grailbio/seqset/interval"
	"github.com/stretchr/testify/assert"
)

func rowBit(row []uintptr, col int) bool {
	return bitset.Test(row, col)
}

func TestBitmapSetThenRowReflectsBit(t *testing.T) {
	cb := circular.NewBitmap(4, 2)
	cb.Set(1, 5)
	cb.Set(1, 70)

	row := cb.Row(1)
	assert.True(t, rowBit(row, 5))
	assert.True(t, rowBit(row, 70))
	assert.False(t, rowBit(row, 6))

	// An unwritten row starts all-zero.
	assert.False(t, rowBit(cb.Row(2), 5))
}

func TestBitmapSetIsIdempotent(t *testing.T) {
	cb := circular.NewBitmap(4, 1)
	cb.Set(0, 3)
	cb.Set(0, 3)
	row := cb.Row(0)
	assert.True(t, rowBit(row, 3))
}

func TestBitmapClearRowZeroesOnlyThatRow(t *testing.T) {
	cb := circular.NewBitmap(4, 2)
	cb.Set(0, 10)
	cb.Set(1, 20)

	cb.ClearRow(0)

	assert.False(t, rowBit(cb.Row(0), 10))
	assert.True(t, rowBit(cb.Row(1), 20))
}

func TestBitmapClearRowThenSetStartsFresh(t *testing.T) {
	cb := circular.NewBitmap(4, 1)
	cb.Set(2, 0)
	cb.ClearRow(2)
	cb.Set(2, 1)

	row := cb.Row(2)
	assert.False(t, rowBit(row, 0))
	assert.True(t, rowBit(row, 1))
}

func TestBitmapPanicsOnNonPowerOfTwoNCirc(t *testing.T) {
	assert.Panics(t, func() {
		circular.NewBitmap(bi.PosType(3), bi.PosType(1))
	})
}
