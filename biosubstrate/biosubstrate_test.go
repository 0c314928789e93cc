package biosubstrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolEachPropagatesFirstError(t *testing.T) {
	p := NewPool(4, 0)
	err := p.Each(10, func(i int) error {
		if i == 3 {
			return assert.AnError
		}
		return nil
	})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestPoolReserveRelease(t *testing.T) {
	p := NewPool(2, 100)
	p.Reserve(60)
	p.Release(60)
	p.Reserve(100)
	p.Release(100)
}

func TestVarbitVectorZeroWidth(t *testing.T) {
	v := NewVarbitVector(10, 0)
	for i := 0; i < 10; i++ {
		assert.EqualValues(t, 0, v.Get(i))
	}
}

func TestVarbitVectorByteAligned(t *testing.T) {
	v := NewVarbitVector(4, 16)
	v.Set(0, 0x1234)
	v.Set(3, 0xffff)
	assert.EqualValues(t, 0x1234, v.Get(0))
	assert.EqualValues(t, 0, v.Get(1))
	assert.EqualValues(t, 0xffff, v.Get(3))
}

func TestVarbitVectorGeneric(t *testing.T) {
	v := NewVarbitVector(20, 3)
	for i := 0; i < 20; i++ {
		v.Set(i, uint64(i%8))
	}
	for i := 0; i < 20; i++ {
		assert.EqualValues(t, i%8, v.Get(i))
	}
}

func TestTrackedAllocatorPeak(t *testing.T) {
	tr := NewTrackedAllocator("test")
	tr.Add(100)
	tr.Add(50)
	tr.Add(-80)
	assert.EqualValues(t, 70, tr.Current())
	assert.EqualValues(t, 150, tr.Peak())
}

func TestMemBufBorrowed(t *testing.T) {
	data := []byte{1, 2, 3}
	m := BorrowMemBuf(data)
	require.NoError(t, m.Close())
	assert.Equal(t, data, m.Bytes())
}

func TestMemBufOwnedSmall(t *testing.T) {
	m := NewOwnedMemBuf(16)
	defer m.Close()
	assert.Equal(t, 16, len(m.Bytes()))
}
