package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(64)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, 64, cap(bb.B))
}

func TestByteBuffer_MustWrite(t *testing.T) {
	bb := NewByteBuffer(4)

	bb.MustWrite([]byte("hello"))
	assert.Equal(t, []byte("hello"), bb.Bytes())

	bb.MustWrite([]byte(" world"))
	assert.Equal(t, []byte("hello world"), bb.Bytes())
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.MustWrite([]byte("some data"))
	originalCap := cap(bb.B)

	bb.Reset()

	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, originalCap, cap(bb.B), "Reset must preserve capacity for reuse")
}

func TestByteBuffer_Grow_NoopWhenCapacitySuffices(t *testing.T) {
	bb := NewByteBuffer(64)
	bb.MustWrite([]byte("abc"))

	before := &bb.B[:cap(bb.B)][0]
	bb.Grow(10)
	after := &bb.B[:cap(bb.B)][0]

	assert.Same(t, before, after, "Grow must not reallocate when spare capacity already suffices")
}

func TestByteBuffer_Grow_DoublesCapacity(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWrite(make([]byte, 8)) // fill to capacity

	bb.Grow(1)

	assert.GreaterOrEqual(t, cap(bb.B), 16, "Grow must at least double capacity rather than grow by exactly the request")
}

func TestByteBuffer_Grow_HonorsLargeRequest(t *testing.T) {
	bb := NewByteBuffer(8)

	bb.Grow(1024)

	assert.GreaterOrEqual(t, cap(bb.B)-bb.Len(), 1024)
}

func TestByteBufferPool_RoundTrip(t *testing.T) {
	p := newByteBufferPool(32, 128)

	bb := p.get()
	require.NotNil(t, bb)
	bb.MustWrite([]byte("payload"))

	p.put(bb)

	again := p.get()
	require.NotNil(t, again)
	assert.Equal(t, 0, again.Len(), "pooled buffers come back reset")
}

func TestByteBufferPool_DiscardsOversizedBuffers(t *testing.T) {
	p := newByteBufferPool(32, 64)

	bb := p.get()
	bb.Grow(1024) // push capacity well past maxThreshold
	p.put(bb)

	fresh := p.get()
	assert.Less(t, cap(fresh.B), 1024, "buffers that grew past maxThreshold must not be retained")
}

func TestByteBufferPool_PutNilIsNoop(t *testing.T) {
	p := newByteBufferPool(32, 128)
	assert.NotPanics(t, func() { p.put(nil) })
}

func TestDescriptorAndPayloadBuffers_AreIndependentPools(t *testing.T) {
	d := GetDescriptorBuffer()
	p := GetPayloadBuffer()

	d.MustWrite([]byte("descriptor"))
	p.MustWrite([]byte("payload"))

	assert.NotEqual(t, d.Bytes(), p.Bytes())

	PutDescriptorBuffer(d)
	PutPayloadBuffer(p)
}
