// Package pool provides sync.Pool-backed reuse for the two byte buffers
// the codec repeatedly allocates per file: the encoded descriptor and the
// assembled uncompressed payload.
package pool

import "sync"

const (
	// descriptorBufferDefaultSize comfortably covers a typical small
	// descriptor without reallocating; it still grows past the encoded
	// descriptor size limit if a caller writes more.
	descriptorBufferDefaultSize = 1024 * 4
	// descriptorBufferMaxThreshold matches the encoded descriptor size
	// limit; buffers that grew past it are discarded rather than pooled,
	// since a file that big was almost certainly a one-off.
	descriptorBufferMaxThreshold = 1024 * 64

	// payloadBufferDefaultSize covers a modest uncompressed mesh payload
	// (a few thousand vertices) without reallocating.
	payloadBufferDefaultSize = 1024 * 64
	// payloadBufferMaxThreshold discards pooled payload buffers larger
	// than this so one huge mesh doesn't pin memory for every future call.
	payloadBufferMaxThreshold = 1024 * 1024 * 16
)

// ByteBuffer is a growable, reusable byte slice wrapper. It supports only
// append-style writes, which is all the descriptor and payload encoders
// need.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer allocates a ByteBuffer with defaultSize bytes of spare
// capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the buffer's current contents.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer without releasing its backing array.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the number of bytes currently held.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// MustWrite appends data to the buffer, growing it first if its spare
// capacity is too small.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.Grow(len(data))
	bb.B = append(bb.B, data...)
}

// Grow ensures at least requiredBytes of spare capacity, reallocating at
// double the buffer's current capacity (or requiredBytes, whichever is
// larger) if needed. Doubling keeps the amortized cost of repeated writes
// linear, the same strategy bytes.Buffer uses internally.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	if cap(bb.B)-len(bb.B) >= requiredBytes {
		return
	}

	newCap := 2 * cap(bb.B)
	if min := len(bb.B) + requiredBytes; newCap < min {
		newCap = min
	}

	grown := make([]byte, len(bb.B), newCap)
	copy(grown, bb.B)
	bb.B = grown
}

// byteBufferPool pools ByteBuffers of a given default size, discarding any
// that grew past maxThreshold instead of returning them to the pool.
type byteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

func newByteBufferPool(defaultSize, maxThreshold int) *byteBufferPool {
	return &byteBufferPool{
		pool: sync.Pool{
			New: func() any { return NewByteBuffer(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

func (p *byteBufferPool) get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

func (p *byteBufferPool) put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if p.maxThreshold > 0 && cap(bb.B) > p.maxThreshold {
		return
	}

	bb.Reset()
	p.pool.Put(bb)
}

var (
	descriptorPool = newByteBufferPool(descriptorBufferDefaultSize, descriptorBufferMaxThreshold)
	payloadPool    = newByteBufferPool(payloadBufferDefaultSize, payloadBufferMaxThreshold)
)

// GetDescriptorBuffer retrieves a ByteBuffer from the descriptor-encoding pool.
func GetDescriptorBuffer() *ByteBuffer {
	return descriptorPool.get()
}

// PutDescriptorBuffer returns a ByteBuffer to the descriptor-encoding pool.
func PutDescriptorBuffer(bb *ByteBuffer) {
	descriptorPool.put(bb)
}

// GetPayloadBuffer retrieves a ByteBuffer from the payload-staging pool.
func GetPayloadBuffer() *ByteBuffer {
	return payloadPool.get()
}

// PutPayloadBuffer returns a ByteBuffer to the payload-staging pool.
func PutPayloadBuffer(bb *ByteBuffer) {
	payloadPool.put(bb)
}
