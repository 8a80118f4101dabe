package container

import (
	"encoding/binary"
	"fmt"

	"github.com/iyesgames/ima/compress"
	"github.com/iyesgames/ima/descriptor"
	"github.com/iyesgames/ima/errs"
	"github.com/iyesgames/ima/internal/hash"
	"github.com/iyesgames/ima/internal/pool"
	"github.com/iyesgames/ima/layout"
)

// writerConfig holds the encode-time knobs WriterOption values mutate.
type writerConfig struct {
	level int
	codec compress.Codec
}

func newWriterConfig() *writerConfig {
	return &writerConfig{
		level: compress.DefaultLevel,
		codec: compress.NewZstdCompressor(),
	}
}

// WithCompressionLevel sets the zstd compression level Write uses. Level
// is never recorded in the file: files written at different levels decode
// identically and are fully interchangeable.
func WithCompressionLevel(level int) WriterOption {
	return func(c *writerConfig) error {
		if level < 1 {
			return fmt.Errorf("ima: compression level must be >= 1, got %d", level)
		}

		c.level = level

		return nil
	}
}

// WithCodec overrides the compression codec Write uses. Exposed for tests
// and benchmarks; the default already selects the headerless zstd
// configuration this package requires.
func WithCodec(codec compress.Codec) WriterOption {
	return func(c *writerConfig) error {
		c.codec = codec
		return nil
	}
}

// Write assembles a complete IMA file from a descriptor and its buffers.
// userData, indices, and vertexBuffers must exactly match the region
// lengths layout.Regions derives from d; any mismatch is reported as
// BufferSizeMismatch rather than silently truncated or padded.
func Write(d *descriptor.IyesMeshDescriptor, userData, indices []byte, vertexBuffers [][]byte, opts ...WriterOption) ([]byte, error) {
	cfg := newWriterConfig()
	if err := applyWriterOptions(cfg, opts...); err != nil {
		return nil, err
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}

	if err := checkBufferLengths(d, userData, indices, vertexBuffers); err != nil {
		return nil, err
	}

	descBytes, err := descriptor.Encode(d)
	if err != nil {
		return nil, err
	}

	if len(descBytes) > 0xFFFF {
		return nil, errs.ErrDescriptorTooLarge
	}

	stream := assemblePayload(d, userData, indices, vertexBuffers)
	defer pool.PutPayloadBuffer(stream)

	compressed, err := cfg.codec.Compress(stream.Bytes(), cfg.level)
	if err != nil {
		return nil, err
	}

	dataChecksum := hash.Sum(compressed)

	metadataChecksum := metadataChecksumOf(descBytes, uint16(len(descBytes)), dataChecksum)

	header := Header{
		Version:          Version,
		DescriptorLen:    uint16(len(descBytes)),
		MetadataChecksum: metadataChecksum,
		DataChecksum:     dataChecksum,
	}

	out := make([]byte, 0, HeaderSize+len(descBytes)+len(compressed))
	out = append(out, header.Bytes()...)
	out = append(out, descBytes...)
	out = append(out, compressed...)

	return out, nil
}

// metadataChecksumOf computes the streamed hash of (desc_bytes ‖
// descriptor_len_le_u16 ‖ data_checksum_le_u64).
func metadataChecksumOf(descBytes []byte, descriptorLen uint16, dataChecksum uint64) uint64 {
	h := hash.New()

	h.Write(descBytes)

	var tail [10]byte
	binary.LittleEndian.PutUint16(tail[0:2], descriptorLen)
	binary.LittleEndian.PutUint64(tail[2:10], dataChecksum)
	h.Write(tail[:])

	return h.Sum64()
}

// checkBufferLengths verifies userData, indices, and vertexBuffers exactly
// match the region lengths layout.Regions derives from d.
func checkBufferLengths(d *descriptor.IyesMeshDescriptor, userData, indices []byte, vertexBuffers [][]byte) error {
	regions, err := layout.Regions(d)
	if err != nil {
		return err
	}

	if uint64(len(userData)) != uint64(d.UserDataLen) {
		return fmt.Errorf("%w: user data is %d bytes, descriptor declares %d", errs.ErrBufferSizeMismatch, len(userData), d.UserDataLen)
	}

	if len(vertexBuffers) != len(d.Attributes) {
		return fmt.Errorf("%w: got %d vertex buffers, descriptor declares %d attributes", errs.ErrBufferSizeMismatch, len(vertexBuffers), len(d.Attributes))
	}

	if d.Indices == nil && len(indices) != 0 {
		return fmt.Errorf("%w: indices buffer supplied but descriptor has no indices", errs.ErrBufferSizeMismatch)
	}

	for _, r := range regions {
		switch r.Kind {
		case layout.RegionIndices:
			if uint64(len(indices)) != r.Length {
				return fmt.Errorf("%w: index buffer is %d bytes, descriptor declares %d", errs.ErrBufferSizeMismatch, len(indices), r.Length)
			}
		case layout.RegionVertexAttribute:
			got := vertexBuffers[r.AttributeIndex]
			if uint64(len(got)) != r.Length {
				return fmt.Errorf("%w: vertex buffer %d is %d bytes, descriptor declares %d", errs.ErrBufferSizeMismatch, r.AttributeIndex, len(got), r.Length)
			}
		}
	}

	return nil
}

// assemblePayload concatenates user data, the index buffer if present, and
// the vertex buffers into the logical uncompressed stream order, using a
// pooled buffer to avoid a fresh allocation per call.
func assemblePayload(d *descriptor.IyesMeshDescriptor, userData, indices []byte, vertexBuffers [][]byte) *pool.ByteBuffer {
	buf := pool.GetPayloadBuffer()
	buf.Reset()

	buf.MustWrite(userData)

	if d.Indices != nil {
		buf.MustWrite(indices)
	}

	for _, vb := range vertexBuffers {
		buf.MustWrite(vb)
	}

	return buf
}
