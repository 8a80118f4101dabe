package container

import (
	"fmt"

	"github.com/iyesgames/ima/compress"
	"github.com/iyesgames/ima/descriptor"
	"github.com/iyesgames/ima/errs"
	"github.com/iyesgames/ima/internal/hash"
	"github.com/iyesgames/ima/layout"
)

// stage names the Reader's position in the Closed → Header → Descriptor →
// (UserData | Full) → Done state machine. Failed is a sticky terminal
// state entered by any stage's error; once Failed, every method returns
// ReaderPoisoned until a new Reader is constructed.
type stage int

const (
	stageClosed stage = iota
	stageHeaderOpen
	stageDescriptorOpen
	stageDataVerified
	stageDone
	stageFailed
)

// readerConfig holds the knobs ReaderOption values mutate.
type readerConfig struct {
	verify bool
	codec  compress.Codec
}

func newReaderConfig() *readerConfig {
	return &readerConfig{codec: compress.NewZstdCompressor()}
}

// WithVerify makes Stage C (data checksum verification) mandatory:
// OpenDescriptor runs it right after Stage D instead of leaving it to the
// caller.
func WithVerify(verify bool) ReaderOption {
	return func(c *readerConfig) {
		c.verify = verify
	}
}

// WithReaderCodec overrides the compression codec a Reader uses to
// decompress payload bytes. Exposed for tests; the default already
// matches what Write produces.
func WithReaderCodec(codec compress.Codec) ReaderOption {
	return func(c *readerConfig) {
		c.codec = codec
	}
}

// Reader drives the staged, zero-copy read path over data, which the
// caller owns for the Reader's whole lifetime: a file loaded
// into memory, or a region returned by OpenMmap. Reader never copies data
// itself: the header, descriptor and compressed bytes are read in place.
// The slices UserData and Full return are views into a freshly
// decompressed buffer, not into data.
type Reader struct {
	data []byte
	cfg  *readerConfig

	stage stage

	header     Header
	descBytes  []byte
	compressed []byte
	desc       descriptor.IyesMeshDescriptor
}

// NewReader prepares a staged Reader over data without reading any of it.
func NewReader(data []byte, opts ...ReaderOption) (*Reader, error) {
	cfg := newReaderConfig()
	applyReaderOptions(cfg, opts...)

	return &Reader{data: data, cfg: cfg, stage: stageClosed}, nil
}

// poison moves the Reader to its terminal Failed state and returns err
// unchanged, so callers can write `return nil, r.poison(err)`.
func (r *Reader) poison(err error) error {
	r.stage = stageFailed
	return err
}

func (r *Reader) checkStage(want stage) error {
	if r.stage == stageFailed {
		return errs.ErrReaderPoisoned
	}

	if r.stage != want {
		return r.poison(errs.ErrStageOutOfOrder)
	}

	return nil
}

// OpenHeader is Stage H: it reads and validates the 24-byte header and
// locates the descriptor and compressed-data slices within data.
func (r *Reader) OpenHeader() (Header, error) {
	if err := r.checkStage(stageClosed); err != nil {
		return Header{}, err
	}

	h, err := ParseHeader(r.data)
	if err != nil {
		return Header{}, r.poison(err)
	}

	if len(r.data) < HeaderSize+int(h.DescriptorLen) {
		return Header{}, r.poison(errs.ErrTruncatedDescriptor)
	}

	r.header = h
	r.descBytes = r.data[HeaderSize : HeaderSize+int(h.DescriptorLen)]
	r.compressed = r.data[HeaderSize+int(h.DescriptorLen):]
	r.stage = stageHeaderOpen

	return h, nil
}

// OpenDescriptor is Stage D: it recomputes the metadata checksum over
// (desc_bytes ‖ descriptor_len_le_u16 ‖ data_checksum_le_u64) and compares
// it to the header's recorded value, then decodes and validates the
// descriptor.
func (r *Reader) OpenDescriptor() (*descriptor.IyesMeshDescriptor, error) {
	if err := r.checkStage(stageHeaderOpen); err != nil {
		return nil, err
	}

	got := metadataChecksumOf(r.descBytes, r.header.DescriptorLen, r.header.DataChecksum)
	if got != r.header.MetadataChecksum {
		return nil, r.poison(errs.ErrMetadataChecksumMismatch)
	}

	d, err := descriptor.Decode(r.descBytes)
	if err != nil {
		return nil, r.poison(err)
	}

	if err := d.Validate(); err != nil {
		return nil, r.poison(err)
	}

	r.desc = d
	r.stage = stageDescriptorOpen

	if r.cfg.verify {
		if err := r.verifyData(); err != nil {
			return nil, err
		}
	}

	return &r.desc, nil
}

// VerifyData is Stage C: it hashes the compressed bytes and compares them
// to the header's recorded data checksum. Callers that trust the source
// may skip it; OpenDescriptor runs it automatically when the Reader was
// built with WithVerify(true).
func (r *Reader) VerifyData() error {
	if err := r.checkStage(stageDescriptorOpen); err != nil {
		return err
	}

	return r.verifyData()
}

func (r *Reader) verifyData() error {
	got := hash.Sum(r.compressed)
	if got != r.header.DataChecksum {
		return r.poison(errs.ErrDataChecksumMismatch)
	}

	r.stage = stageDataVerified

	return nil
}

// readyForPayload reports whether Stage D (and, if configured, Stage C)
// has completed, so UserData or Full may run.
func (r *Reader) readyForPayload() bool {
	return r.stage == stageDescriptorOpen || r.stage == stageDataVerified
}

// UserData is Stage U: it decompresses only the prefix of the payload
// stream needed to produce user_data_len bytes, without materializing
// indices or vertex buffers.
func (r *Reader) UserData() ([]byte, error) {
	if r.stage == stageFailed {
		return nil, errs.ErrReaderPoisoned
	}

	if !r.readyForPayload() {
		return nil, r.poison(errs.ErrStageOutOfOrder)
	}

	if r.cfg.verify && r.stage != stageDataVerified {
		if err := r.verifyData(); err != nil {
			return nil, err
		}
	}

	out, err := r.cfg.codec.DecompressPrefix(r.compressed, int(r.desc.UserDataLen))
	if err != nil {
		return nil, r.poison(err)
	}

	r.stage = stageDone

	return out, nil
}

// Full is Stage F: it decompresses the entire payload stream and splits it
// into user data, the index buffer if present, and one vertex buffer per
// attribute, in declared order.
func (r *Reader) Full() (userData []byte, indices []byte, vertexBuffers [][]byte, err error) {
	if r.stage == stageFailed {
		return nil, nil, nil, errs.ErrReaderPoisoned
	}

	if !r.readyForPayload() {
		return nil, nil, nil, r.poison(errs.ErrStageOutOfOrder)
	}

	if r.cfg.verify && r.stage != stageDataVerified {
		if err := r.verifyData(); err != nil {
			return nil, nil, nil, err
		}
	}

	total, err := layout.TotalLen(&r.desc)
	if err != nil {
		return nil, nil, nil, r.poison(err)
	}

	if total > uint64(^uint(0)>>1) {
		return nil, nil, nil, r.poison(fmt.Errorf("%w: payload of %d bytes exceeds addressable memory", errs.ErrDescriptorSizeOverflow, total))
	}

	stream, err := r.cfg.codec.Decompress(r.compressed, int(total))
	if err != nil {
		return nil, nil, nil, r.poison(err)
	}

	userData, indices, vertexBuffers, err = layout.Split(stream, &r.desc)
	if err != nil {
		return nil, nil, nil, r.poison(err)
	}

	r.stage = stageDone

	return userData, indices, vertexBuffers, nil
}
