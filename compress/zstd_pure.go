//go:build !nobuild

package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/iyesgames/ima/errs"
)

// zstdMagic is the four-byte frame magic number klauspost/compress/zstd
// always writes at the start of a frame. The stored stream omits it
// (include_magicbytes = false); Compress strips it and
// Decompress restores it before handing bytes to the decoder.
var zstdMagic = [4]byte{0x28, 0xB5, 0x2F, 0xFD}

// Compress produces a headerless zstd frame: the encoder's content-size
// field is never populated because the frame is built via the streaming
// Writer rather than EncodeAll, its checksum is disabled, and its leading
// magic number is stripped before return.
func (c ZstdCompressor) Compress(data []byte, level int) ([]byte, error) {
	var buf bytes.Buffer

	enc, err := zstd.NewWriter(&buf,
		zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)),
		zstd.WithEncoderCRC(false),
		zstd.WithWindowSize(windowSizeFor(len(data))),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrZstd, err)
	}

	if _, err := enc.Write(data); err != nil {
		_ = enc.Close()
		return nil, fmt.Errorf("%w: %v", errs.ErrZstd, err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrZstd, err)
	}

	framed := buf.Bytes()
	if len(framed) < len(zstdMagic) || [4]byte(framed[:4]) != zstdMagic {
		return nil, fmt.Errorf("%w: encoder did not emit the expected frame magic", errs.ErrZstd)
	}

	out := make([]byte, len(framed)-len(zstdMagic))
	copy(out, framed[len(zstdMagic):])

	return out, nil
}

// Decompress restores the stripped magic number and drives the decoder to
// produce exactly wantLen bytes, reporting ShortDecompressedStream or
// LongDecompressedStream on any mismatch.
func (c ZstdCompressor) Decompress(data []byte, wantLen int) ([]byte, error) {
	framed := make([]byte, 0, len(zstdMagic)+len(data))
	framed = append(framed, zstdMagic[:]...)
	framed = append(framed, data...)

	dec, err := zstd.NewReader(bytes.NewReader(framed), zstd.WithDecoderLowmem(false))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrZstd, err)
	}
	defer dec.Close()

	out := make([]byte, wantLen)

	n, err := io.ReadFull(dec, out)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: got %d of %d bytes", errs.ErrShortDecompressedStream, n, wantLen)
		}

		return nil, fmt.Errorf("%w: %v", errs.ErrZstd, err)
	}

	var probe [1]byte
	if m, _ := dec.Read(probe[:]); m > 0 {
		return nil, fmt.Errorf("%w: decoder produced more than %d bytes", errs.ErrLongDecompressedStream, wantLen)
	}

	return out, nil
}

// DecompressPrefix restores the stripped magic number and reads only the
// leading prefixLen bytes of the decoded stream: it never probes for or
// reads bytes beyond the requested prefix.
func (c ZstdCompressor) DecompressPrefix(data []byte, prefixLen int) ([]byte, error) {
	framed := make([]byte, 0, len(zstdMagic)+len(data))
	framed = append(framed, zstdMagic[:]...)
	framed = append(framed, data...)

	dec, err := zstd.NewReader(bytes.NewReader(framed), zstd.WithDecoderLowmem(false))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrZstd, err)
	}
	defer dec.Close()

	out := make([]byte, prefixLen)

	n, err := io.ReadFull(dec, out)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: got %d of %d bytes", errs.ErrShortDecompressedStream, n, prefixLen)
		}

		return nil, fmt.Errorf("%w: %v", errs.ErrZstd, err)
	}

	return out, nil
}

// windowSizeFor picks a window size large enough to cover the whole input
// (never below minLongDistanceWindow), rounded up to the next power of two
// as klauspost/compress/zstd requires.
func windowSizeFor(dataLen int) int {
	window := minLongDistanceWindow
	for window < dataLen {
		window <<= 1
	}

	return window
}
