//go:build nobuild

package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/valyala/gozstd"

	"github.com/iyesgames/ima/errs"
)

// Compress mirrors zstd_pure.go's contract using the cgo-backed real
// libzstd, which supports long-distance matching and a headerless raw
// block natively via CCtx parameters rather than post-hoc magic stripping.
func (c ZstdCompressor) Compress(data []byte, level int) ([]byte, error) {
	cctx := gozstd.NewCCtx()
	if err := cctx.SetParameter(gozstd.ZSTD_c_compressionLevel, level); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrZstd, err)
	}
	if err := cctx.SetParameter(gozstd.ZSTD_c_enableLongDistanceMatching, 1); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrZstd, err)
	}
	if err := cctx.SetParameter(gozstd.ZSTD_c_contentSizeFlag, 0); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrZstd, err)
	}
	if err := cctx.SetParameter(gozstd.ZSTD_c_checksumFlag, 0); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrZstd, err)
	}

	return cctx.Compress(nil, data), nil
}

// Decompress drives the real libzstd decoder to exactly wantLen bytes.
func (c ZstdCompressor) Decompress(data []byte, wantLen int) ([]byte, error) {
	out, err := gozstd.Decompress(make([]byte, 0, wantLen), data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrZstd, err)
	}

	if len(out) != wantLen {
		return nil, fmt.Errorf("%w: got %d, want %d", errs.ErrShortDecompressedStream, len(out), wantLen)
	}

	return out, nil
}

// DecompressPrefix streams the real libzstd decoder and stops after
// prefixLen bytes: it never reads or probes for bytes beyond the
// requested prefix.
func (c ZstdCompressor) DecompressPrefix(data []byte, prefixLen int) ([]byte, error) {
	dec := gozstd.NewReader(bytes.NewReader(data))
	defer dec.Release()

	out := make([]byte, prefixLen)

	n, err := io.ReadFull(dec, out)
	if err != nil {
		return nil, fmt.Errorf("%w: got %d of %d bytes", errs.ErrShortDecompressedStream, n, prefixLen)
	}

	return out, nil
}
