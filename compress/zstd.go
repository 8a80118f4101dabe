package compress

// minLongDistanceWindow is the smallest encoder window size used, large
// enough to find matches across a multi-megabyte mesh payload.
const minLongDistanceWindow = 1 << 23 // 8 MiB

// ZstdCompressor implements Codec as a headerless zstd frame with a
// window sized to the input. No pledged-size hint is given to the encoder
// and no separate long-distance-matching mode is switched on. The concrete
// encode/decode path is chosen by build tag: zstd_pure.go (default, pure
// Go) or zstd_cgo.go (cgo-accelerated, opt-in with the nobuild tag).
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
