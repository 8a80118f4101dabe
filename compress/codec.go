// Package compress implements the single compressed-payload codec this
// module uses: a headerless zstd frame (no magic bytes, no content-size
// field, no dictionary ID, no frame checksum) with long-distance matching
// enabled, driven to produce an exact, pre-computed uncompressed length.
package compress

// Codec compresses and decompresses the uncompressed payload stream
// described by package layout. Decompress is driven to produce exactly
// wantLen bytes; producing fewer or more is a format error.
type Codec interface {
	// Compress compresses data at the given level. The uncompressed size
	// is neither written to the frame nor passed to the encoder as a
	// pledged-size hint.
	Compress(data []byte, level int) ([]byte, error)

	// Decompress decompresses data to exactly wantLen bytes.
	Decompress(data []byte, wantLen int) ([]byte, error)

	// DecompressPrefix decompresses only the leading prefixLen bytes of the
	// decoded stream and stops, without checking whether further bytes
	// remain. Used by the reader's user-data-only stage, where trailing
	// index and vertex data are expected and must not be read.
	DecompressPrefix(data []byte, prefixLen int) ([]byte, error)
}

// DefaultLevel is used by callers with no specific compression level
// preference. Compression level is not persisted in the file; any valid
// zstd level is acceptable to a decoder.
const DefaultLevel = 3
