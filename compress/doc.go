// Package compress wraps zstd with the exact frame configuration the IMA
// data stream requires.
//
// # Frame configuration
//
// The stored stream omits everything a normal zstd frame carries that
// would make the uncompressed length self-describing or otherwise
// redundant with the descriptor:
//   - No magic bytes (include_magicbytes = false) — CompressedData starts
//     directly with the frame's block data; Compress strips the magic
//     number the underlying library writes, Decompress restores it.
//   - No content-size field (include_contentsize = false) — the expected
//     uncompressed length always comes from package layout's TotalLen,
//     computed from the descriptor, never from the frame itself.
//   - No dictionary ID, no frame checksum.
//   - An encoder window sized to cover the whole input (at least 8 MiB),
//     so cross-mesh repetition in large payloads is still found. No
//     separate long-distance-matching mode is enabled.
//
// Compression level is an encoder-only parameter; it is never recorded in
// the file, so any two encoders using different levels produce equally
// valid, interchangeable files.
//
// Example:
//
//	codec := compress.NewZstdCompressor()
//	compressed, err := codec.Compress(data, compress.DefaultLevel)
//	if err != nil {
//		return err
//	}
//	original, err := codec.Decompress(compressed, len(data))
package compress
