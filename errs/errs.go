// Package errs holds the flat set of sentinel errors produced by the codec.
// Each value names one failure mode; a few (ErrTruncatedDescriptor,
// ErrDescriptorTooLarge) are raised from more than one place. Callers
// compare against these with errors.Is rather than inspecting message text.
package errs

import "errors"

// Structural errors, raised while parsing the container header.
var (
	ErrTooShort           = errors.New("ima: input shorter than the 24-byte header")
	ErrBadMagic           = errors.New("ima: bad magic bytes, not an IMA file")
	ErrUnsupportedVersion = errors.New("ima: unsupported format version")
	ErrDescriptorTooLarge = errors.New("ima: encoded descriptor exceeds 65535 bytes")
)

// Descriptor errors, raised while decoding or validating the descriptor.
var (
	ErrTruncatedDescriptor     = errors.New("ima: descriptor bytes truncated")
	ErrTrailingDescriptorBytes = errors.New("ima: trailing bytes after descriptor")
	ErrUnknownVariantTag       = errors.New("ima: unknown variant tag")
	ErrInvalidUTF8             = errors.New("ima: custom attribute name is not valid UTF-8")
	ErrInvalidDescriptor       = errors.New("ima: descriptor violates an invariant")
	ErrDescriptorSizeOverflow  = errors.New("ima: buffer layout size overflows 64 bits")
)

// Checksum errors, raised while verifying the header's recorded checksums.
var (
	ErrMetadataChecksumMismatch = errors.New("ima: metadata checksum mismatch")
	ErrDataChecksumMismatch     = errors.New("ima: data checksum mismatch")
)

// Payload errors, raised while compressing or decompressing the data stream.
var (
	ErrShortDecompressedStream = errors.New("ima: decompressed stream shorter than expected")
	ErrLongDecompressedStream  = errors.New("ima: decompressed stream longer than expected")
	ErrZstd                    = errors.New("ima: zstd codec error")
	ErrBufferSizeMismatch      = errors.New("ima: supplied buffer size does not match descriptor layout")
)

// State errors, raised by the staged reader.
var (
	ErrReaderPoisoned  = errors.New("ima: reader is poisoned by a previous error")
	ErrStageOutOfOrder = errors.New("ima: reader stage requested out of order")
)
