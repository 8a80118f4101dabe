package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iyesgames/ima/errs"
)

func TestSentinelsAreDistinct(t *testing.T) {
	all := []error{
		errs.ErrTooShort,
		errs.ErrBadMagic,
		errs.ErrUnsupportedVersion,
		errs.ErrDescriptorTooLarge,
		errs.ErrTruncatedDescriptor,
		errs.ErrTrailingDescriptorBytes,
		errs.ErrUnknownVariantTag,
		errs.ErrInvalidUTF8,
		errs.ErrInvalidDescriptor,
		errs.ErrDescriptorSizeOverflow,
		errs.ErrMetadataChecksumMismatch,
		errs.ErrDataChecksumMismatch,
		errs.ErrShortDecompressedStream,
		errs.ErrLongDecompressedStream,
		errs.ErrZstd,
		errs.ErrBufferSizeMismatch,
		errs.ErrReaderPoisoned,
		errs.ErrStageOutOfOrder,
	}

	seen := make(map[string]bool, len(all))
	for _, e := range all {
		assert.False(t, seen[e.Error()], "duplicate sentinel message: %s", e.Error())
		seen[e.Error()] = true
	}
}

func TestWrappedSentinelUnwraps(t *testing.T) {
	wrapped := fmt.Errorf("%w: offset %d", errs.ErrTruncatedDescriptor, 42)
	assert.True(t, errors.Is(wrapped, errs.ErrTruncatedDescriptor))
	assert.False(t, errors.Is(wrapped, errs.ErrBadMagic))
}
