package container

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iyesgames/ima/errs"
)

func TestHeaderRoundTrip(t *testing.T) {
	original := Header{
		Version:          Version,
		DescriptorLen:    321,
		MetadataChecksum: 0x0123456789abcdef,
		DataChecksum:     0xfedcba9876543210,
	}

	data := original.Bytes()
	require.Len(t, data, HeaderSize)

	parsed, err := ParseHeader(data)
	require.NoError(t, err)
	require.Equal(t, original, parsed)
}

func TestParseHeader_TooShort(t *testing.T) {
	for n := 0; n < HeaderSize; n++ {
		_, err := ParseHeader(make([]byte, n))
		require.ErrorIs(t, err, errs.ErrTooShort, "length %d", n)
	}
}

func TestParseHeader_BadMagic(t *testing.T) {
	data := Header{Version: Version}.Bytes()
	data[0] = 'X'

	_, err := ParseHeader(data)
	require.ErrorIs(t, err, errs.ErrBadMagic)
}

func TestParseHeader_UnsupportedVersion(t *testing.T) {
	data := Header{Version: 2}.Bytes()

	_, err := ParseHeader(data)
	require.ErrorIs(t, err, errs.ErrUnsupportedVersion)
}

func TestParseHeader_IgnoresTrailingBytes(t *testing.T) {
	data := append(Header{Version: Version}.Bytes(), 0xAA, 0xBB, 0xCC)

	parsed, err := ParseHeader(data)
	require.NoError(t, err)
	require.Equal(t, Version, parsed.Version)
}
