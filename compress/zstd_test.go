package compress_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iyesgames/ima/compress"
)

func TestZstdCompressor_RoundTrip(t *testing.T) {
	codec := compress.NewZstdCompressor()

	data := make([]byte, 4096)
	for i := range data {
		data[i] = byte(i * 7)
	}

	compressed, err := codec.Compress(data, compress.DefaultLevel)
	require.NoError(t, err)

	decompressed, err := codec.Decompress(compressed, len(data))
	require.NoError(t, err)
	require.Equal(t, data, decompressed)
}

func TestZstdCompressor_Empty(t *testing.T) {
	codec := compress.NewZstdCompressor()

	compressed, err := codec.Compress(nil, compress.DefaultLevel)
	require.NoError(t, err)

	decompressed, err := codec.Decompress(compressed, 0)
	require.NoError(t, err)
	require.Empty(t, decompressed)
}

func TestZstdCompressor_OmitsFrameMagic(t *testing.T) {
	codec := compress.NewZstdCompressor()

	data := []byte("hello mesh world, hello mesh world, hello mesh world")

	compressed, err := codec.Compress(data, compress.DefaultLevel)
	require.NoError(t, err)

	zstdMagic := []byte{0x28, 0xB5, 0x2F, 0xFD}
	require.NotEqual(t, zstdMagic, compressed[:4], "compressed stream must not start with the zstd frame magic")
}

func TestZstdCompressor_DecompressPrefix(t *testing.T) {
	codec := compress.NewZstdCompressor()

	data := make([]byte, 4096)
	for i := range data {
		data[i] = byte(i * 13)
	}

	compressed, err := codec.Compress(data, compress.DefaultLevel)
	require.NoError(t, err)

	prefix, err := codec.DecompressPrefix(compressed, 16)
	require.NoError(t, err)
	require.Equal(t, data[:16], prefix)
}

func TestZstdCompressor_Deterministic(t *testing.T) {
	codec := compress.NewZstdCompressor()
	data := []byte("repeated content repeated content repeated content")

	a, err := codec.Compress(data, compress.DefaultLevel)
	require.NoError(t, err)
	b, err := codec.Compress(data, compress.DefaultLevel)
	require.NoError(t, err)

	require.Equal(t, a, b)
}
