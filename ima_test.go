package ima

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iyesgames/ima/descriptor"
	"github.com/iyesgames/ima/format"
)

func TestWriteOpenVerify(t *testing.T) {
	d := &descriptor.IyesMeshDescriptor{
		NVertices: 3,
		Meshes: []descriptor.MeshInfo{
			{FirstVertex: 0, VertexCount: 3},
		},
		Attributes: []descriptor.VertexAttributeInfo{
			{Usage: format.Position(), Format: format.FormatFloat32x3},
		},
	}

	positions := make([]byte, 36)
	for i := range positions {
		positions[i] = byte(i)
	}

	file, err := Write(d, nil, nil, [][]byte{positions})
	require.NoError(t, err)

	got, err := Verify(file)
	require.NoError(t, err)
	require.Equal(t, d.NVertices, got.NVertices)

	r, err := Open(file)
	require.NoError(t, err)

	_, err = r.OpenHeader()
	require.NoError(t, err)

	_, err = r.OpenDescriptor()
	require.NoError(t, err)

	_, _, vertexBuffers, err := r.Full()
	require.NoError(t, err)
	require.Equal(t, positions, vertexBuffers[0])
}

func TestOpenFile(t *testing.T) {
	d := &descriptor.IyesMeshDescriptor{UserDataLen: 4}

	file, err := Write(d, []byte{1, 2, 3, 4}, nil, nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "mesh.ima")
	require.NoError(t, os.WriteFile(path, file, 0o644))

	mapped, r, err := OpenFile(path)
	require.NoError(t, err)
	defer mapped.Close()

	_, err = r.OpenHeader()
	require.NoError(t, err)

	_, err = r.OpenDescriptor()
	require.NoError(t, err)

	userData, err := r.UserData()
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3, 4}, userData)
}
