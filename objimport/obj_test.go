package objimport_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iyesgames/ima/objimport"
)

const triangleOBJ = `
o triangle
v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vt 1 0
vt 0 1
f 1/1 2/2 3/3
`

const triangleOBJNoNormalsNoUV = `
o bare
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`

func TestParse_WithUV(t *testing.T) {
	mesh, err := objimport.Parse(strings.NewReader(triangleOBJ))
	require.NoError(t, err)

	require.Equal(t, "triangle", mesh.Name)
	require.Len(t, mesh.Positions, 9)
	require.Len(t, mesh.Normals, 9)
	require.Len(t, mesh.UVs, 6)
	require.Equal(t, []uint32{0, 1, 2}, mesh.Indices)
}

func TestParse_SynthesizesNormals(t *testing.T) {
	mesh, err := objimport.Parse(strings.NewReader(triangleOBJNoNormalsNoUV))
	require.NoError(t, err)

	require.Empty(t, mesh.UVs)
	require.Len(t, mesh.Normals, 9)

	// The single triangle lies in the XY plane; its normal points along Z.
	require.InDelta(t, 0, mesh.Normals[0], 1e-6)
	require.InDelta(t, 0, mesh.Normals[1], 1e-6)
	require.InDelta(t, 1, mesh.Normals[2], 1e-6)
}

func TestParse_RejectsQuads(t *testing.T) {
	const quadOBJ = `
o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`
	_, err := objimport.Parse(strings.NewReader(quadOBJ))
	require.Error(t, err)
}

func TestParse_RejectsEmpty(t *testing.T) {
	_, err := objimport.Parse(strings.NewReader("# empty file\n"))
	require.Error(t, err)
}

func TestConvert(t *testing.T) {
	mesh, err := objimport.Parse(strings.NewReader(triangleOBJ))
	require.NoError(t, err)

	d, indices, vertexBuffers := objimport.Convert(mesh)

	require.Equal(t, uint32(3), d.NVertices)
	require.Len(t, d.Attributes, 3)
	require.Len(t, vertexBuffers, 3)
	require.Len(t, indices, 3*4)
}

func TestImport_RoundTrip(t *testing.T) {
	file, err := objimport.Import(strings.NewReader(triangleOBJ))
	require.NoError(t, err)
	require.NotEmpty(t, file)
}
