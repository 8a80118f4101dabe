package objimport

import (
	"encoding/binary"
	"math"

	"github.com/iyesgames/ima/descriptor"
	"github.com/iyesgames/ima/format"
)

// Convert builds an IyesMeshDescriptor and its buffers from a parsed Mesh:
// a single mesh record spanning the whole geometry, Position and Normal
// attributes always present, a Uv attribute only when the source OBJ
// supplied texture coordinates, and U32 indices.
func Convert(mesh *Mesh) (d *descriptor.IyesMeshDescriptor, indices []byte, vertexBuffers [][]byte) {
	nVertices := uint32(len(mesh.Positions) / 3)
	nIndices := uint32(len(mesh.Indices))

	d = &descriptor.IyesMeshDescriptor{
		NVertices: nVertices,
		Meshes: []descriptor.MeshInfo{
			{FirstIndex: 0, IndexCount: nIndices, FirstVertex: 0, VertexCount: nVertices},
		},
		Indices: &descriptor.IndicesInfo{NIndices: nIndices, Format: format.IndexU32},
		Attributes: []descriptor.VertexAttributeInfo{
			{Usage: format.Position(), Format: format.FormatFloat32x3},
			{Usage: format.Normal(), Format: format.FormatFloat32x3},
		},
	}

	vertexBuffers = [][]byte{
		encodeFloat32s(mesh.Positions),
		encodeFloat32s(mesh.Normals),
	}

	if len(mesh.UVs) > 0 {
		d.Attributes = append(d.Attributes, descriptor.VertexAttributeInfo{Usage: format.UV(), Format: format.FormatFloat32x2})
		vertexBuffers = append(vertexBuffers, encodeFloat32s(mesh.UVs))
	}

	indices = encodeUint32s(mesh.Indices)

	return d, indices, vertexBuffers
}

func encodeFloat32s(values []float32) []byte {
	out := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}

	return out
}

func encodeUint32s(values []uint32) []byte {
	out := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(out[i*4:], v)
	}

	return out
}
