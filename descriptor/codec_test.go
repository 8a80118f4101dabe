package descriptor_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iyesgames/ima/descriptor"
	"github.com/iyesgames/ima/errs"
	"github.com/iyesgames/ima/format"
)

func TestEncodeDecode_RoundTrip_Empty(t *testing.T) {
	d := &descriptor.IyesMeshDescriptor{}

	encoded, err := descriptor.Encode(d)
	require.NoError(t, err)

	decoded, err := descriptor.Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, *d, decoded)
}

func TestEncodeDecode_RoundTrip_SingleTriangle(t *testing.T) {
	d := &descriptor.IyesMeshDescriptor{
		NVertices: 3,
		Attributes: []descriptor.VertexAttributeInfo{
			{Usage: format.Position(), Format: format.FormatFloat32x3},
		},
		Meshes: []descriptor.MeshInfo{
			{FirstVertex: 0, VertexCount: 3},
		},
	}
	require.NoError(t, d.Validate())

	encoded, err := descriptor.Encode(d)
	require.NoError(t, err)

	decoded, err := descriptor.Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, *d, decoded)
}

func TestEncodeDecode_RoundTrip_TwoMeshesWithIndices(t *testing.T) {
	d := &descriptor.IyesMeshDescriptor{
		NVertices: 8,
		Attributes: []descriptor.VertexAttributeInfo{
			{Usage: format.Position(), Format: format.FormatFloat32x3},
		},
		Indices: &descriptor.IndicesInfo{NIndices: 12, Format: format.IndexU16},
		Meshes: []descriptor.MeshInfo{
			{FirstVertex: 0, VertexCount: 4, FirstIndex: 0, IndexCount: 6},
			{FirstVertex: 4, VertexCount: 4, FirstIndex: 6, IndexCount: 6},
		},
	}
	require.NoError(t, d.Validate())

	encoded, err := descriptor.Encode(d)
	require.NoError(t, err)

	decoded, err := descriptor.Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, *d, decoded)
}

func TestEncodeDecode_RoundTrip_CustomAttribute(t *testing.T) {
	d := &descriptor.IyesMeshDescriptor{
		NVertices: 2,
		Attributes: []descriptor.VertexAttributeInfo{
			{Usage: format.Custom(7, "foo"), Format: format.FormatUint16x4},
		},
	}
	require.NoError(t, d.Validate())

	encoded, err := descriptor.Encode(d)
	require.NoError(t, err)

	decoded, err := descriptor.Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, *d, decoded)
}

func TestEncode_Deterministic(t *testing.T) {
	d := &descriptor.IyesMeshDescriptor{
		NVertices: 100,
		Attributes: []descriptor.VertexAttributeInfo{
			{Usage: format.Position(), Format: format.FormatFloat32x3},
			{Usage: format.Normal(), Format: format.FormatFloat32x3},
			{Usage: format.UV(), Format: format.FormatFloat32x2},
		},
	}

	a, err := descriptor.Encode(d)
	require.NoError(t, err)
	b, err := descriptor.Encode(d)
	require.NoError(t, err)

	require.Equal(t, a, b)
}

func TestValidate_DuplicateUsageRejected(t *testing.T) {
	d := &descriptor.IyesMeshDescriptor{
		NVertices: 2,
		Attributes: []descriptor.VertexAttributeInfo{
			{Usage: format.Custom(7, "foo"), Format: format.FormatUint16x4},
			{Usage: format.Custom(7, "bar"), Format: format.FormatUint16x4},
		},
	}

	err := d.Validate()
	require.ErrorIs(t, err, errs.ErrInvalidDescriptor)
}

func TestValidate_DistinctCustomIDAccepted(t *testing.T) {
	d := &descriptor.IyesMeshDescriptor{
		NVertices: 2,
		Attributes: []descriptor.VertexAttributeInfo{
			{Usage: format.Custom(7, "foo"), Format: format.FormatUint16x4},
			{Usage: format.Custom(8, "foo"), Format: format.FormatUint16x4},
		},
	}

	require.NoError(t, d.Validate())
}

func TestValidate_IndexRangeWithoutIndicesRejected(t *testing.T) {
	d := &descriptor.IyesMeshDescriptor{
		NVertices: 4,
		Meshes: []descriptor.MeshInfo{
			{FirstVertex: 0, VertexCount: 4, FirstIndex: 0, IndexCount: 6},
		},
	}

	err := d.Validate()
	require.ErrorIs(t, err, errs.ErrInvalidDescriptor)
}

func TestValidate_OutOfBoundsMeshRejected(t *testing.T) {
	d := &descriptor.IyesMeshDescriptor{
		NVertices: 4,
		Meshes: []descriptor.MeshInfo{
			{FirstVertex: 2, VertexCount: 4},
		},
	}

	err := d.Validate()
	require.ErrorIs(t, err, errs.ErrInvalidDescriptor)
}

func TestValidate_EmptyMeshesWithAttributesAccepted(t *testing.T) {
	d := &descriptor.IyesMeshDescriptor{
		NVertices: 4,
		Attributes: []descriptor.VertexAttributeInfo{
			{Usage: format.Position(), Format: format.FormatFloat32x3},
		},
	}

	require.NoError(t, d.Validate())
}

func TestDecode_TruncatedDescriptor(t *testing.T) {
	d := &descriptor.IyesMeshDescriptor{
		NVertices: 3,
		Attributes: []descriptor.VertexAttributeInfo{
			{Usage: format.Position(), Format: format.FormatFloat32x3},
		},
	}
	encoded, err := descriptor.Encode(d)
	require.NoError(t, err)

	for n := 0; n < len(encoded); n++ {
		_, err := descriptor.Decode(encoded[:n])
		require.Error(t, err, "length %d", n)
	}
}

func TestDecode_TrailingBytes(t *testing.T) {
	d := &descriptor.IyesMeshDescriptor{}
	encoded, err := descriptor.Encode(d)
	require.NoError(t, err)

	_, err = descriptor.Decode(append(encoded, 0x00))
	require.ErrorIs(t, err, errs.ErrTrailingDescriptorBytes)
}

func TestDecode_UnknownUsageTag(t *testing.T) {
	_, err := descriptor.Decode([]byte{0, 0, 0, 0, 1, 0xFF})
	require.ErrorIs(t, err, errs.ErrUnknownVariantTag)
}

func TestDecode_InvalidUTF8InCustomName(t *testing.T) {
	encoded := []byte{
		0, // n_vertices
		0, // user_data_len
		0, // mesh_count
		0, // has_indices = false
		1, // attr_count = 1
		byte(format.UsageCustom),
		5,          // custom id (uvarint)
		2,          // name_len = 2
		0xFF, 0xFE, // invalid utf-8
		byte(format.FormatFloat32),
	}

	_, err := descriptor.Decode(encoded)
	require.ErrorIs(t, err, errs.ErrInvalidUTF8)
}
