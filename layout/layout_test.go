package layout_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iyesgames/ima/descriptor"
	"github.com/iyesgames/ima/errs"
	"github.com/iyesgames/ima/format"
	"github.com/iyesgames/ima/layout"
)

func TestTotalLen_Empty(t *testing.T) {
	d := &descriptor.IyesMeshDescriptor{}

	total, err := layout.TotalLen(d)
	require.NoError(t, err)
	require.Equal(t, uint64(0), total)
}

func TestTotalLen_MatchesFormula(t *testing.T) {
	d := &descriptor.IyesMeshDescriptor{
		NVertices:   8,
		UserDataLen: 4,
		Indices:     &descriptor.IndicesInfo{NIndices: 12, Format: format.IndexU16},
		Attributes: []descriptor.VertexAttributeInfo{
			{Usage: format.Position(), Format: format.FormatFloat32x3},
			{Usage: format.UV(), Format: format.FormatFloat32x2},
		},
	}

	total, err := layout.TotalLen(d)
	require.NoError(t, err)

	want := uint64(4) + uint64(12*2) + uint64(8*12) + uint64(8*8)
	require.Equal(t, want, total)
}

func TestRegions_Order(t *testing.T) {
	d := &descriptor.IyesMeshDescriptor{
		NVertices:   2,
		UserDataLen: 1,
		Indices:     &descriptor.IndicesInfo{NIndices: 3, Format: format.IndexU32},
		Attributes: []descriptor.VertexAttributeInfo{
			{Usage: format.Position(), Format: format.FormatFloat32x3},
		},
	}

	regions, err := layout.Regions(d)
	require.NoError(t, err)
	require.Len(t, regions, 3)
	require.Equal(t, layout.RegionUserData, regions[0].Kind)
	require.Equal(t, layout.RegionIndices, regions[1].Kind)
	require.Equal(t, layout.RegionVertexAttribute, regions[2].Kind)
	require.Equal(t, uint64(0), regions[0].Offset)
	require.Equal(t, uint64(1), regions[1].Offset)
	require.Equal(t, uint64(1+3*4), regions[2].Offset)
}

func TestSplit_RoundTrip(t *testing.T) {
	d := &descriptor.IyesMeshDescriptor{
		NVertices:   4,
		UserDataLen: 2,
		Indices:     &descriptor.IndicesInfo{NIndices: 6, Format: format.IndexU16},
		Attributes: []descriptor.VertexAttributeInfo{
			{Usage: format.Position(), Format: format.FormatFloat32x3},
		},
	}

	total, err := layout.TotalLen(d)
	require.NoError(t, err)

	stream := make([]byte, total)
	for i := range stream {
		stream[i] = byte(i)
	}

	userData, indices, vertexBuffers, err := layout.Split(stream, d)
	require.NoError(t, err)
	require.Equal(t, stream[0:2], userData)
	require.Equal(t, stream[2:14], indices)
	require.Len(t, vertexBuffers, 1)
	require.Equal(t, stream[14:14+4*12], vertexBuffers[0])
}

func TestSplit_BufferSizeMismatch(t *testing.T) {
	d := &descriptor.IyesMeshDescriptor{UserDataLen: 4}

	_, _, _, err := layout.Split(make([]byte, 3), d)
	require.ErrorIs(t, err, errs.ErrBufferSizeMismatch)
}

