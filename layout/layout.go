// Package layout computes the region table of the uncompressed payload
// stream from a descriptor, and splits a decompressed stream back into
// borrowed sub-slices without copying.
package layout

import (
	"fmt"

	"github.com/iyesgames/ima/descriptor"
	"github.com/iyesgames/ima/errs"
)

// RegionKind identifies which part of the uncompressed stream a Region
// covers.
type RegionKind int

// Region kinds, in stream order.
const (
	RegionUserData RegionKind = iota
	RegionIndices
	RegionVertexAttribute
)

// Region is one contiguous span of the uncompressed payload stream.
type Region struct {
	Kind RegionKind
	// AttributeIndex is the index into descriptor.Attributes this region
	// corresponds to; meaningful only when Kind == RegionVertexAttribute.
	AttributeIndex int
	Offset         uint64
	Length         uint64
}

// Regions computes the ordered list of regions making up the uncompressed
// payload stream: user data, then the index buffer if present, then one
// vertex buffer per attribute in declared order.
func Regions(d *descriptor.IyesMeshDescriptor) ([]Region, error) {
	regions := make([]Region, 0, 2+len(d.Attributes))

	offset := uint64(0)

	regions = append(regions, Region{Kind: RegionUserData, Offset: offset, Length: uint64(d.UserDataLen)})
	offset += uint64(d.UserDataLen)

	if d.Indices != nil {
		size, ok := d.Indices.Format.Size()
		if !ok {
			return nil, fmt.Errorf("%w: unknown index format %d", errs.ErrUnknownVariantTag, d.Indices.Format)
		}

		length := uint64(d.Indices.NIndices) * uint64(size)

		var next uint64
		if next, ok = addOverflows(offset, length); !ok {
			return nil, errs.ErrDescriptorSizeOverflow
		}

		regions = append(regions, Region{Kind: RegionIndices, Offset: offset, Length: length})
		offset = next
	}

	for i, attr := range d.Attributes {
		size, ok := attr.Format.Size()
		if !ok {
			return nil, fmt.Errorf("%w: unknown vertex format %d", errs.ErrUnknownVariantTag, attr.Format)
		}

		length, ok := mulOverflows(uint64(d.NVertices), uint64(size))
		if !ok {
			return nil, errs.ErrDescriptorSizeOverflow
		}

		next, ok := addOverflows(offset, length)
		if !ok {
			return nil, errs.ErrDescriptorSizeOverflow
		}

		regions = append(regions, Region{Kind: RegionVertexAttribute, AttributeIndex: i, Offset: offset, Length: length})
		offset = next
	}

	return regions, nil
}

// TotalLen returns the total uncompressed byte length described by d,
// or DescriptorSizeOverflow if the sum overflows 64 bits.
func TotalLen(d *descriptor.IyesMeshDescriptor) (uint64, error) {
	regions, err := Regions(d)
	if err != nil {
		return 0, err
	}

	if len(regions) == 0 {
		return 0, nil
	}

	last := regions[len(regions)-1]

	total, ok := addOverflows(last.Offset, last.Length)
	if !ok {
		return 0, errs.ErrDescriptorSizeOverflow
	}

	return total, nil
}

// Split divides an uncompressed stream into borrowed sub-slices: user
// data, an optional index buffer, and one vertex buffer per attribute, in
// descriptor order. stream must be exactly TotalLen(d) bytes.
func Split(stream []byte, d *descriptor.IyesMeshDescriptor) (userData []byte, indices []byte, vertexBuffers [][]byte, err error) {
	regions, err := Regions(d)
	if err != nil {
		return nil, nil, nil, err
	}

	total, err := TotalLen(d)
	if err != nil {
		return nil, nil, nil, err
	}

	if uint64(len(stream)) != total {
		return nil, nil, nil, fmt.Errorf("%w: stream is %d bytes, expected %d", errs.ErrBufferSizeMismatch, len(stream), total)
	}

	vertexBuffers = make([][]byte, len(d.Attributes))

	for _, r := range regions {
		slice := stream[r.Offset : r.Offset+r.Length]

		switch r.Kind {
		case RegionUserData:
			userData = slice
		case RegionIndices:
			indices = slice
		case RegionVertexAttribute:
			vertexBuffers[r.AttributeIndex] = slice
		}
	}

	return userData, indices, vertexBuffers, nil
}

func addOverflows(a, b uint64) (uint64, bool) {
	sum := a + b
	return sum, sum >= a
}

func mulOverflows(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}

	product := a * b

	return product, product/a == b
}
