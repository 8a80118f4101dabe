package descriptor

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/iyesgames/ima/errs"
	"github.com/iyesgames/ima/format"
	"github.com/iyesgames/ima/internal/pool"
)

// MaxCustomNameLength bounds a single Custom attribute name, mirroring the
// descriptor's overall 64KiB ceiling so one pathological name cannot
// monopolize the encoded descriptor.
const MaxCustomNameLength = 1 << 16

// Encode produces a compact, deterministic, self-delimiting byte
// encoding of d. Encoding the same descriptor value always yields
// identical bytes.
func Encode(d *IyesMeshDescriptor) ([]byte, error) {
	buf := pool.GetDescriptorBuffer()
	defer pool.PutDescriptorBuffer(buf)

	w := encoder{buf: buf}

	w.writeUvarint(uint64(d.NVertices))
	w.writeUvarint(uint64(d.UserDataLen))

	w.writeUvarint(uint64(len(d.Meshes)))
	for _, m := range d.Meshes {
		w.writeUvarint(uint64(m.FirstIndex))
		w.writeUvarint(uint64(m.IndexCount))
		w.writeUvarint(uint64(m.FirstVertex))
		w.writeUvarint(uint64(m.VertexCount))
	}

	if d.Indices != nil {
		w.writeByte(1)
		w.writeUvarint(uint64(d.Indices.NIndices))
		w.writeByte(byte(d.Indices.Format))
	} else {
		w.writeByte(0)
	}

	w.writeUvarint(uint64(len(d.Attributes)))
	for _, attr := range d.Attributes {
		if err := w.writeUsage(attr.Usage); err != nil {
			return nil, err
		}
		w.writeByte(byte(attr.Format))
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	if len(out) > 0xFFFF {
		return nil, fmt.Errorf("%w: descriptor is %d bytes", errs.ErrDescriptorTooLarge, len(out))
	}

	return out, nil
}

// Decode parses an encoded descriptor, returning TruncatedDescriptor,
// UnknownVariantTag, InvalidUtf8, or TrailingDescriptorBytes on malformed
// input. The returned descriptor is not yet validated against invariants
// (1)-(4); callers must call Validate.
func Decode(data []byte) (IyesMeshDescriptor, error) {
	r := decoder{data: data}

	var d IyesMeshDescriptor

	nVertices, err := r.readUvarint()
	if err != nil {
		return IyesMeshDescriptor{}, err
	}
	d.NVertices = uint32(nVertices)

	userDataLen, err := r.readUvarint()
	if err != nil {
		return IyesMeshDescriptor{}, err
	}
	d.UserDataLen = uint32(userDataLen)

	meshCount, err := r.readUvarint()
	if err != nil {
		return IyesMeshDescriptor{}, err
	}

	if meshCount > 0 {
		d.Meshes = make([]MeshInfo, meshCount)
	}
	for i := range d.Meshes {
		firstIndex, err := r.readUvarint()
		if err != nil {
			return IyesMeshDescriptor{}, err
		}
		indexCount, err := r.readUvarint()
		if err != nil {
			return IyesMeshDescriptor{}, err
		}
		firstVertex, err := r.readUvarint()
		if err != nil {
			return IyesMeshDescriptor{}, err
		}
		vertexCount, err := r.readUvarint()
		if err != nil {
			return IyesMeshDescriptor{}, err
		}

		d.Meshes[i] = MeshInfo{
			FirstIndex:  uint32(firstIndex),
			IndexCount:  uint32(indexCount),
			FirstVertex: uint32(firstVertex),
			VertexCount: uint32(vertexCount),
		}
	}

	hasIndices, err := r.readByte()
	if err != nil {
		return IyesMeshDescriptor{}, err
	}

	if hasIndices != 0 {
		nIndices, err := r.readUvarint()
		if err != nil {
			return IyesMeshDescriptor{}, err
		}

		formatByte, err := r.readByte()
		if err != nil {
			return IyesMeshDescriptor{}, err
		}

		idxFormat := format.IndexFormat(formatByte)
		if _, ok := idxFormat.Size(); !ok {
			return IyesMeshDescriptor{}, fmt.Errorf("%w: index format tag %d", errs.ErrUnknownVariantTag, formatByte)
		}

		d.Indices = &IndicesInfo{NIndices: uint32(nIndices), Format: idxFormat}
	}

	attrCount, err := r.readUvarint()
	if err != nil {
		return IyesMeshDescriptor{}, err
	}

	if attrCount > 0 {
		d.Attributes = make([]VertexAttributeInfo, attrCount)
	}
	for i := range d.Attributes {
		usage, err := r.readUsage()
		if err != nil {
			return IyesMeshDescriptor{}, err
		}

		formatByte, err := r.readByte()
		if err != nil {
			return IyesMeshDescriptor{}, err
		}

		vFormat := format.VertexFormat(formatByte)
		if _, ok := vFormat.Size(); !ok {
			return IyesMeshDescriptor{}, fmt.Errorf("%w: vertex format tag %d", errs.ErrUnknownVariantTag, formatByte)
		}

		d.Attributes[i] = VertexAttributeInfo{Usage: usage, Format: vFormat}
	}

	if r.offset != len(r.data) {
		return IyesMeshDescriptor{}, fmt.Errorf("%w: %d bytes remained after decode", errs.ErrTrailingDescriptorBytes, len(r.data)-r.offset)
	}

	return d, nil
}

// encoder accumulates the descriptor wire encoding into a pooled buffer.
type encoder struct {
	buf *pool.ByteBuffer
}

func (w *encoder) writeByte(b byte) {
	w.buf.MustWrite([]byte{b})
}

func (w *encoder) writeUvarint(v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	w.buf.MustWrite(tmp[:n])
}

func (w *encoder) writeUsage(u format.VertexUsage) error {
	w.writeByte(byte(u.Kind))

	if u.Kind != format.UsageCustom {
		return nil
	}

	if len(u.CustomName) > MaxCustomNameLength {
		return fmt.Errorf("%w: custom attribute name is %d bytes", errs.ErrInvalidDescriptor, len(u.CustomName))
	}

	w.writeUvarint(uint64(u.CustomID))
	w.writeUvarint(uint64(len(u.CustomName)))
	w.buf.MustWrite([]byte(u.CustomName))

	return nil
}

// decoder walks the descriptor wire encoding, tracking an offset so every
// short read is reported as TruncatedDescriptor.
type decoder struct {
	data   []byte
	offset int
}

func (r *decoder) readByte() (byte, error) {
	if r.offset >= len(r.data) {
		return 0, errs.ErrTruncatedDescriptor
	}

	b := r.data[r.offset]
	r.offset++

	return b, nil
}

func (r *decoder) readUvarint() (uint64, error) {
	v, n := binary.Uvarint(r.data[r.offset:])
	if n <= 0 {
		return 0, errs.ErrTruncatedDescriptor
	}

	r.offset += n

	return v, nil
}

func (r *decoder) readUsage() (format.VertexUsage, error) {
	tagByte, err := r.readByte()
	if err != nil {
		return format.VertexUsage{}, err
	}

	kind := format.VertexUsageKind(tagByte)
	if kind < format.UsagePosition || kind > format.UsageCustom {
		return format.VertexUsage{}, fmt.Errorf("%w: usage tag %d", errs.ErrUnknownVariantTag, tagByte)
	}

	if kind != format.UsageCustom {
		return format.VertexUsage{Kind: kind}, nil
	}

	id, err := r.readUvarint()
	if err != nil {
		return format.VertexUsage{}, err
	}

	nameLen, err := r.readUvarint()
	if err != nil {
		return format.VertexUsage{}, err
	}

	if uint64(r.offset)+nameLen > uint64(len(r.data)) {
		return format.VertexUsage{}, errs.ErrTruncatedDescriptor
	}

	nameBytes := r.data[r.offset : r.offset+int(nameLen)]
	r.offset += int(nameLen)

	if !utf8.Valid(nameBytes) {
		return format.VertexUsage{}, errs.ErrInvalidUTF8
	}

	return format.Custom(uint32(id), string(nameBytes)), nil
}
