// Package container implements the IMA file container: the fixed 24-byte
// header, the write path that assembles header/descriptor/compressed data,
// and the staged, zero-copy read path.
package container

import (
	"encoding/binary"

	"github.com/iyesgames/ima/errs"
)

// HeaderSize is the fixed byte size of Header on the wire.
const HeaderSize = 24

// Magic is the four ASCII bytes every IMA file starts with.
var Magic = [4]byte{'I', 'y', 'M', 'A'}

// Version is the only format version this codec writes and accepts.
const Version uint16 = 1

// Header is the fixed-size preamble of an IMA file. All multi-byte fields
// are little-endian.
type Header struct {
	Version          uint16
	DescriptorLen    uint16
	MetadataChecksum uint64
	DataChecksum     uint64
}

// ParseHeader decodes a Header from its 24-byte wire representation.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrTooShort
	}

	data = data[:HeaderSize]

	if data[0] != Magic[0] || data[1] != Magic[1] || data[2] != Magic[2] || data[3] != Magic[3] {
		return Header{}, errs.ErrBadMagic
	}

	h := Header{
		Version:          binary.LittleEndian.Uint16(data[4:6]),
		DescriptorLen:    binary.LittleEndian.Uint16(data[6:8]),
		MetadataChecksum: binary.LittleEndian.Uint64(data[8:16]),
		DataChecksum:     binary.LittleEndian.Uint64(data[16:24]),
	}

	if h.Version != Version {
		return Header{}, errs.ErrUnsupportedVersion
	}

	return h, nil
}

// Bytes serializes the Header into its 24-byte wire representation.
func (h Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	copy(b[0:4], Magic[:])
	binary.LittleEndian.PutUint16(b[4:6], h.Version)
	binary.LittleEndian.PutUint16(b[6:8], h.DescriptorLen)
	binary.LittleEndian.PutUint64(b[8:16], h.MetadataChecksum)
	binary.LittleEndian.PutUint64(b[16:24], h.DataChecksum)

	return b
}
