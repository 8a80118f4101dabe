package container

import (
	"os"

	"github.com/edsrzf/mmap-go"
)

// MappedFile is a memory-mapped IMA file. Its Bytes are a direct view of
// the file's pages: NewReader built over them never copies header,
// descriptor, or compressed bytes off disk, only the decompressed payload
// Full or UserData produce.
type MappedFile struct {
	data mmap.MMap
	file *os.File
}

// OpenMmap memory-maps the file at path read-only and returns a
// MappedFile. Callers should call Close when done to release the mapping
// and the underlying file descriptor.
func OpenMmap(path string) (*MappedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	return &MappedFile{data: m, file: f}, nil
}

// Bytes returns the mapped file's contents. The slice is valid until
// Close is called.
func (m *MappedFile) Bytes() []byte {
	return m.data
}

// NewReader prepares a staged Reader directly over the mapping, with no
// intermediate copy.
func (m *MappedFile) NewReader(opts ...ReaderOption) (*Reader, error) {
	return NewReader(m.data, opts...)
}

// Close unmaps the file and closes the underlying file descriptor. Any
// Reader or slice still referencing Bytes becomes invalid.
func (m *MappedFile) Close() error {
	unmapErr := m.data.Unmap()
	closeErr := m.file.Close()

	if unmapErr != nil {
		return unmapErr
	}

	return closeErr
}
