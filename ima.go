// Package ima implements the IMA (Iyes Mesh Array) file format: a compact
// binary container for GPU-ready mesh data, combining a typed descriptor,
// an opaque user-data region, and zstd-compressed vertex/index buffers
// behind a single checksummed header.
//
// This package provides convenient top-level wrappers around the
// container package, simplifying the most common use cases. For the full
// staged read API and write options, use package container directly.
package ima

import (
	"github.com/iyesgames/ima/container"
	"github.com/iyesgames/ima/descriptor"
)

// Write assembles a complete IMA file from a descriptor and its buffers.
// See container.Write for the full contract on buffer sizing.
func Write(d *descriptor.IyesMeshDescriptor, userData, indices []byte, vertexBuffers [][]byte, opts ...container.WriterOption) ([]byte, error) {
	return container.Write(d, userData, indices, vertexBuffers, opts...)
}

// Open prepares a staged Reader over data, which the caller owns for the
// Reader's lifetime. See container.NewReader for the Stage H/D/C/U/F
// sequence this drives.
func Open(data []byte, opts ...container.ReaderOption) (*container.Reader, error) {
	return container.NewReader(data, opts...)
}

// OpenFile memory-maps the file at path and prepares a staged Reader over
// the mapping, avoiding a copy of the whole file into memory. The caller
// must Close the returned MappedFile once done with the Reader and any
// slices it produced.
func OpenFile(path string, opts ...container.ReaderOption) (*container.MappedFile, *container.Reader, error) {
	mapped, err := container.OpenMmap(path)
	if err != nil {
		return nil, nil, err
	}

	r, err := mapped.NewReader(opts...)
	if err != nil {
		_ = mapped.Close()
		return nil, nil, err
	}

	return mapped, r, nil
}

// Verify runs Stage H, Stage D, and Stage C over data and returns the
// decoded descriptor, or the first error encountered. It is a shortcut for
// callers that want full integrity verification without driving the
// staged Reader by hand.
func Verify(data []byte) (*descriptor.IyesMeshDescriptor, error) {
	r, err := container.NewReader(data, container.WithVerify(true))
	if err != nil {
		return nil, err
	}

	if _, err := r.OpenHeader(); err != nil {
		return nil, err
	}

	return r.OpenDescriptor()
}
