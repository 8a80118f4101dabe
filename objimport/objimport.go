package objimport

import (
	"io"

	"github.com/iyesgames/ima/container"
)

// Import parses r as a Wavefront OBJ file and packs the result directly
// into a complete IMA file: equivalent to Parse followed by Convert and
// container.Write, with no user data.
func Import(r io.Reader, opts ...container.WriterOption) ([]byte, error) {
	mesh, err := Parse(r)
	if err != nil {
		return nil, err
	}

	d, indices, vertexBuffers := Convert(mesh)

	return container.Write(d, nil, indices, vertexBuffers, opts...)
}
