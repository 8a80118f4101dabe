package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"

	"github.com/iyesgames/ima/container"
	"github.com/iyesgames/ima/descriptor"
	"github.com/iyesgames/ima/format"
)

// loadedMesh is one input file's fully decompressed contents, ready to be
// spliced into a merged descriptor.
type loadedMesh struct {
	path          string
	desc          *descriptor.IyesMeshDescriptor
	userData      []byte
	indices       []byte
	vertexBuffers [][]byte
}

func doMerge(args []string) error {
	flags := flag.NewFlagSet("merge", flag.ExitOnError)
	out := flags.String("out", "", "output file path")

	if err := flags.Parse(args); err != nil {
		return err
	}

	paths := flags.Args()
	if len(paths) < 2 || *out == "" {
		return fmt.Errorf("usage: ima merge -out=merged.ima <file1.ima> <file2.ima> ...")
	}

	loaded := make([]loadedMesh, 0, len(paths))
	for _, path := range paths {
		m, err := loadMesh(path)
		if err != nil {
			return err
		}

		loaded = append(loaded, m)
	}

	merged, err := mergeMeshes(loaded)
	if err != nil {
		return err
	}

	file, err := container.Write(merged.desc, merged.userData, merged.indices, merged.vertexBuffers)
	if err != nil {
		return err
	}

	return os.WriteFile(*out, file, 0o644)
}

func loadMesh(path string) (loadedMesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return loadedMesh{}, err
	}

	r, err := container.NewReader(data, container.WithVerify(true))
	if err != nil {
		return loadedMesh{}, err
	}

	if _, err := r.OpenHeader(); err != nil {
		return loadedMesh{}, fmt.Errorf("%s: %w", path, err)
	}

	d, err := r.OpenDescriptor()
	if err != nil {
		return loadedMesh{}, fmt.Errorf("%s: %w", path, err)
	}

	userData, indices, vertexBuffers, err := r.Full()
	if err != nil {
		return loadedMesh{}, fmt.Errorf("%s: %w", path, err)
	}

	return loadedMesh{path: path, desc: d, userData: userData, indices: indices, vertexBuffers: vertexBuffers}, nil
}

// mergeMeshes concatenates every input's meshes, vertex buffers, and
// index buffer into one descriptor, offsetting each mesh's and each index
// value's vertex/index range by the running totals of the prior inputs.
// Every input must share the same attribute layout, index presence, and
// index format; Custom attributes sharing an id across inputs must also
// share the same name and format, the name checked via an xxhash
// fingerprint of the usage. Buffer contents are never compared.
func mergeMeshes(inputs []loadedMesh) (loadedMesh, error) {
	first := inputs[0]

	for _, in := range inputs[1:] {
		if err := checkCompatible(first, in); err != nil {
			return loadedMesh{}, err
		}
	}

	merged := loadedMesh{
		desc: &descriptor.IyesMeshDescriptor{
			Attributes: first.desc.Attributes,
		},
	}

	if first.desc.Indices != nil {
		merged.desc.Indices = &descriptor.IndicesInfo{Format: first.desc.Indices.Format}
	}

	vertexBuffers := make([][]byte, len(first.desc.Attributes))

	var vertexOffset, indexOffset uint32

	for _, in := range inputs {
		for _, m := range in.desc.Meshes {
			merged.desc.Meshes = append(merged.desc.Meshes, descriptor.MeshInfo{
				FirstIndex:  m.FirstIndex + indexOffset,
				IndexCount:  m.IndexCount,
				FirstVertex: m.FirstVertex + vertexOffset,
				VertexCount: m.VertexCount,
			})
		}

		for i := range vertexBuffers {
			vertexBuffers[i] = append(vertexBuffers[i], in.vertexBuffers[i]...)
		}

		if merged.desc.Indices != nil {
			rebased, err := rebaseIndices(in.indices, merged.desc.Indices.Format, vertexOffset)
			if err != nil {
				return loadedMesh{}, fmt.Errorf("%s: %w", in.path, err)
			}

			merged.indices = append(merged.indices, rebased...)
			merged.desc.Indices.NIndices += in.desc.Indices.NIndices
			indexOffset += in.desc.Indices.NIndices
		}

		merged.userData = append(merged.userData, in.userData...)
		merged.desc.NVertices += in.desc.NVertices
		vertexOffset += in.desc.NVertices
	}

	merged.desc.UserDataLen = uint32(len(merged.userData))
	merged.vertexBuffers = vertexBuffers

	if err := merged.desc.Validate(); err != nil {
		return loadedMesh{}, err
	}

	return merged, nil
}

func checkCompatible(a, b loadedMesh) error {
	if (a.desc.Indices == nil) != (b.desc.Indices == nil) {
		return fmt.Errorf("ima merge: %s and %s disagree on whether indices are present", a.path, b.path)
	}

	if a.desc.Indices != nil && a.desc.Indices.Format != b.desc.Indices.Format {
		return fmt.Errorf("ima merge: %s and %s use different index formats", a.path, b.path)
	}

	if len(a.desc.Attributes) != len(b.desc.Attributes) {
		return fmt.Errorf("ima merge: %s and %s declare a different number of attributes", a.path, b.path)
	}

	for i, attrA := range a.desc.Attributes {
		attrB := b.desc.Attributes[i]

		if attrA.Format != attrB.Format {
			return fmt.Errorf("ima merge: %s and %s disagree on attribute %d's format", a.path, b.path, i)
		}

		if attrA.Usage.Kind != attrB.Usage.Kind {
			return fmt.Errorf("ima merge: %s and %s disagree on attribute %d's usage", a.path, b.path, i)
		}

		if attrA.Usage.Kind == format.UsageCustom {
			if attrA.Usage.CustomID != attrB.Usage.CustomID {
				return fmt.Errorf("ima merge: %s and %s disagree on attribute %d's custom id", a.path, b.path, i)
			}

			if fingerprint(attrA.Usage.String()) != fingerprint(attrB.Usage.String()) {
				return fmt.Errorf("ima merge: %s and %s use custom id %d for different attributes (%q vs %q)",
					a.path, b.path, attrA.Usage.CustomID, attrA.Usage.String(), attrB.Usage.String())
			}
		}
	}

	return nil
}

func fingerprint(s string) uint64 {
	return xxhash.Sum64String(s)
}

// rebaseIndices decodes a raw index buffer at format, adds offset to every
// value, and re-encodes it, so indices that referenced a standalone
// vertex buffer correctly reference their new position in a shared one.
func rebaseIndices(data []byte, f format.IndexFormat, offset uint32) ([]byte, error) {
	size, ok := f.Size()
	if !ok {
		return nil, fmt.Errorf("unknown index format %d", f)
	}

	if len(data)%size != 0 {
		return nil, fmt.Errorf("index buffer length %d is not a multiple of %d", len(data), size)
	}

	out := make([]byte, len(data))

	switch f {
	case format.IndexU16:
		for i := 0; i < len(data); i += 2 {
			v := binary.LittleEndian.Uint16(data[i:])
			rebased := uint32(v) + offset

			if rebased > 0xFFFF {
				return nil, fmt.Errorf("merged index %d exceeds the u16 range; use U32 inputs", rebased)
			}

			binary.LittleEndian.PutUint16(out[i:], uint16(rebased))
		}
	case format.IndexU32:
		for i := 0; i < len(data); i += 4 {
			v := binary.LittleEndian.Uint32(data[i:])
			binary.LittleEndian.PutUint32(out[i:], v+offset)
		}
	default:
		return nil, fmt.Errorf("unsupported index format %s", f)
	}

	return out, nil
}
