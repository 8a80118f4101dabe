// Package descriptor implements the typed IyesMeshDescriptor metadata root
// and its compact, deterministic, self-delimiting binary encoding.
package descriptor

import (
	"fmt"

	"github.com/iyesgames/ima/errs"
	"github.com/iyesgames/ima/format"
)

// IyesMeshDescriptor is the metadata root describing one or more meshes
// sharing vertex and index buffers, plus an opaque user-data region.
type IyesMeshDescriptor struct {
	NVertices   uint32
	UserDataLen uint32
	Meshes      []MeshInfo
	Indices     *IndicesInfo
	Attributes  []VertexAttributeInfo
}

// MeshInfo is a sub-range within the shared buffers, suitable for driving a
// multi-draw-indirect command.
type MeshInfo struct {
	FirstIndex  uint32
	IndexCount  uint32
	FirstVertex uint32
	VertexCount uint32
}

// IndicesInfo describes the shared index buffer, when present.
type IndicesInfo struct {
	NIndices uint32
	Format   format.IndexFormat
}

// VertexAttributeInfo declares one vertex buffer's semantic role and
// element type. Order within IyesMeshDescriptor.Attributes is semantic: it
// defines the order of vertex buffers in the uncompressed data stream.
type VertexAttributeInfo struct {
	Usage  format.VertexUsage
	Format format.VertexFormat
}

// Validate checks invariants (1), (2), and (4) of the descriptor. Invariant
// (3) (uncompressed length) is checked by package layout against the actual
// buffers being written/read, not by the descriptor in isolation.
func (d *IyesMeshDescriptor) Validate() error {
	if err := d.validateNoDuplicateUsages(); err != nil {
		return err
	}

	if err := d.validateIndicesPresence(); err != nil {
		return err
	}

	return d.validateMeshBounds()
}

// validateNoDuplicateUsages enforces invariant (1): no two attributes share
// the same usage identity.
func (d *IyesMeshDescriptor) validateNoDuplicateUsages() error {
	seen := make(map[any]struct{}, len(d.Attributes))

	for i, attr := range d.Attributes {
		id := attr.Usage.Identity()
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: attribute %d duplicates usage %s", errs.ErrInvalidDescriptor, i, attr.Usage)
		}

		seen[id] = struct{}{}
	}

	return nil
}

// validateIndicesPresence enforces invariant (2): when indices are absent,
// every mesh's index sub-range must be the zero range.
func (d *IyesMeshDescriptor) validateIndicesPresence() error {
	if d.Indices != nil {
		return nil
	}

	for i, m := range d.Meshes {
		if m.IndexCount != 0 || m.FirstIndex != 0 {
			return fmt.Errorf("%w: mesh %d has index range but descriptor has no indices", errs.ErrInvalidDescriptor, i)
		}
	}

	return nil
}

// validateMeshBounds enforces invariant (4): every mesh sub-range lies
// within its respective buffer.
func (d *IyesMeshDescriptor) validateMeshBounds() error {
	var nIndices uint32
	if d.Indices != nil {
		nIndices = d.Indices.NIndices
	}

	for i, m := range d.Meshes {
		if d.Indices != nil {
			if end := uint64(m.FirstIndex) + uint64(m.IndexCount); end > uint64(nIndices) {
				return fmt.Errorf("%w: mesh %d index range [%d, %d) exceeds %d indices",
					errs.ErrInvalidDescriptor, i, m.FirstIndex, end, nIndices)
			}
		}

		if end := uint64(m.FirstVertex) + uint64(m.VertexCount); end > uint64(d.NVertices) {
			return fmt.Errorf("%w: mesh %d vertex range [%d, %d) exceeds %d vertices",
				errs.ErrInvalidDescriptor, i, m.FirstVertex, end, d.NVertices)
		}
	}

	return nil
}
