// Package format defines the closed, tagged-variant enumerations shared by
// the descriptor and container packages: vertex attribute usage, vertex
// element formats, and index element formats.
//
// Unknown tags are a hard decode error, never a forward-compatible ignore
// (see the descriptor codec); new variants require a version bump.
package format

import "fmt"

// VertexUsageKind identifies which semantic role a VertexAttributeInfo plays.
//
// Usage identity for the "no two attributes share a usage" invariant is this
// kind plus, for Custom, the attribute's id — the Custom name is informational
// only and never part of identity.
type VertexUsageKind uint8

// Vertex attribute usages.
const (
	UsagePosition VertexUsageKind = iota + 1
	UsageNormal
	UsageTangent
	UsageColor
	UsageUV
	UsageJointIndex
	UsageJointWeight
	UsageCustom
)

func (k VertexUsageKind) String() string {
	switch k {
	case UsagePosition:
		return "Position"
	case UsageNormal:
		return "Normal"
	case UsageTangent:
		return "Tangent"
	case UsageColor:
		return "Color"
	case UsageUV:
		return "Uv"
	case UsageJointIndex:
		return "JointIndex"
	case UsageJointWeight:
		return "JointWeight"
	case UsageCustom:
		return "Custom"
	default:
		return fmt.Sprintf("VertexUsageKind(%d)", uint8(k))
	}
}

// VertexUsage is a tagged variant: a closed set of predefined semantics
// plus an escape hatch, Custom, carrying an id and an informational name.
//
// Two VertexUsage values share identity iff Kind matches and, for
// UsageCustom, CustomID also matches; CustomName never participates in
// identity.
type VertexUsage struct {
	Kind       VertexUsageKind
	CustomID   uint32
	CustomName string
}

// Position returns the Position usage.
func Position() VertexUsage { return VertexUsage{Kind: UsagePosition} }

// Normal returns the Normal usage.
func Normal() VertexUsage { return VertexUsage{Kind: UsageNormal} }

// Tangent returns the Tangent usage.
func Tangent() VertexUsage { return VertexUsage{Kind: UsageTangent} }

// Color returns the Color usage.
func Color() VertexUsage { return VertexUsage{Kind: UsageColor} }

// UV returns the Uv usage.
func UV() VertexUsage { return VertexUsage{Kind: UsageUV} }

// JointIndex returns the JointIndex usage.
func JointIndex() VertexUsage { return VertexUsage{Kind: UsageJointIndex} }

// JointWeight returns the JointWeight usage.
func JointWeight() VertexUsage { return VertexUsage{Kind: UsageJointWeight} }

// Custom returns a Custom usage identified by id, with name as informational
// metadata only (not part of identity).
func Custom(id uint32, name string) VertexUsage {
	return VertexUsage{Kind: UsageCustom, CustomID: id, CustomName: name}
}

// Identity returns a comparable value suitable for detecting duplicate usages
// within a descriptor's attribute list.
func (u VertexUsage) Identity() any {
	if u.Kind == UsageCustom {
		return [2]uint32{uint32(u.Kind), u.CustomID}
	}

	return u.Kind
}

func (u VertexUsage) String() string {
	if u.Kind == UsageCustom {
		return fmt.Sprintf("Custom(id=%d, name=%q)", u.CustomID, u.CustomName)
	}

	return u.Kind.String()
}

// VertexFormat enumerates the fixed-stride scalar/vector element formats a
// vertex attribute buffer may use.
type VertexFormat uint8

// Vertex formats. Values are stable wire tags; do not renumber.
const (
	FormatFloat16 VertexFormat = iota + 1
	FormatFloat16x2
	FormatFloat16x3
	FormatFloat16x4
	FormatFloat32
	FormatFloat32x2
	FormatFloat32x3
	FormatFloat32x4
	FormatFloat64
	FormatFloat64x2
	FormatFloat64x3
	FormatFloat64x4
	FormatSint8
	FormatSint8x2
	FormatSint8x3
	FormatSint8x4
	FormatUint8
	FormatUint8x2
	FormatUint8x3
	FormatUint8x4
	FormatSint16
	FormatSint16x2
	FormatSint16x3
	FormatSint16x4
	FormatUint16
	FormatUint16x2
	FormatUint16x3
	FormatUint16x4
	FormatSint32
	FormatSint32x2
	FormatSint32x3
	FormatSint32x4
	FormatUint32
	FormatUint32x2
	FormatUint32x3
	FormatUint32x4
	FormatSnorm8
	FormatSnorm8x2
	FormatSnorm8x3
	FormatSnorm8x4
	FormatUnorm8
	FormatUnorm8x2
	FormatUnorm8x3
	FormatUnorm8x4
	FormatSnorm16
	FormatSnorm16x2
	FormatSnorm16x3
	FormatSnorm16x4
	FormatUnorm16
	FormatUnorm16x2
	FormatUnorm16x3
	FormatUnorm16x4
	FormatUnorm8x4Bgra
	FormatUnorm10_10_10_2
)

// vertexFormatStride is the byte-stride table, keyed by wire tag.
var vertexFormatStride = map[VertexFormat]int{
	FormatFloat16:   2,
	FormatFloat16x2: 4,
	FormatFloat16x3: 6,
	FormatFloat16x4: 8,
	FormatFloat32:   4,
	FormatFloat32x2: 8,
	FormatFloat32x3: 12,
	FormatFloat32x4: 16,
	FormatFloat64:   8,
	FormatFloat64x2: 16,
	FormatFloat64x3: 24,
	FormatFloat64x4: 32,

	FormatSint8:   1,
	FormatSint8x2: 2,
	FormatSint8x3: 3,
	FormatSint8x4: 4,
	FormatUint8:   1,
	FormatUint8x2: 2,
	FormatUint8x3: 3,
	FormatUint8x4: 4,

	FormatSint16:   2,
	FormatSint16x2: 4,
	FormatSint16x3: 6,
	FormatSint16x4: 8,
	FormatUint16:   2,
	FormatUint16x2: 4,
	FormatUint16x3: 6,
	FormatUint16x4: 8,

	FormatSint32:   4,
	FormatSint32x2: 8,
	FormatSint32x3: 12,
	FormatSint32x4: 16,
	FormatUint32:   4,
	FormatUint32x2: 8,
	FormatUint32x3: 12,
	FormatUint32x4: 16,

	FormatSnorm8:   1,
	FormatSnorm8x2: 2,
	FormatSnorm8x3: 3,
	FormatSnorm8x4: 4,
	FormatUnorm8:   1,
	FormatUnorm8x2: 2,
	FormatUnorm8x3: 3,
	FormatUnorm8x4: 4,

	FormatSnorm16:   2,
	FormatSnorm16x2: 4,
	FormatSnorm16x3: 6,
	FormatSnorm16x4: 8,
	FormatUnorm16:   2,
	FormatUnorm16x2: 4,
	FormatUnorm16x3: 6,
	FormatUnorm16x4: 8,

	FormatUnorm8x4Bgra:    4,
	FormatUnorm10_10_10_2: 4,
}

// Size returns the fixed byte stride of the format, and false for an
// unrecognized tag (decode callers must treat that as UnknownVariantTag).
func (f VertexFormat) Size() (size int, ok bool) {
	size, ok = vertexFormatStride[f]
	return size, ok
}

func (f VertexFormat) String() string {
	switch f {
	case FormatUnorm8x4Bgra:
		return "Unorm8x4Bgra"
	case FormatUnorm10_10_10_2:
		return "Unorm10_10_10_2"
	}

	if size, ok := f.Size(); ok {
		return fmt.Sprintf("VertexFormat(tag=%d, size=%d)", uint8(f), size)
	}

	return fmt.Sprintf("VertexFormat(%d)", uint8(f))
}

// IndexFormat enumerates the two supported index element widths.
type IndexFormat uint8

// Index formats.
const (
	IndexU16 IndexFormat = iota + 1
	IndexU32
)

// Size returns the fixed byte width of the index format, and false for an
// unrecognized tag.
func (f IndexFormat) Size() (size int, ok bool) {
	switch f {
	case IndexU16:
		return 2, true
	case IndexU32:
		return 4, true
	default:
		return 0, false
	}
}

func (f IndexFormat) String() string {
	switch f {
	case IndexU16:
		return "U16"
	case IndexU32:
		return "U32"
	default:
		return fmt.Sprintf("IndexFormat(%d)", uint8(f))
	}
}
