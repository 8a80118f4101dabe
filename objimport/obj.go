// Package objimport converts Wavefront OBJ geometry into an
// IyesMeshDescriptor and its buffers, so a mesh authored in a modeling
// tool can be packed straight into an IMA file.
//
// The parser supports the same limited OBJ subset the format is commonly
// exported with: vertex positions (v), normals (vn), texture coordinates
// (vt), and triangular faces (f) referencing them by 1-based index.
// Quads and n-gons, multiple named objects per file, and material
// references (mtllib/usemtl) are not supported.
package objimport

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	math32 "github.com/chewxy/math32"
)

// Mesh is the flat, GPU-ready geometry objimport produces: deduplicated
// vertices in column form (Positions, Normals, and optionally UVs, each a
// flat run of per-vertex components), plus the triangle index list
// referencing them.
type Mesh struct {
	Name      string
	Positions []float32 // 3 components per vertex
	Normals   []float32 // 3 components per vertex
	UVs       []float32 // 2 components per vertex; empty if the source had none
	Indices   []uint32
}

// faceRef is one corner of a triangle: 0-based indices into the file's
// global vertex/texcoord/normal lists. t and n are -1 when absent.
type faceRef struct {
	v, t, n int
}

// Parse reads a single-object Wavefront OBJ mesh from r. If the file
// supplies no vn lines, normals are synthesized as the average of
// adjacent face normals.
func Parse(r io.Reader) (*Mesh, error) {
	name := "obj"

	var positions, normals [][3]float32
	var uvs [][2]float32
	var faces [][3]faceRef

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)

		switch fields[0] {
		case "o":
			if len(fields) >= 2 {
				name = fields[1]
			}
		case "v":
			p, err := parseFloat3(fields)
			if err != nil {
				return nil, fmt.Errorf("objimport: bad vertex %q: %w", line, err)
			}

			positions = append(positions, p)
		case "vn":
			n, err := parseFloat3(fields)
			if err != nil {
				return nil, fmt.Errorf("objimport: bad normal %q: %w", line, err)
			}

			normals = append(normals, n)
		case "vt":
			uv, err := parseFloat2(fields)
			if err != nil {
				return nil, fmt.Errorf("objimport: bad texture coordinate %q: %w", line, err)
			}

			uvs = append(uvs, [2]float32{uv[0], 1 - uv[1]})
		case "f":
			if len(fields) != 4 {
				return nil, fmt.Errorf("objimport: face %q is not a triangle (quads/n-gons are not supported)", line)
			}

			var fr [3]faceRef
			for i := 0; i < 3; i++ {
				ref, err := parseFaceRef(fields[i+1])
				if err != nil {
					return nil, fmt.Errorf("objimport: bad face %q: %w", line, err)
				}

				fr[i] = ref
			}

			faces = append(faces, fr)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("objimport: reading OBJ: %w", err)
	}

	if len(positions) == 0 || len(faces) == 0 {
		return nil, fmt.Errorf("objimport: %q has no vertex or face data", name)
	}

	mesh := assemble(name, positions, normals, uvs, faces)

	if len(normals) == 0 {
		synthesizeNormals(mesh)
	}

	return mesh, nil
}

// assemble deduplicates face corners sharing the same vertex/texcoord
// combination, using a seen-corner index map, and builds the flat
// per-vertex buffers and index list.
func assemble(name string, positions, normals [][3]float32, uvs [][2]float32, faces [][3]faceRef) *Mesh {
	mesh := &Mesh{Name: name}

	hasNormals := len(normals) > 0
	hasUV := len(uvs) > 0

	vmap := make(map[[2]int]uint32, len(faces)*3)

	for _, fr := range faces {
		for _, ref := range fr {
			key := [2]int{ref.v, ref.t}

			idx, ok := vmap[key]
			if !ok {
				idx = uint32(len(mesh.Positions) / 3)
				vmap[key] = idx

				p := positions[ref.v]
				mesh.Positions = append(mesh.Positions, p[0], p[1], p[2])

				if hasNormals && ref.n >= 0 {
					n := normals[ref.n]
					mesh.Normals = append(mesh.Normals, n[0], n[1], n[2])
				} else {
					mesh.Normals = append(mesh.Normals, 0, 0, 0)
				}

				if hasUV && ref.t >= 0 {
					uv := uvs[ref.t]
					mesh.UVs = append(mesh.UVs, uv[0], uv[1])
				}
			}

			mesh.Indices = append(mesh.Indices, idx)
		}
	}

	return mesh
}

// synthesizeNormals fills in per-vertex normals absent from the source
// file as the normalized sum of the face normals of every triangle
// touching that vertex.
func synthesizeNormals(mesh *Mesh) {
	accum := make([][3]float32, len(mesh.Positions)/3)

	vertex := func(i uint32) [3]float32 {
		return [3]float32{mesh.Positions[i*3], mesh.Positions[i*3+1], mesh.Positions[i*3+2]}
	}

	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		ia, ib, ic := mesh.Indices[i], mesh.Indices[i+1], mesh.Indices[i+2]
		a, b, c := vertex(ia), vertex(ib), vertex(ic)

		e1 := sub(b, a)
		e2 := sub(c, a)
		fn := cross(e1, e2)

		accum[ia] = add(accum[ia], fn)
		accum[ib] = add(accum[ib], fn)
		accum[ic] = add(accum[ic], fn)
	}

	for i, n := range accum {
		n = normalize(n)
		mesh.Normals[i*3], mesh.Normals[i*3+1], mesh.Normals[i*3+2] = n[0], n[1], n[2]
	}
}

func sub(p, q [3]float32) [3]float32 {
	return [3]float32{p[0] - q[0], p[1] - q[1], p[2] - q[2]}
}

func add(p, q [3]float32) [3]float32 {
	return [3]float32{p[0] + q[0], p[1] + q[1], p[2] + q[2]}
}

func cross(p, q [3]float32) [3]float32 {
	return [3]float32{
		p[1]*q[2] - p[2]*q[1],
		p[2]*q[0] - p[0]*q[2],
		p[0]*q[1] - p[1]*q[0],
	}
}

func normalize(v [3]float32) [3]float32 {
	length := math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if length == 0 {
		return v
	}

	return [3]float32{v[0] / length, v[1] / length, v[2] / length}
}

func parseFloat3(fields []string) ([3]float32, error) {
	if len(fields) < 4 {
		return [3]float32{}, fmt.Errorf("expected 3 components, got %d", len(fields)-1)
	}

	var v [3]float32
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i+1], 32)
		if err != nil {
			return [3]float32{}, err
		}

		v[i] = float32(f)
	}

	return v, nil
}

func parseFloat2(fields []string) ([2]float32, error) {
	if len(fields) < 3 {
		return [2]float32{}, fmt.Errorf("expected 2 components, got %d", len(fields)-1)
	}

	var v [2]float32
	for i := 0; i < 2; i++ {
		f, err := strconv.ParseFloat(fields[i+1], 32)
		if err != nil {
			return [2]float32{}, err
		}

		v[i] = float32(f)
	}

	return v, nil
}

// parseFaceRef parses one "v", "v/t", "v//n", or "v/t/n" face corner,
// converting from OBJ's 1-based indices to 0-based. t and n are -1 when
// the corresponding slash-field is absent.
func parseFaceRef(s string) (faceRef, error) {
	parts := strings.Split(s, "/")

	v, err := strconv.Atoi(parts[0])
	if err != nil {
		return faceRef{}, fmt.Errorf("bad vertex index %q: %w", parts[0], err)
	}

	ref := faceRef{v: v - 1, t: -1, n: -1}

	if len(parts) >= 2 && parts[1] != "" {
		t, err := strconv.Atoi(parts[1])
		if err != nil {
			return faceRef{}, fmt.Errorf("bad texcoord index %q: %w", parts[1], err)
		}

		ref.t = t - 1
	}

	if len(parts) >= 3 && parts[2] != "" {
		n, err := strconv.Atoi(parts[2])
		if err != nil {
			return faceRef{}, fmt.Errorf("bad normal index %q: %w", parts[2], err)
		}

		ref.n = n - 1
	}

	return ref, nil
}
