package core

import (
	"errors"
	"fmt"
	"unsafe"
)

// Vec3 and Vec2 are reinterpreted in place over flat float arrays, so their
// layout must stay exactly 3 and 2 packed float32 values.
var (
	_ [3 * 4]byte = [unsafe.Sizeof(Vec3{})]byte{}
	_ [2 * 4]byte = [unsafe.Sizeof(Vec2{})]byte{}
)

// ErrGeometryShape is returned when flat arrays are shorter than their counts.
var ErrGeometryShape = errors.New("core: geometry arrays shorter than declared counts")

// FlatGeometry is a transient, caller-owned set of parallel vertex arrays plus
// a triangle-list index array. One vertex per position; Normals and UVs are
// indexed the same way.
type FlatGeometry struct {
	Positions []Vec3
	Normals   []Vec3
	UVs       []Vec2
	Indices   []uint32
}

// VertexCount returns the number of vertices.
func (g FlatGeometry) VertexCount() int {
	return len(g.Positions)
}

// IndexCount returns the number of indices.
func (g FlatGeometry) IndexCount() int {
	return len(g.Indices)
}

// FlatGeometryFromArrays views C-shaped flat arrays (3 floats per position and
// normal, 2 per UV) as a FlatGeometry without copying. The result aliases the
// inputs and is only valid while they are.
func FlatGeometryFromArrays(vertex, normal, uv []float32, vertexCount uint32, index []uint32, indexCount uint32) (FlatGeometry, error) {
	n := int(vertexCount)
	if len(vertex) < n*3 || len(normal) < n*3 || len(uv) < n*2 || len(index) < int(indexCount) {
		return FlatGeometry{}, fmt.Errorf("%w: vertices=%d indices=%d", ErrGeometryShape, vertexCount, indexCount)
	}

	g := FlatGeometry{Indices: index[:indexCount:indexCount]}
	if n > 0 {
		g.Positions = unsafe.Slice((*Vec3)(unsafe.Pointer(&vertex[0])), n)
		g.Normals = unsafe.Slice((*Vec3)(unsafe.Pointer(&normal[0])), n)
		g.UVs = unsafe.Slice((*Vec2)(unsafe.Pointer(&uv[0])), n)
	}
	return g, nil
}

// Validate checks the buffer invariants: equal per-vertex array lengths, a
// whole number of triangles, and every index in range. Injection does not call
// it; callers that cannot vouch for their data should.
func (g FlatGeometry) Validate() error {
	n := len(g.Positions)
	if len(g.Normals) != n || len(g.UVs) != n {
		return fmt.Errorf("core: mismatched vertex arrays: positions=%d normals=%d uvs=%d",
			n, len(g.Normals), len(g.UVs))
	}
	if len(g.Indices)%3 != 0 {
		return fmt.Errorf("core: index count %d is not a multiple of 3", len(g.Indices))
	}
	for i, idx := range g.Indices {
		if int(idx) >= n {
			return fmt.Errorf("core: index %d at position %d out of range (vertices=%d)", idx, i, n)
		}
	}
	return nil
}
