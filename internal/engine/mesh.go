package engine

import "github.com/vovakirdan/enginehost/internal/core"

// PackedVector3Array is the engine-native contiguous Vec3 storage.
type PackedVector3Array []core.Vec3

// PackedVector2Array is the engine-native contiguous Vec2 storage.
type PackedVector2Array []core.Vec2

// PackedInt32Array is the engine-native contiguous index storage.
type PackedInt32Array []int32

// PrimitiveType selects how a surface's indices are assembled.
type PrimitiveType int

const (
	PrimitiveTriangles PrimitiveType = iota
)

// Surface is one drawable part of a mesh.
type Surface struct {
	Primitive PrimitiveType
	Vertices  PackedVector3Array
	Normals   PackedVector3Array
	UVs       PackedVector2Array
	Indices   PackedInt32Array
	Material  *StandardMaterial3D
}

// ArrayMesh is a mesh built from explicit arrays.
type ArrayMesh struct {
	surfaces []Surface
}

// NewArrayMesh creates an empty mesh.
func NewArrayMesh() *ArrayMesh {
	return &ArrayMesh{}
}

// AddSurface appends a surface built from the given arrays. The arrays are
// taken over, not copied.
func (m *ArrayMesh) AddSurface(p PrimitiveType, vertices, normals PackedVector3Array, uvs PackedVector2Array, indices PackedInt32Array) int {
	m.surfaces = append(m.surfaces, Surface{
		Primitive: p,
		Vertices:  vertices,
		Normals:   normals,
		UVs:       uvs,
		Indices:   indices,
	})
	return len(m.surfaces) - 1
}

// SurfaceCount returns the number of surfaces.
func (m *ArrayMesh) SurfaceCount() int {
	return len(m.surfaces)
}

// Surface returns surface i.
func (m *ArrayMesh) Surface(i int) *Surface {
	return &m.surfaces[i]
}

// SetSurfaceMaterial assigns a material to surface i. A nil material means
// the engine default.
func (m *ArrayMesh) SetSurfaceMaterial(i int, mat *StandardMaterial3D) {
	m.surfaces[i].Material = mat
}

// StandardMaterial3D is the engine's default surface material.
type StandardMaterial3D struct {
	AlbedoColor   core.Color
	AlbedoTexture *ImageTexture
}

// NewStandardMaterial3D creates a white, untextured material.
func NewStandardMaterial3D() *StandardMaterial3D {
	return &StandardMaterial3D{AlbedoColor: core.ColorWhite}
}

// ImageTexture is a texture backed by an Image.
type ImageTexture struct {
	image *Image
}

// NewImageTexture wraps img.
func NewImageTexture(img *Image) *ImageTexture {
	return &ImageTexture{image: img}
}

// Image returns the backing image.
func (t *ImageTexture) Image() *Image {
	return t.image
}

// MeshInstance3D places a mesh in the scene.
type MeshInstance3D struct {
	NodeBase
	Mesh *ArrayMesh
}

// NewMeshInstance3D creates an instance of mesh.
func NewMeshInstance3D(mesh *ArrayMesh) *MeshInstance3D {
	m := &MeshInstance3D{Mesh: mesh}
	m.init(m, "MeshInstance3D")
	return m
}

// OmniLight3D is a point light emitting in all directions.
type OmniLight3D struct {
	NodeBase
	Position   core.Vec3
	Color      core.Color
	Energy     float32
	CastShadow bool
}

// NewOmniLight3D creates a white light of energy 1 at the origin.
func NewOmniLight3D() *OmniLight3D {
	l := &OmniLight3D{Color: core.ColorWhite, Energy: 1}
	l.init(l, "OmniLight3D")
	return l
}
