// Package inject converts host geometry and light descriptions into
// engine-native scene nodes and attaches them to the scene root.
package inject

import (
	"github.com/vovakirdan/enginehost/internal/core"
	"github.com/vovakirdan/enginehost/internal/engine"
)

// ImageSource resolves texture names. *imagebridge.Bridge implements it.
type ImageSource interface {
	Load(name string) (*engine.Image, bool)
}

// Injector builds scene nodes from flat buffers.
type Injector struct {
	Images ImageSource
}

// New creates an injector that resolves textures through images.
// images may be nil, in which case every mesh gets the default material.
func New(images ImageSource) *Injector {
	return &Injector{Images: images}
}

// Geometry copies g into a new triangle mesh and attaches it under root.
//
// Each array is copied once, directly into engine storage. When texture is
// non-empty and resolves to an image, the surface gets a standard material
// with that image as albedo; otherwise it keeps the default material.
// Indices are not range-checked here; use Validate for untrusted input.
// Indices at or above 1<<31 wrap to negative engine indices.
func (in *Injector) Geometry(root engine.Node, g core.FlatGeometry, texture string) *engine.MeshInstance3D {
	vertices := make(engine.PackedVector3Array, len(g.Positions))
	copy(vertices, g.Positions)

	normals := make(engine.PackedVector3Array, len(g.Normals))
	copy(normals, g.Normals)

	uvs := make(engine.PackedVector2Array, len(g.UVs))
	copy(uvs, g.UVs)

	indices := make(engine.PackedInt32Array, len(g.Indices))
	for i, idx := range g.Indices {
		indices[i] = int32(idx)
	}

	mesh := engine.NewArrayMesh()
	surface := mesh.AddSurface(engine.PrimitiveTriangles, vertices, normals, uvs, indices)

	if texture != "" && in.Images != nil {
		if img, ok := in.Images.Load(texture); ok {
			mat := engine.NewStandardMaterial3D()
			mat.AlbedoTexture = engine.NewImageTexture(img)
			mesh.SetSurfaceMaterial(surface, mat)
		}
	}

	node := engine.NewMeshInstance3D(mesh)
	root.AddChild(node)
	return node
}

// Light attaches an omni light under root. Values are passed through as
// given; shadows are disabled.
func (in *Injector) Light(root engine.Node, position, color core.Vec3, intensity float32) *engine.OmniLight3D {
	light := engine.NewOmniLight3D()
	light.CastShadow = false
	light.Color = core.ColorFromVec(color)
	light.Position = position
	light.Energy = intensity

	root.AddChild(light)
	return light
}

// Validate checks g before injection. See core.FlatGeometry.Validate.
func Validate(g core.FlatGeometry) error {
	return g.Validate()
}
