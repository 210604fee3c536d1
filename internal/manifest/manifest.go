// Package manifest loads YAML scene descriptions and injects them into a
// running host.
package manifest

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/enginehost/internal/core"
	"github.com/vovakirdan/enginehost/internal/engine"
)

// ErrMesh is wrapped by every mesh validation failure.
var ErrMesh = errors.New("manifest: invalid mesh")

// Manifest is a scene description.
//
//	name: demo
//	meshes:
//	  - primitive: cube
//	    texture: brick
//	    translate: [0, 0.5, 0]
//	lights:
//	  - position: [2, 3, 2]
//	    color: [1, 1, 1]
//	    intensity: 1.5
type Manifest struct {
	Name   string  `yaml:"name"`
	Meshes []Mesh  `yaml:"meshes"`
	Lights []Light `yaml:"lights"`
}

// Mesh is either a primitive or inline vertex arrays, never both.
type Mesh struct {
	Name      string       `yaml:"name"`
	Primitive string       `yaml:"primitive"` // cube, plane or quad
	Size      float32      `yaml:"size"`      // primitive edge length, default 1
	Positions [][3]float32 `yaml:"positions"`
	Normals   [][3]float32 `yaml:"normals"`
	UVs       [][2]float32 `yaml:"uvs"`
	Indices   []uint32     `yaml:"indices"`
	Texture   string       `yaml:"texture"`
	Translate [3]float32   `yaml:"translate"`
	Scale     float32      `yaml:"scale"` // uniform, default 1
}

// Light is an omni light.
type Light struct {
	Position  [3]float32  `yaml:"position"`
	Color     *[3]float32 `yaml:"color"` // default white
	Intensity float32     `yaml:"intensity"`
}

// Target receives injected content. *host.Host satisfies it.
type Target interface {
	InjectGeometry(g core.FlatGeometry, texture string) (*engine.MeshInstance3D, error)
	InjectLight(position, color core.Vec3, intensity float32) (*engine.OmniLight3D, error)
}

// Result counts what Apply injected.
type Result struct {
	Meshes int
	Lights int
}

// Parse decodes a manifest document.
func Parse(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("manifest: %w", err)
	}
	return m, nil
}

// LoadFile reads and decodes the manifest at path.
func LoadFile(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return Manifest{}, fmt.Errorf("%w (%s)", err, path)
	}
	return m, nil
}

// Geometry builds the transformed, validated geometry for a mesh.
func (m Mesh) Geometry() (core.FlatGeometry, error) {
	var g core.FlatGeometry

	switch {
	case m.Primitive != "" && len(m.Positions) > 0:
		return g, fmt.Errorf("%w %q: both primitive and positions given", ErrMesh, m.Name)
	case m.Primitive != "":
		size := m.Size
		if size == 0 {
			size = 1
		}
		gen, ok := primitives[m.Primitive]
		if !ok {
			return g, fmt.Errorf("%w %q: unknown primitive %q", ErrMesh, m.Name, m.Primitive)
		}
		g = gen(size)
	default:
		g = inline(m)
	}

	scale := m.Scale
	if scale == 0 {
		scale = 1
	}
	offset := core.V3(m.Translate[0], m.Translate[1], m.Translate[2])
	for i, p := range g.Positions {
		g.Positions[i] = p.Scale(scale).Add(offset)
	}

	if err := g.Validate(); err != nil {
		return core.FlatGeometry{}, fmt.Errorf("%w %q: %v", ErrMesh, m.Name, err)
	}
	return g, nil
}

// inline copies the mesh's arrays. Missing normals and UVs are zero-filled
// to the vertex count.
func inline(m Mesh) core.FlatGeometry {
	n := len(m.Positions)
	g := core.FlatGeometry{
		Positions: make([]core.Vec3, n),
		Normals:   make([]core.Vec3, n),
		UVs:       make([]core.Vec2, n),
		Indices:   append([]uint32(nil), m.Indices...),
	}
	for i, p := range m.Positions {
		g.Positions[i] = core.V3(p[0], p[1], p[2])
	}
	if len(m.Normals) > 0 {
		g.Normals = make([]core.Vec3, len(m.Normals))
		for i, v := range m.Normals {
			g.Normals[i] = core.V3(v[0], v[1], v[2])
		}
	}
	if len(m.UVs) > 0 {
		g.UVs = make([]core.Vec2, len(m.UVs))
		for i, v := range m.UVs {
			g.UVs[i] = core.Vec2{X: v[0], Y: v[1]}
		}
	}
	return g
}

// Validate builds every mesh and checks every light without injecting.
func (m Manifest) Validate() error {
	for _, mesh := range m.Meshes {
		if _, err := mesh.Geometry(); err != nil {
			return err
		}
	}
	return m.validateLights()
}

func (m Manifest) validateLights() error {
	for i, l := range m.Lights {
		if l.Intensity < 0 {
			return fmt.Errorf("manifest: light %d: negative intensity", i)
		}
	}
	return nil
}

// Apply validates the manifest and, only if it is valid, injects every mesh
// and light into t. Injection stops at the first target error.
func Apply(t Target, m Manifest) (Result, error) {
	var res Result

	geoms := make([]core.FlatGeometry, len(m.Meshes))
	for i, mesh := range m.Meshes {
		g, err := mesh.Geometry()
		if err != nil {
			return res, err
		}
		geoms[i] = g
	}
	if err := m.validateLights(); err != nil {
		return res, err
	}

	for i, g := range geoms {
		if _, err := t.InjectGeometry(g, m.Meshes[i].Texture); err != nil {
			return res, fmt.Errorf("manifest: inject mesh %d: %w", i, err)
		}
		res.Meshes++
	}

	for i, l := range m.Lights {
		color := core.V3(1, 1, 1)
		if l.Color != nil {
			color = core.V3(l.Color[0], l.Color[1], l.Color[2])
		}
		pos := core.V3(l.Position[0], l.Position[1], l.Position[2])
		if _, err := t.InjectLight(pos, color, l.Intensity); err != nil {
			return res, fmt.Errorf("manifest: inject light %d: %w", i, err)
		}
		res.Lights++
	}

	return res, nil
}
