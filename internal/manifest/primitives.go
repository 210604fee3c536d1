package manifest

import "github.com/vovakirdan/enginehost/internal/core"

var primitives = map[string]func(size float32) core.FlatGeometry{
	"cube":  Cube,
	"plane": Plane,
	"quad":  Quad,
}

// Primitives lists the primitive names accepted in manifests.
func Primitives() []string {
	return []string{"cube", "plane", "quad"}
}

// face is one square side: outward normal n and in-plane axes u, v with
// u x v = n, so corners wind counter-clockwise seen from outside.
type face struct {
	n, u, v core.Vec3
}

var cubeFaces = []face{
	{core.V3(1, 0, 0), core.V3(0, 0, -1), core.V3(0, 1, 0)},
	{core.V3(-1, 0, 0), core.V3(0, 0, 1), core.V3(0, 1, 0)},
	{core.V3(0, 1, 0), core.V3(1, 0, 0), core.V3(0, 0, -1)},
	{core.V3(0, -1, 0), core.V3(1, 0, 0), core.V3(0, 0, 1)},
	{core.V3(0, 0, 1), core.V3(1, 0, 0), core.V3(0, 1, 0)},
	{core.V3(0, 0, -1), core.V3(-1, 0, 0), core.V3(0, 1, 0)},
}

// appendFace adds a square of edge 2h centered at center.
func appendFace(g *core.FlatGeometry, f face, center core.Vec3, h float32) {
	base := uint32(len(g.Positions))
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for _, c := range corners {
		p := center.Add(f.u.Scale(c[0] * h)).Add(f.v.Scale(c[1] * h))
		g.Positions = append(g.Positions, p)
		g.Normals = append(g.Normals, f.n)
		g.UVs = append(g.UVs, core.Vec2{X: (c[0] + 1) / 2, Y: (1 - c[1]) / 2})
	}
	g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
}

// Cube returns an axis-aligned cube centered at the origin with flat
// per-face normals (24 vertices, 12 triangles).
func Cube(size float32) core.FlatGeometry {
	h := size / 2
	var g core.FlatGeometry
	for _, f := range cubeFaces {
		appendFace(&g, f, f.n.Scale(h), h)
	}
	return g
}

// Plane returns a horizontal square on y=0 facing +Y.
func Plane(size float32) core.FlatGeometry {
	var g core.FlatGeometry
	appendFace(&g, cubeFaces[2], core.Vec3{}, size/2)
	return g
}

// Quad returns a vertical square on z=0 facing +Z.
func Quad(size float32) core.FlatGeometry {
	var g core.FlatGeometry
	appendFace(&g, cubeFaces[4], core.Vec3{}, size/2)
	return g
}
