package soft

import (
	"image"
	"math"
	"sort"

	"github.com/gogpu/gg"

	"github.com/vovakirdan/enginehost/internal/core"
	"github.com/vovakirdan/enginehost/internal/engine"
)

// Fixed camera and shading constants.
var (
	cameraEye    = core.V3(0, 1, 4)
	cameraTarget = core.V3(0, 0, 0)
	cameraUp     = core.V3(0, 1, 0)
)

const (
	fieldOfView = 60 * math.Pi / 180
	nearPlane   = 0.05
	ambient     = 0.2
	attenuation = 0.05
)

type camera struct {
	eye            core.Vec3
	right, up, fwd core.Vec3
	focal          float32
	cx, cy         float32
}

func newCamera(width, height int) camera {
	fwd := cameraTarget.Sub(cameraEye).Normalize()
	right := fwd.Cross(cameraUp).Normalize()
	return camera{
		eye:   cameraEye,
		right: right,
		up:    right.Cross(fwd),
		fwd:   fwd,
		focal: float32(float64(height) / 2 / math.Tan(fieldOfView/2)),
		cx:    float32(width) / 2,
		cy:    float32(height) / 2,
	}
}

// project returns screen coordinates and view depth. ok is false for points
// at or behind the near plane.
func (c camera) project(p core.Vec3) (x, y, depth float32, ok bool) {
	d := p.Sub(c.eye)
	z := d.Dot(c.fwd)
	if z <= nearPlane {
		return 0, 0, z, false
	}
	return c.cx + d.Dot(c.right)/z*c.focal, c.cy - d.Dot(c.up)/z*c.focal, z, true
}

type light struct {
	pos    core.Vec3
	color  core.Color
	energy float32
}

type triangle struct {
	pts   [3][2]float32
	depth float32
	color core.Color
}

// collect walks the tree and returns shaded, projected triangles.
func collect(root engine.Node, cam camera) []triangle {
	var lights []light
	var meshes []*engine.MeshInstance3D

	engine.Walk(root, func(n engine.Node) {
		switch v := n.(type) {
		case *engine.OmniLight3D:
			lights = append(lights, light{pos: v.Position, color: v.Color, energy: v.Energy})
		case *engine.MeshInstance3D:
			if v.Mesh != nil {
				meshes = append(meshes, v)
			}
		}
	})

	var tris []triangle
	for _, m := range meshes {
		for i := 0; i < m.Mesh.SurfaceCount(); i++ {
			tris = appendSurface(tris, m.Mesh.Surface(i), lights, cam)
		}
	}
	return tris
}

func appendSurface(tris []triangle, s *engine.Surface, lights []light, cam camera) []triangle {
	if s.Primitive != engine.PrimitiveTriangles {
		return tris
	}
	albedo := surfaceAlbedo(s.Material)
	n := int32(len(s.Vertices))

	for i := 0; i+2 < len(s.Indices); i += 3 {
		a, b, c := s.Indices[i], s.Indices[i+1], s.Indices[i+2]
		// Injection does not range-check indices; skip what cannot be drawn.
		if a < 0 || b < 0 || c < 0 || a >= n || b >= n || c >= n {
			continue
		}

		var t triangle
		visible := true
		verts := [3]core.Vec3{s.Vertices[a], s.Vertices[b], s.Vertices[c]}
		for k, v := range verts {
			x, y, z, ok := cam.project(v)
			if !ok {
				visible = false
				break
			}
			t.pts[k] = [2]float32{x, y}
			t.depth += z / 3
		}
		if !visible {
			continue
		}

		normal := faceNormal(s, verts, a, b, c)
		centroid := verts[0].Add(verts[1]).Add(verts[2]).Scale(1.0 / 3)
		t.color = albedo.Mul(shade(centroid, normal, lights))
		tris = append(tris, t)
	}
	return tris
}

func faceNormal(s *engine.Surface, verts [3]core.Vec3, a, b, c int32) core.Vec3 {
	if nn := int32(len(s.Normals)); a < nn && b < nn && c < nn {
		avg := s.Normals[a].Add(s.Normals[b]).Add(s.Normals[c])
		if avg.Length() > 0 {
			return avg.Normalize()
		}
	}
	return verts[1].Sub(verts[0]).Cross(verts[2].Sub(verts[0])).Normalize()
}

func surfaceAlbedo(mat *engine.StandardMaterial3D) core.Color {
	if mat == nil {
		return core.ColorWhite
	}
	albedo := mat.AlbedoColor
	if mat.AlbedoTexture != nil && mat.AlbedoTexture.Image() != nil {
		if avg, ok := mat.AlbedoTexture.Image().AverageColor(); ok {
			albedo = albedo.Mul(avg)
		}
	}
	return albedo
}

// shade returns two-sided Lambert lighting at p.
func shade(p, normal core.Vec3, lights []light) core.Color {
	total := core.Color{R: ambient, G: ambient, B: ambient}
	for _, l := range lights {
		d := l.pos.Sub(p)
		dist := d.Length()
		if dist == 0 {
			continue
		}
		lambert := float32(math.Abs(float64(normal.Dot(d.Scale(1 / dist)))))
		falloff := l.energy / (1 + attenuation*dist*dist)
		total = total.Add(l.color.Scale(lambert * falloff))
	}
	return total
}

// render draws the scene into the canvas and publishes it as the viewport image.
func (r *Runtime) render() {
	root := r.tree.Root()
	w, h := root.Viewport().Size()
	if r.canvas == nil || r.canvas.Width() != w || r.canvas.Height() != h {
		if r.canvas != nil {
			_ = r.canvas.Close()
		}
		r.canvas = gg.NewContext(w, h)
	}

	dc := r.canvas
	bg := r.opts.Clear
	dc.ClearWithColor(gg.RGB(float64(bg.R), float64(bg.G), float64(bg.B)))

	tris := collect(root, newCamera(w, h))
	// Painter's order: farthest first.
	sort.SliceStable(tris, func(i, j int) bool {
		return tris[i].depth > tris[j].depth
	})

	for _, t := range tris {
		cr, cg, cb := t.color.RGB8()
		dc.SetRGB(float64(cr)/255, float64(cg)/255, float64(cb)/255)
		dc.MoveTo(float64(t.pts[0][0]), float64(t.pts[0][1]))
		dc.LineTo(float64(t.pts[1][0]), float64(t.pts[1][1]))
		dc.LineTo(float64(t.pts[2][0]), float64(t.pts[2][1]))
		dc.ClosePath()
		if err := dc.Fill(); err != nil {
			r.log.Debug("triangle fill failed", "err", err)
		}
	}

	img, err := engine.NewImage(w, h, false, engine.FormatRGB8, toRGB8(dc.Image()))
	if err != nil {
		r.log.Error("viewport image rejected", "err", err)
		return
	}
	root.Viewport().Texture().SetImage(img)
}

// toRGB8 drops alpha from a rendered image.
func toRGB8(src image.Image) []byte {
	b := src.Bounds()
	out := make([]byte, 0, b.Dx()*b.Dy()*core.BytesPerPixelRGB8)

	if rgba, ok := src.(*image.RGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+b.Dx()*4]
			for x := 0; x < len(row); x += 4 {
				out = append(out, row[x], row[x+1], row[x+2])
			}
		}
		return out
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			cr, cg, cb, _ := src.At(x, y).RGBA()
			out = append(out, byte(cr>>8), byte(cg>>8), byte(cb>>8))
		}
	}
	return out
}
