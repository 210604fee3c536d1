package boundary

import (
	"io"
	"testing"
	"unsafe"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/enginehost/internal/core"
	"github.com/vovakirdan/enginehost/internal/engine"
	"github.com/vovakirdan/enginehost/internal/extension"
	"github.com/vovakirdan/enginehost/internal/imagebridge"
)

func setup(t *testing.T) {
	t.Helper()
	SetLogger(log.New(io.Discard))
	t.Cleanup(Reset)
}

// quadArrays returns a unit quad facing +Z as flat C-style arrays.
func quadArrays() (vertex, normal, uv []float32, index []uint32) {
	vertex = []float32{-1, -1, 0, 1, -1, 0, 1, 1, 0, -1, 1, 0}
	normal = []float32{0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1}
	uv = []float32{0, 0, 1, 0, 1, 1, 0, 1}
	index = []uint32{0, 1, 2, 0, 2, 3}
	return
}

func meshes() []*engine.MeshInstance3D {
	var out []*engine.MeshInstance3D
	root := SceneRoot()
	if root == nil {
		return nil
	}
	for _, c := range root.Children() {
		if m, ok := c.(*engine.MeshInstance3D); ok {
			out = append(out, m)
		}
	}
	return out
}

func TestLifecycle(t *testing.T) {
	setup(t)

	if !Start([]string{"prog", "--resolution", "16x8"}) {
		t.Fatal("Start() failed")
	}
	if Start([]string{"prog"}) {
		t.Error("second Start() should fail while running")
	}

	for i := 0; i < 3; i++ {
		if Step() {
			t.Fatalf("Step() %d requested quit", i)
		}
	}

	w, h := ViewportSize()
	if w != 16 || h != 8 {
		t.Errorf("ViewportSize() = %dx%d, expected 16x8", w, h)
	}

	Stop()
	Stop()

	if Running() {
		t.Error("Running() after Stop")
	}
	if !Step() {
		t.Error("Step() without an engine should report quit")
	}
	if w, h := ViewportSize(); w != 0 || h != 0 {
		t.Errorf("ViewportSize() after Stop = %dx%d", w, h)
	}
}

func TestStartHelp(t *testing.T) {
	setup(t)

	if Start([]string{"prog", "--version"}) {
		t.Error("Start() with --version should return false")
	}
	if Running() {
		t.Error("nothing should be running after a help request")
	}

	// The slot is free again
	if !Start([]string{"prog"}) {
		t.Error("Start() after a help request should succeed")
	}
}

func TestStartFailures(t *testing.T) {
	setup(t)

	if Start(nil) {
		t.Error("Start(nil) should fail")
	}
	if Start([]string{"prog", "--resolution", "nope"}) {
		t.Error("Start() with bad args should fail")
	}
	if err := SetRuntime("missing"); err == nil {
		t.Error("SetRuntime() should reject unknown backends")
	}
	if Runtime() != "soft" {
		t.Errorf("Runtime() = %q, expected soft", Runtime())
	}
}

func TestViewportDataSentinel(t *testing.T) {
	setup(t)
	Start([]string{"prog", "--resolution", "10x6"})

	if n := ViewportData(make([]byte, 10*6*3)); n != 0 {
		t.Errorf("ViewportData() before the first step = %d, expected 0", n)
	}

	Step()

	n := 10 * 6 * 3
	dst := make([]byte, n+8)
	for i := range dst {
		dst[i] = 0x5A
	}
	if got := ViewportData(dst); got != n {
		t.Fatalf("ViewportData() = %d, expected %d", got, n)
	}
	for i := n; i < len(dst); i++ {
		if dst[i] != 0x5A {
			t.Fatalf("byte %d past the frame was overwritten", i)
		}
	}

	if got := ViewportData(make([]byte, n-1)); got != 0 {
		t.Errorf("ViewportData() into a short buffer = %d, expected 0", got)
	}
}

func TestAddActorTextured(t *testing.T) {
	setup(t)

	SetImageLoadFunction(imagebridge.LoaderFunc(func(name string) (core.ImageDescriptor, bool) {
		if name != "brick" {
			return core.ImageDescriptor{}, false
		}
		data := make([]byte, 64)
		for i := range data {
			data[i] = 0x80
		}
		return core.ImageDescriptor{Format: core.ImageFormatRGBA8, Width: 4, Height: 4, Data: data}, true
	}))
	Start([]string{"prog", "--resolution", "8x8"})

	v, n, uv, idx := quadArrays()
	if !AddActor(v, n, uv, 4, idx, 6, "brick") {
		t.Fatal("AddActor() failed")
	}
	if !AddActor(v, n, uv, 4, idx, 6, "") {
		t.Fatal("AddActor() without texture failed")
	}

	ms := meshes()
	if len(ms) != 2 {
		t.Fatalf("found %d meshes, expected 2", len(ms))
	}

	textured := ms[0].Mesh.Surface(0)
	if textured.Material == nil || textured.Material.AlbedoTexture == nil {
		t.Fatal("textured actor should get an albedo texture")
	}
	img := textured.Material.AlbedoTexture.Image()
	if img.Format() != engine.FormatRGBA8 || img.Width() != 4 || img.Height() != 4 {
		t.Errorf("albedo = %s %dx%d", img.Format(), img.Width(), img.Height())
	}
	if len(textured.Vertices) != 4 || len(textured.Indices) != 6 {
		t.Errorf("surface has %d vertices and %d indices", len(textured.Vertices), len(textured.Indices))
	}

	if ms[1].Mesh.Surface(0).Material != nil {
		t.Error("untextured actor should keep the default material")
	}

	// The caller may reuse its arrays
	v[0] = 42
	if textured.Vertices[0].X != -1 {
		t.Error("AddActor() should copy vertex data")
	}
}

func TestAddActorNoLoader(t *testing.T) {
	setup(t)
	Start([]string{"prog", "--resolution", "8x8"})

	v, n, uv, idx := quadArrays()
	AddActor(v, n, uv, 4, idx, 6, "brick")

	ms := meshes()
	if len(ms) != 1 || ms[0].Mesh.Surface(0).Material != nil {
		t.Error("without a loader the default material should be kept")
	}
}

func TestAddActorShortArrays(t *testing.T) {
	setup(t)
	Start([]string{"prog", "--resolution", "8x8"})

	v, n, uv, idx := quadArrays()
	if AddActor(v[:6], n, uv, 4, idx, 6, "") {
		t.Error("AddActor() with short arrays should fail")
	}
	if len(meshes()) != 0 {
		t.Error("nothing should be attached")
	}
}

func TestAddWithoutEngine(t *testing.T) {
	setup(t)

	v, n, uv, idx := quadArrays()
	if AddActor(v, n, uv, 4, idx, 6, "") {
		t.Error("AddActor() without an engine should fail")
	}
	if AddOmniLight([3]float32{}, [3]float32{1, 1, 1}, 1) {
		t.Error("AddOmniLight() without an engine should fail")
	}
}

func TestAddOmniLight(t *testing.T) {
	setup(t)
	Start([]string{"prog", "--resolution", "8x8"})

	if !AddOmniLight([3]float32{1, 2, 3}, [3]float32{1, 0.5, 0}, 3) {
		t.Fatal("AddOmniLight() failed")
	}

	children := SceneRoot().Children()
	light, ok := children[len(children)-1].(*engine.OmniLight3D)
	if !ok {
		t.Fatal("last child should be an omni light")
	}
	if light.Position != core.V3(1, 2, 3) || light.Energy != 3 || light.CastShadow {
		t.Errorf("light = %+v", light)
	}
}

func TestBindings(t *testing.T) {
	setup(t)

	if IsSceneLoadable() || ManagedEntry() != nil {
		t.Fatal("bindings should start empty")
	}
	SceneLoad(nil) // no-op

	entry := new(int)
	var got engine.Node
	ManagedBind(unsafe.Pointer(entry), extension.SceneLoaderFunc(func(s engine.Node) { got = s }))

	if !IsSceneLoadable() || ManagedEntry() != unsafe.Pointer(entry) {
		t.Fatal("ManagedBind() should fill the slots")
	}

	// Starting runs the scene loader with the root.
	Start([]string{"prog", "--resolution", "8x8"})
	if got == nil || got != SceneRoot() {
		t.Error("scene loader should receive the scene root on start")
	}

	var inits int
	ExtensionBind(extension.InitializerFunc(func(string) error { inits++; return nil }), nil)
	if IsSceneLoadable() {
		t.Error("ExtensionBind() with a nil loader should clear the scene slot")
	}

	Stop()
	Start([]string{"prog", "--resolution", "8x8"})
	if inits != 1 {
		t.Errorf("extension initialized %d times, expected 1", inits)
	}
}

func TestSceneLoaderMayCallBack(t *testing.T) {
	setup(t)

	ManagedBind(nil, extension.SceneLoaderFunc(func(engine.Node) {
		// Runs inside Start
		AddOmniLight([3]float32{0, 3, 0}, [3]float32{1, 1, 1}, 1)
	}))

	if !Start([]string{"prog", "--resolution", "8x8"}) {
		t.Fatal("Start() failed")
	}
	if got := SceneRoot().ChildCount(); got != 1 {
		t.Errorf("ChildCount() = %d, expected the light added by the scene loader", got)
	}
}
