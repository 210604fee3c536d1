// Package boundary is the plain-data facade over a single process-wide
// engine host. Its functions mirror the exported C interface one to one:
// they never return Go errors. Failures are logged and reported as false or
// zero values.
//
// The mutex guards the process-wide slots only. Host calls run outside it so
// callbacks fired during Start or AddActor may call back into this package.
package boundary

import (
	"fmt"
	"io"
	"os"
	"sync"
	"unsafe"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/enginehost/internal/core"
	"github.com/vovakirdan/enginehost/internal/engine"
	"github.com/vovakirdan/enginehost/internal/engine/soft"
	"github.com/vovakirdan/enginehost/internal/extension"
	"github.com/vovakirdan/enginehost/internal/host"
	"github.com/vovakirdan/enginehost/internal/imagebridge"
	"github.com/vovakirdan/enginehost/internal/registry"
)

var (
	mu      sync.Mutex
	backend = soft.Name
	logger  = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "enginehost",
	})
	images   = imagebridge.New(logger)
	bindings = extension.NewRegistry()
	current  *host.Host
)

func active() (*host.Host, *log.Logger) {
	mu.Lock()
	defer mu.Unlock()
	return current, logger
}

// Logger returns the boundary logger.
func Logger() *log.Logger {
	_, l := active()
	return l
}

// SetLogger replaces the boundary logger. nil discards output.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	mu.Lock()
	defer mu.Unlock()

	logger = l
	images.SetLogger(l)
}

// SetRuntime selects the engine backend used by the next Start.
func SetRuntime(name string) error {
	if !registry.Exists(name) {
		return fmt.Errorf("boundary: unknown backend %q", name)
	}
	mu.Lock()
	defer mu.Unlock()

	backend = name
	return nil
}

// Runtime returns the selected backend name.
func Runtime() string {
	mu.Lock()
	defer mu.Unlock()
	return backend
}

// Start creates the process-wide host and starts the engine with argv
// (argv[0] is the program name). It returns false on failure, on a
// help/version request, and when an engine is already running.
func Start(argv []string) bool {
	mu.Lock()
	if current != nil {
		mu.Unlock()
		logger.Error("start called while an engine is running")
		return false
	}
	lg := logger

	rt, err := registry.CreateWithLogger(backend, lg)
	if err != nil {
		mu.Unlock()
		lg.Error("engine backend unavailable", "backend", backend, "err", err)
		return false
	}

	h, err := host.New(host.Config{
		Runtime:    rt,
		Extensions: bindings,
		Images:     images,
		Logger:     lg,
	})
	if err != nil {
		mu.Unlock()
		lg.Error("host unavailable", "err", err)
		return false
	}
	current = h
	mu.Unlock()

	res := h.Start(argv)
	if res.OK() {
		return true
	}

	if res.Status == host.Failed {
		lg.Error("engine failed to start", "err", res.Err)
	}
	release(h)
	return false
}

func release(h *host.Host) {
	_ = h.Close()

	mu.Lock()
	if current == h {
		current = nil
	}
	mu.Unlock()
}

// Stop finalizes and releases the engine. Safe to call at any time.
func Stop() {
	if h, _ := active(); h != nil {
		release(h)
	}
}

// Running reports whether an engine is running.
func Running() bool {
	h, _ := active()
	return h != nil && h.State() == host.Running
}

// Step runs one frame and returns true when the engine wants to quit.
// Without a running engine it also returns true.
func Step() bool {
	h, lg := active()
	if h == nil {
		lg.Warn("step called without a running engine")
		return true
	}
	quit, err := h.Step()
	if err != nil {
		lg.Error("step failed", "err", err)
		return true
	}
	return quit
}

// ViewportSize returns the size of the last rendered frame, or 0, 0.
func ViewportSize() (width, height int32) {
	h, lg := active()
	if h == nil {
		return 0, 0
	}
	w, hh, err := h.ViewportSize()
	if err != nil {
		lg.Debug("viewport size unavailable", "err", err)
		return 0, 0
	}
	return int32(w), int32(hh)
}

// ViewportData copies the last rendered frame into dst as RGB8 and returns the
// number of bytes written.
func ViewportData(dst []byte) int {
	h, lg := active()
	if h == nil {
		lg.Error("viewport data requested without a running engine")
		return 0
	}
	n, err := h.ViewportData(dst)
	if err != nil {
		lg.Error("viewport copy failed", "err", err)
		return 0
	}
	return n
}

// AddActor injects a textured triangle mesh from flat arrays: 3 floats per
// vertex position and normal, 2 per UV. Index values are not range-checked.
func AddActor(vertex, normal, uv []float32, vertexCount uint32, index []uint32, indexCount uint32, texture string) bool {
	h, lg := active()
	if h == nil {
		lg.Error("add actor without a running engine")
		return false
	}

	g, err := core.FlatGeometryFromArrays(vertex, normal, uv, vertexCount, index, indexCount)
	if err != nil {
		lg.Error("add actor rejected", "err", err)
		return false
	}
	if _, err := h.InjectGeometry(g, texture); err != nil {
		lg.Error("add actor failed", "err", err)
		return false
	}
	return true
}

// AddOmniLight injects a point light.
func AddOmniLight(position, color [3]float32, intensity float32) bool {
	h, lg := active()
	if h == nil {
		lg.Error("add light without a running engine")
		return false
	}
	if _, err := h.InjectLight(core.Vec3From(position), core.Vec3From(color), intensity); err != nil {
		lg.Error("add light failed", "err", err)
		return false
	}
	return true
}

// SetImageLoadFunction installs the image loader used to resolve textures.
// It survives engine restarts.
func SetImageLoadFunction(l imagebridge.Loader) {
	mu.Lock()
	defer mu.Unlock()
	images.SetLoader(l)
}

// ManagedBind records the managed runtime entry and its scene loader.
func ManagedBind(entry unsafe.Pointer, loader extension.SceneLoader) {
	bindings.BindManaged(entry, loader)
}

// ExtensionBind records a native extension initializer and its scene loader.
func ExtensionBind(init extension.Initializer, loader extension.SceneLoader) {
	bindings.BindExtension(init, loader)
}

// SceneLoad forwards scene to the bound scene loader, if any.
func SceneLoad(scene engine.Node) {
	bindings.LoadScene(scene)
}

// IsSceneLoadable reports whether a scene loader is bound.
func IsSceneLoadable() bool {
	return bindings.SceneLoadable()
}

// ManagedEntry returns the bound managed entry, or nil.
func ManagedEntry() unsafe.Pointer {
	return bindings.ManagedEntry()
}

// SceneRoot returns the running engine's scene root, or nil.
func SceneRoot() engine.Node {
	h, _ := active()
	if h == nil {
		return nil
	}
	if root := h.SceneRoot(); root != nil {
		return root
	}
	return nil
}

// Reset stops the engine and clears every binding, the image loader and the
// backend selection.
func Reset() {
	Stop()
	bindings.Reset()

	mu.Lock()
	defer mu.Unlock()
	images.SetLoader(nil)
	backend = soft.Name
}
