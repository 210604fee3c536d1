// Package host drives an embedded engine through its lifecycle: start from
// arguments, step one frame at a time, stop. It is the only place that
// touches engine lifecycle calls; injection and capture go through it so they
// are rejected outside a running engine.
package host

import (
	"errors"
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/enginehost/internal/capture"
	"github.com/vovakirdan/enginehost/internal/core"
	"github.com/vovakirdan/enginehost/internal/engine"
	"github.com/vovakirdan/enginehost/internal/extension"
	"github.com/vovakirdan/enginehost/internal/imagebridge"
	"github.com/vovakirdan/enginehost/internal/inject"
)

var (
	// ErrHostExists is returned by New while another host is open.
	ErrHostExists = errors.New("host: another host is active in this process")
	// ErrNoRuntime is returned by New without an engine runtime.
	ErrNoRuntime = errors.New("host: no engine runtime configured")
	// ErrClosed is returned by any call on a closed host.
	ErrClosed = errors.New("host: closed")
	// ErrNotRunning is returned by Step, injection and capture outside Running.
	ErrNotRunning = errors.New("host: engine not running")
	// ErrAlreadyRunning is returned by Start on a running host.
	ErrAlreadyRunning = errors.New("host: engine already running")
	// ErrNoArgs is returned by Start with an empty argument list.
	ErrNoArgs = errors.New("host: empty argument list")
	// ErrStartFailed is reported when the engine refuses to start.
	ErrStartFailed = errors.New("host: engine start failed")
	// ErrNoMainLoop is returned when the engine starts without a main loop.
	ErrNoMainLoop = errors.New("host: engine has no main loop")
)

// Only one engine may be embedded per process.
var (
	activeMu sync.Mutex
	active   *Host
)

// State is the lifecycle state.
type State int

const (
	Uninitialized State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Running:
		return "running"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Status is the outcome kind of Start.
type Status int

const (
	Started       Status = iota // engine running
	ExitRequested               // help/version handled, nothing running
	Failed                      // see StartResult.Err
)

func (s Status) String() string {
	switch s {
	case Started:
		return "started"
	case ExitRequested:
		return "exit-requested"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// StartResult is the outcome of Start.
type StartResult struct {
	Status Status
	Err    error // set when Status is Failed
}

// OK reports whether the engine is now running.
func (r StartResult) OK() bool {
	return r.Status == Started
}

func started() StartResult         { return StartResult{Status: Started} }
func exitRequested() StartResult   { return StartResult{Status: ExitRequested} }
func failed(err error) StartResult { return StartResult{Status: Failed, Err: err} }

// Config wires a host to its collaborators.
type Config struct {
	// Runtime is the engine backend. Required.
	Runtime engine.Runtime

	// Extensions holds integration hooks. Nil means an empty registry.
	Extensions *extension.Registry

	// Images resolves texture names. Nil means a bridge with no loader.
	Images *imagebridge.Bridge

	// Logger receives lifecycle transitions. Nil discards them.
	Logger *log.Logger
}

// Host owns one embedded engine.
type Host struct {
	rt       engine.Runtime
	ext      *extension.Registry
	images   *imagebridge.Bridge
	injector *inject.Injector
	log      *log.Logger

	platform engine.Platform
	state    State
	frames   uint64
	closed   bool
}

// New claims the process-wide host slot. Close releases it.
func New(cfg Config) (*Host, error) {
	if cfg.Runtime == nil {
		return nil, ErrNoRuntime
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ext := cfg.Extensions
	if ext == nil {
		ext = extension.NewRegistry()
	}
	images := cfg.Images
	if images == nil {
		images = imagebridge.New(logger)
	}

	activeMu.Lock()
	defer activeMu.Unlock()
	if active != nil {
		return nil, ErrHostExists
	}

	h := &Host{
		rt:       cfg.Runtime,
		ext:      ext,
		images:   images,
		injector: inject.New(images),
		log:      logger,
	}
	active = h
	return h, nil
}

// Close stops the engine if running and releases the process-wide slot.
func (h *Host) Close() error {
	if h.closed {
		return nil
	}
	h.Stop()
	h.closed = true

	activeMu.Lock()
	if active == h {
		active = nil
	}
	activeMu.Unlock()
	return nil
}

// Start builds and starts the engine. args[0] is the program name and is not
// passed to the engine. On any failure the partially built engine is torn
// down and the host stays Uninitialized.
func (h *Host) Start(args []string) StartResult {
	if h.closed {
		return failed(ErrClosed)
	}
	if h.state == Running {
		return failed(ErrAlreadyRunning)
	}
	if len(args) == 0 {
		return failed(ErrNoArgs)
	}

	h.platform = h.rt.NewPlatform()

	if err := h.rt.Setup(args[0], args[1:]); err != nil {
		h.teardown()
		if errors.Is(err, engine.ErrHelp) {
			h.log.Info("engine exit requested during setup")
			return exitRequested()
		}
		h.log.Error("engine setup failed", "err", err)
		return failed(fmt.Errorf("host: setup: %w", err))
	}

	if !h.rt.Start() {
		h.teardown()
		h.log.Error("engine start failed", "backend", h.rt.Name())
		return failed(ErrStartFailed)
	}

	ml := h.platform.MainLoop()
	if ml == nil {
		h.teardown()
		h.log.Error("engine started without a main loop", "backend", h.rt.Name())
		return failed(ErrNoMainLoop)
	}
	ml.Initialize()

	h.state = Running
	h.frames = 0
	h.log.Info("engine started", "backend", h.rt.Name(), "args", args[1:])

	h.ext.InitResource(h.rt.Extensions(), h.log)
	if root := h.SceneRoot(); root != nil {
		h.ext.LoadScene(root)
	}
	return started()
}

// Step pumps display events and runs exactly one engine iteration.
// It returns true when the engine asked to quit.
func (h *Host) Step() (bool, error) {
	if h.state != Running {
		return false, ErrNotRunning
	}

	if ds := h.platform.DisplayServer(); ds != nil {
		ds.ProcessEvents()
	}
	quit := h.rt.Iteration()
	h.frames++

	if quit {
		h.log.Debug("engine requested quit", "frame", h.frames)
	}
	return quit, nil
}

// Stop finalizes and releases the engine. Calling it when not running does
// nothing.
func (h *Host) Stop() {
	if h.state != Running {
		return
	}
	h.teardown()
	h.log.Info("engine stopped", "frames", h.frames)
}

// teardown finalizes the main loop if one exists, then always cleans up.
func (h *Host) teardown() {
	if h.platform != nil {
		if ml := h.platform.MainLoop(); ml != nil {
			ml.Finalize()
		}
	}
	h.rt.Cleanup()
	h.platform = nil
	h.state = Uninitialized
}

// State returns the lifecycle state.
func (h *Host) State() State {
	return h.state
}

// Frames returns the number of steps since the last successful start.
func (h *Host) Frames() uint64 {
	return h.frames
}

// Runtime returns the engine backend.
func (h *Host) Runtime() engine.Runtime {
	return h.rt
}

// Images returns the image bridge used for texture resolution.
func (h *Host) Images() *imagebridge.Bridge {
	return h.images
}

// Extensions returns the binding registry.
func (h *Host) Extensions() *extension.Registry {
	return h.ext
}

// SceneRoot returns the root window, or nil when not running.
func (h *Host) SceneRoot() *engine.Window {
	if h.state != Running {
		return nil
	}
	tree := h.rt.SceneTree()
	if tree == nil {
		return nil
	}
	return tree.Root()
}

func (h *Host) root() (*engine.Window, error) {
	root := h.SceneRoot()
	if root == nil {
		return nil, ErrNotRunning
	}
	return root, nil
}

// InjectGeometry copies g into a mesh under the scene root.
func (h *Host) InjectGeometry(g core.FlatGeometry, texture string) (*engine.MeshInstance3D, error) {
	root, err := h.root()
	if err != nil {
		return nil, err
	}
	return h.injector.Geometry(root, g, texture), nil
}

// InjectLight adds an omni light under the scene root.
func (h *Host) InjectLight(position, color core.Vec3, intensity float32) (*engine.OmniLight3D, error) {
	root, err := h.root()
	if err != nil {
		return nil, err
	}
	return h.injector.Light(root, position, color, intensity), nil
}

// ViewportSize returns the size of the last rendered frame.
func (h *Host) ViewportSize() (int, int, error) {
	root, err := h.root()
	if err != nil {
		return 0, 0, err
	}
	return capture.ViewportSize(root)
}

// ViewportData copies the last rendered frame into dst.
func (h *Host) ViewportData(dst []byte) (int, error) {
	root, err := h.root()
	if err != nil {
		return 0, err
	}
	return capture.ViewportData(root, dst)
}

// Frame returns a copy of the last rendered frame.
func (h *Host) Frame() (*core.Frame, error) {
	root, err := h.root()
	if err != nil {
		return nil, err
	}
	return capture.Frame(root)
}

// Snapshot returns the last rendered frame as an RGBA image.
func (h *Host) Snapshot() (*image.RGBA, error) {
	root, err := h.root()
	if err != nil {
		return nil, err
	}
	return capture.Snapshot(root)
}
