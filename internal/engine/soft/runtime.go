// Package soft is a headless reference engine. It keeps a minimal scene
// tree, treats a queue of synthetic events as its display server and
// rasterizes meshes with flat Lambert shading into an RGB8 viewport image.
package soft

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gogpu/gg"

	"github.com/vovakirdan/enginehost/internal/engine"
	"github.com/vovakirdan/enginehost/internal/registry"
)

// Name is the backend name in the registry.
const Name = "soft"

func init() {
	registry.Register(Name, func() engine.Runtime {
		return New(nil)
	})
}

// Runtime implements engine.Runtime.
type Runtime struct {
	log *log.Logger
	out io.Writer // help and version output

	display *Display
	ext     *ExtensionManager

	opts   Options
	setup  bool
	tree   *engine.SceneTree
	loop   *MainLoop
	canvas *gg.Context
	frame  uint64
}

// New creates an idle runtime. A nil logger discards engine logs.
func New(logger *log.Logger) *Runtime {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runtime{
		log:     logger,
		out:     os.Stdout,
		display: &Display{},
		ext:     &ExtensionManager{},
	}
}

// SetLogger replaces the engine logger. nil discards output.
func (r *Runtime) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	r.log = l
}

// SetOutput redirects help and version output.
func (r *Runtime) SetOutput(w io.Writer) {
	r.out = w
}

// Name returns the backend name.
func (r *Runtime) Name() string {
	return Name
}

// Description is shown by the backend listing.
func (r *Runtime) Description() string {
	return "headless software rasterizer"
}

// NewPlatform creates the platform shim and connects the display to it.
func (r *Runtime) NewPlatform() engine.Platform {
	r.display.mu.Lock()
	r.display.handler = r.handleEvent
	r.display.mu.Unlock()
	return &Platform{rt: r}
}

// Setup parses engine arguments.
func (r *Runtime) Setup(execPath string, args []string) error {
	opts, err := ParseArgs(execPath, args, r.out)
	if err != nil {
		return err
	}
	r.opts = opts
	r.setup = true

	if opts.Verbose {
		r.log.SetLevel(log.DebugLevel)
	}
	r.log.Debug("soft engine configured", "width", opts.Width, "height", opts.Height, "fps", opts.FixedFPS)
	return nil
}

// Start builds the scene tree and main loop.
func (r *Runtime) Start() bool {
	if !r.setup {
		r.log.Error("soft engine started before setup")
		return false
	}
	r.tree = engine.NewSceneTree(r.opts.Width, r.opts.Height)
	r.loop = &MainLoop{}
	r.canvas = gg.NewContext(r.opts.Width, r.opts.Height)
	r.frame = 0
	return true
}

// Iteration renders one frame. It returns true once a close request has been
// processed or the configured frame limit is reached.
func (r *Runtime) Iteration() bool {
	if r.loop == nil || r.tree == nil {
		return true
	}

	r.frame++
	r.render()

	if r.loop.quit {
		return true
	}
	return r.opts.QuitAfter > 0 && r.frame >= uint64(r.opts.QuitAfter)
}

// Cleanup drops everything created by Setup and Start.
func (r *Runtime) Cleanup() {
	if r.canvas != nil {
		_ = r.canvas.Close()
	}
	r.canvas = nil
	r.tree = nil
	r.loop = nil
	r.setup = false
	r.frame = 0
	r.display.reset()
	r.ext.reset()
}

// SceneTree returns the active tree, or nil.
func (r *Runtime) SceneTree() *engine.SceneTree {
	return r.tree
}

// Extensions returns the extension manager.
func (r *Runtime) Extensions() engine.ExtensionManager {
	return r.ext
}

// LoadedExtensions returns the paths of loaded extensions.
func (r *Runtime) LoadedExtensions() []string {
	return r.ext.Loaded()
}

// Display returns the headless display server.
func (r *Runtime) Display() *Display {
	return r.display
}

// MainLoop returns the active main loop, or nil.
func (r *Runtime) MainLoop() *MainLoop {
	return r.loop
}

// Options returns the parsed settings.
func (r *Runtime) Options() Options {
	return r.opts
}

// FrameCount returns the number of iterations since Start.
func (r *Runtime) FrameCount() uint64 {
	return r.frame
}

// Elapsed returns simulated time at the fixed frame rate.
func (r *Runtime) Elapsed() time.Duration {
	if r.opts.FixedFPS <= 0 {
		return 0
	}
	return time.Duration(r.frame) * time.Second / time.Duration(r.opts.FixedFPS)
}

func (r *Runtime) handleEvent(ev Event) {
	switch ev.Kind {
	case EventClose:
		if r.loop != nil {
			r.loop.quit = true
		}
		r.log.Debug("close requested", "frame", r.frame)
	case EventResize:
		if ev.Width <= 0 || ev.Height <= 0 || r.tree == nil {
			return
		}
		r.opts.Width, r.opts.Height = ev.Width, ev.Height
		r.tree.Root().Viewport().SetSize(ev.Width, ev.Height)
		if r.canvas != nil {
			_ = r.canvas.Close()
		}
		r.canvas = gg.NewContext(ev.Width, ev.Height)
	}
}
