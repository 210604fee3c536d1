// Package engine defines the narrow surface the host needs from an embedded
// simulation/rendering engine, plus the engine-native resource types that
// injected content is converted into.
//
// The engine itself is an external collaborator: a backend implements Runtime
// and is selected through the backend registry.
package engine

import "errors"

// ErrHelp is returned by Runtime.Setup when the arguments asked for help or
// version output. The host treats it as a clean exit request, not a failure.
var ErrHelp = errors.New("engine: help requested")

// Runtime is the engine's process-level lifecycle: setup from arguments, start,
// run one iteration at a time, clean up.
type Runtime interface {
	// Name identifies the backend (e.g. "soft").
	Name() string

	// NewPlatform constructs the platform shim (OS layer) the engine runs on.
	// Called once per start, before Setup.
	NewPlatform() Platform

	// Setup parses engine arguments. execPath is the program name, args the rest.
	// Returns ErrHelp when the arguments requested help/version output.
	Setup(execPath string, args []string) error

	// Start creates the scene tree and main loop. Returns false on failure.
	Start() bool

	// Iteration advances the engine by exactly one frame.
	// Returns true when the engine wants to quit.
	Iteration() bool

	// Cleanup releases everything Setup and Start created. Safe to call after
	// a partial start.
	Cleanup()

	// SceneTree returns the active scene tree, or nil before Start.
	SceneTree() *SceneTree

	// Extensions returns the engine's extension manager.
	Extensions() ExtensionManager
}

// Platform is the OS-level shim the engine runs on.
type Platform interface {
	// MainLoop returns the main loop created by Runtime.Start, or nil.
	MainLoop() MainLoop

	// DisplayServer returns the window/event source.
	DisplayServer() DisplayServer
}

// MainLoop receives lifecycle notifications.
type MainLoop interface {
	Initialize()
	Finalize()
}

// DisplayServer pumps window-system events into the engine.
type DisplayServer interface {
	ProcessEvents()
}

// ExtensionManager creates native extension objects.
type ExtensionManager interface {
	NewExtension() Extension
}

// Extension is a native extension object: initialized from an entry function,
// then bound to a resource path and loaded.
type Extension interface {
	// Initialize runs init under the given extension name.
	Initialize(init func(name string) error, name string) error

	// SetPath records the virtual resource path of the extension.
	SetPath(path string)

	// Load registers the extension under path.
	Load(path string) error
}
