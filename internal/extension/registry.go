// Package extension holds the host's optional integration hooks: a managed
// runtime entry point, a scene-load callback and a native extension
// initializer. Each slot holds one value; binding again replaces it.
package extension

import (
	"sync"
	"unsafe"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/enginehost/internal/engine"
)

const (
	// Name is the name the host's native extension is initialized under.
	Name = "EngineHost"

	// Path is the virtual resource path the extension is loaded from.
	Path = "res://EngineHostExtension"
)

// SceneLoader is called with the scene root once the engine is running.
type SceneLoader interface {
	LoadScene(scene engine.Node)
}

// SceneLoaderFunc adapts a function to SceneLoader.
type SceneLoaderFunc func(scene engine.Node)

// LoadScene calls f.
func (f SceneLoaderFunc) LoadScene(scene engine.Node) {
	f(scene)
}

// Initializer is a native extension entry point.
type Initializer interface {
	Initialize(name string) error
}

// InitializerFunc adapts a function to Initializer.
type InitializerFunc func(name string) error

// Initialize calls f.
func (f InitializerFunc) Initialize(name string) error {
	return f(name)
}

// Registry holds the binding slots.
type Registry struct {
	mu      sync.RWMutex
	managed unsafe.Pointer
	loader  SceneLoader
	init    Initializer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// BindManaged records the managed runtime entry point and scene loader.
// entry is opaque to the host and only handed back through ManagedEntry.
func (r *Registry) BindManaged(entry unsafe.Pointer, loader SceneLoader) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.managed = entry
	r.loader = loader
}

// BindExtension records the native extension initializer and scene loader.
func (r *Registry) BindExtension(init Initializer, loader SceneLoader) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.init = init
	r.loader = loader
}

// ManagedEntry returns the bound managed entry point, or nil.
func (r *Registry) ManagedEntry() unsafe.Pointer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.managed
}

// SceneLoadable reports whether a scene loader is bound.
func (r *Registry) SceneLoadable() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.loader != nil
}

// LoadScene invokes the bound scene loader. It is a no-op when none is bound.
func (r *Registry) LoadScene(scene engine.Node) {
	r.mu.RLock()
	loader := r.loader
	r.mu.RUnlock()

	if loader != nil {
		loader.LoadScene(scene)
	}
}

// HasInitializer reports whether an extension initializer is bound.
func (r *Registry) HasInitializer() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.init != nil
}

// Reset clears every slot.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.managed = nil
	r.loader = nil
	r.init = nil
}

// InitResource registers the bound initializer with the engine as the
// extension Name at Path. Without an initializer it does nothing. Failures
// are reported on logger at error level and otherwise ignored.
func (r *Registry) InitResource(mgr engine.ExtensionManager, logger *log.Logger) {
	r.mu.RLock()
	init := r.init
	r.mu.RUnlock()

	if init == nil || mgr == nil {
		return
	}

	ext := mgr.NewExtension()
	if err := ext.Initialize(init.Initialize, Name); err != nil {
		if logger != nil {
			logger.Error("extension init failed", "name", Name, "err", err)
		}
		return
	}

	ext.SetPath(Path)
	if err := ext.Load(Path); err != nil && logger != nil {
		logger.Error("extension load failed", "path", Path, "err", err)
	}
}
