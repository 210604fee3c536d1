// Package registry provides a global registry for engine backends.
// Backends register themselves in init() functions, allowing the host
// and CLI to select an engine by name without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/enginehost/internal/engine"
)

// LogReceiver is implemented by backends that accept the host's logger.
type LogReceiver interface {
	SetLogger(l *log.Logger)
}

// Describer is implemented by backends that provide a human-readable summary.
type Describer interface {
	Description() string
}

// BackendInfo contains metadata about a registered backend.
type BackendInfo struct {
	Name        string
	Description string
}

// Factory is a function that creates a new engine runtime.
type Factory func() engine.Runtime

var (
	factories    = make(map[string]Factory)
	descriptions = make(map[string]string)
	mu           sync.RWMutex
)

// Register adds a backend factory to the registry.
// Typically called from a backend's init() function.
// Panics if a backend with the same name is already registered.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("registry: backend %q already registered", name))
	}

	factories[name] = f

	// Get description by creating a temporary instance
	if d, ok := f().(Describer); ok {
		descriptions[name] = d.Description()
	}
}

// List returns information about all registered backends, sorted by name.
func List() []BackendInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]BackendInfo, 0, len(factories))
	for name := range factories {
		result = append(result, BackendInfo{
			Name:        name,
			Description: descriptions[name],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Create instantiates a new runtime by backend name.
// Returns an error if the name is not registered.
func Create(name string) (engine.Runtime, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("registry: unknown backend %q", name)
	}

	return f(), nil
}

// CreateWithLogger is Create followed by handing logger to the runtime when
// it is a LogReceiver.
func CreateWithLogger(name string, logger *log.Logger) (engine.Runtime, error) {
	rt, err := Create(name)
	if err != nil {
		return nil, err
	}
	if lr, ok := rt.(LogReceiver); ok && logger != nil {
		lr.SetLogger(logger)
	}
	return rt, nil
}

// Exists checks if a backend with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}
