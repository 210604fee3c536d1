package soft

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vovakirdan/enginehost/internal/engine"
)

var errNotInitialized = errors.New("soft: extension not initialized")

// ExtensionManager keeps track of loaded native extensions.
type ExtensionManager struct {
	loaded []string
}

// NewExtension creates an uninitialized extension object.
func (m *ExtensionManager) NewExtension() engine.Extension {
	return &extension{mgr: m}
}

// Loaded returns the paths of loaded extensions in load order.
func (m *ExtensionManager) Loaded() []string {
	return slices.Clone(m.loaded)
}

func (m *ExtensionManager) reset() {
	m.loaded = nil
}

type extension struct {
	mgr         *ExtensionManager
	name        string
	path        string
	initialized bool
}

func (e *extension) Initialize(init func(name string) error, name string) error {
	if init == nil {
		return fmt.Errorf("soft: extension %q has no entry point", name)
	}
	if err := init(name); err != nil {
		return fmt.Errorf("soft: extension %q: %w", name, err)
	}
	e.name = name
	e.initialized = true
	return nil
}

func (e *extension) SetPath(path string) {
	e.path = path
}

func (e *extension) Load(path string) error {
	if !e.initialized {
		return errNotInitialized
	}
	if slices.Contains(e.mgr.loaded, path) {
		return fmt.Errorf("soft: extension already loaded at %s", path)
	}
	e.mgr.loaded = append(e.mgr.loaded, path)
	return nil
}
