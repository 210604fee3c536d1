// Package wasmext runs an extension's initialization entry point from a
// WebAssembly module instead of a native shared library.
//
// The entry point is an exported function returning i32, non-zero on
// success. It either takes no parameters, or takes (ptr, len i32) and
// receives the extension name written into linear memory through the
// module's cabi_realloc export.
package wasmext

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

// DefaultExport is the entry point looked up when none is given.
const DefaultExport = "enginehost_init"

var (
	// ErrNoExport is returned when the module lacks the entry point.
	ErrNoExport = errors.New("wasmext: entry point not exported")
	// ErrSignature is returned when the entry point has an unsupported type.
	ErrSignature = errors.New("wasmext: unsupported entry point signature")
	// ErrInitFailed is returned when the entry point reports failure.
	ErrInitFailed = errors.New("wasmext: initialization failed")
	// ErrClosed is returned by Initialize after Close.
	ErrClosed = errors.New("wasmext: closed")
)

// Initializer instantiates one module and calls its entry point on demand.
// It satisfies extension.Initializer.
type Initializer struct {
	mu      sync.Mutex
	ctx     context.Context
	runtime wazero.Runtime
	mod     api.Module
	entry   api.Function
	alloc   api.Function // nil for the no-argument form
	log     *log.Logger
	closed  bool
}

// New compiles and instantiates wasm, resolving export (DefaultExport when
// empty). ctx is kept for later entry point calls.
func New(ctx context.Context, wasm []byte, export string, logger *log.Logger) (*Initializer, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if export == "" {
		export = DefaultExport
	}

	rt := wazero.NewRuntime(ctx)
	compiled, err := rt.CompileModule(ctx, wasm)
	if err != nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("wasmext: compile: %w", err)
	}

	mod, err := rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName("extension"))
	if err != nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("wasmext: instantiate: %w", err)
	}

	i := &Initializer{ctx: ctx, runtime: rt, mod: mod, log: logger}
	if err := i.bind(export); err != nil {
		rt.Close(ctx)
		return nil, err
	}
	return i, nil
}

// Load reads a module from path and calls New.
func Load(ctx context.Context, path, export string, logger *log.Logger) (*Initializer, error) {
	wasm, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("wasmext: %w", err)
	}
	return New(ctx, wasm, export, logger)
}

func (i *Initializer) bind(export string) error {
	fn := i.mod.ExportedFunction(export)
	if fn == nil {
		return fmt.Errorf("%w: %q", ErrNoExport, export)
	}

	def := fn.Definition()
	results := def.ResultTypes()
	if len(results) != 1 || results[0] != api.ValueTypeI32 {
		return fmt.Errorf("%w: %q must return i32", ErrSignature, export)
	}

	switch params := def.ParamTypes(); {
	case len(params) == 0:
	case len(params) == 2 && params[0] == api.ValueTypeI32 && params[1] == api.ValueTypeI32:
		alloc := i.mod.ExportedFunction("cabi_realloc")
		if alloc == nil || i.mod.Memory() == nil {
			return fmt.Errorf("%w: %q takes a name but the module exports no memory allocator", ErrSignature, export)
		}
		i.alloc = alloc
	default:
		return fmt.Errorf("%w: %q", ErrSignature, export)
	}

	i.entry = fn
	return nil
}

// Initialize calls the entry point for the named extension.
func (i *Initializer) Initialize(name string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return ErrClosed
	}

	var args []uint64
	if i.alloc != nil {
		ptr, err := i.writeString(name)
		if err != nil {
			return err
		}
		args = []uint64{uint64(ptr), uint64(len(name))}
	}

	results, err := i.entry.Call(i.ctx, args...)
	if err != nil {
		return fmt.Errorf("wasmext: call: %w", err)
	}
	if api.DecodeI32(results[0]) == 0 {
		return fmt.Errorf("%w: %s", ErrInitFailed, name)
	}

	i.log.Debug("wasm extension initialized", "name", name)
	return nil
}

func (i *Initializer) writeString(s string) (uint32, error) {
	results, err := i.alloc.Call(i.ctx, 0, 0, 1, uint64(len(s)))
	if err != nil {
		return 0, fmt.Errorf("wasmext: allocate: %w", err)
	}
	ptr := api.DecodeU32(results[0])
	if !i.mod.Memory().Write(ptr, []byte(s)) {
		return 0, fmt.Errorf("wasmext: name does not fit in memory at %d", ptr)
	}
	return ptr, nil
}

// Close releases the runtime. Close is idempotent.
func (i *Initializer) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return nil
	}
	i.closed = true
	return i.runtime.Close(i.ctx)
}
