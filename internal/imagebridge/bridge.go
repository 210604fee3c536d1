// Package imagebridge resolves named images through a host-registered loader
// and turns the host's borrowed bytes into engine-owned images.
package imagebridge

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/enginehost/internal/core"
	"github.com/vovakirdan/enginehost/internal/engine"
	"github.com/vovakirdan/enginehost/internal/format"
)

// Loader resolves an image name to pixel data. ok is false when the loader has
// nothing for the name. The returned Data is borrowed and only needs to stay
// valid until LoadImage's caller returns.
type Loader interface {
	LoadImage(name string) (desc core.ImageDescriptor, ok bool)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(name string) (core.ImageDescriptor, bool)

// LoadImage calls f.
func (f LoaderFunc) LoadImage(name string) (core.ImageDescriptor, bool) {
	return f(name)
}

// Bridge holds the current loader. The zero value has no loader.
type Bridge struct {
	loader Loader
	log    *log.Logger
}

// New creates a bridge that reports engine rejections to logger.
// A nil logger discards output.
func New(logger *log.Logger) *Bridge {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Bridge{log: logger}
}

// SetLogger replaces the logger. nil discards output.
func (b *Bridge) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	b.log = l
}

// SetLoader replaces the loader. nil clears it.
func (b *Bridge) SetLoader(l Loader) {
	b.loader = l
}

// Loader returns the current loader, or nil.
func (b *Bridge) Loader() Loader {
	return b.loader
}

// Load resolves name into an engine image with mipmaps enabled.
// It returns false when no loader is set, the loader has no data, or the
// engine rejects the descriptor. The loader's bytes are copied exactly once.
func (b *Bridge) Load(name string) (*engine.Image, bool) {
	if b.loader == nil {
		return nil, false
	}

	desc, ok := b.loader.LoadImage(name)
	if !ok || desc.Empty() {
		return nil, false
	}

	owned := make([]byte, len(desc.Data))
	copy(owned, desc.Data)

	img, err := engine.NewImage(int(desc.Width), int(desc.Height), true, format.ToEngine(desc.Format), owned)
	if err != nil {
		if b.log != nil {
			b.log.Error("image rejected", "name", name, "format", desc.Format, "err", err)
		}
		return nil, false
	}
	return img, true
}
