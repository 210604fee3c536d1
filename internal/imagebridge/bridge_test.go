package imagebridge

import (
	"testing"

	"github.com/vovakirdan/enginehost/internal/core"
	"github.com/vovakirdan/enginehost/internal/engine"
)

func checker(w, h uint32) []byte {
	data := make([]byte, w*h*4)
	for i := range data {
		data[i] = byte(i)
	}
	return data
}

func TestLoadNoLoader(t *testing.T) {
	b := New(nil)
	if img, ok := b.Load("brick"); ok || img != nil {
		t.Fatal("Load() without a loader should be absent")
	}
}

func TestLoadEmptyData(t *testing.T) {
	b := New(nil)
	b.SetLoader(LoaderFunc(func(name string) (core.ImageDescriptor, bool) {
		return core.ImageDescriptor{Format: core.ImageFormatRGBA8, Width: 4, Height: 4}, true
	}))

	if _, ok := b.Load("brick"); ok {
		t.Fatal("Load() with zero-length data should be absent")
	}
}

func TestLoaderReportsMissing(t *testing.T) {
	b := New(nil)
	b.SetLoader(LoaderFunc(func(name string) (core.ImageDescriptor, bool) {
		return core.ImageDescriptor{}, false
	}))

	if _, ok := b.Load("nope"); ok {
		t.Fatal("Load() should be absent when the loader has no image")
	}
}

func TestLoadCopiesOnce(t *testing.T) {
	src := checker(4, 4)
	var asked string

	b := New(nil)
	b.SetLoader(LoaderFunc(func(name string) (core.ImageDescriptor, bool) {
		asked = name
		return core.ImageDescriptor{Format: core.ImageFormatRGBA8, Width: 4, Height: 4, Data: src}, true
	}))

	img, ok := b.Load("brick")
	if !ok {
		t.Fatal("Load() should succeed")
	}
	if asked != "brick" {
		t.Errorf("loader asked for %q, expected brick", asked)
	}

	if img.Width() != 4 || img.Height() != 4 || img.Format() != engine.FormatRGBA8 {
		t.Errorf("image = %dx%d %s, expected 4x4 RGBA8", img.Width(), img.Height(), img.Format())
	}
	if !img.HasMipmaps() {
		t.Error("bridged images should have mipmaps")
	}

	// The engine owns its copy; the caller's buffer can be reused.
	src[0] = 99
	if img.Data()[0] != 0 {
		t.Error("image should not alias the loader's buffer")
	}
	if len(img.Data()) != 64 {
		t.Errorf("len(Data()) = %d, expected 64", len(img.Data()))
	}
}

func TestLoadRejectedByEngine(t *testing.T) {
	b := New(nil)
	b.SetLoader(LoaderFunc(func(name string) (core.ImageDescriptor, bool) {
		return core.ImageDescriptor{Format: core.ImageFormatRGBA8, Width: 4, Height: 4, Data: make([]byte, 10)}, true
	}))

	if _, ok := b.Load("short"); ok {
		t.Fatal("Load() should be absent when the engine rejects the size")
	}
}

func TestSetLoaderLastWins(t *testing.T) {
	b := New(nil)
	first := LoaderFunc(func(string) (core.ImageDescriptor, bool) { return core.ImageDescriptor{}, false })
	second := LoaderFunc(func(string) (core.ImageDescriptor, bool) {
		return core.ImageDescriptor{Format: core.ImageFormatL8, Width: 1, Height: 1, Data: []byte{7}}, true
	})

	b.SetLoader(first)
	b.SetLoader(second)

	if _, ok := b.Load("x"); !ok {
		t.Fatal("the most recent loader should be used")
	}

	b.SetLoader(nil)
	if b.Loader() != nil {
		t.Error("SetLoader(nil) should clear the loader")
	}
}
