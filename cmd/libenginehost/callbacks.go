package main

/*
#include <stdlib.h>
#include "enginehost.h"

static uint8_t *call_image_load(enginehost_image_load_fn fn, const char *name,
		int32_t *format, uint32_t *width, uint32_t *height, size_t *size) {
	return fn(name, format, width, height, size);
}

static int call_extension_init(enginehost_extension_init_fn fn, const char *name) {
	return fn(name);
}

static void call_scene(enginehost_scene_fn fn, uintptr_t scene) {
	fn(scene);
}
*/
import "C"

import (
	"fmt"
	"runtime/cgo"
	"unsafe"

	"github.com/vovakirdan/enginehost/internal/core"
	"github.com/vovakirdan/enginehost/internal/engine"
	"github.com/vovakirdan/enginehost/internal/extension"
	"github.com/vovakirdan/enginehost/internal/imagebridge"
)

func imageLoader(fn C.enginehost_image_load_fn) imagebridge.Loader {
	return imagebridge.LoaderFunc(func(name string) (core.ImageDescriptor, bool) {
		cname := C.CString(name)
		defer C.free(unsafe.Pointer(cname))

		var (
			format        C.int32_t
			width, height C.uint32_t
			size          C.size_t
		)
		data := C.call_image_load(fn, cname, &format, &width, &height, &size)
		if data == nil || size == 0 {
			return core.ImageDescriptor{}, false
		}

		return core.ImageDescriptor{
			Format: core.ImageFormat(format),
			Width:  uint32(width),
			Height: uint32(height),
			Data:   unsafe.Slice((*byte)(unsafe.Pointer(data)), int(size)),
		}, true
	})
}

func extensionInit(fn C.enginehost_extension_init_fn) extension.Initializer {
	return extension.InitializerFunc(func(name string) error {
		cname := C.CString(name)
		defer C.free(unsafe.Pointer(cname))

		if C.call_extension_init(fn, cname) == 0 {
			return fmt.Errorf("libenginehost: extension %q initialization returned false", name)
		}
		return nil
	})
}

// sceneLoader passes the scene to C as a handle that is deleted when the
// callback returns.
func sceneLoader(fn C.enginehost_scene_fn) extension.SceneLoader {
	if fn == nil {
		return nil
	}
	return extension.SceneLoaderFunc(func(scene engine.Node) {
		h := cgo.NewHandle(scene)
		defer h.Delete()
		C.call_scene(fn, C.uintptr_t(h))
	})
}
