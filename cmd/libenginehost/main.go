// Command libenginehost builds the engine host as a C shared library:
//
//	go build -buildmode=c-shared -o libenginehost.so ./cmd/libenginehost
//
// The exported functions are thin adapters over internal/boundary. Callback
// typedefs are in enginehost.h.
package main

/*
#include "enginehost.h"
*/
import "C"

import (
	"runtime/cgo"
	"unsafe"

	"github.com/vovakirdan/enginehost/internal/boundary"
	"github.com/vovakirdan/enginehost/internal/engine"
)

func main() {}

func cbool(b bool) C.int {
	if b {
		return 1
	}
	return 0
}

func floats(p *C.float, n int) []float32 {
	if p == nil || n <= 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(p)), n)
}

func vec3(p *C.float) [3]float32 {
	var v [3]float32
	if p != nil {
		copy(v[:], floats(p, 3))
	}
	return v
}

//export enginehost_start
func enginehost_start(argc C.int, argv **C.char) C.int {
	if argc <= 0 || argv == nil {
		return cbool(boundary.Start(nil))
	}
	args := make([]string, 0, int(argc))
	for _, p := range unsafe.Slice(argv, int(argc)) {
		args = append(args, C.GoString(p))
	}
	return cbool(boundary.Start(args))
}

//export enginehost_stop
func enginehost_stop() {
	boundary.Stop()
}

//export enginehost_step
func enginehost_step() C.int {
	return cbool(boundary.Step())
}

//export enginehost_set_backend
func enginehost_set_backend(name *C.char) C.int {
	if name == nil {
		return 0
	}
	return cbool(boundary.SetRuntime(C.GoString(name)) == nil)
}

//export enginehost_get_viewport_size
func enginehost_get_viewport_size(width, height *C.int32_t) {
	w, h := boundary.ViewportSize()
	if width != nil {
		*width = C.int32_t(w)
	}
	if height != nil {
		*height = C.int32_t(h)
	}
}

// enginehost_get_viewport_data writes width*height*3 bytes; the caller sizes
// dst from enginehost_get_viewport_size.
//
//export enginehost_get_viewport_data
func enginehost_get_viewport_data(dst *C.uint8_t) {
	if dst == nil {
		return
	}
	w, h := boundary.ViewportSize()
	n := int(w) * int(h) * 3
	if n == 0 {
		return
	}
	boundary.ViewportData(unsafe.Slice((*byte)(unsafe.Pointer(dst)), n))
}

//export enginehost_add_actor
func enginehost_add_actor(vertex, normal, uv *C.float, vertexCount C.uint32_t, index *C.uint32_t, indexCount C.uint32_t, texture *C.char) {
	n := int(vertexCount)

	var indices []uint32
	if index != nil && indexCount > 0 {
		indices = unsafe.Slice((*uint32)(unsafe.Pointer(index)), int(indexCount))
	}
	var tex string
	if texture != nil {
		tex = C.GoString(texture)
	}

	boundary.AddActor(floats(vertex, n*3), floats(normal, n*3), floats(uv, n*2),
		uint32(vertexCount), indices, uint32(indexCount), tex)
}

//export enginehost_add_omni_light
func enginehost_add_omni_light(position, color *C.float, intensity C.float) {
	boundary.AddOmniLight(vec3(position), vec3(color), float32(intensity))
}

//export enginehost_set_image_load_function
func enginehost_set_image_load_function(fn C.enginehost_image_load_fn) {
	if fn == nil {
		boundary.SetImageLoadFunction(nil)
		return
	}
	boundary.SetImageLoadFunction(imageLoader(fn))
}

//export enginehost_managed_bind
func enginehost_managed_bind(entry unsafe.Pointer, scene C.enginehost_scene_fn) {
	boundary.ManagedBind(entry, sceneLoader(scene))
}

//export enginehost_extension_bind
func enginehost_extension_bind(init C.enginehost_extension_init_fn, scene C.enginehost_scene_fn) {
	if init == nil {
		boundary.ExtensionBind(nil, sceneLoader(scene))
		return
	}
	boundary.ExtensionBind(extensionInit(init), sceneLoader(scene))
}

//export enginehost_scene_load
func enginehost_scene_load(scene C.uintptr_t) {
	if scene == 0 {
		return
	}
	defer func() {
		// An unknown handle must not unwind into C.
		if r := recover(); r != nil {
			boundary.Logger().Error("scene_load called with an invalid handle", "handle", uintptr(scene))
		}
	}()

	node, ok := cgo.Handle(scene).Value().(engine.Node)
	if !ok {
		return
	}
	boundary.SceneLoad(node)
}

//export enginehost_is_scene_loadable
func enginehost_is_scene_loadable() C.int {
	return cbool(boundary.IsSceneLoadable())
}

//export enginehost_managed_main_init
func enginehost_managed_main_init() unsafe.Pointer {
	return boundary.ManagedEntry()
}
