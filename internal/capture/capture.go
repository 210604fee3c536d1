// Package capture copies the rendered viewport into host-owned memory.
package capture

import (
	"errors"
	"fmt"
	"image"

	"github.com/vovakirdan/enginehost/internal/core"
	"github.com/vovakirdan/enginehost/internal/engine"
)

var (
	// ErrNoFrame is returned before the engine has rendered a frame.
	ErrNoFrame = errors.New("capture: no rendered frame")

	// ErrShortBuffer is returned when the destination cannot hold a frame.
	ErrShortBuffer = errors.New("capture: destination buffer too small")

	// ErrFormat is returned when the viewport image is not RGB8.
	ErrFormat = errors.New("capture: viewport image is not RGB8")
)

func frameImage(root *engine.Window) (*engine.Image, error) {
	img := root.Viewport().Texture().Image()
	if img == nil {
		return nil, ErrNoFrame
	}
	if img.Format() != engine.FormatRGB8 {
		return nil, fmt.Errorf("%w: %s", ErrFormat, img.Format())
	}
	return img, nil
}

// ViewportSize returns the dimensions of the last rendered frame.
func ViewportSize(root *engine.Window) (width, height int, err error) {
	img, err := frameImage(root)
	if err != nil {
		return 0, 0, err
	}
	return img.Width(), img.Height(), nil
}

// ViewportData copies the last rendered frame into dst as packed RGB8 and
// returns the number of bytes written, always width*height*3. Bytes of dst
// past that are left untouched.
func ViewportData(root *engine.Window, dst []byte) (int, error) {
	img, err := frameImage(root)
	if err != nil {
		return 0, err
	}

	n := img.Width() * img.Height() * core.BytesPerPixelRGB8
	if len(dst) < n {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", ErrShortBuffer, n, len(dst))
	}
	return copy(dst[:n], img.Data()), nil
}

// Frame returns a copy of the last rendered frame.
func Frame(root *engine.Window) (*core.Frame, error) {
	w, h, err := ViewportSize(root)
	if err != nil {
		return nil, err
	}
	f := core.NewFrame(w, h)
	if _, err := ViewportData(root, f.Pix()); err != nil {
		return nil, err
	}
	return f, nil
}

// Snapshot returns the last rendered frame as an opaque RGBA image.
func Snapshot(root *engine.Window) (*image.RGBA, error) {
	f, err := Frame(root)
	if err != nil {
		return nil, err
	}
	return ToRGBA(f), nil
}

// ToRGBA expands an RGB8 frame to an opaque RGBA image.
func ToRGBA(f *core.Frame) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width(), f.Height()))
	src := f.Pix()
	for i, j := 0, 0; i+2 < len(src); i, j = i+3, j+4 {
		img.Pix[j] = src[i]
		img.Pix[j+1] = src[i+1]
		img.Pix[j+2] = src[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}
