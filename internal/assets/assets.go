// Package assets decodes image files into RGBA8 descriptors for the image
// bridge and encodes captured viewports for export.
package assets

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // registers the webp decoder

	"github.com/vovakirdan/enginehost/internal/core"
)

// ErrUnsupported is returned for file extensions with no encoder.
var ErrUnsupported = errors.New("assets: unsupported image type")

// Extensions lists the file extensions DirLoader probes, in order.
var Extensions = []string{".png", ".bmp", ".webp"}

// Decode reads a PNG, BMP or WebP image and converts it to a tightly packed,
// non-premultiplied RGBA8 descriptor.
func Decode(r io.Reader) (core.ImageDescriptor, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return core.ImageDescriptor{}, fmt.Errorf("assets: decode: %w", err)
	}
	return Descriptor(src), nil
}

// DecodeFile decodes the image stored at path.
func DecodeFile(path string) (core.ImageDescriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return core.ImageDescriptor{}, fmt.Errorf("assets: %w", err)
	}
	defer f.Close()

	desc, err := Decode(f)
	if err != nil {
		return core.ImageDescriptor{}, fmt.Errorf("%w (%s)", err, path)
	}
	return desc, nil
}

// Descriptor converts any image to an RGBA8 descriptor with a top-left origin.
func Descriptor(src image.Image) core.ImageDescriptor {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)

	return core.ImageDescriptor{
		Format: core.ImageFormatRGBA8,
		Width:  uint32(b.Dx()),
		Height: uint32(b.Dy()),
		Data:   dst.Pix,
	}
}

// Encode writes img in the format named by ext (".png" or ".bmp").
func Encode(w io.Writer, ext string, img image.Image) error {
	switch strings.ToLower(ext) {
	case ".png":
		return png.Encode(w, img)
	case ".bmp":
		return bmp.Encode(w, img)
	}
	return fmt.Errorf("%w: %q", ErrUnsupported, ext)
}

// Save writes img to path, choosing the encoder from the file extension.
func Save(path string, img image.Image) error {
	ext := filepath.Ext(path)
	switch strings.ToLower(ext) {
	case ".png", ".bmp":
	default:
		return fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("assets: %w", err)
	}
	if err := Encode(f, ext, img); err != nil {
		f.Close()
		return fmt.Errorf("assets: encode %s: %w", path, err)
	}
	return f.Close()
}

// FrameImage wraps a captured RGB8 frame as an opaque RGBA image.
func FrameImage(frame *core.Frame) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, frame.Width(), frame.Height()))
	pix := frame.Pix()
	for i, j := 0, 0; i+2 < len(pix); i, j = i+core.BytesPerPixelRGB8, j+4 {
		img.Pix[j] = pix[i]
		img.Pix[j+1] = pix[i+1]
		img.Pix[j+2] = pix[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}
