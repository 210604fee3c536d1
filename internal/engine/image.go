package engine

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/enginehost/internal/core"
)

// MaxImageSize bounds each image dimension.
const MaxImageSize = 1 << 14

var (
	// ErrImageFormat is returned for formats outside the engine enumeration.
	ErrImageFormat = errors.New("engine: invalid image format")

	// ErrImageSize is returned when dimensions or data length are inconsistent.
	ErrImageSize = errors.New("engine: invalid image size")
)

// Image is an engine-owned pixel image with an optional mip chain.
type Image struct {
	width  int
	height int
	format Format
	levels [][]byte // levels[0] is the base image
}

// NewImage creates an image from data, which the image takes ownership of.
//
// Without mipmaps, data must be exactly one level. With mipmaps, data may hold
// the full chain, or only the base level: the chain is then generated for
// byte-per-channel formats, and other formats keep a single level.
func NewImage(width, height int, mipmaps bool, f Format, data []byte) (*Image, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrImageFormat, int32(f))
	}
	if width <= 0 || height <= 0 || width > MaxImageSize || height > MaxImageSize {
		return nil, fmt.Errorf("%w: %dx%d", ErrImageSize, width, height)
	}

	base := f.LevelSize(width, height)
	img := &Image{width: width, height: height, format: f}

	switch {
	case len(data) == base:
		img.levels = [][]byte{data}
		if mipmaps && formats[f].channels > 0 {
			img.generateMipmaps()
		}
	case mipmaps && len(data) == MipmapChainSize(f, width, height):
		img.splitChain(data)
	default:
		return nil, fmt.Errorf("%w: %s %dx%d expects %d bytes, got %d",
			ErrImageSize, f, width, height, base, len(data))
	}
	return img, nil
}

// MipmapCount returns the number of levels in a full chain down to 1x1.
func MipmapCount(width, height int) int {
	n := 1
	for width > 1 || height > 1 {
		width = max(width/2, 1)
		height = max(height/2, 1)
		n++
	}
	return n
}

// MipmapChainSize returns the byte size of a full mip chain.
func MipmapChainSize(f Format, width, height int) int {
	total := 0
	for i := MipmapCount(width, height); i > 0; i-- {
		total += f.LevelSize(width, height)
		width = max(width/2, 1)
		height = max(height/2, 1)
	}
	return total
}

func (img *Image) splitChain(data []byte) {
	w, h := img.width, img.height
	for i := MipmapCount(w, h); i > 0; i-- {
		n := img.format.LevelSize(w, h)
		img.levels = append(img.levels, data[:n:n])
		data = data[n:]
		w = max(w/2, 1)
		h = max(h/2, 1)
	}
}

// generateMipmaps box-filters each level from the previous one.
func (img *Image) generateMipmaps() {
	ch := formats[img.format].channels
	w, h := img.width, img.height
	src := img.levels[0]
	for w > 1 || h > 1 {
		nw, nh := max(w/2, 1), max(h/2, 1)
		dst := make([]byte, nw*nh*ch)
		for y := 0; y < nh; y++ {
			y0 := min(y*2, h-1)
			y1 := min(y*2+1, h-1)
			for x := 0; x < nw; x++ {
				x0 := min(x*2, w-1)
				x1 := min(x*2+1, w-1)
				for c := 0; c < ch; c++ {
					sum := int(src[(y0*w+x0)*ch+c]) + int(src[(y0*w+x1)*ch+c]) +
						int(src[(y1*w+x0)*ch+c]) + int(src[(y1*w+x1)*ch+c])
					dst[(y*nw+x)*ch+c] = byte((sum + 2) / 4)
				}
			}
		}
		img.levels = append(img.levels, dst)
		src, w, h = dst, nw, nh
	}
}

// Width returns the base level width.
func (img *Image) Width() int {
	return img.width
}

// Height returns the base level height.
func (img *Image) Height() int {
	return img.height
}

// Format returns the pixel format.
func (img *Image) Format() Format {
	return img.format
}

// HasMipmaps reports whether the image carries more than the base level.
func (img *Image) HasMipmaps() bool {
	return len(img.levels) > 1
}

// MipmapLevels returns the number of stored levels, including the base.
func (img *Image) MipmapLevels() int {
	return len(img.levels)
}

// Data returns the base level bytes.
func (img *Image) Data() []byte {
	return img.levels[0]
}

// Level returns the bytes of mip level i.
func (img *Image) Level(i int) []byte {
	return img.levels[i]
}

// AverageColor returns the mean RGB of the base level. ok is false for
// formats that cannot be decoded on the CPU (block-compressed, half float,
// shared exponent).
func (img *Image) AverageColor() (c core.Color, ok bool) {
	data := img.levels[0]
	n := img.width * img.height
	var sum [3]float64

	px := func(i int) [3]float64 {
		switch img.format {
		case FormatL8:
			v := float64(data[i]) / 255
			return [3]float64{v, v, v}
		case FormatLA8:
			v := float64(data[i*2]) / 255
			return [3]float64{v, v, v}
		case FormatR8:
			return [3]float64{float64(data[i]) / 255, 0, 0}
		case FormatRG8:
			return [3]float64{float64(data[i*2]) / 255, float64(data[i*2+1]) / 255, 0}
		case FormatRGB8:
			return [3]float64{float64(data[i*3]) / 255, float64(data[i*3+1]) / 255, float64(data[i*3+2]) / 255}
		case FormatRGBA8:
			return [3]float64{float64(data[i*4]) / 255, float64(data[i*4+1]) / 255, float64(data[i*4+2]) / 255}
		case FormatRGBA4444:
			v := binary.LittleEndian.Uint16(data[i*2:])
			return [3]float64{float64(v>>12&0xf) / 15, float64(v>>8&0xf) / 15, float64(v>>4&0xf) / 15}
		case FormatRGB565:
			v := binary.LittleEndian.Uint16(data[i*2:])
			return [3]float64{float64(v>>11&0x1f) / 31, float64(v>>5&0x3f) / 63, float64(v&0x1f) / 31}
		case FormatRF, FormatRGF, FormatRGBF, FormatRGBAF:
			comps := formats[img.format].blockBytes / 4
			var out [3]float64
			for c := 0; c < comps && c < 3; c++ {
				out[c] = float64(math.Float32frombits(binary.LittleEndian.Uint32(data[(i*comps+c)*4:])))
			}
			return out
		}
		return [3]float64{}
	}

	switch img.format {
	case FormatL8, FormatLA8, FormatR8, FormatRG8, FormatRGB8, FormatRGBA8,
		FormatRGBA4444, FormatRGB565, FormatRF, FormatRGF, FormatRGBF, FormatRGBAF:
	default:
		return core.ColorGray, false
	}

	for i := 0; i < n; i++ {
		p := px(i)
		sum[0] += p[0]
		sum[1] += p[1]
		sum[2] += p[2]
	}
	return core.Color{
		R: float32(sum[0] / float64(n)),
		G: float32(sum[1] / float64(n)),
		B: float32(sum[2] / float64(n)),
	}, true
}
