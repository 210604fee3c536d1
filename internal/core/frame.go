package core

// BytesPerPixelRGB8 is the packed size of one captured viewport pixel.
const BytesPerPixelRGB8 = 3

// Frame is a tightly packed RGB8 pixel buffer, row-major with a top-left
// origin. It is the host-side copy of a rendered viewport.
type Frame struct {
	width  int
	height int
	pix    []byte
}

// NewFrame creates a black frame with the given dimensions.
func NewFrame(width, height int) *Frame {
	f := &Frame{}
	f.Resize(width, height)
	return f
}

// FrameFromRGB wraps existing RGB8 bytes without copying.
// pix must hold at least width*height*3 bytes.
func FrameFromRGB(width, height int, pix []byte) *Frame {
	return &Frame{width: width, height: height, pix: pix[:width*height*BytesPerPixelRGB8]}
}

// Width returns the frame width in pixels.
func (f *Frame) Width() int {
	return f.width
}

// Height returns the frame height in pixels.
func (f *Frame) Height() int {
	return f.height
}

// Pix returns the underlying RGB8 bytes.
func (f *Frame) Pix() []byte {
	return f.pix
}

// Len returns the byte size of the frame (width*height*3).
func (f *Frame) Len() int {
	return len(f.pix)
}

// Resize changes the frame dimensions. Existing pixel data is discarded
// unless the size is unchanged.
func (f *Frame) Resize(width, height int) {
	if width == f.width && height == f.height && f.pix != nil {
		return
	}
	f.width = Max(width, 0)
	f.height = Max(height, 0)
	f.pix = make([]byte, f.width*f.height*BytesPerPixelRGB8)
}

// Fill sets every pixel to the given color.
func (f *Frame) Fill(r, g, b uint8) {
	for i := 0; i+2 < len(f.pix); i += BytesPerPixelRGB8 {
		f.pix[i], f.pix[i+1], f.pix[i+2] = r, g, b
	}
}

// Set writes a pixel. Out-of-bounds coordinates are silently ignored.
func (f *Frame) Set(x, y int, r, g, b uint8) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	i := (y*f.width + x) * BytesPerPixelRGB8
	f.pix[i], f.pix[i+1], f.pix[i+2] = r, g, b
}

// At returns the pixel at (x, y). Out-of-bounds reads return black.
func (f *Frame) At(x, y int) (r, g, b uint8) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return 0, 0, 0
	}
	i := (y*f.width + x) * BytesPerPixelRGB8
	return f.pix[i], f.pix[i+1], f.pix[i+2]
}

// Clone returns a deep copy.
func (f *Frame) Clone() *Frame {
	c := &Frame{width: f.width, height: f.height, pix: make([]byte, len(f.pix))}
	copy(c.pix, f.pix)
	return c
}
