package core

// Color is a linear RGB color. Components are nominally in [0, 1] but are not
// clamped: light colors and intensities pass through the boundary unchanged.
type Color struct {
	R, G, B float32
}

// Predefined colors.
var (
	ColorBlack = Color{0, 0, 0}
	ColorWhite = Color{1, 1, 1}
	ColorGray  = Color{0.5, 0.5, 0.5}
)

// ColorFromVec converts a Vec3 (as received across the boundary) to a Color.
func ColorFromVec(v Vec3) Color {
	return Color{R: v.X, G: v.Y, B: v.Z}
}

// Vec returns the color as a Vec3.
func (c Color) Vec() Vec3 {
	return Vec3{c.R, c.G, c.B}
}

// Scale multiplies every component by s.
func (c Color) Scale(s float32) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// Mul returns the component-wise product.
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B}
}

// Add returns the component-wise sum.
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B}
}

// RGB8 quantizes the color to 8 bits per channel, clamping to [0, 1] first.
func (c Color) RGB8() (r, g, b uint8) {
	return to8(c.R), to8(c.G), to8(c.B)
}

func to8(v float32) uint8 {
	return uint8(ClampF(v, 0, 1)*255 + 0.5)
}
