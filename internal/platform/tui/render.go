package tui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
)

// upperHalf draws the top pixel as foreground and the bottom as background.
const upperHalf = '▀'

// FitSize returns the pixel size a w x h image should be scaled to so it
// fits in cols x rows terminal cells, two pixel rows per cell, keeping the
// aspect ratio. The height is always even.
func FitSize(w, h, cols, rows int) (int, int) {
	if w <= 0 || h <= 0 || cols <= 0 || rows <= 0 {
		return 0, 0
	}
	maxW, maxH := float64(cols), float64(rows*2)
	scale := min(maxW/float64(w), maxH/float64(h))

	outW := max(1, int(float64(w)*scale))
	outH := max(2, int(float64(h)*scale))
	outH -= outH % 2
	return outW, outH
}

// RenderImage draws img into at most cols x rows cells using half blocks.
// Adjacent cells with the same colors share one styled run.
func RenderImage(img image.Image, cols, rows int) string {
	if img == nil {
		return ""
	}
	b := img.Bounds()
	w, h := FitSize(b.Dx(), b.Dy(), cols, rows)
	if w == 0 {
		return ""
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)

	styles := make(map[[2]color.RGBA]lipgloss.Style)
	styleFor := func(top, bottom color.RGBA) lipgloss.Style {
		k := [2]color.RGBA{top, bottom}
		s, ok := styles[k]
		if !ok {
			s = lipgloss.NewStyle().Foreground(hexColor(top)).Background(hexColor(bottom))
			styles[k] = s
		}
		return s
	}

	var sb strings.Builder
	sb.Grow(w * h)

	for y := 0; y < h; y += 2 {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < w {
			top, bottom := dst.RGBAAt(x, y), dst.RGBAAt(x, y+1)
			n := 1
			for x+n < w && dst.RGBAAt(x+n, y) == top && dst.RGBAAt(x+n, y+1) == bottom {
				n++
			}
			sb.WriteString(styleFor(top, bottom).Render(strings.Repeat(string(upperHalf), n)))
			x += n
		}
	}
	return sb.String()
}

func hexColor(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
