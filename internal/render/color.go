package render

import (
	"fmt"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	// ZeroColor fills counties with no crashes in the selected years.
	ZeroColor = drawing.Color{R: 238, G: 238, B: 238, A: 255}

	lowColor  = drawing.Color{R: 254, G: 232, B: 200, A: 255}
	highColor = drawing.Color{R: 179, G: 0, B: 0, A: 255}
)

// ColorScale maps crash totals onto a sequential light-to-dark ramp.
type ColorScale struct {
	Max int
}

// Color returns the fill for count.
func (s ColorScale) Color(count int) drawing.Color {
	if count <= 0 || s.Max <= 0 {
		return ZeroColor
	}
	t := float64(count) / float64(s.Max)
	if t > 1 {
		t = 1
	}
	return drawing.Color{
		R: lerp(lowColor.R, highColor.R, t),
		G: lerp(lowColor.G, highColor.G, t),
		B: lerp(lowColor.B, highColor.B, t),
		A: 255,
	}
}

// Hex formats c as an SVG "#rrggbb" color.
func Hex(c drawing.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}
