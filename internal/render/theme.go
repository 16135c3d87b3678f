package render

import (
	"fmt"
	"image/color"
)

// Theme defines the color scheme for board images.
type Theme struct {
	LightSquare color.RGBA
	DarkSquare  color.RGBA
	Background  color.RGBA
	TextColor   color.RGBA
	RouteColor  color.RGBA
	TargetColor color.RGBA

	// LayerColors tint the squares of each layer; depths past the end reuse the last color.
	LayerColors []color.RGBA

	// LayerAlpha is how much of the layer color is mixed into the square (0-1).
	LayerAlpha float64
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare: color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:  color.RGBA{181, 136, 99, 255},  // Brown
		Background:  color.RGBA{40, 44, 52, 255},    // Dark gray
		TextColor:   color.RGBA{220, 220, 220, 255}, // Light gray
		RouteColor:  color.RGBA{60, 110, 200, 255},  // Blue
		TargetColor: color.RGBA{255, 100, 100, 255}, // Red
		LayerColors: []color.RGBA{
			{247, 247, 105, 255}, // start
			{180, 190, 100, 255},
			{130, 151, 105, 255},
			{100, 160, 150, 255},
			{90, 130, 190, 255},
			{130, 100, 180, 255},
			{170, 90, 150, 255},
		},
		LayerAlpha: 0.55,
	}
}

// layerColor returns the tint for a layer depth.
func (t *Theme) layerColor(depth int) color.RGBA {
	if len(t.LayerColors) == 0 {
		return t.RouteColor
	}
	if depth >= len(t.LayerColors) {
		depth = len(t.LayerColors) - 1
	}
	return t.LayerColors[depth]
}

// blend mixes b into a by alpha (0 keeps a, 1 gives b).
func blend(a, b color.RGBA, alpha float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x)*(1-alpha) + float64(y)*alpha + 0.5)
	}
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), 255}
}

// hex formats a color for SVG attributes.
func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
