package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/glowgrid/internal/grid"
)

const (
	// TileSize is the edge length of one cell in surface units.
	TileSize = 10
	// GlowRadius is the radius of the glow centered in each tile.
	GlowRadius = 4
	// StrokeWidth is the width of the tile border.
	StrokeWidth = 0.5

	// GlowThreshold is the brightest-channel value at or below which a glow is hidden.
	GlowThreshold = 0.005
	glowBase      = 0.4
	glowGain      = 0.6
)

// GlowOpacity maps a cell's brightest channel to the alpha of its glow. Dim
// cells are hidden outright rather than drawn faintly.
func GlowOpacity(max float64) float64 {
	if max <= GlowThreshold {
		return 0
	}
	return glowBase + max*glowGain
}

// ToRGB255 quantizes the channels of c to 0-255 by truncation.
func ToRGB255(c grid.Cell) (r, g, b uint8) {
	return quantize(c.R), quantize(c.G), quantize(c.B)
}

func quantize(v float64) uint8 {
	return uint8(math.Floor(math.Min(math.Max(v, 0), 1) * 255))
}

// GlowColor is the quantized glow color of c.
func GlowColor(c grid.Cell) colorful.Color {
	r, g, b := ToRGB255(c)
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Composite is the color seen at the center of c's tile: the glow laid over
// the background at the glow opacity.
func Composite(background colorful.Color, c grid.Cell) colorful.Color {
	alpha := GlowOpacity(c.Max())
	if alpha == 0 {
		return background
	}
	return background.BlendRgb(GlowColor(c), alpha)
}
