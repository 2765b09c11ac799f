package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var ErrInvalidColor = errors.New("render: invalid color")

var namedColors = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"gray":    "#808080",
	"grey":    "#808080",
	"silver":  "#c0c0c0",
	"red":     "#ff0000",
	"green":   "#008000",
	"lime":    "#00ff00",
	"blue":    "#0000ff",
	"navy":    "#000080",
	"yellow":  "#ffff00",
	"orange":  "#ffa500",
	"purple":  "#800080",
	"magenta": "#ff00ff",
	"fuchsia": "#ff00ff",
	"cyan":    "#00ffff",
	"aqua":    "#00ffff",
	"teal":    "#008080",
	"maroon":  "#800000",
	"olive":   "#808000",
}

// ParseColor accepts a #rgb or #rrggbb hex string or a basic CSS color name.
func ParseColor(s string) (colorful.Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if hex, ok := namedColors[v]; ok {
		v = hex
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w %q: %v", ErrInvalidColor, s, err)
	}
	return c, nil
}

// Palette is the pair of static colors a grid is drawn with.
type Palette struct {
	Background colorful.Color
	Stroke     colorful.Color
}

func NewPalette(background, stroke string) (Palette, error) {
	bg, err := ParseColor(background)
	if err != nil {
		return Palette{}, fmt.Errorf("background: %w", err)
	}
	st, err := ParseColor(stroke)
	if err != nil {
		return Palette{}, fmt.Errorf("stroke: %w", err)
	}
	return Palette{Background: bg, Stroke: st}, nil
}

func DefaultPalette() Palette {
	return Palette{
		Background: colorful.Color{R: 0, G: 0, B: 0},
		Stroke:     colorful.Color{R: 1, G: 1, B: 1},
	}
}
