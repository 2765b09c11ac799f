package grid

import (
	"fmt"
	"math"
)

const (
	DefaultOffset = 10000.0
	DefaultRDiv   = 2000.0
	DefaultGDiv   = 4000.0
	DefaultBDiv   = 6000.0
)

// Wave holds the constants of the radial sine color function. Offset floors
// the radius; the divisors set each channel's temporal frequency in ms.
type Wave struct {
	Offset float64
	RDiv   float64
	GDiv   float64
	BDiv   float64
}

// DefaultWave returns the constants of the original effect.
func DefaultWave() Wave {
	return Wave{
		Offset: DefaultOffset,
		RDiv:   DefaultRDiv,
		GDiv:   DefaultGDiv,
		BDiv:   DefaultBDiv,
	}
}

// Validate rejects non-positive divisors and a negative offset.
func (w Wave) Validate() error {
	if w.RDiv <= 0 || w.GDiv <= 0 || w.BDiv <= 0 {
		return fmt.Errorf("%w: divisors %.0f/%.0f/%.0f", ErrInvalidWave, w.RDiv, w.GDiv, w.BDiv)
	}
	if w.Offset < 0 {
		return fmt.Errorf("%w: offset %f", ErrInvalidWave, w.Offset)
	}
	return nil
}

// Radius is the distance of cell (i, j) from the grid center, lifted by Offset.
func (w Wave) Radius(i, j, rows, cols int) float64 {
	dx := float64(j) - float64(cols)/2 + 0.5
	dy := float64(i) - float64(rows)/2 + 0.5
	return math.Sqrt(dx*dx + dy*dy + w.Offset)
}

// Color evaluates the channels of cell (i, j) at wall-clock millisecond t.
func (w Wave) Color(i, j, rows, cols int, t float64) (r, g, b float64) {
	radius := w.Radius(i, j, rows, cols)
	r = (math.Sin(radius+t/w.RDiv) + 1) / 2
	g = (math.Sin(radius+t/w.GDiv) + 1) / 2
	b = (math.Sin(radius+t/w.BDiv) + 1) / 2
	return r, g, b
}
