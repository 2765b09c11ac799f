package render

import (
	"image"
	"math"

	"github.com/san-kum/glowgrid/internal/grid"
)

// Rasterizer draws snapshots into bitmaps at scale pixels per surface unit.
type Rasterizer struct {
	Palette Palette
	Scale   int
}

func NewRasterizer(p Palette, scale int) *Rasterizer {
	if scale <= 0 {
		scale = 1
	}
	return &Rasterizer{Palette: p, Scale: scale}
}

// Bounds is the pixel rectangle of a rows×cols surface.
func (r *Rasterizer) Bounds(rows, cols int) image.Rectangle {
	return image.Rect(0, 0, cols*TileSize*r.Scale, rows*TileSize*r.Scale)
}

func (r *Rasterizer) Rasterize(s *grid.Snapshot) *image.RGBA {
	img := image.NewRGBA(r.Bounds(s.Rows(), s.Cols()))
	tile := TileSize * r.Scale
	radius := float64(GlowRadius * r.Scale)
	bg := r.Palette.Background
	stroke := bg.BlendRgb(r.Palette.Stroke, math.Min(StrokeWidth*float64(r.Scale), 1))

	s.Each(func(i, j int, c grid.Cell) {
		x0, y0 := j*tile, i*tile
		cx, cy := float64(x0)+float64(tile)/2, float64(y0)+float64(tile)/2
		glow := Composite(bg, c)

		for y := y0; y < y0+tile; y++ {
			for x := x0; x < x0+tile; x++ {
				px := bg
				if x == x0 || y == y0 || x == x0+tile-1 || y == y0+tile-1 {
					px = stroke
				}
				dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
				if dx*dx+dy*dy <= radius*radius {
					px = glow
				}
				img.Set(x, y, px)
			}
		}
	})
	return img
}
