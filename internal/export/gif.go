package export

import (
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"time"

	"github.com/san-kum/glowgrid/internal/grid"
	"github.com/san-kum/glowgrid/internal/render"
)

// WriteGIF encodes frames as a looping animated GIF with delay between frames.
func WriteGIF(w io.Writer, r *render.Rasterizer, frames []*grid.Snapshot, delay time.Duration) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	centis := int(delay / (10 * time.Millisecond))
	if centis < 1 {
		centis = 1
	}

	anim := gif.GIF{LoopCount: 0}
	for _, s := range frames {
		src := r.Rasterize(s)
		img := image.NewPaletted(src.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(img, src.Bounds(), src, image.Point{})
		anim.Image = append(anim.Image, img)
		anim.Delay = append(anim.Delay, centis)
	}
	return gif.EncodeAll(w, &anim)
}
