package export

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"
	"github.com/san-kum/glowgrid/internal/grid"
	"github.com/san-kum/glowgrid/internal/render"
)

const patternID = "cellPattern"

// SVG writes snapshots as scalable vector surfaces of cols*10 by rows*10 units.
type SVG struct {
	Palette render.Palette
	// Title is emitted as the document title when set.
	Title string
}

func NewSVG(p render.Palette) *SVG {
	return &SVG{Palette: p}
}

// Render draws s to w. The tile grid is a single pattern fill; each cell adds
// a group with its glow, keyed by the cell identity.
func (e *SVG) Render(w io.Writer, s *grid.Snapshot) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)

	width := s.Cols() * render.TileSize
	height := s.Rows() * render.TileSize
	canvas.Startview(width, height, 0, 0, width, height)
	if e.Title != "" {
		canvas.Title(e.Title)
	}

	canvas.Def()
	canvas.Pattern(patternID, 0, 0, render.TileSize, render.TileSize, "user")
	canvas.Rect(0, 0, render.TileSize, render.TileSize,
		fmt.Sprintf(`fill="%s"`, e.Palette.Background.Hex()),
		fmt.Sprintf(`stroke="%s"`, e.Palette.Stroke.Hex()),
		fmt.Sprintf(`stroke-width="%g"`, render.StrokeWidth))
	canvas.PatternEnd()
	canvas.DefEnd()

	canvas.Rect(0, 0, width, height, fmt.Sprintf(`fill="url(#%s)"`, patternID))

	s.Each(func(i, j int, c grid.Cell) {
		x := j*render.TileSize + render.TileSize/2
		y := i*render.TileSize + render.TileSize/2
		r, g, b := render.ToRGB255(c)

		canvas.Group(fmt.Sprintf(`id="cell-%s"`, c.ID), fmt.Sprintf(`transform="translate(%d,%d)"`, x, y))
		canvas.Circle(0, 0, render.GlowRadius,
			fmt.Sprintf(`fill="rgb(%d,%d,%d)"`, r, g, b),
			fmt.Sprintf(`opacity="%.4f"`, render.GlowOpacity(c.Max())))
		canvas.Gend()
	})

	canvas.End()
	return ew.err
}

// errWriter keeps the first write error; svgo itself does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	if err != nil {
		ew.err = err
	}
	return n, err
}
