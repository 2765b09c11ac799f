package export

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"math"
	"time"

	"github.com/icza/mjpeg"
	"github.com/san-kum/glowgrid/internal/grid"
	"github.com/san-kum/glowgrid/internal/render"
)

const jpegQuality = 90

// WriteMJPEG encodes frames into an MJPEG AVI file at path.
func WriteMJPEG(path string, r *render.Rasterizer, frames []*grid.Snapshot, interval time.Duration) (err error) {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	fps := framesPerSecond(interval)

	b := r.Bounds(frames[0].Rows(), frames[0].Cols())
	aw, err := mjpeg.New(path, int32(b.Dx()), int32(b.Dy()), fps)
	if err != nil {
		return fmt.Errorf("create avi: %w", err)
	}
	defer func() {
		if cerr := aw.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close avi: %w", cerr)
		}
	}()

	var buf bytes.Buffer
	for k, s := range frames {
		buf.Reset()
		if err := jpeg.Encode(&buf, r.Rasterize(s), &jpeg.Options{Quality: jpegQuality}); err != nil {
			return fmt.Errorf("frame %d: %w", k, err)
		}
		if err := aw.AddFrame(buf.Bytes()); err != nil {
			return fmt.Errorf("frame %d: %w", k, err)
		}
	}
	return nil
}

// framesPerSecond rounds the tick rate to the nearest whole frame rate, which
// is all an AVI header can carry. A 400ms interval plays at 3 fps (333ms).
// Intervals of a second or more, or none at all, play at 1 fps.
func framesPerSecond(interval time.Duration) int32 {
	if interval <= 0 || interval >= time.Second {
		return 1
	}
	return int32(math.Round(float64(time.Second) / float64(interval)))
}
