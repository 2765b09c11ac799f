package export

import (
	"errors"
	"time"

	"github.com/san-kum/glowgrid/internal/grid"
)

var ErrNoFrames = errors.New("export: no frames")

// Frames returns n snapshots derived from initial at start, start+interval, ...
// Since colors depend only on wall-clock time, the sequence equals what a
// live animator would publish at those instants.
func Frames(initial *grid.Snapshot, w grid.Wave, start time.Time, interval time.Duration, n int) []*grid.Snapshot {
	frames := make([]*grid.Snapshot, 0, n)
	for k := 0; k < n; k++ {
		t := start.Add(time.Duration(k) * interval)
		frames = append(frames, initial.Next(w, t.UnixMilli()))
	}
	return frames
}
