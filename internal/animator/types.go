package animator

import (
	"errors"
	"time"

	"github.com/san-kum/glowgrid/internal/grid"
)

const DefaultInterval = 100 * time.Millisecond

var (
	ErrAlreadyStarted = errors.New("animator: already started")
	ErrStopped        = errors.New("animator: stopped")
	ErrNilSnapshot    = errors.New("animator: initial snapshot is nil")
)

// Publisher receives every snapshot the animator produces. Publish runs on the
// animator goroutine and must not call Stop.
type Publisher interface {
	Publish(s *grid.Snapshot)
}

type PublisherFunc func(s *grid.Snapshot)

func (f PublisherFunc) Publish(s *grid.Snapshot) { f(s) }

type Config struct {
	// Interval is the delay between the end of one tick and the start of the next.
	Interval time.Duration
	Wave     grid.Wave
	// Clock supplies wall-clock time; nil means time.Now.
	Clock func() time.Time
}

func DefaultConfig() Config {
	return Config{
		Interval: DefaultInterval,
		Wave:     grid.DefaultWave(),
	}
}
