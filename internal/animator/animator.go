package animator

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/glowgrid/internal/grid"
)

// Animator recomputes a grid snapshot on a fixed-interval re-trigger and
// publishes it. The next tick is scheduled only after the previous one has
// completed, so slow ticks stretch the period instead of queuing.
type Animator struct {
	cfg        Config
	publishers []Publisher
	logger     *log.Logger

	latest atomic.Pointer[grid.Snapshot]
	ticks  atomic.Uint64
	alive  atomic.Bool

	mu      sync.Mutex
	started bool
	stopped bool
	cancel  context.CancelFunc
	done    chan struct{}
	once    sync.Once
}

// New builds an animator that will derive its snapshots from initial. It does
// not tick until Start.
func New(initial *grid.Snapshot, cfg Config) (*Animator, error) {
	if initial == nil {
		return nil, ErrNilSnapshot
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	a := &Animator{
		cfg:        cfg,
		publishers: make([]Publisher, 0),
		logger:     log.New(io.Discard),
		done:       make(chan struct{}),
	}
	a.latest.Store(initial)
	return a, nil
}

// AddPublisher registers p to receive every snapshot. Call it before Start.
func (a *Animator) AddPublisher(p Publisher) { a.publishers = append(a.publishers, p) }

// SetLogger replaces the default discarding logger. Call it before Start.
func (a *Animator) SetLogger(logger *log.Logger) { a.logger = logger }

func validateConfig(cfg Config) error {
	if cfg.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", cfg.Interval)
	}
	return cfg.Wave.Validate()
}

// Start publishes the first snapshot immediately and keeps ticking on its own
// goroutine until ctx is cancelled or Stop is called.
func (a *Animator) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		return ErrStopped
	}
	if a.started {
		return ErrAlreadyStarted
	}
	a.started = true

	ctx, a.cancel = context.WithCancel(ctx)
	a.alive.Store(true)

	s := a.latest.Load()
	a.logger.Debug("animator started", "rows", s.Rows(), "cols", s.Cols(), "interval", a.cfg.Interval)

	go a.run(ctx)
	return nil
}

// Stop tears the loop down and waits for its goroutine to exit. Nothing is
// published once Stop has been entered, even if a tick had already fired.
func (a *Animator) Stop() {
	a.alive.Store(false)

	a.mu.Lock()
	a.stopped = true
	started, cancel := a.started, a.cancel
	a.mu.Unlock()
	if !started {
		a.closeDone()
		return
	}
	cancel()
	<-a.done
}

func (a *Animator) closeDone() { a.once.Do(func() { close(a.done) }) }

// Done is closed when the loop goroutine has exited, or by Stop if the loop
// was never started.
func (a *Animator) Done() <-chan struct{} { return a.done }

// Latest returns the most recently published snapshot, or the initial one
// before the first tick.
func (a *Animator) Latest() *grid.Snapshot { return a.latest.Load() }

// Ticks reports how many snapshots have been published.
func (a *Animator) Ticks() uint64 { return a.ticks.Load() }

func (a *Animator) run(ctx context.Context) {
	defer a.closeDone()
	defer func() { a.logger.Debug("animator stopped", "ticks", a.ticks.Load()) }()

	timer := time.NewTimer(a.cfg.Interval)
	defer timer.Stop()

	for {
		if !a.tick(ctx) {
			return
		}
		timer.Reset(a.cfg.Interval)

		select {
		case <-ctx.Done():
			a.alive.Store(false)
			return
		case <-timer.C:
		}
	}
}

// live reports whether neither Stop nor ctx cancellation has torn the loop down.
func (a *Animator) live(ctx context.Context) bool {
	if ctx.Err() != nil {
		a.alive.Store(false)
	}
	return a.alive.Load()
}

// tick computes and publishes one snapshot. It reports whether the loop
// should reschedule.
func (a *Animator) tick(ctx context.Context) bool {
	if !a.live(ctx) {
		return false
	}
	t := a.cfg.Clock().UnixMilli()
	next := a.latest.Load().Next(a.cfg.Wave, t)

	if !a.live(ctx) {
		return false
	}
	a.latest.Store(next)
	a.ticks.Add(1)
	for _, p := range a.publishers {
		p.Publish(next)
	}
	return a.live(ctx)
}
