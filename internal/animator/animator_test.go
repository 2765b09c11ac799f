package animator

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/glowgrid/internal/grid"
)

type recorder struct {
	mu    sync.Mutex
	snaps []*grid.Snapshot
}

func (r *recorder) Publish(s *grid.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = append(r.snaps, s)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.snaps)
}

func (r *recorder) all() []*grid.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*grid.Snapshot(nil), r.snaps...)
}

// steppingClock advances by one interval on every read.
func steppingClock(start time.Time, step time.Duration) func() time.Time {
	var n atomic.Int64
	return func() time.Time {
		return start.Add(time.Duration(n.Add(1)-1) * step)
	}
}

var _ = Describe("Animator", func() {
	var (
		initial *grid.Snapshot
		cfg     Config
		rec     *recorder
	)

	BeforeEach(func() {
		var err error
		initial, err = grid.New(3, 4)
		Expect(err).NotTo(HaveOccurred())

		cfg = DefaultConfig()
		cfg.Interval = 5 * time.Millisecond
		cfg.Clock = steppingClock(time.UnixMilli(1_700_000_000_000), 100*time.Millisecond)
		rec = &recorder{}
	})

	newAnimator := func() *Animator {
		a, err := New(initial, cfg)
		Expect(err).NotTo(HaveOccurred())
		a.AddPublisher(rec)
		DeferCleanup(a.Stop)
		return a
	}

	Describe("New", func() {
		It("rejects a nil snapshot", func() {
			_, err := New(nil, cfg)
			Expect(err).To(MatchError(ErrNilSnapshot))
		})

		It("rejects a non-positive interval", func() {
			cfg.Interval = 0
			_, err := New(initial, cfg)
			Expect(err).To(HaveOccurred())
		})

		It("rejects an invalid wave", func() {
			cfg.Wave.GDiv = 0
			_, err := New(initial, cfg)
			Expect(err).To(MatchError(grid.ErrInvalidWave))
		})

		It("exposes the initial snapshot before starting", func() {
			a := newAnimator()
			Expect(a.Latest()).To(BeIdenticalTo(initial))
			Expect(a.Ticks()).To(BeZero())
		})
	})

	Describe("Start", func() {
		It("publishes immediately and keeps ticking", func() {
			a := newAnimator()
			Expect(a.Start(context.Background())).To(Succeed())

			Eventually(rec.count).Should(BeNumerically(">=", 5))
			Expect(a.Ticks()).To(BeNumerically(">=", 5))
		})

		It("refuses to start twice", func() {
			a := newAnimator()
			Expect(a.Start(context.Background())).To(Succeed())
			Expect(a.Start(context.Background())).To(MatchError(ErrAlreadyStarted))
		})

		It("refuses to start after Stop", func() {
			a := newAnimator()
			a.Stop()
			Expect(a.Start(context.Background())).To(MatchError(ErrStopped))
		})

		It("publishes snapshots in timer order with stable identities", func() {
			a := newAnimator()
			Expect(a.Start(context.Background())).To(Succeed())
			Eventually(rec.count).Should(BeNumerically(">=", 4))
			a.Stop()

			snaps := rec.all()
			for i, s := range snaps {
				Expect(s.IDs()).To(Equal(initial.IDs()))
				Expect(s.Rows()).To(Equal(3))
				Expect(s.Cols()).To(Equal(4))
				if i > 0 {
					Expect(s.Time()).To(BeNumerically(">", snaps[i-1].Time()))
				}
			}
			Expect(a.Latest()).To(BeIdenticalTo(snaps[len(snaps)-1]))
		})

		It("computes colors from the clock reading", func() {
			a := newAnimator()
			Expect(a.Start(context.Background())).To(Succeed())
			Eventually(rec.count).Should(BeNumerically(">=", 1))
			a.Stop()

			first := rec.all()[0]
			Expect(first.Time()).To(Equal(int64(1_700_000_000_000)))
			r, g, b := cfg.Wave.Color(1, 2, 3, 4, float64(first.Time()))
			c := first.At(1, 2)
			Expect(c.R).To(Equal(r))
			Expect(c.G).To(Equal(g))
			Expect(c.B).To(Equal(b))
		})

		It("waits a full interval after each tick completes", func() {
			cfg.Interval = 20 * time.Millisecond
			var stamps []time.Time
			var mu sync.Mutex
			slow := PublisherFunc(func(*grid.Snapshot) {
				mu.Lock()
				stamps = append(stamps, time.Now())
				mu.Unlock()
				time.Sleep(30 * time.Millisecond)
			})

			a := newAnimator()
			a.AddPublisher(slow)
			Expect(a.Start(context.Background())).To(Succeed())
			Eventually(rec.count, time.Second).Should(BeNumerically(">=", 3))
			a.Stop()

			mu.Lock()
			defer mu.Unlock()
			for i := 1; i < len(stamps); i++ {
				Expect(stamps[i].Sub(stamps[i-1])).To(BeNumerically(">=", 50*time.Millisecond))
			}
		})
	})

	Describe("teardown", func() {
		It("publishes nothing after Stop", func() {
			a := newAnimator()
			Expect(a.Start(context.Background())).To(Succeed())
			Eventually(rec.count).Should(BeNumerically(">=", 2))

			a.Stop()
			n := rec.count()
			Consistently(rec.count, 50*time.Millisecond).Should(Equal(n))
			Eventually(a.Done()).Should(BeClosed())
		})

		It("stops when the owning context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			a := newAnimator()
			Expect(a.Start(ctx)).To(Succeed())
			Eventually(rec.count).Should(BeNumerically(">=", 1))

			cancel()
			Eventually(a.Done()).Should(BeClosed())
			n := rec.count()
			Consistently(rec.count, 30*time.Millisecond).Should(Equal(n))
		})

		It("drops a tick that fired before teardown was observed", func() {
			var a *Animator
			var reads atomic.Int32
			base := time.UnixMilli(1_700_000_000_000)
			cfg.Clock = func() time.Time {
				// the second tick has already fired when teardown lands
				if reads.Add(1) == 2 {
					a.alive.Store(false)
				}
				return base
			}
			a = newAnimator()
			Expect(a.Start(context.Background())).To(Succeed())

			Eventually(a.Done()).Should(BeClosed())
			Expect(rec.count()).To(Equal(1))
			Expect(a.Ticks()).To(Equal(uint64(1)))
		})

		It("does not reschedule when teardown happens during publish", func() {
			release := make(chan struct{})
			entered := make(chan struct{}, 1)
			blocking := PublisherFunc(func(*grid.Snapshot) {
				select {
				case entered <- struct{}{}:
					<-release
				default:
				}
			})

			a := newAnimator()
			a.AddPublisher(blocking)
			Expect(a.Start(context.Background())).To(Succeed())
			Eventually(entered).Should(Receive())

			stopped := make(chan struct{})
			go func() {
				a.Stop()
				close(stopped)
			}()
			Eventually(func() bool { return a.alive.Load() }).Should(BeFalse())
			close(release)

			Eventually(stopped).Should(BeClosed())
			Expect(rec.count()).To(Equal(1))
		})

		It("drops a tick that fired before context cancellation was observed", func() {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			var reads atomic.Int32
			base := time.UnixMilli(1_700_000_000_000)
			cfg.Clock = func() time.Time {
				// the second tick is mid-computation when the owner goes away
				if reads.Add(1) == 2 {
					cancel()
				}
				return base
			}
			a := newAnimator()
			Expect(a.Start(ctx)).To(Succeed())

			Eventually(a.Done()).Should(BeClosed())
			Expect(rec.count()).To(Equal(1))
			Expect(a.Ticks()).To(Equal(uint64(1)))
		})

		It("does not tick when started with a cancelled context", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			a := newAnimator()
			Expect(a.Start(ctx)).To(Succeed())

			Eventually(a.Done()).Should(BeClosed())
			Expect(rec.count()).To(BeZero())
		})

		It("is safe to call Stop repeatedly and before Start", func() {
			a := newAnimator()
			a.Stop()
			a.Stop()
			Expect(rec.count()).To(BeZero())
			Eventually(a.Done()).Should(BeClosed())
		})
	})
})

var _ = Describe("ChannelPublisher", func() {
	It("keeps only the newest pending snapshot", func() {
		p := NewChannelPublisher()
		s1, _ := grid.New(1, 1)
		s2 := s1.Next(grid.DefaultWave(), 1)
		s3 := s1.Next(grid.DefaultWave(), 2)

		p.Publish(s1)
		p.Publish(s2)
		p.Publish(s3)

		Expect(p.C()).To(Receive(BeIdenticalTo(s3)))
		Expect(p.C()).NotTo(Receive())
	})

	It("delivers to a reader on another goroutine", func() {
		p := NewChannelPublisher()
		s, _ := grid.New(2, 2)
		go p.Publish(s)
		Eventually(p.C()).Should(Receive(BeIdenticalTo(s)))
	})
})
