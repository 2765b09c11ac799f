package animator

import "github.com/san-kum/glowgrid/internal/grid"

// ChannelPublisher hands snapshots to a consumer on another goroutine. It
// holds at most one pending snapshot; a slow reader only ever sees the newest.
type ChannelPublisher struct {
	ch chan *grid.Snapshot
}

func NewChannelPublisher() *ChannelPublisher {
	return &ChannelPublisher{ch: make(chan *grid.Snapshot, 1)}
}

func (p *ChannelPublisher) Publish(s *grid.Snapshot) {
	for {
		select {
		case p.ch <- s:
			return
		default:
		}
		select {
		case <-p.ch:
		default:
		}
	}
}

func (p *ChannelPublisher) C() <-chan *grid.Snapshot { return p.ch }
