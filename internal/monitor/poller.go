package monitor

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/LauJosefsen/mysql-admin-web/internal/domain"
)

// Snapshot is one poll result. Err is set when acquisition failed; the
// poller keeps running either way.
type Snapshot struct {
	Sessions []domain.EnrichedSession
	Err      error
	TakenAt  time.Time
}

// Poller takes snapshots on a fixed interval and delivers them on a
// channel. Built on clock.Clock so tests can drive the ticker.
type Poller struct {
	source   Source
	interval time.Duration
	clock    clock.Clock
	out      chan Snapshot
}

// NewPoller creates a poller. A nil clk uses the wall clock.
func NewPoller(source Source, interval time.Duration, clk clock.Clock) *Poller {
	if clk == nil {
		clk = clock.New()
	}
	return &Poller{
		source:   source,
		interval: interval,
		clock:    clk,
		out:      make(chan Snapshot, 1),
	}
}

// Snapshots returns the delivery channel. Closed when Run returns.
func (p *Poller) Snapshots() <-chan Snapshot {
	return p.out
}

// Run polls immediately, then on every tick, until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	defer close(p.out)

	ticker := p.clock.Ticker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	sessions, err := SnapshotView(ctx, p.source)
	snap := Snapshot{Sessions: sessions, Err: err, TakenAt: p.clock.Now()}
	select {
	case p.out <- snap:
	case <-ctx.Done():
	}
}
