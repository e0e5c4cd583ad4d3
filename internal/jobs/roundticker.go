package jobs

import (
	"context"
	"time"

	"rollhouse/internal/house"
)

// RoundTicker drives the round clock: every interval it seals the open
// round and opens the next.
type RoundTicker struct {
	Service  *house.Service
	Interval time.Duration
}

func (t *RoundTicker) Name() string { return "round_ticker" }

func (t *RoundTicker) Start(ctx context.Context) {
	t.Service.Tick(ctx)

	tick := time.NewTicker(t.Interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			t.Service.Tick(ctx)
		}
	}
}
