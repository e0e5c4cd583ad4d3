package jobs

import (
	"context"
	"time"

	"rollhouse/internal/house"
)

// Sweeper force-settles positions stuck on expired rounds so their
// owners can play again.
type Sweeper struct {
	Service  *house.Service
	Interval time.Duration
}

func (s *Sweeper) Name() string { return "expiry_sweeper" }

func (s *Sweeper) Start(ctx context.Context) {
	tick := time.NewTicker(s.Interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			s.Service.SweepExpired(ctx)
		}
	}
}
