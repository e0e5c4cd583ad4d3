package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"rollhouse/internal/cache"
	"rollhouse/internal/leaderboard"
	"rollhouse/internal/logger"
)

// LeaderboardFlush snapshots the standings to redis so restarts keep
// the board. No-op when the cache is disabled.
type LeaderboardFlush struct {
	Board    *leaderboard.Board
	Interval time.Duration
}

func (f *LeaderboardFlush) Name() string { return "leaderboard_flush" }

func (f *LeaderboardFlush) Start(ctx context.Context) {
	if !cache.Enabled() {
		return
	}

	tick := time.NewTicker(f.Interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := f.Board.Snapshot(); err != nil {
				logger.Log.Error("leaderboard snapshot failed", zap.Error(err))
			}
			return
		case <-tick.C:
			if err := f.Board.Snapshot(); err != nil {
				logger.Log.Error("leaderboard snapshot failed", zap.Error(err))
			}
		}
	}
}
