package house

import (
	"context"
	"encoding/hex"
	"time"

	"go.uber.org/zap"

	"rollhouse/internal/engine"
	"rollhouse/internal/event"
	"rollhouse/internal/logger"
	"rollhouse/internal/monitoring"
)

// OpenRound starts the next entropy window. At most one round is open
// at a time; an already-open round is returned unchanged.
func (s *Service) OpenRound(ctx context.Context) (*engine.Round, error) {
	s.roundMu.Lock()
	defer s.roundMu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	cur, err := currentRound(tx)
	if err != nil {
		return nil, err
	}
	if cur != nil && !cur.Sealed {
		return cur, nil
	}

	id := uint64(1)
	if cur != nil {
		id = cur.ID + 1
	}
	now := time.Now().Unix()
	r := &engine.Round{
		ID:        id,
		OpenedAt:  now,
		ExpiresAt: now + int64(s.roundLife/time.Second),
	}
	if err := insertRound(tx, r); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	monitoring.RoundsOpened.Inc()
	s.bus.Publish(event.EventRoundOpened, &RoundEvent{
		Round: r.ID, OpenedAt: r.OpenedAt, ExpiresAt: r.ExpiresAt,
	})
	logger.Log.Info("round opened", zap.Uint64("round", r.ID), zap.Int64("expires_at", r.ExpiresAt))
	return r, nil
}

// SealCurrentRound snapshots entropy into the open round, making it
// settleable. Degenerate seeds are stored as-is and surface as
// ErrEntropyUnusable at settlement.
func (s *Service) SealCurrentRound(ctx context.Context) (*engine.Round, error) {
	s.roundMu.Lock()
	defer s.roundMu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	cur, err := currentRound(tx)
	if err != nil {
		return nil, err
	}
	if cur == nil || cur.Sealed {
		return nil, engine.ErrRoundNotActive
	}

	seed, err := s.beacon.Seed(ctx)
	if err != nil {
		logger.Log.Error("beacon failed", zap.Uint64("round", cur.ID), zap.Error(err))
		return nil, err
	}
	cur.Seal(seed)
	if err := sealRound(tx, cur); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	if !engine.UsableSeed(seed) {
		logger.Log.Error("sealed with unusable seed", zap.Uint64("round", cur.ID))
	}
	s.bus.Publish(event.EventRoundSealed, &RoundEvent{
		Round: cur.ID, OpenedAt: cur.OpenedAt, ExpiresAt: cur.ExpiresAt, Sealed: true,
	})
	logger.Log.Info("round sealed", zap.Uint64("round", cur.ID))
	return cur, nil
}

// Tick advances the round clock one step: seal the open round, open
// the next. Driven by the round ticker job.
func (s *Service) Tick(ctx context.Context) {
	if _, err := s.SealCurrentRound(ctx); err != nil && err != engine.ErrRoundNotActive {
		logger.Log.Error("seal failed", zap.Error(err))
	}
	if _, err := s.OpenRound(ctx); err != nil {
		logger.Log.Error("open failed", zap.Error(err))
	}
}

// RoundView is the public shape of a round. The seed becomes public
// once sealed so outcomes can be verified offline.
type RoundView struct {
	ID        uint64 `json:"id"`
	OpenedAt  int64  `json:"opened_at"`
	ExpiresAt int64  `json:"expires_at"`
	Sealed    bool   `json:"sealed"`
	Seed      string `json:"seed,omitempty"`
}

func viewRound(r *engine.Round) *RoundView {
	v := &RoundView{ID: r.ID, OpenedAt: r.OpenedAt, ExpiresAt: r.ExpiresAt, Sealed: r.Sealed}
	if r.Sealed {
		v.Seed = hex.EncodeToString(r.Seed[:])
	}
	return v
}

func (s *Service) CurrentRound() (*RoundView, error) {
	r, err := currentRound(s.db)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, engine.ErrRoundNotActive
	}
	return viewRound(r), nil
}

// SweepExpired force-settles positions whose bound round expired
// unsettled, unblocking them for the current round. Returns how many
// were swept.
func (s *Service) SweepExpired(ctx context.Context) int {
	now := time.Now().Unix()
	rows, err := s.db.Query(`
	SELECT p.game, p.player, p.round FROM positions p
	WHERE p.round > 0
	  AND EXISTS (SELECT 1 FROM bets b WHERE b.game = p.game AND b.player = p.player AND b.stake > 0)
	  AND EXISTS (SELECT 1 FROM rounds r WHERE r.id = p.round AND r.expires_at < ?)
	`, now)
	if err != nil {
		logger.Log.Error("sweep query failed", zap.Error(err))
		return 0
	}

	type target struct {
		game   string
		player string
		round  uint64
	}
	var targets []target
	for rows.Next() {
		var t target
		if err := rows.Scan(&t.game, &t.player, &t.round); err != nil {
			rows.Close()
			logger.Log.Error("sweep scan failed", zap.Error(err))
			return 0
		}
		targets = append(targets, t)
	}
	rows.Close()

	swept := 0
	for _, t := range targets {
		if _, err := s.ForceSettle(ctx, engine.GameID(t.game), t.player, t.round, "sweeper"); err != nil {
			logger.Log.Debug("sweep skipped",
				zap.String("game", t.game), zap.String("player", t.player),
				zap.Uint64("round", t.round), zap.Error(err))
			continue
		}
		swept++
	}
	if swept > 0 {
		logger.Log.Info("swept expired positions", zap.Int("count", swept))
	}
	return swept
}
