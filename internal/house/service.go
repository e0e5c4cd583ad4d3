package house

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"rollhouse/internal/audit"
	"rollhouse/internal/chain"
	"rollhouse/internal/engine"
	"rollhouse/internal/event"
	"rollhouse/internal/games"
	"rollhouse/internal/ledger"
	"rollhouse/internal/logger"
	"rollhouse/internal/monitoring"
	"rollhouse/internal/vault"
)

// Service is the operation layer: every public method is one atomic
// unit, serialized per game, that loads state, runs the engine, and
// persists the result in a single transaction. Failed operations leave
// no partial state behind.
type Service struct {
	db        *sql.DB
	vault     *vault.Service
	ledger    *ledger.Service
	audit     *audit.Service
	bus       *event.Bus
	beacon    chain.Beacon
	roundLife time.Duration

	mu      sync.Mutex
	locks   map[engine.GameID]*sync.Mutex
	roundMu sync.Mutex
}

func New(db *sql.DB, v *vault.Service, led *ledger.Service, aud *audit.Service, bus *event.Bus, beacon chain.Beacon, roundLife time.Duration) *Service {
	s := &Service{
		db:        db,
		vault:     v,
		ledger:    led,
		audit:     aud,
		bus:       bus,
		beacon:    beacon,
		roundLife: roundLife,
		locks:     make(map[engine.GameID]*sync.Mutex),
	}
	for _, cat := range games.All() {
		ensureGame(db, cat.ID())
	}
	return s
}

func (s *Service) gameLock(id engine.GameID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

func loadState(tx dbtx, gameID engine.GameID, player string) (*engine.Game, *engine.Position, error) {
	g, err := loadGame(tx, gameID)
	if err != nil {
		return nil, nil, err
	}
	p, err := loadPosition(tx, gameID, player, g.Epoch)
	if err != nil {
		return nil, nil, err
	}
	return g, p, nil
}

// BetReceipt is returned to the bettor and published on the bus.
type BetReceipt struct {
	Game     string `json:"game"`
	Player   string `json:"player"`
	Kind     string `json:"kind"`
	Aux      uint8  `json:"aux,omitempty"`
	Amount   uint64 `json:"amount"`
	Epoch    uint64 `json:"epoch"`
	Round    uint64 `json:"round,omitempty"`
	Refunded uint64 `json:"refunded,omitempty"`
}

// SettleEvent is the bus payload for settled and force-settled rounds.
type SettleEvent struct {
	Game       string `json:"game"`
	Player     string `json:"player"`
	Round      uint64 `json:"round"`
	Die1       uint8  `json:"die1,omitempty"`
	Die2       uint8  `json:"die2,omitempty"`
	Sum        uint8  `json:"sum,omitempty"`
	Paid       uint64 `json:"paid"`
	Forfeited  uint64 `json:"forfeited"`
	Refunded   uint64 `json:"refunded,omitempty"`
	Net        int64  `json:"net"`
	Point      uint8  `json:"point"`
	EpochEnded bool   `json:"epoch_ended,omitempty"`
	Forced     bool   `json:"forced,omitempty"`
}

// ClaimEvent is the bus payload for claim and debt payouts.
type ClaimEvent struct {
	Game   string `json:"game"`
	Player string `json:"player"`
	Amount uint64 `json:"amount"`
	Debt   bool   `json:"debt,omitempty"`
}

// RoundEvent is the bus payload for round lifecycle changes.
type RoundEvent struct {
	Round     uint64 `json:"round"`
	OpenedAt  int64  `json:"opened_at"`
	ExpiresAt int64  `json:"expires_at"`
	Sealed    bool   `json:"sealed"`
}

// PlaceBet escrows the stake from the player's wallet into the house
// account and admits the bet against the bankroll.
func (s *Service) PlaceBet(ctx context.Context, gameID engine.GameID, player string, kind engine.BetKind, aux uint8, amount uint64) (*BetReceipt, error) {
	cat, err := games.Get(gameID)
	if err != nil {
		return nil, err
	}

	l := s.gameLock(gameID)
	l.Lock()
	defer l.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	g, p, err := loadState(tx, gameID, player)
	if err != nil {
		return nil, err
	}
	r, err := currentRound(tx)
	if err != nil {
		return nil, err
	}

	if err := s.vault.TransferTx(tx, player, vault.HouseAccount(gameID), amount); err != nil {
		return nil, err
	}

	res, err := engine.PlaceBet(g, p, cat, r, kind, aux, amount)
	if err != nil {
		logger.Log.Debug("bet rejected",
			zap.String("game", string(gameID)), zap.String("player", player),
			zap.Uint8("kind", uint8(kind)), zap.Error(err))
		return nil, err
	}

	var roundRef uint64
	if r != nil {
		roundRef = r.ID
	}
	if res.Refunded > 0 {
		if err := s.ledger.Record(tx, gameID, player, ledger.KindRefund, res.Refunded, roundRef); err != nil {
			return nil, err
		}
	}
	if err := s.ledger.Record(tx, gameID, player, ledger.KindEscrow, amount, roundRef); err != nil {
		return nil, err
	}
	if err := saveGame(tx, g); err != nil {
		return nil, err
	}
	if err := savePosition(tx, p); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	monitoring.BetsPlaced.WithLabelValues(string(gameID)).Inc()
	monitoring.AmountWagered.WithLabelValues(string(gameID)).Add(float64(amount))
	monitoring.ObserveHouse(string(gameID), g.Bankroll, g.Reserved)

	receipt := &BetReceipt{
		Game:     string(gameID),
		Player:   player,
		Kind:     cat.KindName(kind),
		Aux:      aux,
		Amount:   amount,
		Epoch:    p.Epoch,
		Round:    p.Round,
		Refunded: res.Refunded,
	}
	s.bus.Publish(event.EventBetPlaced, receipt)
	return receipt, nil
}

// Deal binds an open position to a round for catalogs that require the
// explicit step before settlement.
func (s *Service) Deal(ctx context.Context, gameID engine.GameID, player string, roundID uint64) error {
	cat, err := games.Get(gameID)
	if err != nil {
		return err
	}

	l := s.gameLock(gameID)
	l.Lock()
	defer l.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, p, err := loadState(tx, gameID, player)
	if err != nil {
		return err
	}
	r, err := getRound(tx, roundID)
	if err != nil {
		return err
	}
	if err := engine.Deal(p, cat, r); err != nil {
		return err
	}
	if err := savePosition(tx, p); err != nil {
		return err
	}
	return tx.Commit()
}

// Settle applies a sealed round to the caller's position. Permissionless
// and idempotent per round; an uncovered payout halts the game instead
// of truncating anyone's win.
func (s *Service) Settle(ctx context.Context, gameID engine.GameID, player string, roundID uint64) (*engine.SettleResult, error) {
	cat, err := games.Get(gameID)
	if err != nil {
		return nil, err
	}

	l := s.gameLock(gameID)
	l.Lock()
	defer l.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	g, p, err := loadState(tx, gameID, player)
	if err != nil {
		return nil, err
	}
	r, err := getRound(tx, roundID)
	if err != nil {
		return nil, err
	}

	res, err := engine.Settle(g, p, cat, r, time.Now().Unix())
	if errors.Is(err, engine.ErrInsolventHouse) {
		tx.Rollback()
		s.haltGame(gameID, player, roundID)
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	if err := s.recordSettlement(tx, gameID, player, roundID, res); err != nil {
		return nil, err
	}
	if err := saveGame(tx, g); err != nil {
		return nil, err
	}
	if err := savePosition(tx, p); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.afterSettle(gameID, player, res, false)
	return res, nil
}

func (s *Service) recordSettlement(tx *sql.Tx, gameID engine.GameID, player string, roundID uint64, res *engine.SettleResult) error {
	if res.Refunded > 0 {
		if err := s.ledger.Record(tx, gameID, player, ledger.KindRefund, res.Refunded, roundID); err != nil {
			return err
		}
	}
	if res.Paid > 0 {
		if err := s.ledger.Record(tx, gameID, player, ledger.KindPayout, res.Paid, roundID); err != nil {
			return err
		}
	}
	if res.Forfeited > 0 {
		if err := s.ledger.Record(tx, gameID, player, ledger.KindForfeit, res.Forfeited, roundID); err != nil {
			return err
		}
	}
	return nil
}

// afterSettle publishes and measures a committed settlement.
func (s *Service) afterSettle(gameID engine.GameID, player string, res *engine.SettleResult, forced bool) {
	monitoring.RoundsSettled.WithLabelValues(string(gameID)).Inc()
	if res.Paid > 0 {
		monitoring.PayoutsTotal.WithLabelValues(string(gameID)).Add(float64(res.Paid))
	}
	if res.Forfeited > 0 {
		monitoring.ForfeitsTotal.WithLabelValues(string(gameID)).Add(float64(res.Forfeited))
	}

	ev := &SettleEvent{
		Game:       string(gameID),
		Player:     player,
		Round:      res.Round,
		Paid:       res.Paid,
		Forfeited:  res.Forfeited,
		Refunded:   res.Refunded,
		Net:        res.PlayerNet(),
		Point:      res.Point,
		EpochEnded: res.EpochEnded,
		Forced:     forced,
	}
	if res.Outcome != nil {
		ev.Die1 = res.Outcome.Die1
		ev.Die2 = res.Outcome.Die2
		ev.Sum = res.Outcome.Sum
	}
	s.bus.Publish(event.EventRoundSettled, ev)

	logger.Log.Info("round settled",
		zap.String("game", string(gameID)),
		zap.String("player", player),
		zap.Uint64("round", res.Round),
		zap.Uint8("sum", ev.Sum),
		zap.Uint64("paid", res.Paid),
		zap.Uint64("forfeited", res.Forfeited),
		zap.Bool("forced", forced))
}

// haltGame persists the insolvency halt after the failed settlement
// rolled back. The halt is the only state the failure leaves behind.
func (s *Service) haltGame(gameID engine.GameID, player string, roundID uint64) {
	if _, err := s.db.Exec(`UPDATE games SET halted = 1 WHERE id = ?`, gameID); err != nil {
		logger.Log.Error("halt write failed", zap.String("game", string(gameID)), zap.Error(err))
		return
	}
	s.audit.Log("system", audit.ActionHalt, string(gameID),
		fmt.Sprintf("round=%d player=%s", roundID, player))
	monitoring.InsolvencyHalts.WithLabelValues(string(gameID)).Inc()
	s.bus.Publish(event.EventHouseInsolvent, &SettleEvent{
		Game: string(gameID), Player: player, Round: roundID,
	})
	logger.Log.Error("house insolvent, game halted",
		zap.String("game", string(gameID)),
		zap.String("player", player),
		zap.Uint64("round", roundID))
}

// ForceSettle forfeits an expired position's stakes. Permissionless
// once the round has expired; the sweeper calls it for abandoned
// positions.
func (s *Service) ForceSettle(ctx context.Context, gameID engine.GameID, player string, roundID uint64, actor string) (*engine.SettleResult, error) {
	l := s.gameLock(gameID)
	l.Lock()
	defer l.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	g, p, err := loadState(tx, gameID, player)
	if err != nil {
		return nil, err
	}
	r, err := getRound(tx, roundID)
	if err != nil {
		return nil, err
	}

	res, err := engine.ForceSettle(g, p, r, time.Now().Unix())
	if err != nil {
		return nil, err
	}

	if err := s.recordSettlement(tx, gameID, player, roundID, res); err != nil {
		return nil, err
	}
	if err := saveGame(tx, g); err != nil {
		return nil, err
	}
	if err := savePosition(tx, p); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.audit.Log(actor, audit.ActionForceSettle, string(gameID),
		fmt.Sprintf("round=%d player=%s forfeited=%d refunded=%d", roundID, player, res.Forfeited, res.Refunded))
	s.afterSettle(gameID, player, res, true)
	return res, nil
}
