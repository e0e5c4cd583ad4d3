package house

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"rollhouse/internal/audit"
	"rollhouse/internal/engine"
	"rollhouse/internal/event"
	"rollhouse/internal/games"
	"rollhouse/internal/ledger"
	"rollhouse/internal/logger"
	"rollhouse/internal/monitoring"
	"rollhouse/internal/vault"
)

// Claim transfers the position's pending winnings to the player's
// wallet. The bankroll is untouched; the funds left it at settlement.
func (s *Service) Claim(ctx context.Context, gameID engine.GameID, player string) (uint64, error) {
	l := s.gameLock(gameID)
	l.Lock()
	defer l.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	_, p, err := loadState(tx, gameID, player)
	if err != nil {
		return 0, err
	}

	amount, err := engine.Claim(p)
	if err != nil {
		return 0, err
	}
	if err := s.vault.TransferTx(tx, vault.HouseAccount(gameID), player, amount); err != nil {
		return 0, err
	}
	if err := s.ledger.Record(tx, gameID, player, ledger.KindClaim, amount, p.LastSettled); err != nil {
		return 0, err
	}
	if err := savePosition(tx, p); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}

	monitoring.ClaimsPaid.WithLabelValues(string(gameID)).Add(float64(amount))
	s.bus.Publish(event.EventClaimPaid, &ClaimEvent{
		Game: string(gameID), Player: player, Amount: amount,
	})
	logger.Log.Info("claim paid",
		zap.String("game", string(gameID)),
		zap.String("player", player),
		zap.Uint64("amount", amount))
	return amount, nil
}

// ClaimDebt pays down a recorded house IOU from whatever bankroll is
// on hand. Partial payments are allowed; the remainder stays recorded.
func (s *Service) ClaimDebt(ctx context.Context, gameID engine.GameID, player string) (uint64, error) {
	l := s.gameLock(gameID)
	l.Lock()
	defer l.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	g, p, err := loadState(tx, gameID, player)
	if err != nil {
		return 0, err
	}

	amount, err := engine.ClaimDebt(g, p)
	if err != nil {
		return 0, err
	}
	if err := s.vault.TransferTx(tx, vault.HouseAccount(gameID), player, amount); err != nil {
		return 0, err
	}
	if err := s.ledger.Record(tx, gameID, player, ledger.KindDebt, amount, p.LastSettled); err != nil {
		return 0, err
	}
	if err := saveGame(tx, g); err != nil {
		return 0, err
	}
	if err := savePosition(tx, p); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}

	monitoring.ObserveHouse(string(gameID), g.Bankroll, g.Reserved)
	s.audit.Log(player, audit.ActionDebtPaid, string(gameID),
		fmt.Sprintf("paid=%d remaining=%d", amount, p.UnpaidDebt))
	s.bus.Publish(event.EventClaimPaid, &ClaimEvent{
		Game: string(gameID), Player: player, Amount: amount, Debt: true,
	})
	logger.Log.Info("debt paid",
		zap.String("game", string(gameID)),
		zap.String("player", player),
		zap.Uint64("amount", amount),
		zap.Uint64("remaining", p.UnpaidDebt))
	return amount, nil
}

// FundHouse mints operator capital into the game's vault account and
// bankroll. Admin only.
func (s *Service) FundHouse(ctx context.Context, gameID engine.GameID, amount uint64, actor string) error {
	l := s.gameLock(gameID)
	l.Lock()
	defer l.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	g, err := loadGame(tx, gameID)
	if err != nil {
		return err
	}
	if err := g.Fund(amount); err != nil {
		return err
	}
	if err := s.vault.CreditTx(tx, vault.HouseAccount(gameID), amount); err != nil {
		return err
	}
	if err := s.ledger.Record(tx, gameID, actor, ledger.KindFund, amount, 0); err != nil {
		return err
	}
	if err := saveGame(tx, g); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	monitoring.ObserveHouse(string(gameID), g.Bankroll, g.Reserved)
	s.audit.Log(actor, audit.ActionFund, string(gameID), fmt.Sprintf("amount=%d bankroll=%d", amount, g.Bankroll))
	logger.Log.Info("house funded",
		zap.String("game", string(gameID)),
		zap.Uint64("amount", amount),
		zap.Uint64("bankroll", g.Bankroll))
	return nil
}

// ResolveInsolvency re-runs the settlement that halted the game. The
// covered part of the payout moves to pending as usual; the shortfall
// becomes a recorded debt the player collects through ClaimDebt as the
// house is refunded. Admin only.
func (s *Service) ResolveInsolvency(ctx context.Context, gameID engine.GameID, player string, roundID uint64, actor string) (*engine.SettleResult, error) {
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

	res, err := engine.ResolveInsolvency(g, p, cat, r)
	if err != nil {
		return nil, err
	}

	if err := s.recordSettlement(tx, gameID, player, roundID, res); err != nil {
		return nil, err
	}
	if res.Debt > 0 {
		if err := s.ledger.Record(tx, gameID, player, ledger.KindShortfall, res.Debt, roundID); err != nil {
			return nil, err
		}
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

	s.audit.Log(actor, audit.ActionResolve, string(gameID),
		fmt.Sprintf("round=%d player=%s paid=%d debt=%d", roundID, player, res.Paid, res.Debt))
	s.afterSettle(gameID, player, res, false)
	logger.Log.Warn("insolvency resolved",
		zap.String("game", string(gameID)),
		zap.String("player", player),
		zap.Uint64("covered", res.Paid),
		zap.Uint64("debt", res.Debt))
	return res, nil
}
