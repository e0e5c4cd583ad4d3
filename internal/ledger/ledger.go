package ledger

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"rollhouse/internal/engine"
)

// Journal row kinds. Every movement of value through a game writes
// exactly one row per leg, inside the operation's transaction.
const (
	KindFund      = "fund"      // vault -> bankroll
	KindEscrow    = "escrow"    // player stake absorbed into bankroll
	KindPayout    = "payout"    // bankroll -> pending winnings
	KindForfeit   = "forfeit"   // losing stake kept by the house
	KindRefund    = "refund"    // stale-epoch stake returned to pending
	KindClaim     = "claim"     // pending -> player wallet
	KindDebt      = "debt"      // bankroll -> wallet against recorded debt
	KindShortfall = "shortfall" // uncovered payout recorded as house IOU
)

type Service struct {
	db *sql.DB
}

func New(db *sql.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Record(tx *sql.Tx, game engine.GameID, player, kind string, amount uint64, round uint64) error {
	ref := uuid.New().String()
	ts := time.Now().Unix()

	_, err := tx.Exec(`
	INSERT INTO journal(ref,game,player,kind,amount,round,ts)
	VALUES (?,?,?,?,?,?,?)
	`, ref, game, player, kind, int64(amount), int64(round), ts)

	return err
}

type Entry struct {
	Ref    string `json:"ref"`
	Game   string `json:"game"`
	Player string `json:"player"`
	Kind   string `json:"kind"`
	Amount uint64 `json:"amount"`
	Round  uint64 `json:"round"`
	TS     int64  `json:"ts"`
}

// Recent returns the newest journal rows for a game, newest first.
func (s *Service) Recent(game engine.GameID, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
	SELECT ref, game, player, kind, amount, round, ts FROM journal
	WHERE game = ? ORDER BY id DESC LIMIT ?
	`, game, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var amount, round int64
		if err := rows.Scan(&e.Ref, &e.Game, &e.Player, &e.Kind, &amount, &round, &e.TS); err != nil {
			return nil, err
		}
		e.Amount = uint64(amount)
		e.Round = uint64(round)
		out = append(out, e)
	}
	return out, rows.Err()
}
