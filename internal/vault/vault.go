package vault

import (
	"database/sql"
	"math"

	"rollhouse/internal/engine"
)

// Service keeps token custody: one wallet row per player plus one
// reserved house account per game. Balances are integer token units.
type Service struct {
	db *sql.DB
}

func New(db *sql.DB) *Service {
	return &Service{db: db}
}

// HouseAccount is the wallet holding a game's bankroll and unclaimed
// winnings. The prefix keeps it out of the player namespace.
func HouseAccount(game engine.GameID) string {
	return "house:" + string(game)
}

func (s *Service) Balance(player string) (uint64, error) {
	var b int64
	err := s.db.QueryRow(`SELECT balance FROM wallets WHERE player = ?`, player).Scan(&b)
	if err != nil {
		return 0, err
	}
	return uint64(b), nil
}

func (s *Service) BalanceTx(tx *sql.Tx, player string) (uint64, error) {
	var b int64
	err := tx.QueryRow(`SELECT balance FROM wallets WHERE player = ?`, player).Scan(&b)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return uint64(b), nil
}

func (s *Service) CreditTx(tx *sql.Tx, player string, amount uint64) error {
	if amount > math.MaxInt64 {
		return engine.ErrOverflow
	}
	_, err := tx.Exec(`
	INSERT INTO wallets(player, balance) VALUES (?, ?)
	ON CONFLICT(player) DO UPDATE SET balance = balance + excluded.balance
	`, player, int64(amount))
	return err
}

// DebitTx fails with ErrInsufficientFunds when the wallet is missing
// or short; the guard lives in the UPDATE predicate so concurrent
// debits cannot overdraw.
func (s *Service) DebitTx(tx *sql.Tx, player string, amount uint64) error {
	if amount > math.MaxInt64 {
		return engine.ErrOverflow
	}
	res, err := tx.Exec(`
	UPDATE wallets SET balance = balance - ? WHERE player = ? AND balance >= ?
	`, int64(amount), player, int64(amount))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return engine.ErrInsufficientFunds
	}
	return nil
}

func (s *Service) TransferTx(tx *sql.Tx, from, to string, amount uint64) error {
	if err := s.DebitTx(tx, from, amount); err != nil {
		return err
	}
	return s.CreditTx(tx, to, amount)
}
