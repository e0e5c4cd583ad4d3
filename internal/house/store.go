package house

import (
	"database/sql"

	"rollhouse/internal/engine"
)

// dbtx lets store reads and writes run on either the pool or an open
// transaction.
type dbtx interface {
	QueryRow(query string, args ...interface{}) *sql.Row
	Query(query string, args ...interface{}) (*sql.Rows, error)
	Exec(query string, args ...interface{}) (sql.Result, error)
}

func ensureGame(db dbtx, id engine.GameID) {
	db.Exec(`INSERT OR IGNORE INTO games(id, epoch) VALUES (?, 1)`, id)
}

func loadGame(tx dbtx, id engine.GameID) (*engine.Game, error) {
	g := &engine.Game{ID: id}
	err := tx.QueryRow(`
	SELECT epoch, point, epoch_start, bankroll, reserved, total_wagered, total_paid, total_collected, halted
	FROM games WHERE id = ?
	`, id).Scan(&g.Epoch, &g.Point, &g.EpochStart, &g.Bankroll, &g.Reserved, &g.TotalWagered, &g.TotalPaid, &g.TotalCollected, &g.Halted)
	if err == sql.ErrNoRows {
		return nil, engine.ErrUnknownGame
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

func saveGame(tx dbtx, g *engine.Game) error {
	_, err := tx.Exec(`
	UPDATE games SET epoch=?, point=?, epoch_start=?, bankroll=?, reserved=?,
		total_wagered=?, total_paid=?, total_collected=?, halted=?
	WHERE id=?
	`, int64(g.Epoch), g.Point, int64(g.EpochStart), int64(g.Bankroll), int64(g.Reserved),
		int64(g.TotalWagered), int64(g.TotalPaid), int64(g.TotalCollected), g.Halted, g.ID)
	return err
}

// loadPosition returns the stored position or a fresh one at the
// game's current epoch.
func loadPosition(tx dbtx, game engine.GameID, player string, epoch uint64) (*engine.Position, error) {
	p := &engine.Position{Game: game, Player: player, Epoch: epoch, State: engine.StateOpen}
	err := tx.QueryRow(`
	SELECT epoch, round, state, pending, unpaid_debt, last_settled, total_wagered, total_won, total_lost
	FROM positions WHERE game = ? AND player = ?
	`, game, player).Scan(&p.Epoch, &p.Round, (*string)(&p.State), &p.Pending, &p.UnpaidDebt,
		&p.LastSettled, &p.TotalWagered, &p.TotalWon, &p.TotalLost)
	if err == sql.ErrNoRows {
		return p, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(`
	SELECT kind, aux, stake, reserved FROM bets WHERE game = ? AND player = ?
	`, game, player)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var s engine.BetSlot
		if err := rows.Scan(&s.Kind, &s.Aux, &s.Stake, &s.Reserved); err != nil {
			return nil, err
		}
		p.Slots = append(p.Slots, s)
	}
	return p, rows.Err()
}

func savePosition(tx dbtx, p *engine.Position) error {
	_, err := tx.Exec(`
	INSERT INTO positions(game, player, epoch, round, state, pending, unpaid_debt,
		last_settled, total_wagered, total_won, total_lost)
	VALUES (?,?,?,?,?,?,?,?,?,?,?)
	ON CONFLICT(game, player) DO UPDATE SET
		epoch=excluded.epoch, round=excluded.round, state=excluded.state,
		pending=excluded.pending, unpaid_debt=excluded.unpaid_debt,
		last_settled=excluded.last_settled, total_wagered=excluded.total_wagered,
		total_won=excluded.total_won, total_lost=excluded.total_lost
	`, p.Game, p.Player, int64(p.Epoch), int64(p.Round), string(p.State), int64(p.Pending),
		int64(p.UnpaidDebt), int64(p.LastSettled), int64(p.TotalWagered), int64(p.TotalWon), int64(p.TotalLost))
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM bets WHERE game = ? AND player = ?`, p.Game, p.Player); err != nil {
		return err
	}
	for _, s := range p.Slots {
		if s.Stake == 0 && s.Reserved == 0 {
			continue
		}
		if _, err := tx.Exec(`
		INSERT INTO bets(game, player, kind, aux, stake, reserved) VALUES (?,?,?,?,?,?)
		`, p.Game, p.Player, s.Kind, s.Aux, int64(s.Stake), int64(s.Reserved)); err != nil {
			return err
		}
	}
	return nil
}

func scanRound(row *sql.Row) (*engine.Round, error) {
	r := &engine.Round{}
	var seed []byte
	err := row.Scan(&r.ID, &r.OpenedAt, &r.ExpiresAt, &seed, &r.Sealed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	copy(r.Seed[:], seed)
	return r, nil
}

func getRound(q dbtx, id uint64) (*engine.Round, error) {
	return scanRound(q.QueryRow(`
	SELECT id, opened_at, expires_at, seed, sealed FROM rounds WHERE id = ?
	`, int64(id)))
}

func currentRound(q dbtx) (*engine.Round, error) {
	return scanRound(q.QueryRow(`
	SELECT id, opened_at, expires_at, seed, sealed FROM rounds ORDER BY id DESC LIMIT 1
	`))
}

func insertRound(tx dbtx, r *engine.Round) error {
	_, err := tx.Exec(`
	INSERT INTO rounds(id, opened_at, expires_at, seed, sealed) VALUES (?,?,?,?,?)
	`, int64(r.ID), r.OpenedAt, r.ExpiresAt, r.Seed[:], r.Sealed)
	return err
}

func sealRound(tx dbtx, r *engine.Round) error {
	_, err := tx.Exec(`
	UPDATE rounds SET seed = ?, sealed = 1 WHERE id = ?
	`, r.Seed[:], int64(r.ID))
	return err
}
