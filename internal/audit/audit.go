package audit

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Actions recorded for operator and protocol-level interventions.
const (
	ActionFund         = "fund_house"
	ActionForceSettle  = "force_settle"
	ActionHalt         = "insolvency_halt"
	ActionResolve      = "resolve_insolvency"
	ActionDebtPaid     = "debt_paid"
	ActionWalletCredit = "wallet_credit"
)

type Service struct {
	db *sql.DB
}

func New(db *sql.DB) *Service {
	return &Service{db: db}
}

// Log is fire-and-forget; audit rows never fail an operation.
func (s *Service) Log(actor, action, game, detail string) {

	s.db.Exec(`
	INSERT INTO audit_log(id, actor, action, game, detail, ts)
	VALUES (?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), actor, action, game, detail, time.Now().Unix())
}

type Row struct {
	ID     string `json:"id"`
	Actor  string `json:"actor"`
	Action string `json:"action"`
	Game   string `json:"game"`
	Detail string `json:"detail"`
	TS     int64  `json:"ts"`
}

// Recent returns the newest audit rows, newest first.
func (s *Service) Recent(limit int) ([]Row, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
	SELECT id, actor, action, game, detail, ts FROM audit_log ORDER BY ts DESC, id LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.ID, &r.Actor, &r.Action, &r.Game, &r.Detail, &r.TS); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
