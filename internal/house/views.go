package house

import (
	"rollhouse/internal/audit"
	"rollhouse/internal/engine"
	"rollhouse/internal/games"
	"rollhouse/internal/ledger"
)

type GameView struct {
	ID             string `json:"id"`
	Epoch          uint64 `json:"epoch"`
	Point          uint8  `json:"point"`
	Bankroll       uint64 `json:"bankroll"`
	Reserved       uint64 `json:"reserved"`
	Available      uint64 `json:"available"`
	TotalWagered   uint64 `json:"total_wagered"`
	TotalPaid      uint64 `json:"total_paid"`
	TotalCollected uint64 `json:"total_collected"`
	Halted         bool   `json:"halted"`
	MinBet         uint64 `json:"min_bet"`
	MaxBet         uint64 `json:"max_bet"`
	EpochScoped    bool   `json:"epoch_scoped"`
}

// Games lists every registered catalog with its live house state.
func (s *Service) Games() ([]GameView, error) {
	var out []GameView
	for _, cat := range games.All() {
		g, err := loadGame(s.db, cat.ID())
		if err != nil {
			return nil, err
		}
		out = append(out, GameView{
			ID:             string(g.ID),
			Epoch:          g.Epoch,
			Point:          g.Point,
			Bankroll:       g.Bankroll,
			Reserved:       g.Reserved,
			Available:      g.Available(),
			TotalWagered:   g.TotalWagered,
			TotalPaid:      g.TotalPaid,
			TotalCollected: g.TotalCollected,
			Halted:         g.Halted,
			MinBet:         cat.MinBet(),
			MaxBet:         cat.MaxBet(),
			EpochScoped:    cat.EpochScoped(),
		})
	}
	return out, nil
}

type SlotView struct {
	Kind  string `json:"kind"`
	Aux   uint8  `json:"aux,omitempty"`
	Stake uint64 `json:"stake"`
}

type PositionView struct {
	Game         string     `json:"game"`
	Player       string     `json:"player"`
	Epoch        uint64     `json:"epoch"`
	Round        uint64     `json:"round,omitempty"`
	State        string     `json:"state"`
	Bets         []SlotView `json:"bets"`
	Pending      uint64     `json:"pending"`
	UnpaidDebt   uint64     `json:"unpaid_debt,omitempty"`
	LastSettled  uint64     `json:"last_settled"`
	TotalWagered uint64     `json:"total_wagered"`
	TotalWon     uint64     `json:"total_won"`
	TotalLost    uint64     `json:"total_lost"`
}

// Position renders the caller's standing in one game.
func (s *Service) Position(gameID engine.GameID, player string) (*PositionView, error) {
	cat, err := games.Get(gameID)
	if err != nil {
		return nil, err
	}
	g, err := loadGame(s.db, gameID)
	if err != nil {
		return nil, err
	}
	p, err := loadPosition(s.db, gameID, player, g.Epoch)
	if err != nil {
		return nil, err
	}

	v := &PositionView{
		Game:         string(p.Game),
		Player:       p.Player,
		Epoch:        p.Epoch,
		Round:        p.Round,
		State:        string(p.State),
		Pending:      p.Pending,
		UnpaidDebt:   p.UnpaidDebt,
		LastSettled:  p.LastSettled,
		TotalWagered: p.TotalWagered,
		TotalWon:     p.TotalWon,
		TotalLost:    p.TotalLost,
	}
	for _, slot := range p.Slots {
		if slot.Stake == 0 {
			continue
		}
		v.Bets = append(v.Bets, SlotView{
			Kind:  cat.KindName(slot.Kind),
			Aux:   slot.Aux,
			Stake: slot.Stake,
		})
	}
	return v, nil
}

// Journal exposes the newest ledger rows for operators.
func (s *Service) Journal(gameID engine.GameID, limit int) ([]ledger.Entry, error) {
	if _, err := games.Get(gameID); err != nil {
		return nil, err
	}
	return s.ledger.Recent(gameID, limit)
}

// AuditTrail exposes the newest audit rows for operators.
func (s *Service) AuditTrail(limit int) ([]audit.Row, error) {
	return s.audit.Recent(limit)
}
