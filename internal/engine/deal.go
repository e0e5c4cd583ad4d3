package engine

import "fmt"

// Deal binds a position's live bets to a round ahead of settlement, for
// catalogs whose games have an explicit deal step. Idempotent for the
// same round; bets already awaiting another round must settle first.
func Deal(p *Position, cat Catalog, r *Round) error {
	if !cat.RequiresDeal() {
		return fmt.Errorf("game has no deal step: %w", ErrInvalidBet)
	}
	if r == nil || r.Sealed {
		return ErrRoundNotActive
	}
	if !p.HasBets() {
		return fmt.Errorf("no bets to deal: %w", ErrInvalidBet)
	}
	if p.State == StateAwaiting {
		if p.Round == r.ID {
			return nil
		}
		return ErrUnsettledBets
	}
	p.Round = r.ID
	p.State = StateAwaiting
	return nil
}
