package engine

// ForceSettle forfeits every live bet of a position that was not
// settled within the round's claim window, releasing the exact reserved
// amounts back to the bankroll. Callable by anyone once the round has
// expired: abandoned positions must not lock house capital forever.
// Stale-epoch positions are refunded, not forfeited, matching the
// settlement rule.
func ForceSettle(g *Game, p *Position, r *Round, now int64) (*SettleResult, error) {
	if g.Halted {
		return nil, ErrGameHalted
	}
	if r == nil {
		return nil, ErrRoundNotReady
	}
	if !r.Expired(now) {
		return nil, ErrRoundNotExpired
	}

	res := &SettleResult{Round: r.ID, Point: g.Point}

	if p.Epoch != g.Epoch {
		refunded, err := refundStale(g, p)
		if err != nil {
			return nil, err
		}
		if r.ID > p.LastSettled {
			p.LastSettled = r.ID
		}
		res.Refunded = refunded
		return res, nil
	}

	if !p.HasBets() {
		res.NoBets = true
		return res, nil
	}

	forfeited, err := p.StakeTotal()
	if err != nil {
		return nil, err
	}
	released, err := p.ReservedTotal()
	if err != nil {
		return nil, err
	}

	if g.Reserved, err = subU64(g.Reserved, released); err != nil {
		return nil, err
	}
	if g.TotalCollected, err = addU64(g.TotalCollected, forfeited); err != nil {
		return nil, err
	}
	if p.TotalLost, err = addU64(p.TotalLost, forfeited); err != nil {
		return nil, err
	}

	p.clearSlots()
	if r.ID > p.LastSettled {
		p.LastSettled = r.ID
	}

	res.Forfeited = forfeited
	return res, nil
}
