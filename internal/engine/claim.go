package engine

// Claim drains a position's pending winnings and reopens a settled
// position for new bets. The caller must issue the vault transfer for
// exactly the returned amount in the same atomic unit; pending is
// zeroed here, before the transfer request exists, so a re-entered
// claim finds nothing.
func Claim(p *Position) (uint64, error) {
	if p.Pending == 0 {
		return 0, ErrNothingToClaim
	}
	amount := p.Pending
	p.Pending = 0
	if p.State == StateSettled {
		p.State = StateOpen
	}
	return amount, nil
}

// ClaimDebt pays down recorded house debt, partially if the bankroll
// cannot cover all of it. The remainder stays on the position.
func ClaimDebt(g *Game, p *Position) (uint64, error) {
	if p.UnpaidDebt == 0 {
		return 0, ErrNothingToClaim
	}
	pay := p.UnpaidDebt
	if g.Bankroll < pay {
		pay = g.Bankroll
	}
	if pay == 0 {
		return 0, ErrInsufficientFunds
	}

	var err error
	if g.Bankroll, err = subU64(g.Bankroll, pay); err != nil {
		return 0, err
	}
	if g.TotalPaid, err = addU64(g.TotalPaid, pay); err != nil {
		return 0, err
	}
	if p.UnpaidDebt, err = subU64(p.UnpaidDebt, pay); err != nil {
		return 0, err
	}
	return pay, nil
}

// ResolveInsolvency re-runs the settlement that halted the game. The
// covered portion of the payout moves to pending as usual; the
// shortfall is recorded as unpaid debt on the position, claimable once
// the house is re-funded. Clears the halt.
func ResolveInsolvency(g *Game, p *Position, cat Catalog, r *Round) (*SettleResult, error) {
	if !g.Halted {
		return nil, ErrNotHalted
	}
	if r == nil || !r.Ready() {
		return nil, ErrRoundNotReady
	}
	if r.ID <= p.LastSettled {
		return nil, ErrAlreadySettled
	}
	if !p.HasBets() {
		p.LastSettled = r.ID
		g.Halted = false
		return &SettleResult{Round: r.ID, NoBets: true, Point: g.Point}, nil
	}

	out, err := r.Resolve()
	if err != nil {
		return nil, err
	}
	res := &SettleResult{Round: r.ID, Outcome: &out}

	st, err := evaluate(p, cat, out, g.Point)
	if err != nil {
		return nil, err
	}
	if g.Reserved, err = subU64(g.Reserved, st.released); err != nil {
		return nil, err
	}

	covered := st.paid
	if avail := g.Available(); covered > avail {
		covered = avail
	}
	debt := st.paid - covered

	if g.Bankroll, err = subU64(g.Bankroll, covered); err != nil {
		return nil, err
	}
	if g.TotalPaid, err = addU64(g.TotalPaid, covered); err != nil {
		return nil, err
	}
	if g.TotalCollected, err = addU64(g.TotalCollected, st.forfeited); err != nil {
		return nil, err
	}

	t := cat.Advance(g.Point, out)
	if t.EpochEnds {
		g.StartEpoch(r.ID)
		p.resetEpoch(g.Epoch)
		res.EpochEnded = true
	} else {
		g.Point = t.Point
		p.compact()
	}

	if p.Pending, err = addU64(p.Pending, covered); err != nil {
		return nil, err
	}
	if p.UnpaidDebt, err = addU64(p.UnpaidDebt, debt); err != nil {
		return nil, err
	}
	if p.TotalWon, err = addU64(p.TotalWon, st.paid); err != nil {
		return nil, err
	}
	if p.TotalLost, err = addU64(p.TotalLost, st.forfeited); err != nil {
		return nil, err
	}
	p.LastSettled = r.ID
	if !p.HasBets() {
		if p.Pending > 0 {
			p.State = StateSettled
		} else {
			p.State = StateOpen
		}
	}
	g.Halted = false

	res.Resolved = st.resolved
	res.Paid = covered
	res.Forfeited = st.forfeited
	res.Debt = debt
	res.Point = g.Point
	return res, nil
}
