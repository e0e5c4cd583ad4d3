package engine

// ResolvedBet is one slot's resolution, for journaling and events.
type ResolvedBet struct {
	Kind    BetKind
	Aux     uint8
	Stake   uint64
	Verdict VerdictKind
	Paid    uint64
}

// SettleResult reports everything a settlement moved.
type SettleResult struct {
	Round      uint64
	Outcome    *Outcome
	NoBets     bool
	Refunded   uint64
	Resolved   []ResolvedBet
	Paid       uint64
	Forfeited  uint64
	Debt       uint64
	EpochEnded bool
	Point      uint8
}

// PlayerNet is the position's net result for this settlement, for
// profit tracking. Paid includes returned stakes, so net is paid minus
// every resolved stake.
func (sr *SettleResult) PlayerNet() int64 {
	var staked uint64
	for _, rb := range sr.Resolved {
		staked += rb.Stake
	}
	return int64(sr.Paid) - int64(staked)
}

// settlement accumulates one evaluation pass over a position's slots.
type settlement struct {
	resolved  []ResolvedBet
	paid      uint64
	forfeited uint64
	released  uint64
}

// evaluate resolves every slot independently against the outcome.
// Resolved slots are zeroed before any balance is credited from them;
// carried slots stay live.
func evaluate(p *Position, cat Catalog, out Outcome, point uint8) (*settlement, error) {
	st := &settlement{}
	var err error

	for i := range p.Slots {
		slot := &p.Slots[i]
		if slot.Stake == 0 {
			continue
		}
		v := cat.Evaluate(*slot, out, point)
		if v.Kind == Carry {
			continue
		}

		rb := ResolvedBet{Kind: slot.Kind, Aux: slot.Aux, Stake: slot.Stake, Verdict: v.Kind}
		stake := slot.Stake
		reserved := slot.Reserved
		slot.Stake = 0
		slot.Reserved = 0

		if st.released, err = addU64(st.released, reserved); err != nil {
			return nil, err
		}

		switch v.Kind {
		case Win:
			ret, err := v.Pay.Return(stake)
			if err != nil {
				return nil, err
			}
			if st.paid, err = addU64(st.paid, ret); err != nil {
				return nil, err
			}
			rb.Paid = ret
		case Push:
			if st.paid, err = addU64(st.paid, stake); err != nil {
				return nil, err
			}
			rb.Paid = stake
		case Lose:
			if st.forfeited, err = addU64(st.forfeited, stake); err != nil {
				return nil, err
			}
		}
		st.resolved = append(st.resolved, rb)
	}
	return st, nil
}

// Settle applies a sealed round's outcome to one position. Exactly-once
// per (position, round): re-settling returns ErrAlreadySettled with no
// balance movement. Positions left behind by an epoch change are
// refunded their surviving stakes instead of being evaluated.
//
// On any error the in-memory Game and Position must be discarded; the
// caller reloads state per operation and persists only on success.
func Settle(g *Game, p *Position, cat Catalog, r *Round, now int64) (*SettleResult, error) {
	if g.Halted {
		return nil, ErrGameHalted
	}
	if r == nil || !r.Ready() {
		return nil, ErrRoundNotReady
	}

	res := &SettleResult{Round: r.ID, Point: g.Point}

	if cat.EpochScoped() && p.Epoch != g.Epoch {
		refunded, err := refundStale(g, p)
		if err != nil {
			return nil, err
		}
		p.LastSettled = r.ID
		res.Refunded = refunded
		res.Point = g.Point
		return res, nil
	}

	if r.Expired(now) {
		return nil, ErrRoundExpired
	}
	if r.ID <= p.LastSettled {
		return nil, ErrAlreadySettled
	}
	if cat.RequiresDeal() && p.HasBets() && p.State != StateAwaiting {
		return nil, ErrRoundNotReady
	}
	if !cat.EpochScoped() && p.HasBets() && p.Round != r.ID {
		return nil, ErrStaleEpoch
	}

	if !p.HasBets() {
		p.LastSettled = r.ID
		res.NoBets = true
		return res, nil
	}

	out, err := r.Resolve()
	if err != nil {
		return nil, err
	}
	res.Outcome = &out

	st, err := evaluate(p, cat, out, g.Point)
	if err != nil {
		return nil, err
	}
	if g.Reserved, err = subU64(g.Reserved, st.released); err != nil {
		return nil, err
	}
	if st.paid > g.Available() {
		return nil, ErrInsolventHouse
	}

	if err := applySettlement(g, p, cat, r, st, out, res); err != nil {
		return nil, err
	}
	return res, nil
}

// applySettlement moves the evaluated balances and advances the phase.
// Reservations must already be released and solvency checked.
func applySettlement(g *Game, p *Position, cat Catalog, r *Round, st *settlement, out Outcome, res *SettleResult) error {
	var err error
	if g.Bankroll, err = subU64(g.Bankroll, st.paid); err != nil {
		return err
	}
	if g.TotalPaid, err = addU64(g.TotalPaid, st.paid); err != nil {
		return err
	}
	if g.TotalCollected, err = addU64(g.TotalCollected, st.forfeited); err != nil {
		return err
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

	if p.Pending, err = addU64(p.Pending, st.paid); err != nil {
		return err
	}
	if p.TotalWon, err = addU64(p.TotalWon, st.paid); err != nil {
		return err
	}
	if p.TotalLost, err = addU64(p.TotalLost, st.forfeited); err != nil {
		return err
	}
	p.LastSettled = r.ID
	// A fully resolved book holds the position in "settled" until the
	// winnings are claimed; with nothing to claim it reopens at once.
	if !p.HasBets() {
		if p.Pending > 0 {
			p.State = StateSettled
		} else {
			p.State = StateOpen
		}
	}

	res.Resolved = st.resolved
	res.Paid = st.paid
	res.Forfeited = st.forfeited
	res.Point = g.Point
	return nil
}
