package engine

// PlaceResult reports the balance movements of an accepted bet.
type PlaceResult struct {
	Stake     uint64
	MaxReturn uint64
	// Refunded is stake returned to pending when a stale-epoch
	// position was reset before the new bet was admitted.
	Refunded uint64
}

// PlaceBet admits a stake into a position. The stake is absorbed into
// the bankroll and the worst-case return is reserved against it, so a
// later win can always be paid. The caller escrows the stake in the
// vault within the same atomic unit.
//
// Only open positions admit bets: a dealt book must settle and a
// settled book must claim before staking again.
func PlaceBet(g *Game, p *Position, cat Catalog, r *Round, kind BetKind, aux uint8, amount uint64) (*PlaceResult, error) {
	if g.Halted {
		return nil, ErrGameHalted
	}
	if p.State == StateAwaiting {
		return nil, ErrUnsettledBets
	}
	if p.State == StateSettled {
		return nil, ErrUnclaimedWinnings
	}
	if amount == 0 {
		return nil, ErrInvalidAmount
	}
	if amount < cat.MinBet() {
		return nil, ErrBetTooSmall
	}
	if amount > cat.MaxBet() {
		return nil, ErrBetTooLarge
	}

	res := &PlaceResult{Stake: amount}

	if cat.EpochScoped() {
		if p.Epoch != g.Epoch {
			refunded, err := refundStale(g, p)
			if err != nil {
				return nil, err
			}
			res.Refunded = refunded
		}
	} else {
		// Round-scoped: bets join the currently open round.
		if r == nil || r.Sealed {
			return nil, ErrRoundNotActive
		}
		if p.HasBets() && p.Round != r.ID {
			return nil, ErrUnsettledBets
		}
		p.Round = r.ID
	}

	if err := cat.Validate(g, p, kind, aux); err != nil {
		return nil, err
	}

	maxReturn, err := cat.MaxReturn(kind, aux, g.Point, amount)
	if err != nil {
		return nil, err
	}
	if maxReturn > g.Available() {
		return nil, ErrInsufficientFunds
	}
	res.MaxReturn = maxReturn

	slot := p.slot(kind, aux)
	if slot.Stake, err = addU64(slot.Stake, amount); err != nil {
		return nil, err
	}
	if slot.Reserved, err = addU64(slot.Reserved, maxReturn); err != nil {
		return nil, err
	}
	if g.Reserved, err = addU64(g.Reserved, maxReturn); err != nil {
		return nil, err
	}
	if g.Bankroll, err = addU64(g.Bankroll, amount); err != nil {
		return nil, err
	}
	if g.TotalWagered, err = addU64(g.TotalWagered, amount); err != nil {
		return nil, err
	}
	if p.TotalWagered, err = addU64(p.TotalWagered, amount); err != nil {
		return nil, err
	}
	p.State = StateOpen

	return res, nil
}

// refundStale returns the surviving stakes of an out-of-epoch position
// to its pending winnings and resets it for the current epoch. The
// stakes sit in the bankroll from placement, so the refund debits it;
// the matching reservations are released exactly.
func refundStale(g *Game, p *Position) (uint64, error) {
	stakes, err := p.StakeTotal()
	if err != nil {
		return 0, err
	}
	reserved, err := p.ReservedTotal()
	if err != nil {
		return 0, err
	}

	if stakes > 0 {
		if g.Bankroll, err = subU64(g.Bankroll, stakes); err != nil {
			return 0, err
		}
		if p.Pending, err = addU64(p.Pending, stakes); err != nil {
			return 0, err
		}
	}
	if g.Reserved, err = subU64(g.Reserved, reserved); err != nil {
		return 0, err
	}

	p.resetEpoch(g.Epoch)
	return stakes, nil
}
