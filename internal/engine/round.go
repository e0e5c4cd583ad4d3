package engine

// Round is one entropy window. Bets reference rounds for settlement;
// the seed is snapshot from the beacon when the round is sealed.
type Round struct {
	ID        uint64
	OpenedAt  int64
	ExpiresAt int64
	Seed      [32]byte
	Sealed    bool
}

// Ready reports whether the round can be settled against.
func (r *Round) Ready() bool {
	return r.Sealed
}

func (r *Round) Expired(now int64) bool {
	return now > r.ExpiresAt
}

// Seal fixes the round's entropy. Degenerate seeds are stored as-is;
// settlement surfaces them as unusable and the round can only be
// force-settled once expired.
func (r *Round) Seal(seed [32]byte) {
	r.Seed = seed
	r.Sealed = true
}

// Resolve derives the round's outcome from its sealed seed.
func (r *Round) Resolve() (Outcome, error) {
	if !r.Sealed {
		return Outcome{}, ErrRoundNotReady
	}
	return Resolve(r.Seed)
}
