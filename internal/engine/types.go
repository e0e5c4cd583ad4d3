package engine

// GameID names a registered game ("craps", "sumroll").
type GameID string

// PosState tracks the position lifecycle. A position holds in
// "settled" after a terminal resolution until its winnings are
// claimed, and catalogs with a deal step pass through
// "awaiting_settlement". With nothing to claim it returns straight
// to "open".
type PosState string

const (
	StateOpen     PosState = "open"
	StateAwaiting PosState = "awaiting_settlement"
	StateSettled  PosState = "settled"
)

// BetKind identifies a bet within a catalog. Values are catalog-scoped
// and stable on the wire.
type BetKind uint8

// Game is the per-game house state. Reserved never exceeds Bankroll;
// the Total counters are lifetime and informational.
type Game struct {
	ID             GameID
	Epoch          uint64
	Point          uint8 // 0 = come-out
	EpochStart     uint64
	Bankroll       uint64
	Reserved       uint64
	TotalWagered   uint64
	TotalPaid      uint64
	TotalCollected uint64
	Halted         bool
}

func (g *Game) ComingOut() bool { return g.Point == 0 }

func (g *Game) SetPoint(p uint8) { g.Point = p }

func (g *Game) ClearPoint() { g.Point = 0 }

// StartEpoch advances the epoch after an epoch-ending outcome.
func (g *Game) StartEpoch(round uint64) {
	g.Epoch++
	g.EpochStart = round
	g.Point = 0
}

// Available is the bankroll not yet promised to active bets.
func (g *Game) Available() uint64 {
	if g.Reserved > g.Bankroll {
		return 0
	}
	return g.Bankroll - g.Reserved
}

// Fund adds house capital to the bankroll.
func (g *Game) Fund(amount uint64) error {
	if amount == 0 {
		return ErrInvalidAmount
	}
	b, err := addU64(g.Bankroll, amount)
	if err != nil {
		return err
	}
	g.Bankroll = b
	return nil
}

// BetSlot is one live bet. Reserved records the exact amount promised
// against the bankroll when the stake was accepted, so release at
// resolution is exact rather than recomputed.
type BetSlot struct {
	Kind     BetKind
	Aux      uint8
	Stake    uint64
	Reserved uint64
}

// Position is a player's standing in one game.
type Position struct {
	Game         GameID
	Player       string
	Epoch        uint64
	Round        uint64 // bound round for round-scoped catalogs
	State        PosState
	Slots        []BetSlot
	Pending      uint64
	UnpaidDebt   uint64
	LastSettled  uint64
	TotalWagered uint64
	TotalWon     uint64
	TotalLost    uint64
}

// slot returns the live slot for (kind, aux), appending one if absent.
func (p *Position) slot(kind BetKind, aux uint8) *BetSlot {
	for i := range p.Slots {
		if p.Slots[i].Kind == kind && p.Slots[i].Aux == aux {
			return &p.Slots[i]
		}
	}
	p.Slots = append(p.Slots, BetSlot{Kind: kind, Aux: aux})
	return &p.Slots[len(p.Slots)-1]
}

// Stake reports the live stake on (kind, aux).
func (p *Position) Stake(kind BetKind, aux uint8) uint64 {
	for i := range p.Slots {
		if p.Slots[i].Kind == kind && p.Slots[i].Aux == aux {
			return p.Slots[i].Stake
		}
	}
	return 0
}

func (p *Position) HasBets() bool {
	for i := range p.Slots {
		if p.Slots[i].Stake > 0 {
			return true
		}
	}
	return false
}

// StakeTotal sums all live stakes.
func (p *Position) StakeTotal() (uint64, error) {
	var total uint64
	var err error
	for i := range p.Slots {
		if total, err = addU64(total, p.Slots[i].Stake); err != nil {
			return 0, err
		}
	}
	return total, nil
}

// ReservedTotal sums the recorded reservations of all live slots.
func (p *Position) ReservedTotal() (uint64, error) {
	var total uint64
	var err error
	for i := range p.Slots {
		if total, err = addU64(total, p.Slots[i].Reserved); err != nil {
			return 0, err
		}
	}
	return total, nil
}

func (p *Position) clearSlots() {
	p.Slots = p.Slots[:0]
}

// compact drops resolved (zero-stake) slots.
func (p *Position) compact() {
	live := p.Slots[:0]
	for _, s := range p.Slots {
		if s.Stake > 0 {
			live = append(live, s)
		}
	}
	p.Slots = live
}

// resetEpoch rebinds the position to a new epoch with an empty book.
// Lifetime counters and pending winnings carry across epochs.
func (p *Position) resetEpoch(epoch uint64) {
	p.Epoch = epoch
	p.clearSlots()
}
