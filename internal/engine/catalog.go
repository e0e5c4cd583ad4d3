package engine

// VerdictKind is how one slot resolved against an outcome.
type VerdictKind uint8

const (
	Carry VerdictKind = iota
	Win
	Lose
	Push
)

func (v VerdictKind) String() string {
	switch v {
	case Win:
		return "win"
	case Lose:
		return "lose"
	case Push:
		return "push"
	default:
		return "carry"
	}
}

// Verdict resolves a single slot. Pay is meaningful only for Win.
type Verdict struct {
	Kind VerdictKind
	Pay  Ratio
}

// Transition is the game phase change caused by an outcome.
type Transition struct {
	Point     uint8
	EpochEnds bool
}

// Catalog is the bet surface of one game: which bets are legal in which
// phase, what they promise at worst, how each resolves, and how the
// phase advances. Implementations are stateless; all game state lives
// in Game and Position.
type Catalog interface {
	ID() GameID

	// Validate reports whether (kind, aux) may be placed given the
	// current phase and the player's existing slots. Amount limits are
	// checked by the engine.
	Validate(g *Game, p *Position, kind BetKind, aux uint8) error

	// MaxReturn is the worst-case amount the house could owe on this
	// stake, including the returned stake. Reserved at placement.
	MaxReturn(kind BetKind, aux uint8, point uint8, stake uint64) (uint64, error)

	// Evaluate resolves one slot against an outcome under the
	// pre-transition point.
	Evaluate(slot BetSlot, out Outcome, point uint8) Verdict

	// Advance computes the phase transition after an outcome.
	Advance(point uint8, out Outcome) Transition

	// EpochScoped catalogs carry bets across rounds until an
	// epoch-ending outcome; round-scoped catalogs bind each position
	// to a single round.
	EpochScoped() bool

	// RequiresDeal catalogs need an explicit deal step binding the
	// position to a round before settlement.
	RequiresDeal() bool

	// KindName is the display name of a bet kind, empty if unknown.
	KindName(kind BetKind) string

	MinBet() uint64
	MaxBet() uint64
}
