package craps

import (
	"rollhouse/internal/engine"
)

const ID engine.GameID = "craps"

// Bet kinds. The numbering is part of the wire format and must not be
// reordered.
const (
	PassLine     engine.BetKind = 0
	DontPass     engine.BetKind = 1
	PassOdds     engine.BetKind = 2
	DontPassOdds engine.BetKind = 3
	Come         engine.BetKind = 4
	DontCome     engine.BetKind = 5
	ComeOdds     engine.BetKind = 6
	DontComeOdds engine.BetKind = 7
	Place        engine.BetKind = 8
	Hardway      engine.BetKind = 9
	Field        engine.BetKind = 10
	AnySeven     engine.BetKind = 11
	AnyCraps     engine.BetKind = 12
	YoEleven     engine.BetKind = 13
	Aces         engine.BetKind = 14
	Twelve       engine.BetKind = 15

	Yes  engine.BetKind = 26
	No   engine.BetKind = 27
	Next engine.BetKind = 28
)

// DefaultMaxBet caps a single wager at 100 units of 1e9 base units.
const DefaultMaxBet = 100_000_000_000

// Catalog dealt a full craps layout: line bets with odds, come bets
// tracked per point, place and hardway bets, the single-roll
// propositions, and the yes/no/next sum wagers.
type Catalog struct {
	min uint64
	max uint64
}

func New() *Catalog {
	return &Catalog{min: 1, max: DefaultMaxBet}
}

// NewWithLimits overrides the table limits, for operator config.
func NewWithLimits(min, max uint64) *Catalog {
	if min == 0 {
		min = 1
	}
	if max == 0 {
		max = DefaultMaxBet
	}
	return &Catalog{min: min, max: max}
}

func (c *Catalog) ID() engine.GameID  { return ID }
func (c *Catalog) EpochScoped() bool  { return true }
func (c *Catalog) RequiresDeal() bool { return false }
func (c *Catalog) MinBet() uint64     { return c.min }
func (c *Catalog) MaxBet() uint64     { return c.max }

func isCraps(sum uint8) bool {
	return sum == 2 || sum == 3 || sum == 12
}

func isNatural(sum uint8) bool {
	return sum == 7 || sum == 11
}

func isPoint(sum uint8) bool {
	switch sum {
	case 4, 5, 6, 8, 9, 10:
		return true
	}
	return false
}

func isFieldWinner(sum uint8) bool {
	switch sum {
	case 2, 3, 4, 9, 10, 11, 12:
		return true
	}
	return false
}

// Validate enforces the phase and target rules for each kind. Kinds
// that carry no target require aux == 0.
func (c *Catalog) Validate(g *engine.Game, p *engine.Position, kind engine.BetKind, aux uint8) error {
	switch kind {
	case PassLine, DontPass:
		if aux != 0 {
			return engine.ErrInvalidBet
		}
		if !g.ComingOut() {
			return engine.ErrInvalidBet
		}
	case PassOdds:
		if aux != 0 {
			return engine.ErrInvalidBet
		}
		if g.ComingOut() || p.Stake(PassLine, 0) == 0 {
			return engine.ErrInvalidBet
		}
	case DontPassOdds:
		if aux != 0 {
			return engine.ErrInvalidBet
		}
		if g.ComingOut() || p.Stake(DontPass, 0) == 0 {
			return engine.ErrInvalidBet
		}
	case Come, DontCome, Place:
		if !isPoint(aux) {
			return engine.ErrInvalidBet
		}
	case ComeOdds:
		if !isPoint(aux) || p.Stake(Come, aux) == 0 {
			return engine.ErrInvalidBet
		}
	case DontComeOdds:
		if !isPoint(aux) || p.Stake(DontCome, aux) == 0 {
			return engine.ErrInvalidBet
		}
	case Hardway:
		switch aux {
		case 4, 6, 8, 10:
		default:
			return engine.ErrInvalidBet
		}
	case Field, AnySeven, AnyCraps, YoEleven, Aces, Twelve:
		if aux != 0 {
			return engine.ErrInvalidBet
		}
	case Yes, No:
		if aux < 2 || aux > 12 || aux == 7 {
			return engine.ErrInvalidBet
		}
	case Next:
		if aux < 2 || aux > 12 {
			return engine.ErrInvalidBet
		}
	default:
		return engine.ErrUnknownBetKind
	}
	return nil
}

// MaxReturn is the worst case the house can owe on the slot: stake
// plus winnings at the richest ratio the kind can hit.
func (c *Catalog) MaxReturn(kind engine.BetKind, aux uint8, point uint8, stake uint64) (uint64, error) {
	switch kind {
	case PassLine, DontPass, Come, DontCome:
		return payEven.Return(stake)
	case PassOdds, ComeOdds:
		target := point
		if kind == ComeOdds {
			target = aux
		}
		r, ok := trueOdds(target)
		if !ok {
			return stake, nil
		}
		return r.Return(stake)
	case DontPassOdds, DontComeOdds:
		target := point
		if kind == DontComeOdds {
			target = aux
		}
		r, ok := dontTrueOdds(target)
		if !ok {
			return stake, nil
		}
		return r.Return(stake)
	case Place:
		r, ok := placePay(aux)
		if !ok {
			return stake, nil
		}
		return r.Return(stake)
	case Hardway:
		r, ok := hardwayPay(aux)
		if !ok {
			return stake, nil
		}
		return r.Return(stake)
	case Field:
		return payField212.Return(stake)
	case AnySeven:
		return payAnySeven.Return(stake)
	case AnyCraps:
		return payAnyCraps.Return(stake)
	case YoEleven:
		return payYoEleven.Return(stake)
	case Aces:
		return payAces.Return(stake)
	case Twelve:
		return payTwelve.Return(stake)
	case Yes:
		r, ok := yesPay(aux)
		if !ok {
			return stake, nil
		}
		return r.Return(stake)
	case No:
		r, ok := noPay(aux)
		if !ok {
			return stake, nil
		}
		return r.Return(stake)
	case Next:
		r, ok := nextPay(aux)
		if !ok {
			return stake, nil
		}
		return r.Return(stake)
	}
	return 0, engine.ErrUnknownBetKind
}

func win(r engine.Ratio) engine.Verdict {
	return engine.Verdict{Kind: engine.Win, Pay: r}
}

func lose() engine.Verdict {
	return engine.Verdict{Kind: engine.Lose}
}

func carry() engine.Verdict {
	return engine.Verdict{Kind: engine.Carry}
}

func push() engine.Verdict {
	return engine.Verdict{Kind: engine.Push}
}

// Evaluate decides one slot against one roll. point is the point as it
// stood before the roll; zero means the come-out.
func (c *Catalog) Evaluate(slot engine.BetSlot, out engine.Outcome, point uint8) engine.Verdict {
	sum := out.Sum
	switch slot.Kind {
	case PassLine:
		if point == 0 {
			if isNatural(sum) {
				return win(payEven)
			}
			if isCraps(sum) {
				return lose()
			}
			return carry()
		}
		if sum == point {
			return win(payEven)
		}
		if sum == 7 {
			return lose()
		}
		return carry()

	case DontPass:
		if point == 0 {
			switch {
			case sum == 2 || sum == 3:
				return win(payEven)
			case sum == 12:
				return push()
			case isNatural(sum):
				return lose()
			}
			return carry()
		}
		if sum == 7 {
			return win(payEven)
		}
		if sum == point {
			return lose()
		}
		return carry()

	case PassOdds:
		if point == 0 {
			return carry()
		}
		if sum == point {
			r, _ := trueOdds(point)
			return win(r)
		}
		if sum == 7 {
			return lose()
		}
		return carry()

	case DontPassOdds:
		if point == 0 {
			return carry()
		}
		if sum == 7 {
			r, _ := dontTrueOdds(point)
			return win(r)
		}
		if sum == point {
			return lose()
		}
		return carry()

	case Come:
		if sum == slot.Aux {
			return win(payEven)
		}
		if sum == 7 {
			return lose()
		}
		return carry()

	case DontCome:
		if sum == 7 {
			return win(payEven)
		}
		if sum == slot.Aux {
			return lose()
		}
		return carry()

	case ComeOdds:
		if sum == slot.Aux {
			r, _ := trueOdds(slot.Aux)
			return win(r)
		}
		if sum == 7 {
			return lose()
		}
		return carry()

	case DontComeOdds:
		if sum == 7 {
			r, _ := dontTrueOdds(slot.Aux)
			return win(r)
		}
		if sum == slot.Aux {
			return lose()
		}
		return carry()

	case Place:
		if sum == slot.Aux {
			r, _ := placePay(slot.Aux)
			return win(r)
		}
		if sum == 7 {
			return lose()
		}
		return carry()

	case Hardway:
		if sum == slot.Aux && out.Hard {
			r, _ := hardwayPay(slot.Aux)
			return win(r)
		}
		if sum == 7 || sum == slot.Aux {
			return lose()
		}
		return carry()

	case Field:
		if isFieldWinner(sum) {
			if sum == 2 || sum == 12 {
				return win(payField212)
			}
			return win(payEven)
		}
		return lose()

	case AnySeven:
		if sum == 7 {
			return win(payAnySeven)
		}
		return lose()

	case AnyCraps:
		if isCraps(sum) {
			return win(payAnyCraps)
		}
		return lose()

	case YoEleven:
		if sum == 11 {
			return win(payYoEleven)
		}
		return lose()

	case Aces:
		if sum == 2 {
			return win(payAces)
		}
		return lose()

	case Twelve:
		if sum == 12 {
			return win(payTwelve)
		}
		return lose()

	case Yes:
		if sum == slot.Aux {
			r, _ := yesPay(slot.Aux)
			return win(r)
		}
		if sum == 7 {
			return lose()
		}
		return carry()

	case No:
		if sum == 7 {
			r, _ := noPay(slot.Aux)
			return win(r)
		}
		if sum == slot.Aux {
			return lose()
		}
		return carry()

	case Next:
		if sum == slot.Aux {
			r, _ := nextPay(slot.Aux)
			return win(r)
		}
		return lose()
	}
	return lose()
}

// Advance moves the table state. The epoch ends only on a seven-out;
// making the point returns the table to the come-out without ending
// the epoch.
func (c *Catalog) Advance(point uint8, out engine.Outcome) engine.Transition {
	sum := out.Sum
	if point == 0 {
		if isPoint(sum) {
			return engine.Transition{Point: sum}
		}
		return engine.Transition{}
	}
	if sum == 7 {
		return engine.Transition{EpochEnds: true}
	}
	if sum == point {
		return engine.Transition{}
	}
	return engine.Transition{Point: point}
}

var kindNames = map[engine.BetKind]string{
	PassLine:     "pass_line",
	DontPass:     "dont_pass",
	PassOdds:     "pass_odds",
	DontPassOdds: "dont_pass_odds",
	Come:         "come",
	DontCome:     "dont_come",
	ComeOdds:     "come_odds",
	DontComeOdds: "dont_come_odds",
	Place:        "place",
	Hardway:      "hardway",
	Field:        "field",
	AnySeven:     "any_seven",
	AnyCraps:     "any_craps",
	YoEleven:     "yo_eleven",
	Aces:         "aces",
	Twelve:       "twelve",
	Yes:          "yes",
	No:           "no",
	Next:         "next",
}

func (c *Catalog) KindName(kind engine.BetKind) string {
	return kindNames[kind]
}
