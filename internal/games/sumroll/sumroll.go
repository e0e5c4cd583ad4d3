package sumroll

import (
	"rollhouse/internal/engine"
)

const ID engine.GameID = "sumroll"

// PredictSum is the only bet kind: pick the exact sum of the next roll.
const PredictSum engine.BetKind = 0

// DefaultMaxBet matches the craps table cap.
const DefaultMaxBet = 100_000_000_000

// payout multipliers per sum, true odds less nothing held back on the
// 6/8 step (31:5 rather than 6.2 rounded).
func sumPay(sum uint8) (engine.Ratio, bool) {
	switch sum {
	case 2, 12:
		return engine.Ratio{Num: 35, Den: 1}, true
	case 3, 11:
		return engine.Ratio{Num: 17, Den: 1}, true
	case 4, 10:
		return engine.Ratio{Num: 11, Den: 1}, true
	case 5, 9:
		return engine.Ratio{Num: 8, Den: 1}, true
	case 6, 8:
		return engine.Ratio{Num: 31, Den: 5}, true
	case 7:
		return engine.Ratio{Num: 5, Den: 1}, true
	}
	return engine.Ratio{}, false
}

// Catalog settles every bet on every roll: there is no table phase and
// no carry. Positions bind to a single round and resolve with it.
type Catalog struct {
	min uint64
	max uint64
}

func New() *Catalog {
	return &Catalog{min: 1, max: DefaultMaxBet}
}

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
func (c *Catalog) EpochScoped() bool  { return false }
func (c *Catalog) RequiresDeal() bool { return false }
func (c *Catalog) MinBet() uint64     { return c.min }
func (c *Catalog) MaxBet() uint64     { return c.max }

func (c *Catalog) Validate(g *engine.Game, p *engine.Position, kind engine.BetKind, aux uint8) error {
	if kind != PredictSum {
		return engine.ErrUnknownBetKind
	}
	if aux < 2 || aux > 12 {
		return engine.ErrInvalidBet
	}
	return nil
}

func (c *Catalog) MaxReturn(kind engine.BetKind, aux uint8, point uint8, stake uint64) (uint64, error) {
	r, ok := sumPay(aux)
	if !ok {
		return 0, engine.ErrInvalidBet
	}
	return r.Return(stake)
}

func (c *Catalog) Evaluate(slot engine.BetSlot, out engine.Outcome, point uint8) engine.Verdict {
	if out.Sum == slot.Aux {
		r, _ := sumPay(slot.Aux)
		return engine.Verdict{Kind: engine.Win, Pay: r}
	}
	return engine.Verdict{Kind: engine.Lose}
}

func (c *Catalog) Advance(point uint8, out engine.Outcome) engine.Transition {
	return engine.Transition{}
}

func (c *Catalog) KindName(kind engine.BetKind) string {
	if kind == PredictSum {
		return "predict_sum"
	}
	return ""
}
