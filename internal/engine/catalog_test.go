package engine

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

// Fixed-behavior kinds for the stub catalog: the verdict is the kind,
// so settlement paths can be driven without dice.
const (
	kindWin   BetKind = 0
	kindLose  BetKind = 1
	kindPush  BetKind = 2
	kindCarry BetKind = 3
)

// testCatalog resolves bets by kind and reserves even money unless a
// hook overrides it.
type testCatalog struct {
	epochScoped  bool
	requiresDeal bool
	min, max     uint64
	maxReturn    func(kind BetKind, aux uint8, point uint8, stake uint64) (uint64, error)
	evaluate     func(slot BetSlot, out Outcome, point uint8) Verdict
	advance      func(point uint8, out Outcome) Transition
}

func newTestCatalog() *testCatalog {
	return &testCatalog{epochScoped: true, min: 1, max: 1 << 40}
}

func (c *testCatalog) ID() GameID        { return "test" }
func (c *testCatalog) EpochScoped() bool { return c.epochScoped }
func (c *testCatalog) RequiresDeal() bool {
	return c.requiresDeal
}
func (c *testCatalog) MinBet() uint64 { return c.min }
func (c *testCatalog) MaxBet() uint64 { return c.max }

func (c *testCatalog) KindName(kind BetKind) string {
	if kind > kindCarry {
		return ""
	}
	return "k" + strconv.Itoa(int(kind))
}

func (c *testCatalog) Validate(g *Game, p *Position, kind BetKind, aux uint8) error {
	if kind > kindCarry {
		return ErrUnknownBetKind
	}
	return nil
}

func (c *testCatalog) MaxReturn(kind BetKind, aux uint8, point uint8, stake uint64) (uint64, error) {
	if c.maxReturn != nil {
		return c.maxReturn(kind, aux, point, stake)
	}
	return Ratio{Num: 1, Den: 1}.Return(stake)
}

func (c *testCatalog) Evaluate(slot BetSlot, out Outcome, point uint8) Verdict {
	if c.evaluate != nil {
		return c.evaluate(slot, out, point)
	}
	switch slot.Kind {
	case kindWin:
		return Verdict{Kind: Win, Pay: Ratio{Num: 1, Den: 1}}
	case kindLose:
		return Verdict{Kind: Lose}
	case kindPush:
		return Verdict{Kind: Push}
	}
	return Verdict{Kind: Carry}
}

func (c *testCatalog) Advance(point uint8, out Outcome) Transition {
	if c.advance != nil {
		return c.advance(point, out)
	}
	return Transition{}
}

func testGame(bankroll uint64) *Game {
	return &Game{ID: "test", Epoch: 1, Bankroll: bankroll}
}

func testPosition() *Position {
	return &Position{Game: "test", Player: "p1", Epoch: 1, State: StateOpen}
}

// testRound builds a round far from expiry; sealed rounds get a
// usable fixed seed derived from the id.
func testRound(id uint64, sealed bool) *Round {
	r := &Round{ID: id, OpenedAt: 100, ExpiresAt: 1 << 40}
	if sealed {
		r.Seal([32]byte{byte(id), 0xA5})
	}
	return r
}

func mustPlace(t *testing.T, g *Game, p *Position, cat Catalog, r *Round, kind BetKind, amount uint64) *PlaceResult {
	t.Helper()
	res, err := PlaceBet(g, p, cat, r, kind, 0, amount)
	require.NoError(t, err)
	return res
}
