package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceBetAccounting(t *testing.T) {
	cat := newTestCatalog()
	g := testGame(1000)
	p := testPosition()

	res := mustPlace(t, g, p, cat, nil, kindWin, 100)

	assert.Equal(t, uint64(100), res.Stake)
	assert.Equal(t, uint64(200), res.MaxReturn, "even money reserves stake plus winnings")
	assert.Zero(t, res.Refunded)

	assert.Equal(t, uint64(1100), g.Bankroll, "stake absorbed on placement")
	assert.Equal(t, uint64(200), g.Reserved)
	assert.Equal(t, uint64(900), g.Available())
	assert.Equal(t, uint64(100), g.TotalWagered)

	assert.Equal(t, uint64(100), p.Stake(kindWin, 0))
	assert.Equal(t, uint64(100), p.TotalWagered)
	assert.Equal(t, StateOpen, p.State)
}

func TestPlaceBetTopUp(t *testing.T) {
	cat := newTestCatalog()
	g := testGame(1000)
	p := testPosition()

	mustPlace(t, g, p, cat, nil, kindWin, 100)
	mustPlace(t, g, p, cat, nil, kindWin, 50)

	require.Len(t, p.Slots, 1, "same kind and aux share a slot")
	assert.Equal(t, uint64(150), p.Slots[0].Stake)
	assert.Equal(t, uint64(300), p.Slots[0].Reserved)
	assert.Equal(t, uint64(300), g.Reserved)
	assert.Equal(t, uint64(1150), g.Bankroll)
}

func TestPlaceBetRejections(t *testing.T) {
	cat := newTestCatalog()
	cat.min = 10
	cat.max = 1000

	tests := []struct {
		name    string
		prep    func(g *Game)
		amount  uint64
		kind    BetKind
		wantErr error
	}{
		{"halted game", func(g *Game) { g.Halted = true }, 100, kindWin, ErrGameHalted},
		{"zero amount", nil, 0, kindWin, ErrInvalidAmount},
		{"below minimum", nil, 5, kindWin, ErrBetTooSmall},
		{"above maximum", nil, 2000, kindWin, ErrBetTooLarge},
		{"unknown kind", nil, 100, BetKind(99), ErrUnknownBetKind},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := testGame(10000)
			p := testPosition()
			if tc.prep != nil {
				tc.prep(g)
			}
			_, err := PlaceBet(g, p, cat, nil, tc.kind, 0, tc.amount)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Zero(t, g.Reserved, "rejected bet reserves nothing")
			assert.False(t, p.HasBets())
		})
	}
}

func TestPlaceBetInsufficientBankroll(t *testing.T) {
	cat := newTestCatalog()
	g := testGame(150)
	p := testPosition()

	// Even money on 100 promises 200 against 150 available.
	_, err := PlaceBet(g, p, cat, nil, kindWin, 0, 100)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, uint64(150), g.Bankroll, "rejected stake is not absorbed")

	// 75 promises exactly the 150 available; the absorbed stake then
	// leaves 225-150=75 available.
	mustPlace(t, g, p, cat, nil, kindWin, 75)
	assert.Equal(t, uint64(75), g.Available())

	_, err = PlaceBet(g, p, cat, nil, kindWin, 0, 40)
	assert.ErrorIs(t, err, ErrInsufficientFunds, "80 promised against 75 available")
}

func TestPlaceBetStaleEpochRefund(t *testing.T) {
	cat := newTestCatalog()
	g := testGame(1000)
	p := testPosition()
	mustPlace(t, g, p, cat, nil, kindCarry, 100)

	// Epoch moved on while the position sat out.
	g.StartEpoch(9)

	res, err := PlaceBet(g, p, cat, nil, kindWin, 0, 50)
	require.NoError(t, err)

	assert.Equal(t, uint64(100), res.Refunded)
	assert.Equal(t, uint64(100), p.Pending, "stranded stake moved to pending")
	assert.Equal(t, g.Epoch, p.Epoch)
	assert.Equal(t, uint64(50), p.Stake(kindWin, 0))
	assert.Zero(t, p.Stake(kindCarry, 0), "old slot does not survive the reset")
	assert.Equal(t, uint64(1050), g.Bankroll)
	assert.Equal(t, uint64(100), g.Reserved, "only the new bet is promised")
	assert.Equal(t, uint64(150), p.TotalWagered, "lifetime wagered keeps counting")
}

func TestPlaceBetBlockedUntilClaimed(t *testing.T) {
	cat := newTestCatalog()
	cat.epochScoped = false
	g := testGame(1000)
	p := testPosition()

	open := testRound(1, false)
	mustPlace(t, g, p, cat, open, kindWin, 100)
	open.Seal([32]byte{1, 0xA5})
	_, err := Settle(g, p, cat, open, testNow)
	require.NoError(t, err)
	require.Equal(t, StateSettled, p.State)

	next := testRound(2, false)
	_, err = PlaceBet(g, p, cat, next, kindWin, 0, 100)
	assert.ErrorIs(t, err, ErrUnclaimedWinnings)

	won, err := Claim(p)
	require.NoError(t, err)
	assert.Equal(t, uint64(200), won)
	assert.Equal(t, StateOpen, p.State, "claim reopens the position")

	mustPlace(t, g, p, cat, next, kindWin, 100)
}

func TestPlaceBetRoundScoped(t *testing.T) {
	cat := newTestCatalog()
	cat.epochScoped = false
	g := testGame(1000)
	p := testPosition()

	_, err := PlaceBet(g, p, cat, nil, kindWin, 0, 100)
	assert.ErrorIs(t, err, ErrRoundNotActive, "no open round")

	sealed := testRound(1, true)
	_, err = PlaceBet(g, p, cat, sealed, kindWin, 0, 100)
	assert.ErrorIs(t, err, ErrRoundNotActive, "sealed round no longer admits bets")

	open := testRound(2, false)
	mustPlace(t, g, p, cat, open, kindWin, 100)
	assert.Equal(t, uint64(2), p.Round, "position binds to the round")

	next := testRound(3, false)
	_, err = PlaceBet(g, p, cat, next, kindWin, 0, 100)
	assert.ErrorIs(t, err, ErrUnsettledBets, "bound position must settle first")

	// More bets on the same round are fine.
	mustPlace(t, g, p, cat, open, kindPush, 40)
}
