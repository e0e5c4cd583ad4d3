package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForceSettleForfeitsExpired(t *testing.T) {
	cat := newTestCatalog()
	g := testGame(1000)
	p := testPosition()
	mustPlace(t, g, p, cat, nil, kindWin, 100)
	mustPlace(t, g, p, cat, nil, kindCarry, 50)
	require.Equal(t, uint64(1150), g.Bankroll)
	require.Equal(t, uint64(300), g.Reserved)

	r := testRound(3, true)
	res, err := ForceSettle(g, p, r, r.ExpiresAt+1)
	require.NoError(t, err)

	assert.Equal(t, uint64(150), res.Forfeited, "every live stake is lost")
	assert.Zero(t, res.Paid)
	assert.Equal(t, uint64(1150), g.Bankroll, "stakes stay with the house")
	assert.Zero(t, g.Reserved)
	assert.Equal(t, uint64(150), g.TotalCollected)
	assert.Equal(t, uint64(150), p.TotalLost)
	assert.False(t, p.HasBets())
	assert.Equal(t, uint64(3), p.LastSettled)
}

func TestForceSettleGates(t *testing.T) {
	cat := newTestCatalog()
	g := testGame(1000)
	p := testPosition()
	mustPlace(t, g, p, cat, nil, kindWin, 100)

	r := testRound(3, true)
	_, err := ForceSettle(g, p, r, testNow)
	assert.ErrorIs(t, err, ErrRoundNotExpired)

	_, err = ForceSettle(g, p, nil, testNow)
	assert.ErrorIs(t, err, ErrRoundNotReady)

	g.Halted = true
	_, err = ForceSettle(g, p, r, r.ExpiresAt+1)
	assert.ErrorIs(t, err, ErrGameHalted)
}

func TestForceSettleUnsealedRound(t *testing.T) {
	// A round that expired without ever being sealed can still be
	// force-settled; no outcome is needed to forfeit.
	cat := newTestCatalog()
	g := testGame(1000)
	p := testPosition()
	mustPlace(t, g, p, cat, nil, kindWin, 100)

	r := testRound(3, false)
	res, err := ForceSettle(g, p, r, r.ExpiresAt+1)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), res.Forfeited)
}

func TestForceSettleRefundsStaleEpoch(t *testing.T) {
	cat := newTestCatalog()
	g := testGame(1000)
	p := testPosition()
	mustPlace(t, g, p, cat, nil, kindCarry, 100)

	g.StartEpoch(5)

	r := testRound(6, true)
	res, err := ForceSettle(g, p, r, r.ExpiresAt+1)
	require.NoError(t, err)

	assert.Equal(t, uint64(100), res.Refunded, "stranded stakes come back, not forfeit")
	assert.Zero(t, res.Forfeited)
	assert.Equal(t, uint64(100), p.Pending)
	assert.Equal(t, uint64(1000), g.Bankroll)
}

func TestForceSettleNoBets(t *testing.T) {
	g := testGame(1000)
	p := testPosition()

	r := testRound(3, true)
	res, err := ForceSettle(g, p, r, r.ExpiresAt+1)
	require.NoError(t, err)
	assert.True(t, res.NoBets)
}

func TestDealLifecycle(t *testing.T) {
	cat := newTestCatalog()
	cat.requiresDeal = true
	g := testGame(1000)
	p := testPosition()

	r := testRound(1, false)
	err := Deal(p, cat, r)
	assert.ErrorIs(t, err, ErrInvalidBet, "nothing staked to deal")

	mustPlace(t, g, p, cat, r, kindWin, 100)
	require.NoError(t, Deal(p, cat, r))
	assert.Equal(t, StateAwaiting, p.State)
	assert.Equal(t, uint64(1), p.Round)

	require.NoError(t, Deal(p, cat, r), "dealing the same round is idempotent")

	next := testRound(2, false)
	assert.ErrorIs(t, Deal(p, cat, next), ErrUnsettledBets)

	sealed := testRound(3, true)
	assert.ErrorIs(t, Deal(p, cat, sealed), ErrRoundNotActive)
}

func TestDealRequiresDealStep(t *testing.T) {
	cat := newTestCatalog()
	g := testGame(1000)
	p := testPosition()
	mustPlace(t, g, p, cat, nil, kindWin, 100)

	err := Deal(p, cat, testRound(1, false))
	assert.ErrorIs(t, err, ErrInvalidBet)
}
