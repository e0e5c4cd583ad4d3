package craps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rollhouse/internal/engine"
)

func roll(d1, d2 uint8) engine.Outcome {
	return engine.FromSquare((d1-1)*6 + (d2 - 1))
}

func gameAtPoint(point uint8) *engine.Game {
	return &engine.Game{ID: ID, Epoch: 1, Point: point, Bankroll: 1 << 40}
}

func positionWith(slots ...engine.BetSlot) *engine.Position {
	return &engine.Position{Game: ID, Player: "p1", Epoch: 1, State: engine.StateOpen, Slots: slots}
}

func TestValidate(t *testing.T) {
	cat := New()

	tests := []struct {
		name    string
		point   uint8
		slots   []engine.BetSlot
		kind    engine.BetKind
		aux     uint8
		wantErr error
	}{
		{name: "pass on comeout", kind: PassLine},
		{name: "pass mid-epoch", point: 6, kind: PassLine, wantErr: engine.ErrInvalidBet},
		{name: "pass with target", kind: PassLine, aux: 4, wantErr: engine.ErrInvalidBet},
		{name: "dont pass on comeout", kind: DontPass},
		{name: "dont pass mid-epoch", point: 8, kind: DontPass, wantErr: engine.ErrInvalidBet},

		{name: "pass odds without point", kind: PassOdds, wantErr: engine.ErrInvalidBet},
		{name: "pass odds without base", point: 6, kind: PassOdds, wantErr: engine.ErrInvalidBet},
		{name: "pass odds on base", point: 6, kind: PassOdds,
			slots: []engine.BetSlot{{Kind: PassLine, Stake: 100}}},
		{name: "dont odds on base", point: 4, kind: DontPassOdds,
			slots: []engine.BetSlot{{Kind: DontPass, Stake: 100}}},
		{name: "dont odds without base", point: 4, kind: DontPassOdds, wantErr: engine.ErrInvalidBet},

		{name: "come on point number", kind: Come, aux: 6},
		{name: "come on seven", kind: Come, aux: 7, wantErr: engine.ErrInvalidBet},
		{name: "come on craps number", kind: Come, aux: 3, wantErr: engine.ErrInvalidBet},
		{name: "dont come on point number", kind: DontCome, aux: 10},
		{name: "come odds without come", kind: ComeOdds, aux: 6, wantErr: engine.ErrInvalidBet},
		{name: "come odds on come", kind: ComeOdds, aux: 6,
			slots: []engine.BetSlot{{Kind: Come, Aux: 6, Stake: 50}}},
		{name: "dont come odds on dont come", kind: DontComeOdds, aux: 9,
			slots: []engine.BetSlot{{Kind: DontCome, Aux: 9, Stake: 50}}},

		{name: "place six", kind: Place, aux: 6},
		{name: "place eleven", kind: Place, aux: 11, wantErr: engine.ErrInvalidBet},
		{name: "hardway eight", kind: Hardway, aux: 8},
		{name: "hardway five", kind: Hardway, aux: 5, wantErr: engine.ErrInvalidBet},
		{name: "hardway aces", kind: Hardway, aux: 2, wantErr: engine.ErrInvalidBet},

		{name: "field", kind: Field},
		{name: "field with target", kind: Field, aux: 5, wantErr: engine.ErrInvalidBet},
		{name: "any seven", kind: AnySeven},
		{name: "yo eleven", kind: YoEleven},

		{name: "yes eight", kind: Yes, aux: 8},
		{name: "yes seven", kind: Yes, aux: 7, wantErr: engine.ErrInvalidBet},
		{name: "yes thirteen", kind: Yes, aux: 13, wantErr: engine.ErrInvalidBet},
		{name: "no four", kind: No, aux: 4},
		{name: "no seven", kind: No, aux: 7, wantErr: engine.ErrInvalidBet},
		{name: "next seven", kind: Next, aux: 7},
		{name: "next two", kind: Next, aux: 2},
		{name: "next one", kind: Next, aux: 1, wantErr: engine.ErrInvalidBet},

		{name: "unknown kind", kind: engine.BetKind(99), wantErr: engine.ErrUnknownBetKind},
		{name: "gap kind", kind: engine.BetKind(20), wantErr: engine.ErrUnknownBetKind},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := gameAtPoint(tc.point)
			p := positionWith(tc.slots...)
			err := cat.Validate(g, p, tc.kind, tc.aux)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	cat := New()

	tests := []struct {
		name   string
		kind   engine.BetKind
		aux    uint8
		point  uint8
		d1, d2 uint8
		want   engine.VerdictKind
		pay    engine.Ratio
	}{
		{name: "pass natural", kind: PassLine, d1: 3, d2: 4, want: engine.Win, pay: engine.Ratio{Num: 1, Den: 1}},
		{name: "pass yo", kind: PassLine, d1: 5, d2: 6, want: engine.Win, pay: engine.Ratio{Num: 1, Den: 1}},
		{name: "pass craps", kind: PassLine, d1: 1, d2: 2, want: engine.Lose},
		{name: "pass sets point", kind: PassLine, d1: 4, d2: 4, want: engine.Carry},
		{name: "pass makes point", kind: PassLine, point: 6, d1: 2, d2: 4, want: engine.Win, pay: engine.Ratio{Num: 1, Den: 1}},
		{name: "pass seven out", kind: PassLine, point: 6, d1: 3, d2: 4, want: engine.Lose},
		{name: "pass rides", kind: PassLine, point: 6, d1: 4, d2: 4, want: engine.Carry},

		{name: "dont craps wins", kind: DontPass, d1: 1, d2: 1, want: engine.Win, pay: engine.Ratio{Num: 1, Den: 1}},
		{name: "dont bar twelve", kind: DontPass, d1: 6, d2: 6, want: engine.Push},
		{name: "dont natural loses", kind: DontPass, d1: 3, d2: 4, want: engine.Lose},
		{name: "dont seven out wins", kind: DontPass, point: 9, d1: 2, d2: 5, want: engine.Win, pay: engine.Ratio{Num: 1, Den: 1}},
		{name: "dont point made loses", kind: DontPass, point: 9, d1: 4, d2: 5, want: engine.Lose},

		{name: "pass odds hit", kind: PassOdds, point: 4, d1: 2, d2: 2, want: engine.Win, pay: engine.Ratio{Num: 2, Den: 1}},
		{name: "pass odds seven", kind: PassOdds, point: 4, d1: 1, d2: 6, want: engine.Lose},
		{name: "pass odds comeout carries", kind: PassOdds, d1: 2, d2: 2, want: engine.Carry},
		{name: "dont odds seven", kind: DontPassOdds, point: 5, d1: 3, d2: 4, want: engine.Win, pay: engine.Ratio{Num: 2, Den: 3}},
		{name: "dont odds point made", kind: DontPassOdds, point: 5, d1: 2, d2: 3, want: engine.Lose},

		{name: "come hits", kind: Come, aux: 9, d1: 4, d2: 5, want: engine.Win, pay: engine.Ratio{Num: 1, Den: 1}},
		{name: "come seven", kind: Come, aux: 9, d1: 5, d2: 2, want: engine.Lose},
		{name: "come rides", kind: Come, aux: 9, d1: 2, d2: 3, want: engine.Carry},
		{name: "dont come seven", kind: DontCome, aux: 4, d1: 6, d2: 1, want: engine.Win, pay: engine.Ratio{Num: 1, Den: 1}},
		{name: "dont come hit", kind: DontCome, aux: 4, d1: 1, d2: 3, want: engine.Lose},
		{name: "come odds hit", kind: ComeOdds, aux: 10, d1: 5, d2: 5, want: engine.Win, pay: engine.Ratio{Num: 2, Den: 1}},
		{name: "dont come odds seven", kind: DontComeOdds, aux: 6, d1: 1, d2: 6, want: engine.Win, pay: engine.Ratio{Num: 5, Den: 6}},

		{name: "place six hits", kind: Place, aux: 6, d1: 5, d2: 1, want: engine.Win, pay: engine.Ratio{Num: 7, Den: 6}},
		{name: "place four hits", kind: Place, aux: 4, d1: 1, d2: 3, want: engine.Win, pay: engine.Ratio{Num: 9, Den: 5}},
		{name: "place nine hits", kind: Place, aux: 9, d1: 6, d2: 3, want: engine.Win, pay: engine.Ratio{Num: 7, Den: 5}},
		{name: "place seven out", kind: Place, aux: 6, d1: 4, d2: 3, want: engine.Lose},
		{name: "place rides", kind: Place, aux: 6, d1: 2, d2: 3, want: engine.Carry},

		{name: "hard eight", kind: Hardway, aux: 8, d1: 4, d2: 4, want: engine.Win, pay: engine.Ratio{Num: 9, Den: 1}},
		{name: "easy eight", kind: Hardway, aux: 8, d1: 5, d2: 3, want: engine.Lose},
		{name: "hardway seven out", kind: Hardway, aux: 8, d1: 2, d2: 5, want: engine.Lose},
		{name: "hardway rides", kind: Hardway, aux: 8, d1: 3, d2: 3, want: engine.Carry},
		{name: "hard four", kind: Hardway, aux: 4, d1: 2, d2: 2, want: engine.Win, pay: engine.Ratio{Num: 7, Den: 1}},

		{name: "field two doubles", kind: Field, d1: 1, d2: 1, want: engine.Win, pay: engine.Ratio{Num: 2, Den: 1}},
		{name: "field twelve doubles", kind: Field, d1: 6, d2: 6, want: engine.Win, pay: engine.Ratio{Num: 2, Den: 1}},
		{name: "field nine", kind: Field, d1: 4, d2: 5, want: engine.Win, pay: engine.Ratio{Num: 1, Den: 1}},
		{name: "field five loses", kind: Field, d1: 2, d2: 3, want: engine.Lose},
		{name: "field seven loses", kind: Field, d1: 3, d2: 4, want: engine.Lose},

		{name: "any seven hits", kind: AnySeven, d1: 6, d2: 1, want: engine.Win, pay: engine.Ratio{Num: 4, Den: 1}},
		{name: "any seven misses", kind: AnySeven, d1: 3, d2: 3, want: engine.Lose},
		{name: "any craps hits", kind: AnyCraps, d1: 1, d2: 2, want: engine.Win, pay: engine.Ratio{Num: 7, Den: 1}},
		{name: "any craps misses", kind: AnyCraps, d1: 5, d2: 6, want: engine.Lose},
		{name: "yo hits", kind: YoEleven, d1: 5, d2: 6, want: engine.Win, pay: engine.Ratio{Num: 15, Den: 1}},
		{name: "yo misses", kind: YoEleven, d1: 5, d2: 5, want: engine.Lose},
		{name: "aces hit", kind: Aces, d1: 1, d2: 1, want: engine.Win, pay: engine.Ratio{Num: 30, Den: 1}},
		{name: "aces miss", kind: Aces, d1: 1, d2: 2, want: engine.Lose},
		{name: "twelve hits", kind: Twelve, d1: 6, d2: 6, want: engine.Win, pay: engine.Ratio{Num: 30, Den: 1}},
		{name: "twelve misses", kind: Twelve, d1: 5, d2: 6, want: engine.Lose},

		{name: "yes hits", kind: Yes, aux: 8, d1: 6, d2: 2, want: engine.Win, pay: engine.Ratio{Num: 6, Den: 5}},
		{name: "yes seven", kind: Yes, aux: 8, d1: 4, d2: 3, want: engine.Lose},
		{name: "yes rides", kind: Yes, aux: 8, d1: 2, d2: 2, want: engine.Carry},
		{name: "no seven first", kind: No, aux: 4, d1: 5, d2: 2, want: engine.Win, pay: engine.Ratio{Num: 3, Den: 6}},
		{name: "no target first", kind: No, aux: 4, d1: 2, d2: 2, want: engine.Lose},
		{name: "no rides", kind: No, aux: 4, d1: 3, d2: 3, want: engine.Carry},
		{name: "next hits", kind: Next, aux: 11, d1: 6, d2: 5, want: engine.Win, pay: engine.Ratio{Num: 34, Den: 2}},
		{name: "next misses terminally", kind: Next, aux: 11, d1: 2, d2: 2, want: engine.Lose},
		{name: "next seven", kind: Next, aux: 7, d1: 3, d2: 4, want: engine.Win, pay: engine.Ratio{Num: 30, Den: 6}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			slot := engine.BetSlot{Kind: tc.kind, Aux: tc.aux, Stake: 100}
			v := cat.Evaluate(slot, roll(tc.d1, tc.d2), tc.point)
			require.Equal(t, tc.want, v.Kind)
			if tc.want == engine.Win {
				assert.Equal(t, tc.pay, v.Pay)
			}
		})
	}
}

func TestAdvance(t *testing.T) {
	cat := New()

	tests := []struct {
		name   string
		point  uint8
		d1, d2 uint8
		want   engine.Transition
	}{
		{name: "comeout natural", d1: 3, d2: 4, want: engine.Transition{}},
		{name: "comeout craps", d1: 1, d2: 1, want: engine.Transition{}},
		{name: "comeout sets point", d1: 4, d2: 4, want: engine.Transition{Point: 8}},
		{name: "seven out ends epoch", point: 8, d1: 3, d2: 4, want: engine.Transition{EpochEnds: true}},
		{name: "point made returns to comeout", point: 8, d1: 5, d2: 3, want: engine.Transition{}},
		{name: "point holds", point: 8, d1: 2, d2: 3, want: engine.Transition{Point: 8}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, cat.Advance(tc.point, roll(tc.d1, tc.d2)))
		})
	}
}

func TestMaxReturn(t *testing.T) {
	cat := New()

	tests := []struct {
		name  string
		kind  engine.BetKind
		aux   uint8
		point uint8
		stake uint64
		want  uint64
	}{
		{"pass line", PassLine, 0, 0, 100, 200},
		{"dont pass", DontPass, 0, 0, 100, 200},
		{"pass odds on four", PassOdds, 0, 4, 100, 300},
		{"pass odds on five", PassOdds, 0, 5, 100, 250},
		{"pass odds on six", PassOdds, 0, 6, 100, 220},
		{"dont odds on four", DontPassOdds, 0, 4, 100, 150},
		{"dont odds on six", DontPassOdds, 0, 6, 100, 183},
		{"come odds target", ComeOdds, 10, 0, 100, 300},
		{"dont come odds target", DontComeOdds, 8, 0, 100, 183},
		{"place six", Place, 6, 0, 60, 130},
		{"place four", Place, 4, 0, 50, 140},
		{"place nine", Place, 9, 0, 50, 120},
		{"hard eight", Hardway, 8, 0, 100, 1000},
		{"hard ten", Hardway, 10, 0, 100, 800},
		{"field reserves the doubles", Field, 0, 0, 100, 300},
		{"any seven", AnySeven, 0, 0, 10, 50},
		{"any craps", AnyCraps, 0, 0, 10, 80},
		{"yo", YoEleven, 0, 0, 10, 160},
		{"aces", Aces, 0, 0, 10, 310},
		{"twelve", Twelve, 0, 0, 10, 310},
		{"yes five", Yes, 5, 0, 100, 250},
		{"no ten", No, 10, 0, 100, 150},
		{"next two", Next, 2, 0, 10, 360},
		{"next seven", Next, 7, 0, 12, 72},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := cat.MaxReturn(tc.kind, tc.aux, tc.point, tc.stake)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := cat.MaxReturn(engine.BetKind(99), 0, 0, 100)
	assert.ErrorIs(t, err, engine.ErrUnknownBetKind)
}

func TestTableLimits(t *testing.T) {
	cat := New()
	assert.Equal(t, uint64(1), cat.MinBet())
	assert.Equal(t, uint64(DefaultMaxBet), cat.MaxBet())

	custom := NewWithLimits(50, 5000)
	assert.Equal(t, uint64(50), custom.MinBet())
	assert.Equal(t, uint64(5000), custom.MaxBet())

	defaulted := NewWithLimits(0, 0)
	assert.Equal(t, uint64(1), defaulted.MinBet())
	assert.Equal(t, uint64(DefaultMaxBet), defaulted.MaxBet())
}

func TestCatalogShape(t *testing.T) {
	cat := New()
	assert.Equal(t, ID, cat.ID())
	assert.True(t, cat.EpochScoped())
	assert.False(t, cat.RequiresDeal())

	assert.Equal(t, "pass_line", cat.KindName(PassLine))
	assert.Equal(t, "dont_come_odds", cat.KindName(DontComeOdds))
	assert.Equal(t, "next", cat.KindName(Next))
	assert.Empty(t, cat.KindName(engine.BetKind(200)))
}
