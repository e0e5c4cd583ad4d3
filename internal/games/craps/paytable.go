package craps

import "rollhouse/internal/engine"

// House paytable. Ratios are winnings over stake; a winner is owed
// stake plus stake*Num/Den.
var (
	payEven     = engine.Ratio{Num: 1, Den: 1}
	payField212 = engine.Ratio{Num: 2, Den: 1}
	payAnySeven = engine.Ratio{Num: 4, Den: 1}
	payAnyCraps = engine.Ratio{Num: 7, Den: 1}
	payYoEleven = engine.Ratio{Num: 15, Den: 1}
	payAces     = engine.Ratio{Num: 30, Den: 1}
	payTwelve   = engine.Ratio{Num: 30, Den: 1}
	payHard410  = engine.Ratio{Num: 7, Den: 1}
	payHard68   = engine.Ratio{Num: 9, Den: 1}
)

// placePay is the house odds for place bets: 9:5 on 4/10, 7:5 on 5/9,
// 7:6 on 6/8.
func placePay(point uint8) (engine.Ratio, bool) {
	switch point {
	case 4, 10:
		return engine.Ratio{Num: 9, Den: 5}, true
	case 5, 9:
		return engine.Ratio{Num: 7, Den: 5}, true
	case 6, 8:
		return engine.Ratio{Num: 7, Den: 6}, true
	}
	return engine.Ratio{}, false
}

// trueOdds pays pass/come odds at zero house edge.
func trueOdds(point uint8) (engine.Ratio, bool) {
	switch point {
	case 4, 10:
		return engine.Ratio{Num: 2, Den: 1}, true
	case 5, 9:
		return engine.Ratio{Num: 3, Den: 2}, true
	case 6, 8:
		return engine.Ratio{Num: 6, Den: 5}, true
	}
	return engine.Ratio{}, false
}

// dontTrueOdds is the lay side: the inverse ratio.
func dontTrueOdds(point uint8) (engine.Ratio, bool) {
	r, ok := trueOdds(point)
	if !ok {
		return engine.Ratio{}, false
	}
	return engine.Ratio{Num: r.Den, Den: r.Num}, true
}

func hardwayPay(n uint8) (engine.Ratio, bool) {
	switch n {
	case 4, 10:
		return payHard410, true
	case 6, 8:
		return payHard68, true
	}
	return engine.Ratio{}, false
}

// yesPay: the chosen sum rolls before any 7, at true odds 6:ways(sum).
func yesPay(sum uint8) (engine.Ratio, bool) {
	w := engine.Ways(sum)
	if w == 0 || sum == 7 {
		return engine.Ratio{}, false
	}
	return engine.Ratio{Num: 6, Den: w}, true
}

// noPay: a 7 rolls before the chosen sum, at true odds ways(sum):6.
func noPay(sum uint8) (engine.Ratio, bool) {
	w := engine.Ways(sum)
	if w == 0 || sum == 7 {
		return engine.Ratio{}, false
	}
	return engine.Ratio{Num: w, Den: 6}, true
}

// nextPay: single-roll exact sum, at true odds (36-ways):ways.
func nextPay(sum uint8) (engine.Ratio, bool) {
	w := engine.Ways(sum)
	if w == 0 {
		return engine.Ratio{}, false
	}
	return engine.Ratio{Num: 36 - w, Den: w}, true
}
