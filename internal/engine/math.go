package engine

import "math/bits"

func addU64(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, ErrOverflow
	}
	return sum, nil
}

func subU64(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, ErrOverflow
	}
	return diff, nil
}

// mulDiv computes amount * num / den with a 128-bit intermediate.
func mulDiv(amount, num, den uint64) (uint64, error) {
	if den == 0 {
		return 0, ErrOverflow
	}
	hi, lo := bits.Mul64(amount, num)
	if hi >= den {
		return 0, ErrOverflow
	}
	q, _ := bits.Div64(hi, lo, den)
	return q, nil
}

// Ratio is a rational payout multiplier. Winnings are stake*Num/Den,
// floor division, paid on top of the returned stake.
type Ratio struct {
	Num uint64
	Den uint64
}

// Winnings is the profit on a winning stake, excluding the stake itself.
func (r Ratio) Winnings(stake uint64) (uint64, error) {
	return mulDiv(stake, r.Num, r.Den)
}

// Return is stake plus winnings, the full amount a winner is owed.
func (r Ratio) Return(stake uint64) (uint64, error) {
	w, err := r.Winnings(stake)
	if err != nil {
		return 0, err
	}
	return addU64(stake, w)
}
