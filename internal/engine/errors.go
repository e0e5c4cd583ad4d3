package engine

import "errors"

var (
	ErrInvalidBet        = errors.New("invalid bet")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrBetTooSmall       = errors.New("bet below minimum")
	ErrBetTooLarge       = errors.New("bet exceeds maximum")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrStaleEpoch        = errors.New("position bound to another round")
	ErrAlreadySettled    = errors.New("already settled for this round")
	ErrRoundNotReady     = errors.New("round not ready for settlement")
	ErrRoundNotActive    = errors.New("round no longer accepting bets")
	ErrRoundExpired      = errors.New("round has expired")
	ErrRoundNotExpired   = errors.New("round has not expired")
	ErrInsolventHouse    = errors.New("house bankroll cannot cover payout")
	ErrGameHalted        = errors.New("game halted pending insolvency resolution")
	ErrNothingToClaim    = errors.New("nothing to claim")
	ErrNotHalted         = errors.New("game is not halted")
	ErrEntropyUnusable   = errors.New("round entropy unusable")
	ErrUnsettledBets     = errors.New("unsettled bets from a previous round")
	ErrUnclaimedWinnings = errors.New("winnings must be claimed before betting again")
	ErrUnknownGame       = errors.New("unknown game")
	ErrUnknownBetKind    = errors.New("unknown bet kind")
	ErrOverflow          = errors.New("arithmetic overflow")
)
