package event

// Topics published by the wagering pipeline.
const (
	EventBetPlaced      = "bet.placed"
	EventRoundOpened    = "round.opened"
	EventRoundSealed    = "round.sealed"
	EventRoundSettled   = "round.settled"
	EventClaimPaid      = "claim.paid"
	EventHouseInsolvent = "house.insolvent"
)
