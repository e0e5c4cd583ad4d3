package chain

import "context"

// Beacon produces the 32-byte entropy snapshot a round seals.
type Beacon interface {
	Seed(ctx context.Context) ([32]byte, error)
}
