package chain

import (
	"context"
	"crypto/rand"
)

// Local draws seeds from the OS CSPRNG. Default when no RPC endpoint
// is configured.
type Local struct{}

func NewLocal() *Local {
	return &Local{}
}

func (b *Local) Seed(ctx context.Context) ([32]byte, error) {
	var s [32]byte
	_, err := rand.Read(s[:])
	return s, err
}
