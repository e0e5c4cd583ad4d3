package chain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Beacon = (*Local)(nil)

func TestLocalSeed(t *testing.T) {
	b := NewLocal()

	s1, err := b.Seed(context.Background())
	require.NoError(t, err)
	s2, err := b.Seed(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, s1, s2, "consecutive seeds diverge")
	assert.NotEqual(t, [32]byte{}, s1, "seed is never all zero")
}
