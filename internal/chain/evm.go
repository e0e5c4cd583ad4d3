package chain

import (
	"context"

	"github.com/ethereum/go-ethereum/ethclient"
)

// EVM seals rounds with the latest block header hash of an EVM chain.
// Public and verifiable after the fact, at the cost of miner influence
// on the margin.
type EVM struct {
	rpc *ethclient.Client
}

func NewEVM(rpcURL string) (*EVM, error) {
	c, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, err
	}
	return &EVM{rpc: c}, nil
}

func (b *EVM) Seed(ctx context.Context) ([32]byte, error) {
	header, err := b.rpc.HeaderByNumber(ctx, nil)
	if err != nil {
		return [32]byte{}, err
	}
	return [32]byte(header.Hash()), nil
}
