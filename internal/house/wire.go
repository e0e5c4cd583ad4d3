package house

import (
	"encoding/binary"
	"errors"

	"rollhouse/internal/engine"
)

// Binary request payloads, fixed-size little-endian. Clients that
// already speak the settlement wire format post these with
// Content-Type application/octet-stream; everything else is JSON.
const (
	placeBetWireLen = 10
	roundWireLen    = 8
	amountWireLen   = 8
)

var ErrBadPayload = errors.New("malformed binary payload")

// EncodePlaceBet packs kind u8 | aux u8 | amount u64le.
func EncodePlaceBet(kind engine.BetKind, aux uint8, amount uint64) []byte {
	b := make([]byte, placeBetWireLen)
	b[0] = byte(kind)
	b[1] = aux
	binary.LittleEndian.PutUint64(b[2:], amount)
	return b
}

func DecodePlaceBet(b []byte) (engine.BetKind, uint8, uint64, error) {
	if len(b) != placeBetWireLen {
		return 0, 0, 0, ErrBadPayload
	}
	return engine.BetKind(b[0]), b[1], binary.LittleEndian.Uint64(b[2:]), nil
}

// EncodeRoundID packs a round id as u64le.
func EncodeRoundID(id uint64) []byte {
	b := make([]byte, roundWireLen)
	binary.LittleEndian.PutUint64(b, id)
	return b
}

func DecodeRoundID(b []byte) (uint64, error) {
	if len(b) != roundWireLen {
		return 0, ErrBadPayload
	}
	return binary.LittleEndian.Uint64(b), nil
}

// EncodeAmount packs a funding amount as u64le.
func EncodeAmount(amount uint64) []byte {
	b := make([]byte, amountWireLen)
	binary.LittleEndian.PutUint64(b, amount)
	return b
}

func DecodeAmount(b []byte) (uint64, error) {
	if len(b) != amountWireLen {
		return 0, ErrBadPayload
	}
	return binary.LittleEndian.Uint64(b), nil
}
