package engine

import (
	"encoding/binary"
	"math"

	"golang.org/x/crypto/sha3"
)

// BoardSize is the number of distinct ordered dice combinations.
const BoardSize = 36

// Outcome is the resolved result of one round's entropy.
type Outcome struct {
	Square uint8
	Die1   uint8
	Die2   uint8
	Sum    uint8
	Hard   bool
}

// UsableSeed rejects the degenerate seeds an upstream beacon can emit
// when it has no randomness to give.
func UsableSeed(seed [32]byte) bool {
	allZero, allMax := true, true
	for _, b := range seed {
		if b != 0 {
			allZero = false
		}
		if b != 0xFF {
			allMax = false
		}
	}
	return !allZero && !allMax
}

func keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}

// Resolve maps a 32-byte seed to a uniform square in [0, BoardSize).
// The first 8 little-endian bytes of the keccak digest are rejection
// sampled to eliminate modulo bias; the rare rejected sample retries on
// the digest of the digest.
func Resolve(seed [32]byte) (Outcome, error) {
	if !UsableSeed(seed) {
		return Outcome{}, ErrEntropyUnusable
	}

	digest := keccak256(seed[:])
	sample := binary.LittleEndian.Uint64(digest[:8])

	const maxValid = (math.MaxUint64 / BoardSize) * BoardSize
	var square uint64
	if sample < maxValid {
		square = sample % BoardSize
	} else {
		digest2 := keccak256(digest)
		square = binary.LittleEndian.Uint64(digest2[:8]) % BoardSize
	}

	return FromSquare(uint8(square)), nil
}

// FromSquare expands a square index into dice values.
// Square = (die1-1)*6 + (die2-1); doubles land on multiples of 7.
func FromSquare(square uint8) Outcome {
	d1 := square/6 + 1
	d2 := square%6 + 1
	return Outcome{
		Square: square,
		Die1:   d1,
		Die2:   d2,
		Sum:    d1 + d2,
		Hard:   square%7 == 0,
	}
}

// SquaresForSum lists the squares producing a given dice sum.
func SquaresForSum(sum uint8) []uint8 {
	var squares []uint8
	for d1 := uint8(1); d1 <= 6; d1++ {
		if sum <= d1 {
			continue
		}
		d2 := sum - d1
		if d2 >= 1 && d2 <= 6 {
			squares = append(squares, (d1-1)*6+(d2-1))
		}
	}
	return squares
}

// Ways counts the dice combinations that produce a sum. Zero outside 2..12.
func Ways(sum uint8) uint64 {
	if sum < 2 || sum > 12 {
		return 0
	}
	if sum <= 7 {
		return uint64(sum - 1)
	}
	return uint64(13 - sum)
}
