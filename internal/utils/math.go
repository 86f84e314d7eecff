package utils

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"

	"github.com/osse101/PrizeGrid_Go/internal/domain"
)

// NewSeed draws a fresh round seed from crypto/rand
func NewSeed() (domain.RoundSeed, error) {
	var buf [16]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return domain.RoundSeed{}, fmt.Errorf("failed to read seed entropy: %w", err)
	}
	return domain.RoundSeed{
		Hi: binary.LittleEndian.Uint64(buf[:8]),
		Lo: binary.LittleEndian.Uint64(buf[8:]),
	}, nil
}

// NewRNG returns the deterministic generator for a round. The same seed always
// yields the same sequence, which is what makes rounds replayable.
func NewRNG(seed domain.RoundSeed) *rand.Rand {
	return rand.New(rand.NewPCG(seed.Hi, seed.Lo)) //nolint:gosec // Seed comes from crypto/rand
}

// Independent streams derived from one round seed. The grid stream is separate from
// the draw so a demoted win can be re-synthesized from scratch and still replay.
const (
	StreamDraw uint64 = 0
	StreamGrid uint64 = 0x9e3779b97f4a7c15
)

// NewStreamRNG returns the generator for one stream of a round seed
func NewStreamRNG(seed domain.RoundSeed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed.Hi, seed.Lo^stream)) //nolint:gosec // Seed comes from crypto/rand
}

// SeedToInt64 stores an unsigned seed half in a signed bigint column
func SeedToInt64(v uint64) int64 {
	return int64(v) //nolint:gosec // Bit-preserving conversion
}

// SeedFromInt64 is the inverse of SeedToInt64
func SeedFromInt64(v int64) uint64 {
	return uint64(v) //nolint:gosec // Bit-preserving conversion
}
