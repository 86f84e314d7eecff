package domain

// RNG is the randomness source injected into the draw and the grid synthesis.
// *math/rand/v2.Rand satisfies it; a round is replayable from the seed it was built with.
type RNG interface {
	IntN(n int) int
	Float64() float64
}

// RoundSeed holds the two PCG seed words a round's RNG was created from
type RoundSeed struct {
	Hi uint64 `json:"hi"`
	Lo uint64 `json:"lo"`
}
