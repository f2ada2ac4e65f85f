package tests

import (
	"math/rand"
	"time"
)

type Randomizer struct {
	Float64 func() float64
	Bool    func() bool
	// IntRange returns an int in [lo, hi].
	IntRange func(lo, hi int) int
	// Pick returns a random element of values.
	Pick func(values []string) string
}

func NewRandomizer() Randomizer {
	random := rand.New(rand.NewSource(time.Now().Unix())) //nolint:gosec // for tests

	return Randomizer{
		Float64:  random.Float64,
		Bool:     func() bool { return random.Intn(2) == 0 }, //nolint:mnd // skip
		IntRange: func(lo, hi int) int { return lo + random.Intn(hi-lo+1) },
		Pick:     func(values []string) string { return values[random.Intn(len(values))] },
	}
}
