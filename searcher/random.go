package searcher

import (
	"time"

	"golang.org/x/exp/rand"
)

// Random is the source of randomness for expansion and rollouts. Tests inject
// a seeded or scripted implementation to make searches reproducible.
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int
}

// NewRandom returns a seeded pseudo-random source.
func NewRandom(seed uint64) Random {
	return rand.New(rand.NewSource(seed))
}

func newTimeSeededRandom() Random {
	return NewRandom(uint64(time.Now().UnixNano()))
}
