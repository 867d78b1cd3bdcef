package game

import (
	"math/rand"
	"sync"
)

// Random is the source every computer strategy draws from.
// *rand.Rand satisfies it, which keeps tests deterministic with a fixed seed.
type Random interface {
	Intn(n int) int
}

// LockedRand is a Random safe for use from scheduled callbacks and request handlers at once.
type LockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewLockedRand(seed int64) *LockedRand {
	return &LockedRand{rng: rand.New(rand.NewSource(seed))} //nolint: gosec // game randomness
}

func (that *LockedRand) Intn(n int) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.rng.Intn(n)
}
