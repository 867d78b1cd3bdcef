package game

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPosition_In(t *testing.T) {
	t.Run("Corners are on the board", func(t *testing.T) {
		assert.True(t, NewPosition(0, 0).In(8, 8))
		assert.True(t, NewPosition(7, 7).In(8, 8))
		assert.True(t, NewPosition(5, 6).In(6, 7))
	})

	t.Run("Outside cells are rejected", func(t *testing.T) {
		assert.False(t, NewPosition(-1, 0).In(3, 3))
		assert.False(t, NewPosition(0, -1).In(3, 3))
		assert.False(t, NewPosition(3, 0).In(3, 3))
		assert.False(t, NewPosition(0, 7).In(6, 7))
	})
}

func TestPosition_Add(t *testing.T) {
	// Given: a cell in the middle of the board
	pos := NewPosition(4, 4)

	// When: shifting it diagonally
	shifted := pos.Add(-2, 2)

	// Then: the result is a new value and the original is untouched
	assert.Equal(t, Position{Row: 2, Col: 6}, shifted)
	assert.Equal(t, Position{Row: 4, Col: 4}, pos)
}

func TestLockedRand_MatchesSeededSource(t *testing.T) {
	// Given: a locked source and a plain source with the same seed
	locked := NewLockedRand(42)
	plain := rand.New(rand.NewSource(42))

	// Then: they produce the same sequence
	for rep := 0; rep < 10; rep++ {
		assert.Equal(t, plain.Intn(100), locked.Intn(100))
	}
}

func TestLockedRand_ConcurrentUse(t *testing.T) {
	locked := NewLockedRand(1)

	var wg sync.WaitGroup
	for rep := 0; rep < 8; rep++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rep := 0; rep < 100; rep++ {
				n := locked.Intn(7)
				assert.GreaterOrEqual(t, n, 0)
				assert.Less(t, n, 7)
			}
		}()
	}
	wg.Wait()
}
