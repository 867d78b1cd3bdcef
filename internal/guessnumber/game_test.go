package guessnumber

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedRandom int

func (that fixedRandom) Intn(int) int {
	return int(that)
}

func TestNewGame(t *testing.T) {
	t.Run("Secret is drawn from the source", func(t *testing.T) {
		g := NewGame(fixedRandom(41))

		assert.Equal(t, 42, g.Secret)
		assert.Equal(t, StateInProgress, g.State())
		assert.Empty(t, g.History)
		assert.Equal(t, Hint(""), g.LastHint())
	})

	t.Run("Secret stays in range", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))

		for rep := 0; rep < 200; rep++ {
			g := NewGame(rng)
			require.GreaterOrEqual(t, g.Secret, Min)
			require.LessOrEqual(t, g.Secret, Max)
		}
	})
}

func TestGame_Guess(t *testing.T) {
	t.Run("Hints lead to the secret", func(t *testing.T) {
		// Given: the secret is 42
		g := NewGame(fixedRandom(41))

		// When: guessing too low, too high and then right
		require.True(t, g.Guess(10))
		assert.Equal(t, HintLow, g.LastHint())
		require.True(t, g.Guess(90))
		assert.Equal(t, HintHigh, g.LastHint())
		require.True(t, g.Guess(42))

		// Then: the game is won after three attempts
		assert.Equal(t, HintCorrect, g.LastHint())
		assert.True(t, g.Won)
		assert.Equal(t, StateWon, g.State())
		assert.Equal(t, 3, g.Attempts)
		assert.Equal(t, []Attempt{
			{Value: 10, Hint: HintLow},
			{Value: 90, Hint: HintHigh},
			{Value: 42, Hint: HintCorrect},
		}, g.History)
	})

	t.Run("Out of range guesses are ignored", func(t *testing.T) {
		g := NewGame(fixedRandom(0))

		assert.False(t, g.Guess(0))
		assert.False(t, g.Guess(101))
		assert.Zero(t, g.Attempts)
	})

	t.Run("Guess after the win is ignored", func(t *testing.T) {
		g := NewGame(fixedRandom(99))
		require.True(t, g.Guess(100))

		assert.False(t, g.Guess(50))
		assert.Equal(t, 1, g.Attempts)
	})
}

func TestGame_Restart(t *testing.T) {
	// Given: a won game
	g := NewGame(fixedRandom(0))
	require.True(t, g.Guess(1))

	// When: restarting with another secret
	g.Restart(fixedRandom(9))

	// Then: the round starts over
	assert.Equal(t, &Game{Secret: 10}, g)
}

func TestGame_Masked(t *testing.T) {
	t.Run("Secret hidden while playing", func(t *testing.T) {
		g := NewGame(fixedRandom(41))
		require.True(t, g.Guess(50))

		masked := g.Masked()

		assert.Zero(t, masked.Secret)
		assert.Equal(t, g.History, masked.History)
		assert.Equal(t, 42, g.Secret)
	})

	t.Run("Secret revealed once found", func(t *testing.T) {
		g := NewGame(fixedRandom(41))
		require.True(t, g.Guess(42))

		assert.Equal(t, 42, g.Masked().Secret)
	})
}
