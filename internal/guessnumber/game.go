package guessnumber

import "github.com/rocketscienceinc/alphagames-backend/internal/game"

const (
	Min = 1
	Max = 100
)

type Hint string

const (
	HintLow     Hint = "low"
	HintHigh    Hint = "high"
	HintCorrect Hint = "correct"
)

type State string

const (
	StateInProgress State = "in_progress"
	StateWon        State = "won"
)

type Attempt struct {
	Value int  `json:"value"`
	Hint  Hint `json:"hint"`
}

// Game is a single player round: find the secret in as few attempts as possible.
type Game struct {
	Secret   int       `json:"secret"`
	Attempts int       `json:"attempts"`
	History  []Attempt `json:"history"`
	Won      bool      `json:"won"`
}

func NewGame(rng game.Random) *Game {
	g := &Game{}
	g.Restart(rng)

	return g
}

// Restart draws a new secret and forgets previous attempts.
func (that *Game) Restart(rng game.Random) {
	that.Secret = Min + rng.Intn(Max-Min+1)
	that.Attempts = 0
	that.History = nil
	that.Won = false
}

func (that *Game) State() State {
	if that.Won {
		return StateWon
	}
	return StateInProgress
}

// LastHint is the answer to the most recent guess, empty before the first one.
func (that *Game) LastHint() Hint {
	if len(that.History) == 0 {
		return ""
	}
	return that.History[len(that.History)-1].Hint
}

// Guess compares value against the secret. Values outside [Min, Max] and guesses
// after the secret was found are ignored.
func (that *Game) Guess(value int) bool {
	if that.Won || value < Min || value > Max {
		return false
	}

	hint := HintCorrect
	switch {
	case value < that.Secret:
		hint = HintLow
	case value > that.Secret:
		hint = HintHigh
	default:
		that.Won = true
	}

	that.Attempts++
	that.History = append(that.History, Attempt{Value: value, Hint: hint})

	return true
}

// Masked returns a copy safe to show to the player: the secret is hidden until found.
func (that *Game) Masked() *Game {
	masked := *that
	masked.History = append([]Attempt(nil), that.History...)
	if !that.Won {
		masked.Secret = 0
	}

	return &masked
}
