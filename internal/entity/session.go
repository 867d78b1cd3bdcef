package entity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rocketscienceinc/alphagames-backend/internal/apperror"
	"github.com/rocketscienceinc/alphagames-backend/internal/checkers"
	"github.com/rocketscienceinc/alphagames-backend/internal/connectfour"
	"github.com/rocketscienceinc/alphagames-backend/internal/game"
	"github.com/rocketscienceinc/alphagames-backend/internal/guessnumber"
	"github.com/rocketscienceinc/alphagames-backend/internal/tictactoe"
)

type Kind string

const (
	KindCheckers    Kind = "checkers"
	KindTicTacToe   Kind = "tictactoe"
	KindConnectFour Kind = "connectfour"
	KindGuessNumber Kind = "guessnumber"
)

var Kinds = []Kind{KindCheckers, KindTicTacToe, KindConnectFour, KindGuessNumber}

func ParseKind(value string) (Kind, error) {
	for _, kind := range Kinds {
		if string(kind) == value {
			return kind, nil
		}
	}

	return "", fmt.Errorf("%w: %q", apperror.ErrUnknownGameKind, value)
}

// DefaultAgainstAI is the opponent a new game gets when the player does not choose:
// checkers and connect four start against the computer, tic-tac-toe with two players.
func (that Kind) DefaultAgainstAI() bool {
	return that == KindCheckers || that == KindConnectFour
}

// WinnerPlayer is reported as the winner of a solved Guess-the-Number round.
const WinnerPlayer = "player"

// Session is one running game of a given kind. Exactly one engine is set.
// Generation grows on every restart and Revision counts changes within a generation,
// so a delayed computer turn can tell whether the game moved on since it was planned.
// Moves only counts played moves; a checkers selection is a change but not a move.
type Session struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"kind"`
	AgainstAI  bool      `json:"against_ai"`
	Generation uint64    `json:"generation"`
	Revision   int       `json:"revision"`
	Moves      int       `json:"moves"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Checkers    *checkers.Game    `json:"checkers,omitempty"`
	TicTacToe   *tictactoe.Game   `json:"tictactoe,omitempty"`
	ConnectFour *connectfour.Game `json:"connectfour,omitempty"`
	GuessNumber *guessnumber.Game `json:"guessnumber,omitempty"`
}

// NewSession starts a game of kind at its initial layout.
// Checkers is always played against the computer and Guess-the-Number never is.
func NewSession(id string, kind Kind, againstAI bool, rng game.Random, now time.Time) (*Session, error) {
	session := &Session{
		ID:        id,
		Kind:      kind,
		AgainstAI: againstAI,
		CreatedAt: now,
		UpdatedAt: now,
	}

	switch kind {
	case KindCheckers:
		session.AgainstAI = true
		session.Checkers = checkers.NewGame()
	case KindTicTacToe:
		session.TicTacToe = tictactoe.NewGame(againstAI)
	case KindConnectFour:
		session.ConnectFour = connectfour.NewGame(againstAI)
	case KindGuessNumber:
		session.AgainstAI = false
		session.GuessNumber = guessnumber.NewGame(rng)
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownGameKind, kind)
	}

	return session, nil
}

// Restart resets the engine and opens a new generation.
func (that *Session) Restart(rng game.Random, now time.Time) {
	switch that.Kind {
	case KindCheckers:
		that.Checkers.Restart()
	case KindTicTacToe:
		that.TicTacToe.Restart()
	case KindConnectFour:
		that.ConnectFour.Restart()
	case KindGuessNumber:
		that.GuessNumber.Restart(rng)
	}

	that.Generation++
	that.Revision = 0
	that.Moves = 0
	that.UpdatedAt = now
}

// SetAgainstAI turns the computer opponent on or off. Only tic-tac-toe and connect four
// offer the choice.
func (that *Session) SetAgainstAI(enabled bool) error {
	switch that.Kind {
	case KindTicTacToe:
		that.TicTacToe.AgainstAI = enabled
	case KindConnectFour:
		that.ConnectFour.AgainstAI = enabled
	default:
		return fmt.Errorf("%w: %s always has the same opponent", apperror.ErrWrongGameKind, that.Kind)
	}

	that.AgainstAI = enabled

	return nil
}

// Touch records an applied change.
func (that *Session) Touch(now time.Time) {
	that.Revision++
	that.UpdatedAt = now
}

// Record notes what an input did to the game. Ignored input changes nothing.
func (that *Session) Record(outcome game.Outcome, now time.Time) {
	switch outcome {
	case game.OutcomeMoved:
		that.Moves++
		that.Touch(now)
	case game.OutcomeSelected:
		that.Touch(now)
	}
}

func (that *Session) IsFinished() bool {
	switch that.Kind {
	case KindCheckers:
		return that.Checkers.IsOver()
	case KindTicTacToe:
		return that.TicTacToe.Over
	case KindConnectFour:
		return that.ConnectFour.IsOver()
	case KindGuessNumber:
		return that.GuessNumber.Won
	default:
		return false
	}
}

func (that *Session) Status() string {
	if that.IsFinished() {
		return game.StatusFinished
	}
	return game.StatusOngoing
}

// Winner names the winning side of a finished game, game.ResultDraw for a draw
// and an empty string while the game goes on.
func (that *Session) Winner() string {
	if !that.IsFinished() {
		return ""
	}

	switch that.Kind {
	case KindCheckers:
		return string(that.Checkers.Winner)
	case KindTicTacToe:
		if that.TicTacToe.Draw {
			return game.ResultDraw
		}
		return string(that.TicTacToe.Winner)
	case KindConnectFour:
		if that.ConnectFour.State == connectfour.StateDraw {
			return game.ResultDraw
		}
		return string(that.ConnectFour.Winner)
	case KindGuessNumber:
		return WinnerPlayer
	default:
		return ""
	}
}

// ComputerTurn reports whether the computer opponent is due to move.
func (that *Session) ComputerTurn() bool {
	switch that.Kind {
	case KindCheckers:
		return that.Checkers.IsComputerTurn()
	case KindTicTacToe:
		return that.TicTacToe.IsComputerTurn()
	case KindConnectFour:
		return that.ConnectFour.IsComputerTurn()
	default:
		return false
	}
}

// MarshalJSON adds the derived status to every snapshot.
func (that Session) MarshalJSON() ([]byte, error) {
	type session Session

	return json.Marshal(struct {
		session
		Status string `json:"status"`
	}{
		session: session(that),
		Status:  that.Status(),
	})
}

// Masked returns a copy that can leave the process: the Guess-the-Number secret is hidden.
func (that *Session) Masked() *Session {
	masked := *that
	if that.GuessNumber != nil {
		masked.GuessNumber = that.GuessNumber.Masked()
	}

	return &masked
}
