package checkers

import (
	"slices"

	"github.com/rocketscienceinc/alphagames-backend/internal/game"
)

type State string

const (
	StateAwaitingSelection State = "awaiting_selection"
	StatePieceSelected     State = "piece_selected"
	StateGameOver          State = "game_over"
)

// ComputerPlayer is the side the bot plays.
const ComputerPlayer = PlayerTwo

// Game is a checkers match. Multi-jump chains are not played: a capture ends the turn.
type Game struct {
	Board      Board          `json:"board"`
	Turn       Player         `json:"turn"`
	Winner     Player         `json:"winner"`
	Selected   *game.Position `json:"selected,omitempty"`
	Highlights []Move         `json:"highlights,omitempty"`
	LegalMoves []Move         `json:"legal_moves"`
}

func NewGame() *Game {
	g := &Game{}
	g.Restart()

	return g
}

// Restart puts the pieces back on the starting layout with player one to move.
func (that *Game) Restart() {
	that.Board = StartingBoard()
	that.Turn = PlayerOne
	that.Winner = NoPlayer
	that.clearSelection()
	that.LegalMoves = that.Board.LegalMoves(that.Turn)
}

func (that *Game) State() State {
	switch {
	case that.IsOver():
		return StateGameOver
	case that.Selected != nil:
		return StatePieceSelected
	default:
		return StateAwaitingSelection
	}
}

func (that *Game) IsOver() bool {
	return that.Winner != NoPlayer
}

// IsComputerTurn reports whether the bot is due to move.
func (that *Game) IsComputerTurn() bool {
	return !that.IsOver() && that.Turn == ComputerPlayer
}

// SelectCell handles a tap on a cell. With a piece selected, tapping a highlighted
// destination plays that move. Otherwise the selection is cleared and, if the cell
// holds a piece of the side to move, that piece is selected and its moves highlighted.
func (that *Game) SelectCell(pos game.Position) game.Outcome {
	if that.IsOver() || !pos.In(Size, Size) {
		return game.OutcomeIgnored
	}

	if that.Selected != nil {
		for _, move := range that.Highlights {
			if move.To == pos {
				that.play(move)
				return game.OutcomeMoved
			}
		}
	}

	hadSelection := that.Selected != nil
	that.clearSelection()

	if that.Board.At(pos).Owner() != that.Turn {
		if hadSelection {
			return game.OutcomeSelected
		}
		return game.OutcomeIgnored
	}

	that.Selected = &pos
	that.Highlights = that.Board.MovesFrom(pos)

	return game.OutcomeSelected
}

// ApplyMove plays a move if it is one of the legal moves of the side to move.
func (that *Game) ApplyMove(move Move) bool {
	if that.IsOver() || !slices.Contains(that.LegalMoves, move) {
		return false
	}

	that.play(move)

	return true
}

// PlayComputerTurn lets the strategy pick one of the bot's legal moves.
// When the strategy has nothing to play the turn is handed straight back.
func (that *Game) PlayComputerTurn(strategy Strategy) bool {
	if !that.IsComputerTurn() {
		return false
	}

	move, ok := strategy.ChooseMove(that.LegalMoves)
	if !ok {
		that.switchTurn()
		return true
	}

	return that.ApplyMove(move)
}

func (that *Game) play(move Move) {
	that.Board.apply(move)
	that.clearSelection()
	that.switchTurn()
}

// switchTurn passes the move to the opponent; an opponent left without a legal move loses.
func (that *Game) switchTurn() {
	that.Turn = that.Turn.Opponent()
	that.LegalMoves = that.Board.LegalMoves(that.Turn)

	if len(that.LegalMoves) == 0 {
		that.Winner = that.Turn.Opponent()
	}
}

func (that *Game) clearSelection() {
	that.Selected = nil
	that.Highlights = nil
}
