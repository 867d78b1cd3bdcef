package tictactoe

import "github.com/rocketscienceinc/alphagames-backend/internal/game"

// Size is the number of rows and columns on the board.
const Size = 3

type Mark string

const (
	Empty Mark = ""
	MarkX Mark = "X"
	MarkO Mark = "O"
)

// ComputerMark is the mark the bot plays when enabled.
const ComputerMark = MarkO

func (that Mark) Opponent() Mark {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return Empty
	}
}

type State string

const (
	StateInProgress State = "in_progress"
	StateGameOver   State = "game_over"
)

// WinLines are the three rows, three columns and two diagonals.
var WinLines = [8][3]game.Position{
	{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}},
	{{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}},
	{{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0}},
	{{Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 2, Col: 1}},
	{{Row: 0, Col: 2}, {Row: 1, Col: 2}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 2}, {Row: 1, Col: 1}, {Row: 2, Col: 0}},
}

type Board [Size][Size]Mark

func (that Board) At(pos game.Position) Mark {
	return that[pos.Row][pos.Col]
}

// Line returns the first win line fully covered by mark.
func (that Board) Line(mark Mark) ([3]game.Position, bool) {
	if mark == Empty {
		return [3]game.Position{}, false
	}

	for _, line := range WinLines {
		if that.At(line[0]) == mark && that.At(line[1]) == mark && that.At(line[2]) == mark {
			return line, true
		}
	}

	return [3]game.Position{}, false
}

func (that Board) EmptyCells() []game.Position {
	var cells []game.Position
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if that[row][col] == Empty {
				cells = append(cells, game.Position{Row: row, Col: col})
			}
		}
	}
	return cells
}

func (that Board) IsFull() bool {
	return len(that.EmptyCells()) == 0
}

type Game struct {
	Board     Board `json:"board"`
	Turn      Mark  `json:"turn"`
	Winner    Mark  `json:"winner"`
	Over      bool  `json:"over"`
	Draw      bool  `json:"draw"`
	AgainstAI bool  `json:"against_ai"`

	// WinningLine holds the two end cells of the completed line.
	WinningLine *[2]game.Position `json:"winning_line,omitempty"`
}

func NewGame(againstAI bool) *Game {
	g := &Game{}
	g.Start(againstAI)

	return g
}

// Start switches the opponent type and restarts.
func (that *Game) Start(againstAI bool) {
	that.AgainstAI = againstAI
	that.Restart()
}

func (that *Game) Restart() {
	that.Board = Board{}
	that.Turn = MarkX
	that.Winner = Empty
	that.Over = false
	that.Draw = false
	that.WinningLine = nil
}

func (that *Game) State() State {
	if that.Over {
		return StateGameOver
	}
	return StateInProgress
}

// IsComputerTurn reports whether the bot is due to move.
func (that *Game) IsComputerTurn() bool {
	return that.AgainstAI && !that.Over && that.Turn == ComputerMark
}

// PlaceMark puts the mark of the side to move on an empty cell.
// Occupied or off-board cells and moves after the end are ignored.
func (that *Game) PlaceMark(pos game.Position) bool {
	if that.Over || !pos.In(Size, Size) || that.Board.At(pos) != Empty {
		return false
	}

	that.Board[pos.Row][pos.Col] = that.Turn
	that.evaluate()

	return true
}

// PlayComputerTurn places the bot's mark on the cell the strategy picks.
func (that *Game) PlayComputerTurn(strategy Strategy) bool {
	if !that.IsComputerTurn() {
		return false
	}

	pos, ok := strategy.ChooseCell(that.Board, that.Turn)
	if !ok {
		return false
	}

	return that.PlaceMark(pos)
}

func (that *Game) evaluate() {
	if line, ok := that.Board.Line(that.Turn); ok {
		that.Winner = that.Turn
		that.Over = true
		that.WinningLine = &[2]game.Position{line[0], line[2]}

		return
	}

	// the game continues until every cell is taken
	if that.Board.IsFull() {
		that.Draw = true
		that.Over = true

		return
	}

	that.Turn = that.Turn.Opponent()
}
