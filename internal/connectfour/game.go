package connectfour

const (
	Rows      = 6
	Columns   = 7
	WinLength = 4
)

type Color string

const (
	Empty  Color = ""
	Red    Color = "red"
	Yellow Color = "yellow"
)

// ComputerColor is the color the bot plays when enabled.
const ComputerColor = Yellow

func (that Color) Opponent() Color {
	switch that {
	case Red:
		return Yellow
	case Yellow:
		return Red
	default:
		return Empty
	}
}

type State string

const (
	StateInProgress State = "in_progress"
	StateGameOver   State = "game_over"
	StateDraw       State = "draw"
)

// axes are the horizontal, vertical and both diagonal directions.
var axes = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// Board rows run top to bottom; tokens settle in the highest row index available.
type Board [Rows][Columns]Color

// IsColumnOpen reports whether the column still has room for a token.
func (that Board) IsColumnOpen(column int) bool {
	return column >= 0 && column < Columns && that[0][column] == Empty
}

func (that Board) OpenColumns() []int {
	var columns []int
	for column := 0; column < Columns; column++ {
		if that.IsColumnOpen(column) {
			columns = append(columns, column)
		}
	}
	return columns
}

func (that Board) IsFull() bool {
	return len(that.OpenColumns()) == 0
}

// landingRow is the lowest empty row of an open column.
func (that Board) landingRow(column int) int {
	for row := Rows - 1; row >= 0; row-- {
		if that[row][column] == Empty {
			return row
		}
	}
	return -1
}

// drop places a token of color in an open column and returns the row it landed on.
func (that *Board) drop(column int, color Color) int {
	row := that.landingRow(column)
	that[row][column] = color

	return row
}

// connects reports whether the token at row, column is part of a run of WinLength.
// Each axis is scanned over the seven cells centred on the token.
func (that Board) connects(row, column int) bool {
	color := that[row][column]
	if color == Empty {
		return false
	}

	for _, axis := range axes {
		count := 0
		for offset := -(WinLength - 1); offset <= WinLength-1; offset++ {
			r, c := row+offset*axis[0], column+offset*axis[1]
			if r < 0 || r >= Rows || c < 0 || c >= Columns || that[r][c] != color {
				count = 0
				continue
			}

			count++
			if count == WinLength {
				return true
			}
		}
	}

	return false
}

type Game struct {
	Board     Board `json:"board"`
	Turn      Color `json:"turn"`
	Winner    Color `json:"winner"`
	State     State `json:"state"`
	AgainstAI bool  `json:"against_ai"`
}

func NewGame(againstAI bool) *Game {
	g := &Game{AgainstAI: againstAI}
	g.Restart()

	return g
}

func (that *Game) Restart() {
	that.Board = Board{}
	that.Turn = Red
	that.Winner = Empty
	that.State = StateInProgress
}

func (that *Game) IsOver() bool {
	return that.State != StateInProgress
}

// IsComputerTurn reports whether the bot is due to move.
func (that *Game) IsComputerTurn() bool {
	return that.AgainstAI && !that.IsOver() && that.Turn == ComputerColor
}

// DropToken lets a token of the side to move fall into column.
// Full or unknown columns and moves after the end are ignored.
func (that *Game) DropToken(column int) bool {
	if that.IsOver() || !that.Board.IsColumnOpen(column) {
		return false
	}

	row := that.Board.drop(column, that.Turn)

	switch {
	case that.Board.connects(row, column):
		that.Winner = that.Turn
		that.State = StateGameOver
	case that.Board.IsFull():
		that.State = StateDraw
	default:
		that.Turn = that.Turn.Opponent()
	}

	return true
}

// PlayComputerTurn drops the bot's token in the column the strategy picks.
func (that *Game) PlayComputerTurn(strategy Strategy) bool {
	if !that.IsComputerTurn() {
		return false
	}

	column, ok := strategy.ChooseColumn(that.Board, that.Turn)
	if !ok {
		return false
	}

	return that.DropToken(column)
}
