package connectfour

import "github.com/rocketscienceinc/alphagames-backend/internal/game"

// Strategy picks the column the bot drops into.
type Strategy interface {
	ChooseColumn(board Board, color Color) (int, bool)
}

// RandomStrategy picks uniformly among the columns that are not full.
type RandomStrategy struct {
	rng game.Random
}

func NewRandomStrategy(rng game.Random) *RandomStrategy {
	return &RandomStrategy{rng: rng}
}

func (that *RandomStrategy) ChooseColumn(board Board, _ Color) (int, bool) {
	columns := board.OpenColumns()
	if len(columns) == 0 {
		return 0, false
	}

	return columns[that.rng.Intn(len(columns))], true
}

// centreFirst orders columns by how many runs of four pass through them.
var centreFirst = [Columns]int{3, 2, 4, 1, 5, 0, 6}

// WinBlockStrategy wins if it can, then blocks, then prefers central columns.
type WinBlockStrategy struct{}

func NewWinBlockStrategy() *WinBlockStrategy {
	return &WinBlockStrategy{}
}

func (that *WinBlockStrategy) ChooseColumn(board Board, color Color) (int, bool) {
	if column, ok := winningColumn(board, color); ok {
		return column, true
	}

	if column, ok := winningColumn(board, color.Opponent()); ok {
		return column, true
	}

	for _, column := range centreFirst {
		if board.IsColumnOpen(column) {
			return column, true
		}
	}

	return 0, false
}

func winningColumn(board Board, color Color) (int, bool) {
	for column := 0; column < Columns; column++ {
		if !board.IsColumnOpen(column) {
			continue
		}

		trial := board
		row := trial.drop(column, color)
		if trial.connects(row, column) {
			return column, true
		}
	}

	return 0, false
}
