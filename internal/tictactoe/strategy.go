package tictactoe

import "github.com/rocketscienceinc/alphagames-backend/internal/game"

// Strategy picks the cell the bot plays for mark.
type Strategy interface {
	ChooseCell(board Board, mark Mark) (game.Position, bool)
}

// RandomStrategy picks uniformly among the empty cells.
type RandomStrategy struct {
	rng game.Random
}

func NewRandomStrategy(rng game.Random) *RandomStrategy {
	return &RandomStrategy{rng: rng}
}

func (that *RandomStrategy) ChooseCell(board Board, _ Mark) (game.Position, bool) {
	cells := board.EmptyCells()
	if len(cells) == 0 {
		return game.Position{}, false
	}

	return cells[that.rng.Intn(len(cells))], true
}

// WinBlockStrategy completes its own line if it can, blocks the opponent's
// otherwise, and leaves everything else to the fallback.
type WinBlockStrategy struct {
	fallback Strategy
}

func NewWinBlockStrategy(fallback Strategy) *WinBlockStrategy {
	return &WinBlockStrategy{fallback: fallback}
}

func (that *WinBlockStrategy) ChooseCell(board Board, mark Mark) (game.Position, bool) {
	if pos, ok := completingCell(board, mark); ok {
		return pos, true
	}

	if pos, ok := completingCell(board, mark.Opponent()); ok {
		return pos, true
	}

	return that.fallback.ChooseCell(board, mark)
}

// completingCell tries each empty cell on a copy of the board and returns
// the first one that gives mark a full line.
func completingCell(board Board, mark Mark) (game.Position, bool) {
	for _, pos := range board.EmptyCells() {
		trial := board
		trial[pos.Row][pos.Col] = mark

		if _, ok := trial.Line(mark); ok {
			return pos, true
		}
	}

	return game.Position{}, false
}
