package checkers

import "github.com/rocketscienceinc/alphagames-backend/internal/game"

// Size is the number of rows and columns on a checkers board.
const Size = 8

type Piece int

const (
	Empty Piece = iota
	PlayerOneMan
	PlayerTwoMan
	PlayerOneKing
	PlayerTwoKing
)

type Player string

const (
	NoPlayer  Player = ""
	PlayerOne Player = "one"
	PlayerTwo Player = "two"
)

func (that Player) Opponent() Player {
	switch that {
	case PlayerOne:
		return PlayerTwo
	case PlayerTwo:
		return PlayerOne
	default:
		return NoPlayer
	}
}

// forward is the row direction a man of this player advances in.
func (that Player) forward() int {
	if that == PlayerOne {
		return -1
	}
	return 1
}

// crownRow is the farthest row from the player's start.
func (that Player) crownRow() int {
	if that == PlayerOne {
		return 0
	}
	return Size - 1
}

func (that Piece) Owner() Player {
	switch that {
	case PlayerOneMan, PlayerOneKing:
		return PlayerOne
	case PlayerTwoMan, PlayerTwoKing:
		return PlayerTwo
	default:
		return NoPlayer
	}
}

func (that Piece) IsKing() bool {
	return that == PlayerOneKing || that == PlayerTwoKing
}

func (that Piece) crowned() Piece {
	switch that {
	case PlayerOneMan:
		return PlayerOneKing
	case PlayerTwoMan:
		return PlayerTwoKing
	default:
		return that
	}
}

type Move struct {
	From game.Position `json:"from"`
	To   game.Position `json:"to"`
}

// IsJump reports whether the move captures the piece it passes over.
func (that Move) IsJump() bool {
	diff := that.To.Row - that.From.Row
	return diff == 2 || diff == -2
}

// Captured is the cell a jump passes over.
func (that Move) Captured() game.Position {
	return game.Position{
		Row: (that.From.Row + that.To.Row) / 2,
		Col: (that.From.Col + that.To.Col) / 2,
	}
}

var directions = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

type Board [Size][Size]Piece

// StartingBoard places twelve men per side on the dark squares:
// player two on rows 0-2, player one on rows 5-7.
func StartingBoard() Board {
	var board Board

	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if (row+col)%2 == 0 {
				continue
			}

			switch {
			case row < 3:
				board[row][col] = PlayerTwoMan
			case row > 4:
				board[row][col] = PlayerOneMan
			}
		}
	}

	return board
}

func (that *Board) At(pos game.Position) Piece {
	if !pos.In(Size, Size) {
		return Empty
	}
	return that[pos.Row][pos.Col]
}

func (that *Board) set(pos game.Position, piece Piece) {
	that[pos.Row][pos.Col] = piece
}

// Count returns how many pieces the player has on the board.
func (that *Board) Count(player Player) int {
	count := 0
	for row := range that {
		for _, piece := range that[row] {
			if piece.Owner() == player {
				count++
			}
		}
	}
	return count
}

// MovesFrom lists the steps and single jumps available to the piece at from.
// Men only move forward, kings move in all four diagonal directions.
func (that *Board) MovesFrom(from game.Position) []Move {
	piece := that.At(from)
	owner := piece.Owner()
	if owner == NoPlayer {
		return nil
	}

	var moves []Move
	for _, dir := range directions {
		if !piece.IsKing() && dir[0] != owner.forward() {
			continue
		}

		step := from.Add(dir[0], dir[1])
		if !step.In(Size, Size) {
			continue
		}

		switch over := that.At(step); {
		case over == Empty:
			moves = append(moves, Move{From: from, To: step})
		case over.Owner() != owner:
			jump := from.Add(2*dir[0], 2*dir[1])
			if jump.In(Size, Size) && that.At(jump) == Empty {
				moves = append(moves, Move{From: from, To: jump})
			}
		}
	}

	return moves
}

// LegalMoves lists every move available to the player, scanning the board row by row.
func (that *Board) LegalMoves(player Player) []Move {
	var moves []Move
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			pos := game.Position{Row: row, Col: col}
			if that.At(pos).Owner() == player {
				moves = append(moves, that.MovesFrom(pos)...)
			}
		}
	}
	return moves
}

// apply moves the piece, removes a jumped piece and crowns a man reaching the far row.
// The move must already be known to be legal.
func (that *Board) apply(move Move) {
	piece := that.At(move.From)
	that.set(move.From, Empty)

	if !piece.IsKing() && move.To.Row == piece.Owner().crownRow() {
		piece = piece.crowned()
	}
	that.set(move.To, piece)

	if move.IsJump() {
		that.set(move.Captured(), Empty)
	}
}
