package checkers

import "github.com/rocketscienceinc/alphagames-backend/internal/game"

// Strategy picks the bot's move among the legal ones.
type Strategy interface {
	ChooseMove(moves []Move) (Move, bool)
}

// RandomStrategy picks uniformly at random.
type RandomStrategy struct {
	rng game.Random
}

func NewRandomStrategy(rng game.Random) *RandomStrategy {
	return &RandomStrategy{rng: rng}
}

func (that *RandomStrategy) ChooseMove(moves []Move) (Move, bool) {
	if len(moves) == 0 {
		return Move{}, false
	}

	return moves[that.rng.Intn(len(moves))], true
}
