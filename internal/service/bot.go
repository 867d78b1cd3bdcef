package service

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/alphagames-backend/internal/checkers"
	"github.com/rocketscienceinc/alphagames-backend/internal/connectfour"
	"github.com/rocketscienceinc/alphagames-backend/internal/entity"
	"github.com/rocketscienceinc/alphagames-backend/internal/game"
	"github.com/rocketscienceinc/alphagames-backend/internal/tictactoe"
)

const (
	StrategyRandom   = "random"
	StrategyWinBlock = "winblock"
)

var ErrUnknownStrategy = errors.New("unknown bot strategy")

type BotService interface {
	// MakeTurn plays the computer's move in the session and reports whether anything changed.
	MakeTurn(session *entity.Session) bool
}

type botService struct {
	checkers    checkers.Strategy
	ticTacToe   tictactoe.Strategy
	connectFour connectfour.Strategy
}

// NewBotService builds the computer opponent. Checkers always picks at random; tic-tac-toe
// and connect four use the named strategies.
func NewBotService(rng game.Random, ticTacToeStrategy, connectFourStrategy string) (BotService, error) {
	bot := &botService{
		checkers: checkers.NewRandomStrategy(rng),
	}

	switch ticTacToeStrategy {
	case StrategyRandom:
		bot.ticTacToe = tictactoe.NewRandomStrategy(rng)
	case StrategyWinBlock:
		bot.ticTacToe = tictactoe.NewWinBlockStrategy(tictactoe.NewRandomStrategy(rng))
	default:
		return nil, fmt.Errorf("%w for tictactoe: %q", ErrUnknownStrategy, ticTacToeStrategy)
	}

	switch connectFourStrategy {
	case StrategyRandom:
		bot.connectFour = connectfour.NewRandomStrategy(rng)
	case StrategyWinBlock:
		bot.connectFour = connectfour.NewWinBlockStrategy()
	default:
		return nil, fmt.Errorf("%w for connectfour: %q", ErrUnknownStrategy, connectFourStrategy)
	}

	return bot, nil
}

func (that *botService) MakeTurn(session *entity.Session) bool {
	switch session.Kind {
	case entity.KindCheckers:
		return session.Checkers.PlayComputerTurn(that.checkers)
	case entity.KindTicTacToe:
		return session.TicTacToe.PlayComputerTurn(that.ticTacToe)
	case entity.KindConnectFour:
		return session.ConnectFour.PlayComputerTurn(that.connectFour)
	default:
		return false
	}
}
