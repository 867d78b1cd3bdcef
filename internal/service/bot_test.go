package service

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/alphagames-backend/internal/connectfour"
	"github.com/rocketscienceinc/alphagames-backend/internal/entity"
	"github.com/rocketscienceinc/alphagames-backend/internal/game"
	"github.com/rocketscienceinc/alphagames-backend/internal/tictactoe"
)

func newBot(t *testing.T, ticTacToe, connectFour string) BotService {
	t.Helper()

	bot, err := NewBotService(rand.New(rand.NewSource(1)), ticTacToe, connectFour)
	require.NoError(t, err)

	return bot
}

func newSession(t *testing.T, kind entity.Kind, againstAI bool) *entity.Session {
	t.Helper()

	session, err := entity.NewSession("id", kind, againstAI, rand.New(rand.NewSource(1)), time.Now())
	require.NoError(t, err)

	return session
}

func TestNewBotService(t *testing.T) {
	t.Run("Unknown tic-tac-toe strategy", func(t *testing.T) {
		_, err := NewBotService(rand.New(rand.NewSource(1)), "minimax", StrategyRandom)
		assert.ErrorIs(t, err, ErrUnknownStrategy)
	})

	t.Run("Unknown connect four strategy", func(t *testing.T) {
		_, err := NewBotService(rand.New(rand.NewSource(1)), StrategyWinBlock, "")
		assert.ErrorIs(t, err, ErrUnknownStrategy)
	})
}

func TestBotService_MakeTurn(t *testing.T) {
	t.Run("Checkers", func(t *testing.T) {
		// Given: the human made the first checkers move
		bot := newBot(t, StrategyRandom, StrategyRandom)
		session := newSession(t, entity.KindCheckers, true)
		require.True(t, session.Checkers.ApplyMove(session.Checkers.LegalMoves[0]))

		// When: the bot plays
		changed := bot.MakeTurn(session)

		// Then: the human is to move again
		assert.True(t, changed)
		assert.False(t, session.ComputerTurn())
	})

	t.Run("Tic-tac-toe blocks with winblock", func(t *testing.T) {
		// Given: X threatens the top row
		bot := newBot(t, StrategyWinBlock, StrategyRandom)
		session := newSession(t, entity.KindTicTacToe, true)
		require.True(t, session.TicTacToe.PlaceMark(game.NewPosition(0, 0)))
		session.TicTacToe.Turn = tictactoe.MarkX
		require.True(t, session.TicTacToe.PlaceMark(game.NewPosition(0, 1)))
		require.True(t, session.ComputerTurn())

		// When: the bot plays
		require.True(t, bot.MakeTurn(session))

		// Then: O takes the last cell of the row
		assert.Equal(t, tictactoe.MarkO, session.TicTacToe.Board[0][2])
	})

	t.Run("Connect four prefers the centre with winblock", func(t *testing.T) {
		bot := newBot(t, StrategyRandom, StrategyWinBlock)
		session := newSession(t, entity.KindConnectFour, true)
		require.True(t, session.ConnectFour.DropToken(0))

		require.True(t, bot.MakeTurn(session))

		assert.Equal(t, connectfour.Yellow, session.ConnectFour.Board[connectfour.Rows-1][3])
	})

	t.Run("Nothing to do without a computer opponent", func(t *testing.T) {
		bot := newBot(t, StrategyRandom, StrategyRandom)

		assert.False(t, bot.MakeTurn(newSession(t, entity.KindTicTacToe, false)))
		assert.False(t, bot.MakeTurn(newSession(t, entity.KindGuessNumber, false)))
	})
}
