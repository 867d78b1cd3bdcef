package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/alphagames-backend/internal/entity"
	"github.com/rocketscienceinc/alphagames-backend/internal/game"
	"github.com/rocketscienceinc/alphagames-backend/internal/repository"
	"github.com/rocketscienceinc/alphagames-backend/internal/scheduler"
	"github.com/rocketscienceinc/alphagames-backend/internal/service"
	"github.com/rocketscienceinc/alphagames-backend/internal/tictactoe"
	"github.com/rocketscienceinc/alphagames-backend/internal/usecase"
)

type testServer struct {
	url     string
	manager *usecase.SessionManager
	hub     *Hub
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	return newTestServerWith(t, nil)
}

// newTestServerWith lets wrap replace the use case the server talks to.
func newTestServerWith(t *testing.T, wrap func(*usecase.SessionManager) sessionUseCase) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := clock.NewMock()
	rng := rand.New(rand.NewSource(1))

	bot, err := service.NewBotService(rng, service.StrategyWinBlock, service.StrategyWinBlock)
	require.NoError(t, err)

	tasks := scheduler.New(logger, clk)
	repo := repository.NewMemorySessionRepository(clk, 0)
	manager := usecase.NewSessionManager(logger, service.NewSessionService(repo, rng, clk), bot, tasks,
		usecase.BotDelays{Checkers: time.Second, TicTacToe: time.Second, ConnectFour: time.Second})

	hub := NewHub(logger)
	manager.AddObserver(hub)

	var sessions sessionUseCase = manager
	if wrap != nil {
		sessions = wrap(manager)
	}

	srv := httptest.NewServer(New(logger, sessions, hub).Router())
	t.Cleanup(func() {
		srv.Close()
		clk.Add(time.Minute)
		tasks.Wait()
	})

	return &testServer{
		url:     "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws",
		manager: manager,
		hub:     hub,
	}
}

func (that *testServer) createSession(t *testing.T, kind entity.Kind, againstAI bool) *entity.Session {
	t.Helper()

	session, err := that.manager.CreateSession(context.Background(), kind, againstAI)
	require.NoError(t, err)

	return session
}

// connect dials the server and consumes the state sent on connect.
func (that *testServer) connect(t *testing.T, sessionID string) *websocket.Conn {
	t.Helper()

	conn, resp, err := websocket.DefaultDialer.Dial(that.url+"?session="+sessionID, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })

	msg, payload := read(t, conn)
	require.Equal(t, actionSessionState, msg.Action)
	require.Equal(t, sessionID, payload.Session.ID)

	require.Eventually(t, func() bool {
		return that.hub.subscriberCount(sessionID) > 0
	}, time.Second, 5*time.Millisecond)

	return conn
}

func send(t *testing.T, conn *websocket.Conn, action string, payload any) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(Message{Action: action, Payload: body}))
}

func read(t *testing.T, conn *websocket.Conn) (Message, Payload) {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))

	var payload Payload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))

	return msg, payload
}

// readUntil skips pushed updates until the answer to action arrives.
func readUntil(t *testing.T, conn *websocket.Conn, action string) Payload {
	t.Helper()

	for {
		msg, payload := read(t, conn)
		if msg.Action == action {
			return payload
		}
	}
}

func TestServer_Handshake(t *testing.T) {
	ts := newTestServer(t)

	t.Run("Session is required", func(t *testing.T) {
		_, resp, err := websocket.DefaultDialer.Dial(ts.url, nil)
		require.Error(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Unknown session", func(t *testing.T) {
		_, resp, err := websocket.DefaultDialer.Dial(ts.url+"?session=missing", nil)
		require.Error(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

// changingSessions applies a change right after the first snapshot is taken.
type changingSessions struct {
	*usecase.SessionManager

	once   sync.Once
	change func()
}

func (that *changingSessions) GetSession(ctx context.Context, id string) (*entity.Session, error) {
	session, err := that.SessionManager.GetSession(ctx, id)
	that.once.Do(that.change)

	return session, err
}

func TestServer_ChangeDuringUpgrade(t *testing.T) {
	// Given: a session that changes while a connection is being upgraded
	var sessionID string
	ts := newTestServerWith(t, func(manager *usecase.SessionManager) sessionUseCase {
		return &changingSessions{
			SessionManager: manager,
			change: func() {
				_, err := manager.PlaceMark(context.Background(), sessionID, game.NewPosition(1, 1))
				require.NoError(t, err)
			},
		}
	})
	sessionID = ts.createSession(t, entity.KindTicTacToe, false).ID

	// When: the connection is established
	conn, resp, err := websocket.DefaultDialer.Dial(ts.url+"?session="+sessionID, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })

	// Then: the first state it sees already holds the change
	msg, payload := read(t, conn)
	require.Equal(t, actionSessionState, msg.Action)
	assert.Equal(t, 1, payload.Session.Revision)
	assert.Equal(t, tictactoe.MarkX, payload.Session.TicTacToe.Board[1][1])
}

func TestServer_TicTacToe(t *testing.T) {
	// Given: two connections watching a two player tic-tac-toe session
	ts := newTestServer(t)
	session := ts.createSession(t, entity.KindTicTacToe, false)
	first := ts.connect(t, session.ID)
	second := ts.connect(t, session.ID)
	require.Equal(t, 2, ts.hub.subscriberCount(session.ID))

	// When: the first connection places a mark
	send(t, first, actionTicTacToePlace, map[string]int{"row": 1, "col": 1})

	// Then: the sender gets the answer
	answer := readUntil(t, first, actionTicTacToePlace)
	require.Empty(t, answer.Error)
	assert.Equal(t, tictactoe.MarkX, answer.Session.TicTacToe.Board[1][1])

	// Then: the other connection gets the pushed state
	_, pushed := read(t, second)
	assert.Equal(t, entity.ActionMove, pushed.Event)
	assert.Equal(t, tictactoe.MarkO, pushed.Session.TicTacToe.Turn)
}

func TestServer_Errors(t *testing.T) {
	ts := newTestServer(t)
	session := ts.createSession(t, entity.KindConnectFour, false)
	conn := ts.connect(t, session.ID)

	t.Run("Unknown action", func(t *testing.T) {
		send(t, conn, "game:fly", map[string]int{})

		msg, payload := read(t, conn)
		assert.Equal(t, "game:fly", msg.Action)
		assert.Contains(t, payload.Error, "unknown action")
	})

	t.Run("Missing argument", func(t *testing.T) {
		send(t, conn, actionConnectFourDrop, map[string]int{})

		_, payload := read(t, conn)
		assert.Contains(t, payload.Error, "column is required")
	})

	t.Run("Wrong game", func(t *testing.T) {
		send(t, conn, actionGuessNumberGuess, map[string]int{"value": 3})

		_, payload := read(t, conn)
		assert.NotEmpty(t, payload.Error)
		assert.Nil(t, payload.Session)
	})

	t.Run("Malformed message", func(t *testing.T) {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{")))

		_, payload := read(t, conn)
		assert.Equal(t, "malformed message", payload.Error)
	})

	t.Run("Get", func(t *testing.T) {
		send(t, conn, actionSessionGet, nil)

		_, payload := read(t, conn)
		require.Empty(t, payload.Error)
		assert.Equal(t, session.ID, payload.Session.ID)
	})
}

func TestServer_OpponentAndRestart(t *testing.T) {
	ts := newTestServer(t)
	session := ts.createSession(t, entity.KindConnectFour, false)
	conn := ts.connect(t, session.ID)

	send(t, conn, actionGameOpponent, map[string]bool{"against_ai": true})
	payload := readUntil(t, conn, actionGameOpponent)
	require.Empty(t, payload.Error)
	assert.True(t, payload.Session.AgainstAI)

	send(t, conn, actionGameRestart, nil)
	payload = readUntil(t, conn, actionGameRestart)
	require.Empty(t, payload.Error)
	assert.Equal(t, uint64(1), payload.Session.Generation)
}

func TestServer_ClosedSession(t *testing.T) {
	// Given: a connection watching a session
	ts := newTestServer(t)
	session := ts.createSession(t, entity.KindGuessNumber, false)
	conn := ts.connect(t, session.ID)

	// When: the session is closed
	require.NoError(t, ts.manager.CloseSession(context.Background(), session.ID))

	// Then: the connection is told and unsubscribed
	msg, _ := read(t, conn)
	assert.Equal(t, actionSessionClosed, msg.Action)
	assert.Zero(t, ts.hub.subscriberCount(session.ID))

	// Then: further requests are refused
	send(t, conn, actionGuessNumberGuess, map[string]int{"value": 50})
	_, payload := read(t, conn)
	assert.Contains(t, payload.Error, "not subscribed")
}

func TestServer_Disconnect(t *testing.T) {
	ts := newTestServer(t)
	session := ts.createSession(t, entity.KindCheckers, true)
	conn := ts.connect(t, session.ID)

	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool {
		return ts.hub.subscriberCount(session.ID) == 0
	}, time.Second, 5*time.Millisecond)
}
