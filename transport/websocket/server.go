package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/alphagames-backend/internal/apperror"
	"github.com/rocketscienceinc/alphagames-backend/internal/entity"
	"github.com/rocketscienceinc/alphagames-backend/internal/game"
)

type sessionUseCase interface {
	GetSession(ctx context.Context, id string) (*entity.Session, error)
	Restart(ctx context.Context, id string) (*entity.Session, error)
	SetAgainstAI(ctx context.Context, id string, enabled bool) (*entity.Session, error)

	SelectCell(ctx context.Context, id string, pos game.Position) (*entity.Session, error)
	PlaceMark(ctx context.Context, id string, pos game.Position) (*entity.Session, error)
	DropToken(ctx context.Context, id string, column int) (*entity.Session, error)
	Guess(ctx context.Context, id string, value int) (*entity.Session, error)
}

type handlerFunc func(ctx context.Context, sessionID string, payload *Payload) (*entity.Session, error)

type Server struct {
	logger   *slog.Logger
	sessions sessionUseCase
	hub      *Hub
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc

	srv *http.Server
}

func New(logger *slog.Logger, sessions sessionUseCase, hub *Hub) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		sessions: sessions,
		hub:      hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionSessionGet] = server.handleGet
	server.handlers[actionGameRestart] = server.handleRestart
	server.handlers[actionGameOpponent] = server.handleOpponent
	server.handlers[actionCheckersSelect] = server.handleSelect
	server.handlers[actionTicTacToePlace] = server.handlePlace
	server.handlers[actionConnectFourDrop] = server.handleDrop
	server.handlers[actionGuessNumberGuess] = server.handleGuess

	server.srv = &http.Server{
		Handler:     server.Router(),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	return server
}

func (that *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/ws", that.upgradeToWebSocket)

	return router
}

// Start - starts WebSocket server. It returns nil once the server was shut down.
func (that *Server) Start(port string) error {
	that.srv.Addr = ":" + port

	if err := that.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown stops accepting connections. Hijacked connections are not tracked by
// http.Server and end when their clients go away.
func (that *Server) Shutdown(ctx context.Context) error {
	if err := that.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - subscribes a connection to the session named in the query and
// serves its requests until it goes away.
func (that *Server) upgradeToWebSocket(c *gin.Context) {
	log := that.logger.With("method", "upgradeToWebSocket")

	sessionID := c.Query("session")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session is required"})
		return
	}

	session, err := that.sessions.GetSession(c.Request.Context(), sessionID)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		log.Error("failed to get session", "session_id", sessionID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": http.StatusText(http.StatusInternalServerError)})
		return
	}

	conn, err := that.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Debug("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	// Subscribe before taking the snapshot, so no change falls between the two.
	subscriber := newClient(that.logger, sessionID, conn)
	that.hub.subscribe(subscriber)

	session, err = that.sessions.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		log.Warn("session gone during upgrade", "session_id", sessionID, "error", err)
		that.hub.unsubscribe(subscriber)
		subscriber.reply(actionSessionClosed, Payload{Error: err.Error()})
	} else {
		subscriber.reply(actionSessionState, Payload{Session: session})
	}

	log.Info("WebSocket connection established", "session_id", sessionID,
		"subscribers", that.hub.subscriberCount(sessionID))

	written := make(chan struct{})
	go func() {
		defer close(written)
		subscriber.writePump()
	}()

	subscriber.readPump(context.WithoutCancel(c.Request.Context()), that.dispatch)

	that.hub.unsubscribe(subscriber)
	subscriber.close()
	<-written

	log.Info("WebSocket connection closed", "session_id", sessionID)
}

// dispatch runs one request and answers the sender under the same action.
func (that *Server) dispatch(ctx context.Context, c *client, message *Message) {
	log := that.logger.With("method", "dispatch", "action", message.Action, "session_id", c.sessionID)

	handler, ok := that.handlers[message.Action]
	if !ok {
		c.reply(message.Action, Payload{Error: fmt.Sprintf("%v: %q", apperror.ErrUnknownAction, message.Action)})
		return
	}

	if !that.hub.isSubscribed(c) {
		c.reply(message.Action, Payload{Error: apperror.ErrNotSubscribed.Error()})
		return
	}

	var payload Payload
	if len(message.Payload) > 0 {
		if err := json.Unmarshal(message.Payload, &payload); err != nil {
			c.reply(message.Action, Payload{Error: fmt.Sprintf("%v: %v", apperror.ErrInvalidPayload, err)})
			return
		}
	}

	session, err := handler(ctx, c.sessionID, &payload)
	if err != nil {
		if !isClientError(err) {
			log.Error("failed to process message", "error", err)
			err = errors.New(http.StatusText(http.StatusInternalServerError))
		}

		c.reply(message.Action, Payload{Error: err.Error()})
		return
	}

	c.reply(message.Action, Payload{Session: session})
}

func isClientError(err error) bool {
	return errors.Is(err, apperror.ErrSessionNotFound) ||
		errors.Is(err, apperror.ErrWrongGameKind) ||
		errors.Is(err, apperror.ErrInvalidPayload)
}
