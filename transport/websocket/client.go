package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 4096
	sendBuffer     = 16
)

// client is one connection subscribed to one session.
type client struct {
	logger    *slog.Logger
	sessionID string
	conn      *websocket.Conn

	send chan []byte
	done chan struct{}
}

func newClient(logger *slog.Logger, sessionID string, conn *websocket.Conn) *client {
	return &client{
		logger:    logger.With("session_id", sessionID),
		sessionID: sessionID,
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
		done:      make(chan struct{}),
	}
}

// enqueue never blocks: it reports false when the message was dropped.
func (that *client) enqueue(data []byte) bool {
	select {
	case <-that.done:
		return false
	default:
	}

	select {
	case that.send <- data:
		return true
	default:
		return false
	}
}

func (that *client) reply(action string, payload Payload) {
	data, err := encodeMessage(action, payload)
	if err != nil {
		that.logger.Error("failed to encode reply", "action", action, "error", err)
		return
	}

	if !that.enqueue(data) {
		that.logger.Warn("dropped reply", "action", action)
	}
}

// readPump reads requests until the connection fails and hands them to dispatch.
func (that *client) readPump(ctx context.Context, dispatch func(context.Context, *client, *Message)) {
	log := that.logger.With("method", "readPump")

	that.conn.SetReadLimit(maxMessageSize)
	_ = that.conn.SetReadDeadline(time.Now().Add(pongWait))
	that.conn.SetPongHandler(func(string) error {
		return that.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := that.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("connection closed unexpectedly", "error", err)
			}
			return
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Debug("failed to unmarshal message", "error", err)
			that.reply("", Payload{Error: "malformed message"})
			continue
		}

		dispatch(ctx, that, &message)
	}
}

func (that *client) writePump() {
	log := that.logger.With("method", "writePump")

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-that.done:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = that.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case data := <-that.send:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				if !errors.Is(err, websocket.ErrCloseSent) {
					log.Debug("failed to write message", "error", err)
				}
				return
			}
		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (that *client) close() {
	close(that.done)
}
