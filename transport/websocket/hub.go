package websocket

import (
	"context"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/alphagames-backend/internal/entity"
)

// Hub keeps the connections watching each session and pushes every change to them.
type Hub struct {
	logger *slog.Logger

	mu          sync.RWMutex
	subscribers map[string]map[*client]struct{}
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:      logger.With("component", "ws_hub"),
		subscribers: make(map[string]map[*client]struct{}),
	}
}

func (that *Hub) subscribe(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	clients, ok := that.subscribers[c.sessionID]
	if !ok {
		clients = make(map[*client]struct{})
		that.subscribers[c.sessionID] = clients
	}
	clients[c] = struct{}{}
}

func (that *Hub) unsubscribe(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	clients := that.subscribers[c.sessionID]
	delete(clients, c)

	if len(clients) == 0 {
		delete(that.subscribers, c.sessionID)
	}
}

func (that *Hub) isSubscribed(c *client) bool {
	that.mu.RLock()
	defer that.mu.RUnlock()

	_, ok := that.subscribers[c.sessionID][c]
	return ok
}

// subscriberCount returns how many connections watch the session.
func (that *Hub) subscriberCount(sessionID string) int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.subscribers[sessionID])
}

// SessionChanged sends the new state to every subscriber. A closed session is announced
// once and its subscribers are dropped.
func (that *Hub) SessionChanged(_ context.Context, event entity.SessionEvent) {
	action := actionSessionState
	if event.Action == entity.ActionClosed {
		action = actionSessionClosed
	}

	data, err := encodeMessage(action, Payload{
		Session:  event.Session,
		Event:    event.Action,
		Finished: event.Finished,
	})
	if err != nil {
		that.logger.Error("failed to encode session event", "session_id", event.Session.ID, "error", err)
		return
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	for c := range that.subscribers[event.Session.ID] {
		if !c.enqueue(data) {
			that.logger.Warn("dropped update for slow connection", "session_id", event.Session.ID)
		}
	}

	if action == actionSessionClosed {
		delete(that.subscribers, event.Session.ID)
	}
}
