package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/rocketscienceinc/alphagames-backend/internal/apperror"
	"github.com/rocketscienceinc/alphagames-backend/internal/entity"
)

type storedSession struct {
	data      []byte
	expiresAt time.Time
}

type memorySession struct {
	clock clock.Clock
	ttl   time.Duration

	mu       sync.Mutex
	sessions map[string]storedSession
}

// NewMemorySessionRepository keeps sessions in process memory with the same
// expiry rules as the redis repository. Sessions are stored as JSON so callers
// never share engine state.
func NewMemorySessionRepository(clk clock.Clock, ttl time.Duration) SessionRepository {
	return &memorySession{
		clock:    clk,
		ttl:      ttl,
		sessions: make(map[string]storedSession),
	}
}

func (that *memorySession) CreateOrUpdate(_ context.Context, session *entity.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("could not marshal session: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	now := that.clock.Now()
	that.evictExpired(now)

	stored := storedSession{data: data}
	if that.ttl > 0 {
		stored.expiresAt = now.Add(that.ttl)
	}
	that.sessions[session.ID] = stored

	return nil
}

func (that *memorySession) GetByID(_ context.Context, id string) (*entity.Session, error) {
	that.mu.Lock()
	stored, ok := that.sessions[id]
	that.mu.Unlock()

	if !ok || that.expired(stored, that.clock.Now()) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	var session entity.Session
	if err := json.Unmarshal(stored.data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

func (that *memorySession) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	stored, ok := that.sessions[id]
	if !ok || that.expired(stored, that.clock.Now()) {
		return fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	delete(that.sessions, id)

	return nil
}

func (that *memorySession) expired(stored storedSession, now time.Time) bool {
	return !stored.expiresAt.IsZero() && !now.Before(stored.expiresAt)
}

func (that *memorySession) evictExpired(now time.Time) {
	for id, stored := range that.sessions {
		if that.expired(stored, now) {
			delete(that.sessions, id)
		}
	}
}
