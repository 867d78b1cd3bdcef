package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/alphagames-backend/internal/entity"
)

const (
	DefaultLeaderboardLimit = 10

	resultQueueSize = 64
	saveTimeout     = 5 * time.Second
)

type resultStore interface {
	SaveResult(ctx context.Context, result *entity.Result) error
	Leaderboard(ctx context.Context, kind entity.Kind, limit int) ([]entity.LeaderboardRow, error)
}

// Results keeps finished games and ranks winners. Without a store it records
// nothing and every leaderboard is empty.
type Results struct {
	logger *slog.Logger
	store  resultStore

	mu     sync.Mutex
	closed bool
	queue  chan *entity.Result
	done   chan struct{}
}

func NewResults(logger *slog.Logger, store resultStore) *Results {
	results := &Results{
		logger: logger.With("component", "results"),
		store:  store,
	}

	if store != nil {
		results.queue = make(chan *entity.Result, resultQueueSize)
		results.done = make(chan struct{})
		go results.run()
	}

	return results
}

// SessionChanged queues a finished game for saving. It runs under the session
// manager lock, so it never waits for the store.
func (that *Results) SessionChanged(_ context.Context, event entity.SessionEvent) {
	if that.store == nil || !event.Finished {
		return
	}

	result := entity.NewResult(event.Session)

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		that.logger.Warn("result dropped after close", "session_id", result.SessionID)
		return
	}

	select {
	case that.queue <- result:
	default:
		that.logger.Error("result queue is full, result dropped", "session_id", result.SessionID)
	}
}

// Close saves what is still queued and stops the writer.
func (that *Results) Close() {
	if that.store == nil {
		return
	}

	that.mu.Lock()
	if that.closed {
		that.mu.Unlock()
		return
	}
	that.closed = true
	close(that.queue)
	that.mu.Unlock()

	<-that.done
}

func (that *Results) run() {
	defer close(that.done)

	for result := range that.queue {
		that.save(result)
	}
}

func (that *Results) save(result *entity.Result) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := that.store.SaveResult(ctx, result); err != nil {
		that.logger.Error("failed to save result", "session_id", result.SessionID, "error", err)
	}
}

func (that *Results) Leaderboard(ctx context.Context, kind entity.Kind, limit int) ([]entity.LeaderboardRow, error) {
	if that.store == nil {
		return []entity.LeaderboardRow{}, nil
	}

	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	rows, err := that.store.Leaderboard(ctx, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}

	return rows, nil
}
