package scheduler

import (
	"log/slog"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Task identifies the state of a session a delayed computer turn was planned for.
type Task struct {
	SessionID  string
	Generation uint64
	Revision   int
}

// Scheduler runs fire-and-forget callbacks after a delay. Scheduled work is never
// cancelled; callbacks are expected to check the task against the current session.
type Scheduler struct {
	logger *slog.Logger
	clock  clock.Clock

	mu      sync.Mutex
	pending int
	wg      sync.WaitGroup
}

func New(logger *slog.Logger, clk clock.Clock) *Scheduler {
	return &Scheduler{
		logger: logger.With("component", "scheduler"),
		clock:  clk,
	}
}

func (that *Scheduler) Schedule(task Task, delay time.Duration, fn func(Task)) {
	that.mu.Lock()
	that.pending++
	that.mu.Unlock()
	that.wg.Add(1)

	that.logger.Debug("task scheduled", "session_id", task.SessionID, "generation", task.Generation,
		"revision", task.Revision, "delay", delay)

	that.clock.AfterFunc(delay, func() {
		defer that.wg.Done()
		defer func() {
			that.mu.Lock()
			that.pending--
			that.mu.Unlock()
		}()

		fn(task)
	})
}

// Pending is the number of tasks that did not finish yet.
func (that *Scheduler) Pending() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.pending
}

// Wait blocks until every scheduled task has run.
func (that *Scheduler) Wait() {
	that.wg.Wait()
}
