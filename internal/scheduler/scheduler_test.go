package scheduler

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler() (*Scheduler, *clock.Mock) {
	mock := clock.NewMock()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return New(logger, mock), mock
}

type recorder struct {
	mu    sync.Mutex
	tasks []Task
}

func (that *recorder) run(task Task) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.tasks = append(that.tasks, task)
}

func (that *recorder) got() []Task {
	that.mu.Lock()
	defer that.mu.Unlock()

	return append([]Task(nil), that.tasks...)
}

func TestScheduler_Schedule(t *testing.T) {
	t.Run("Runs the task after the delay", func(t *testing.T) {
		// Given: a task scheduled in one second
		s, mock := newTestScheduler()
		rec := &recorder{}
		task := Task{SessionID: "s1", Generation: 2, Revision: 5}
		s.Schedule(task, time.Second, rec.run)

		// When: half of the delay passes
		mock.Add(500 * time.Millisecond)

		// Then: nothing ran yet
		assert.Empty(t, rec.got())
		assert.Equal(t, 1, s.Pending())

		// When: the rest of the delay passes
		mock.Add(500 * time.Millisecond)

		// Then: the task ran once with its own identity
		require.Eventually(t, func() bool { return s.Pending() == 0 }, time.Second, time.Millisecond)
		assert.Equal(t, []Task{task}, rec.got())
	})

	t.Run("Tasks keep their own delays", func(t *testing.T) {
		s, mock := newTestScheduler()
		rec := &recorder{}
		fast := Task{SessionID: "fast"}
		slow := Task{SessionID: "slow"}
		s.Schedule(slow, time.Second, rec.run)
		s.Schedule(fast, 500*time.Millisecond, rec.run)

		mock.Add(500 * time.Millisecond)
		require.Eventually(t, func() bool { return s.Pending() == 1 }, time.Second, time.Millisecond)
		assert.Equal(t, []Task{fast}, rec.got())

		mock.Add(500 * time.Millisecond)
		s.Wait()
		assert.Equal(t, []Task{fast, slow}, rec.got())
	})
}

func TestScheduler_Wait(t *testing.T) {
	// Given: a scheduler with a pending task
	s, mock := newTestScheduler()
	rec := &recorder{}
	s.Schedule(Task{SessionID: "s1"}, time.Second, rec.run)

	done := make(chan struct{})
	go func() {
		s.Wait()
		close(done)
	}()

	// Then: Wait blocks while the task has not run
	select {
	case <-done:
		t.Fatal("wait returned before the task ran")
	case <-time.After(20 * time.Millisecond):
	}

	// When: the delay passes
	mock.Add(time.Second)

	// Then: Wait returns
	require.Eventually(t, func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, time.Second, time.Millisecond)
	assert.Len(t, rec.got(), 1)
}
