package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/alphagames-backend/internal/apperror"
	"github.com/rocketscienceinc/alphagames-backend/internal/entity"
	"github.com/rocketscienceinc/alphagames-backend/internal/game"
	"github.com/rocketscienceinc/alphagames-backend/internal/scheduler"
)

// Observer is told about every change of a session. It is called with the manager
// lock held and must not call back into the manager.
type Observer interface {
	SessionChanged(ctx context.Context, event entity.SessionEvent)
}

type sessionService interface {
	CreateSession(ctx context.Context, kind entity.Kind, againstAI bool) (*entity.Session, error)
	GetSessionByID(ctx context.Context, id string) (*entity.Session, error)
	UpdateSession(ctx context.Context, session *entity.Session) error
	DeleteSession(ctx context.Context, id string) error
	Restart(session *entity.Session)
	Touch(session *entity.Session)
	Record(session *entity.Session, outcome game.Outcome)
}

type botService interface {
	MakeTurn(session *entity.Session) bool
}

type taskScheduler interface {
	Schedule(task scheduler.Task, delay time.Duration, fn func(scheduler.Task))
}

// BotDelays is how long the computer thinks before moving, per game.
type BotDelays struct {
	Checkers    time.Duration
	TicTacToe   time.Duration
	ConnectFour time.Duration
}

func (that BotDelays) For(kind entity.Kind) time.Duration {
	switch kind {
	case entity.KindCheckers:
		return that.Checkers
	case entity.KindTicTacToe:
		return that.TicTacToe
	case entity.KindConnectFour:
		return that.ConnectFour
	default:
		return 0
	}
}

// SessionManager drives sessions: it forwards player moves to the engines, persists
// every change, tells observers and plans the computer's replies. All of it happens
// under one lock, so requests and delayed computer turns never interleave.
type SessionManager struct {
	logger *slog.Logger

	sessionService sessionService
	botService     botService
	scheduler      taskScheduler
	delays         BotDelays

	mu        sync.Mutex
	observers []Observer
}

func NewSessionManager(
	logger *slog.Logger,
	sessionService sessionService,
	botService botService,
	tasks taskScheduler,
	delays BotDelays,
) *SessionManager {
	return &SessionManager{
		logger: logger.With("component", "session_manager"),

		sessionService: sessionService,
		botService:     botService,
		scheduler:      tasks,
		delays:         delays,
	}
}

func (that *SessionManager) AddObserver(observer Observer) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.observers = append(that.observers, observer)
}

func (that *SessionManager) CreateSession(ctx context.Context, kind entity.Kind, againstAI bool) (*entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.sessionService.CreateSession(ctx, kind, againstAI)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	that.logger.Info("session created", "session_id", session.ID, "kind", kind, "against_ai", session.AgainstAI)
	that.notify(ctx, session, entity.ActionCreated, false)

	return session.Masked(), nil
}

func (that *SessionManager) GetSession(ctx context.Context, id string) (*entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.sessionService.GetSessionByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session.Masked(), nil
}

// Restart puts the session's game back to its initial layout. Computer turns planned
// before the restart will find a newer generation and do nothing.
func (that *SessionManager) Restart(ctx context.Context, id string) (*entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.sessionService.GetSessionByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	that.sessionService.Restart(session)
	if err = that.save(ctx, session, entity.ActionRestart, false); err != nil {
		return nil, err
	}

	return session.Masked(), nil
}

// SetAgainstAI turns the computer opponent on or off. Tic-tac-toe starts a new game,
// connect four goes on with the current board.
func (that *SessionManager) SetAgainstAI(ctx context.Context, id string, enabled bool) (*entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.sessionService.GetSessionByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if err = session.SetAgainstAI(enabled); err != nil {
		return nil, fmt.Errorf("failed to switch opponent: %w", err)
	}

	if session.Kind == entity.KindTicTacToe {
		that.sessionService.Restart(session)
	} else {
		that.sessionService.Touch(session)
	}

	if err = that.save(ctx, session, entity.ActionToggleAI, false); err != nil {
		return nil, err
	}

	return session.Masked(), nil
}

func (that *SessionManager) CloseSession(ctx context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.sessionService.GetSessionByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	if err = that.sessionService.DeleteSession(ctx, id); err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}

	that.logger.Info("session closed", "session_id", id)
	that.notify(ctx, session, entity.ActionClosed, false)

	return nil
}

// SelectCell taps a checkers cell. Picking or dropping a piece is reported to observers
// as a selection; only a tap that plays a move counts as a move.
func (that *SessionManager) SelectCell(ctx context.Context, id string, pos game.Position) (*entity.Session, error) {
	return that.play(ctx, id, entity.KindCheckers, func(session *entity.Session) game.Outcome {
		return session.Checkers.SelectCell(pos)
	})
}

func (that *SessionManager) PlaceMark(ctx context.Context, id string, pos game.Position) (*entity.Session, error) {
	return that.play(ctx, id, entity.KindTicTacToe, func(session *entity.Session) game.Outcome {
		return game.MoveOutcome(session.TicTacToe.PlaceMark(pos))
	})
}

func (that *SessionManager) DropToken(ctx context.Context, id string, column int) (*entity.Session, error) {
	return that.play(ctx, id, entity.KindConnectFour, func(session *entity.Session) game.Outcome {
		return game.MoveOutcome(session.ConnectFour.DropToken(column))
	})
}

func (that *SessionManager) Guess(ctx context.Context, id string, value int) (*entity.Session, error) {
	return that.play(ctx, id, entity.KindGuessNumber, func(session *entity.Session) game.Outcome {
		return game.MoveOutcome(session.GuessNumber.Guess(value))
	})
}

// play applies a player's move. Moves the engine rejects, and moves sent while the
// computer is thinking, leave the session as it was and are not an error.
func (that *SessionManager) play(
	ctx context.Context, id string, kind entity.Kind, move func(*entity.Session) game.Outcome,
) (*entity.Session, error) {
	log := that.logger.With("method", "play", "session_id", id)

	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.sessionService.GetSessionByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if session.Kind != kind {
		return nil, fmt.Errorf("%w: session %s plays %s", apperror.ErrWrongGameKind, id, session.Kind)
	}

	if session.ComputerTurn() {
		log.Debug("move ignored while the computer is to move")
		return session.Masked(), nil
	}

	outcome := move(session)
	if outcome == game.OutcomeIgnored {
		log.Debug("move ignored")
		return session.Masked(), nil
	}

	action := entity.ActionMove
	if outcome == game.OutcomeSelected {
		action = entity.ActionSelect
	}

	that.sessionService.Record(session, outcome)
	if err = that.save(ctx, session, action, session.IsFinished()); err != nil {
		return nil, err
	}

	return session.Masked(), nil
}

// playComputerTurn runs when a planned computer turn is due. It only plays if the
// session is still in the state the turn was planned for.
func (that *SessionManager) playComputerTurn(ctx context.Context, task scheduler.Task) {
	log := that.logger.With("method", "playComputerTurn", "session_id", task.SessionID)

	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.sessionService.GetSessionByID(ctx, task.SessionID)
	if err != nil {
		log.Warn("session gone before the computer moved", "error", err)
		return
	}

	if session.Generation != task.Generation || session.Revision != task.Revision || !session.ComputerTurn() {
		log.Debug("stale computer turn dropped",
			"task_generation", task.Generation, "generation", session.Generation,
			"task_revision", task.Revision, "revision", session.Revision)
		return
	}

	if !that.botService.MakeTurn(session) {
		log.Debug("computer had nothing to play")
		return
	}

	that.sessionService.Record(session, game.OutcomeMoved)
	if err = that.save(ctx, session, entity.ActionComputer, session.IsFinished()); err != nil {
		log.Error("failed to save computer turn", "error", err)
	}
}

// save persists the session, tells observers and plans a computer reply when one is due.
func (that *SessionManager) save(ctx context.Context, session *entity.Session, action string, finished bool) error {
	if err := that.sessionService.UpdateSession(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	if finished {
		that.logger.Info("game finished", "session_id", session.ID, "kind", session.Kind, "winner", session.Winner())
	}

	that.notify(ctx, session, action, finished)
	that.scheduleComputerTurn(ctx, session)

	return nil
}

func (that *SessionManager) scheduleComputerTurn(ctx context.Context, session *entity.Session) {
	if !session.ComputerTurn() {
		return
	}

	task := scheduler.Task{
		SessionID:  session.ID,
		Generation: session.Generation,
		Revision:   session.Revision,
	}

	detached := context.WithoutCancel(ctx)
	that.scheduler.Schedule(task, that.delays.For(session.Kind), func(task scheduler.Task) {
		that.playComputerTurn(detached, task)
	})
}

func (that *SessionManager) notify(ctx context.Context, session *entity.Session, action string, finished bool) {
	event := entity.SessionEvent{
		Action:   action,
		Session:  session.Masked(),
		Finished: finished,
	}

	for _, observer := range that.observers {
		observer.SessionChanged(ctx, event)
	}
}
