package service

import (
	"context"
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"github.com/rocketscienceinc/alphagames-backend/internal/entity"
	"github.com/rocketscienceinc/alphagames-backend/internal/game"
)

type SessionService interface {
	CreateSession(ctx context.Context, kind entity.Kind, againstAI bool) (*entity.Session, error)
	GetSessionByID(ctx context.Context, id string) (*entity.Session, error)
	UpdateSession(ctx context.Context, session *entity.Session) error
	DeleteSession(ctx context.Context, id string) error

	// Restart resets the session's game in memory; the caller persists it.
	Restart(session *entity.Session)
	// Touch records an applied change in memory; the caller persists it.
	Touch(session *entity.Session)
	// Record notes what a player's input did in memory; the caller persists it.
	Record(session *entity.Session, outcome game.Outcome)
}

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type sessionService struct {
	sessionRepo sessionRepo
	rng         game.Random
	clock       clock.Clock
}

func NewSessionService(sessionRepo sessionRepo, rng game.Random, clk clock.Clock) SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		rng:         rng,
		clock:       clk,
	}
}

func (that *sessionService) CreateSession(ctx context.Context, kind entity.Kind, againstAI bool) (*entity.Session, error) {
	session, err := entity.NewSession(uuid.NewString(), kind, againstAI, that.rng, that.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}

func (that *sessionService) GetSessionByID(ctx context.Context, id string) (*entity.Session, error) {
	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve session from storage: %w", err)
	}

	return session, nil
}

func (that *sessionService) UpdateSession(ctx context.Context, session *entity.Session) error {
	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}

func (that *sessionService) DeleteSession(ctx context.Context, id string) error {
	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

func (that *sessionService) Restart(session *entity.Session) {
	session.Restart(that.rng, that.clock.Now())
}

func (that *sessionService) Touch(session *entity.Session) {
	session.Touch(that.clock.Now())
}

func (that *sessionService) Record(session *entity.Session, outcome game.Outcome) {
	session.Record(outcome, that.clock.Now())
}
