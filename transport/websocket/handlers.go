package websocket

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/alphagames-backend/internal/apperror"
	"github.com/rocketscienceinc/alphagames-backend/internal/entity"
	"github.com/rocketscienceinc/alphagames-backend/internal/game"
)

func (that *Server) handleGet(ctx context.Context, sessionID string, _ *Payload) (*entity.Session, error) {
	return that.sessions.GetSession(ctx, sessionID)
}

func (that *Server) handleRestart(ctx context.Context, sessionID string, _ *Payload) (*entity.Session, error) {
	return that.sessions.Restart(ctx, sessionID)
}

func (that *Server) handleOpponent(ctx context.Context, sessionID string, payload *Payload) (*entity.Session, error) {
	if payload.AgainstAI == nil {
		return nil, fmt.Errorf("%w: against_ai is required", apperror.ErrInvalidPayload)
	}

	return that.sessions.SetAgainstAI(ctx, sessionID, *payload.AgainstAI)
}

func (that *Server) handleSelect(ctx context.Context, sessionID string, payload *Payload) (*entity.Session, error) {
	pos, err := cellOf(payload)
	if err != nil {
		return nil, err
	}

	return that.sessions.SelectCell(ctx, sessionID, pos)
}

func (that *Server) handlePlace(ctx context.Context, sessionID string, payload *Payload) (*entity.Session, error) {
	pos, err := cellOf(payload)
	if err != nil {
		return nil, err
	}

	return that.sessions.PlaceMark(ctx, sessionID, pos)
}

func (that *Server) handleDrop(ctx context.Context, sessionID string, payload *Payload) (*entity.Session, error) {
	if payload.Column == nil {
		return nil, fmt.Errorf("%w: column is required", apperror.ErrInvalidPayload)
	}

	return that.sessions.DropToken(ctx, sessionID, *payload.Column)
}

func (that *Server) handleGuess(ctx context.Context, sessionID string, payload *Payload) (*entity.Session, error) {
	if payload.Value == nil {
		return nil, fmt.Errorf("%w: value is required", apperror.ErrInvalidPayload)
	}

	return that.sessions.Guess(ctx, sessionID, *payload.Value)
}

func cellOf(payload *Payload) (game.Position, error) {
	if payload.Row == nil || payload.Col == nil {
		return game.Position{}, fmt.Errorf("%w: row and col are required", apperror.ErrInvalidPayload)
	}

	return game.NewPosition(*payload.Row, *payload.Col), nil
}
