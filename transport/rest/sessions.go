package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/alphagames-backend/internal/apperror"
	"github.com/rocketscienceinc/alphagames-backend/internal/entity"
	"github.com/rocketscienceinc/alphagames-backend/internal/game"
)

type sessionUseCase interface {
	CreateSession(ctx context.Context, kind entity.Kind, againstAI bool) (*entity.Session, error)
	GetSession(ctx context.Context, id string) (*entity.Session, error)
	Restart(ctx context.Context, id string) (*entity.Session, error)
	SetAgainstAI(ctx context.Context, id string, enabled bool) (*entity.Session, error)
	CloseSession(ctx context.Context, id string) error

	SelectCell(ctx context.Context, id string, pos game.Position) (*entity.Session, error)
	PlaceMark(ctx context.Context, id string, pos game.Position) (*entity.Session, error)
	DropToken(ctx context.Context, id string, column int) (*entity.Session, error)
	Guess(ctx context.Context, id string, value int) (*entity.Session, error)
}

type resultsUseCase interface {
	Leaderboard(ctx context.Context, kind entity.Kind, limit int) ([]entity.LeaderboardRow, error)
}

type createSessionRequest struct {
	Kind      string `json:"kind" binding:"required"`
	AgainstAI *bool  `json:"against_ai"`
}

type opponentRequest struct {
	AgainstAI *bool `json:"against_ai" binding:"required"`
}

type cellRequest struct {
	Row *int `json:"row" binding:"required"`
	Col *int `json:"col" binding:"required"`
}

type dropRequest struct {
	Column *int `json:"column" binding:"required"`
}

type guessRequest struct {
	Value *int `json:"value" binding:"required"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type sessionHandler struct {
	logger   *slog.Logger
	sessions sessionUseCase
	results  resultsUseCase
}

func newSessionHandler(logger *slog.Logger, sessions sessionUseCase, results resultsUseCase) *sessionHandler {
	return &sessionHandler{
		logger:   logger.With("component", "rest"),
		sessions: sessions,
		results:  results,
	}
}

func (that *sessionHandler) register(router gin.IRouter) {
	router.POST("/sessions", that.createSession)
	router.GET("/sessions/:id", that.getSession)
	router.DELETE("/sessions/:id", that.closeSession)
	router.POST("/sessions/:id/restart", that.restart)
	router.POST("/sessions/:id/opponent", that.setOpponent)

	router.POST("/sessions/:id/checkers/select", that.selectCell)
	router.POST("/sessions/:id/tictactoe/place", that.placeMark)
	router.POST("/sessions/:id/connectfour/drop", that.dropToken)
	router.POST("/sessions/:id/guessnumber/guess", that.guess)

	router.GET("/leaderboard", that.leaderboard)
}

func (that *sessionHandler) createSession(c *gin.Context) {
	var req createSessionRequest
	if !that.bind(c, &req) {
		return
	}

	kind, err := entity.ParseKind(req.Kind)
	if err != nil {
		that.fail(c, "createSession", err)
		return
	}

	againstAI := kind.DefaultAgainstAI()
	if req.AgainstAI != nil {
		againstAI = *req.AgainstAI
	}

	session, err := that.sessions.CreateSession(c.Request.Context(), kind, againstAI)
	if err != nil {
		that.fail(c, "createSession", err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

func (that *sessionHandler) getSession(c *gin.Context) {
	session, err := that.sessions.GetSession(c.Request.Context(), c.Param("id"))
	that.respond(c, "getSession", session, err)
}

func (that *sessionHandler) closeSession(c *gin.Context) {
	if err := that.sessions.CloseSession(c.Request.Context(), c.Param("id")); err != nil {
		that.fail(c, "closeSession", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (that *sessionHandler) restart(c *gin.Context) {
	session, err := that.sessions.Restart(c.Request.Context(), c.Param("id"))
	that.respond(c, "restart", session, err)
}

func (that *sessionHandler) setOpponent(c *gin.Context) {
	var req opponentRequest
	if !that.bind(c, &req) {
		return
	}

	session, err := that.sessions.SetAgainstAI(c.Request.Context(), c.Param("id"), *req.AgainstAI)
	that.respond(c, "setOpponent", session, err)
}

func (that *sessionHandler) selectCell(c *gin.Context) {
	var req cellRequest
	if !that.bind(c, &req) {
		return
	}

	session, err := that.sessions.SelectCell(c.Request.Context(), c.Param("id"), game.NewPosition(*req.Row, *req.Col))
	that.respond(c, "selectCell", session, err)
}

func (that *sessionHandler) placeMark(c *gin.Context) {
	var req cellRequest
	if !that.bind(c, &req) {
		return
	}

	session, err := that.sessions.PlaceMark(c.Request.Context(), c.Param("id"), game.NewPosition(*req.Row, *req.Col))
	that.respond(c, "placeMark", session, err)
}

func (that *sessionHandler) dropToken(c *gin.Context) {
	var req dropRequest
	if !that.bind(c, &req) {
		return
	}

	session, err := that.sessions.DropToken(c.Request.Context(), c.Param("id"), *req.Column)
	that.respond(c, "dropToken", session, err)
}

func (that *sessionHandler) guess(c *gin.Context) {
	var req guessRequest
	if !that.bind(c, &req) {
		return
	}

	session, err := that.sessions.Guess(c.Request.Context(), c.Param("id"), *req.Value)
	that.respond(c, "guess", session, err)
}

func (that *sessionHandler) leaderboard(c *gin.Context) {
	kind, err := entity.ParseKind(c.Query("kind"))
	if err != nil {
		that.fail(c, "leaderboard", err)
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, errorResponse{Error: apperror.ErrInvalidPayload.Error() + ": limit"})
			return
		}
	}

	rows, err := that.results.Leaderboard(c.Request.Context(), kind, limit)
	if err != nil {
		that.fail(c, "leaderboard", err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (that *sessionHandler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: apperror.ErrInvalidPayload.Error() + ": " + err.Error()})
		return false
	}

	return true
}

func (that *sessionHandler) respond(c *gin.Context, method string, session *entity.Session, err error) {
	if err != nil {
		that.fail(c, method, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

func (that *sessionHandler) fail(c *gin.Context, method string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		c.JSON(status, errorResponse{Error: http.StatusText(status)})
		return
	}

	c.JSON(status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrUnknownGameKind),
		errors.Is(err, apperror.ErrWrongGameKind),
		errors.Is(err, apperror.ErrInvalidPayload):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
