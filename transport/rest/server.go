package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Server struct {
	logger *slog.Logger
	srv    *http.Server
}

func New(logger *slog.Logger, sessions sessionUseCase, results resultsUseCase) *Server {
	return &Server{
		logger: logger.With("component", "rest"),
		srv: &http.Server{
			Handler:      NewRouter(logger, sessions, results),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  30 * time.Second,
		},
	}
}

func NewRouter(logger *slog.Logger, sessions sessionUseCase, results resultsUseCase) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/ping", pingHandler)

	handler := newSessionHandler(logger, sessions, results)
	handler.register(router)

	return router
}

// Start - starts HTTP server. It returns nil once the server was shut down.
func (that *Server) Start(port string) error {
	that.srv.Addr = ":" + port

	if err := that.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) Shutdown(ctx context.Context) error {
	if err := that.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
