package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/rocketscienceinc/alphagames-backend/internal/analytics"
	"github.com/rocketscienceinc/alphagames-backend/internal/config"
	"github.com/rocketscienceinc/alphagames-backend/internal/game"
	"github.com/rocketscienceinc/alphagames-backend/internal/repository"
	"github.com/rocketscienceinc/alphagames-backend/internal/repository/storage"
	"github.com/rocketscienceinc/alphagames-backend/internal/scheduler"
	"github.com/rocketscienceinc/alphagames-backend/internal/service"
	"github.com/rocketscienceinc/alphagames-backend/internal/usecase"
	"github.com/rocketscienceinc/alphagames-backend/transport/rest"
	"github.com/rocketscienceinc/alphagames-backend/transport/websocket"
)

const shutdownTimeout = 10 * time.Second

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	clk := clock.New()

	sessionRepo, closeSessions, err := newSessionRepository(ctx, log, conf, clk)
	if err != nil {
		return err
	}
	defer closeSessions()

	results := usecase.NewResults(logger, nil)
	if conf.Postgres.DSN != "" {
		postgresStorage, pgErr := storage.NewPostgresStorage(ctx, conf.Postgres.DSN)
		if pgErr != nil {
			return fmt.Errorf("could not connect to postgres storage: %w", pgErr)
		}
		defer postgresStorage.Close()

		resultStore := repository.NewResultStore(postgresStorage.Pool)
		if err = resultStore.EnsureTables(ctx); err != nil {
			return fmt.Errorf("could not prepare results tables: %w", err)
		}

		results = usecase.NewResults(logger, resultStore)
	}
	defer results.Close()

	seed := conf.Bot.Seed
	if seed == 0 {
		seed = clk.Now().UnixNano()
	}
	rng := game.NewLockedRand(seed)

	botService, err := service.NewBotService(rng, conf.Bot.TicTacToeStrategy, conf.Bot.ConnectFourStrategy)
	if err != nil {
		return fmt.Errorf("could not create bot: %w", err)
	}

	tasks := scheduler.New(logger, clk)
	sessionService := service.NewSessionService(sessionRepo, rng, clk)
	sessionManager := usecase.NewSessionManager(logger, sessionService, botService, tasks, usecase.BotDelays{
		Checkers:    conf.Bot.CheckersDelay,
		TicTacToe:   conf.Bot.TicTacToeDelay,
		ConnectFour: conf.Bot.ConnectFourDelay,
	})

	hub := websocket.NewHub(logger)
	sessionManager.AddObserver(hub)
	sessionManager.AddObserver(results)

	if producer := analytics.NewProducer(logger, conf.Kafka.Brokers, conf.Kafka.Topic); producer != nil {
		sessionManager.AddObserver(producer)
		defer func() {
			if closeErr := producer.Close(); closeErr != nil {
				log.Error("could not close analytics producer", "error", closeErr)
			}
		}()
	}

	restServer := rest.New(logger, sessionManager, results)
	wsServer := websocket.New(logger, sessionManager, hub)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := restServer.Start(conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if wsErr := wsServer.Start(conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		err = fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		err = fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if shutdownErr := restServer.Shutdown(shutdownCtx); shutdownErr != nil {
		log.Error("could not stop HTTP server", "error", shutdownErr)
	}
	if shutdownErr := wsServer.Shutdown(shutdownCtx); shutdownErr != nil {
		log.Error("could not stop WebSocket server", "error", shutdownErr)
	}

	log.Info("Waiting for planned computer turns", "pending", tasks.Pending())
	tasks.Wait()

	return err
}

// newSessionRepository picks the session storage named in the config. The returned
// func releases it.
func newSessionRepository(
	ctx context.Context, log *slog.Logger, conf *config.Config, clk clock.Clock,
) (repository.SessionRepository, func(), error) {
	if conf.Storage == config.StorageMemory {
		return repository.NewMemorySessionRepository(clk, conf.SessionTTL), func() {}, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString, conf.Redis.Password, conf.Redis.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeFn := func() {
		if closeErr := redisStorage.Close(); closeErr != nil {
			log.Error("could not close redis storage", "error", closeErr)
		}
	}

	return repository.NewSessionRepository(redisStorage.Connection, conf.SessionTTL), closeFn, nil
}
