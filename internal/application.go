package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/config"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-minimax/transport/rest"
)

var ErrAddrNotFound = errors.New("redis host is empty")

// NewEngine builds the search engine described by the search section of the config.
func NewEngine(logger *slog.Logger, conf *config.Config) (*minimax.Engine, error) {
	order, err := minimax.ParseOrder(conf.Search.Order)
	if err != nil {
		return nil, fmt.Errorf("invalid search config: %w", err)
	}

	engine := minimax.NewEngine(logger)
	engine.SetOrder(order)
	engine.SetParallel(conf.Search.Parallel)

	return engine, nil
}

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

	if conf.Redis.Host == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	engine, err := NewEngine(logger, conf)
	if err != nil {
		return err
	}

	gameRepo := repository.NewGameRepository(redisStorage, conf.Redis.GameTTL)
	gameManager := usecase.NewGameManager(logger, gameRepo, engine)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		httpErrCh <- rest.Start(ctx, conf.HTTPPort, rest.NewHandler(logger, gameManager))
	}()

	select {
	case err = <-httpErrCh:
		if err == nil {
			return nil
		}

		log.Error("HTTP server error", "error", err)
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
	}

	// redis is closed only after in-flight requests are drained
	if err = <-httpErrCh; err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}

	return nil
}
