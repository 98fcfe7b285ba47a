package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/checkers-backend/internal/config"
	"github.com/rocketscienceinc/checkers-backend/internal/repository"
	"github.com/rocketscienceinc/checkers-backend/internal/repository/storage"
	"github.com/rocketscienceinc/checkers-backend/internal/usecase"
	"github.com/rocketscienceinc/checkers-backend/transport/rest"
)

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

	archive, closeArchive, err := initArchive(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeArchive()

	roomRepo := repository.NewRoomRepository(archive, conf.RoomCodeAttempts)
	gameManager := usecase.NewGameManager(logger, roomRepo, archive, conf.PollInterval)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		httpErrCh <- rest.New(logger, gameManager, conf.GinMode).Start(ctx, conf.HTTPPort)
	}()

	select {
	case err = <-httpErrCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		// wait for the server to drain
		return <-httpErrCh
	}
}

// initArchive - the room archive selected in config, with a func releasing its connection.
func initArchive(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.RoomArchive, func(), error) {
	if conf.Archive != config.ArchiveRedis {
		log.Info("Using in-memory room archive")
		return repository.NewMemoryArchive(), func() {}, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedis(ctx, redisAddrString)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	log.Info("Using redis room archive", "addr", redisAddrString)

	closeArchive := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewRedisArchive(redisStorage, conf.Redis.TTL), closeArchive, nil
}
