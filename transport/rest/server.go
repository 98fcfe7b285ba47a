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

const shutdownTimeout = 5 * time.Second

type Server struct {
	logger *slog.Logger
	engine *gin.Engine
}

// New - builds the polling API. An empty ginMode keeps gin's current mode.
func New(logger *slog.Logger, game gameManager, ginMode string) *Server {
	if ginMode != "" {
		gin.SetMode(ginMode)
	}

	log := logger.With("component", "rest")
	h := newHandlers(log, game)

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(log))

	engine.GET("/ping", pingHandler)

	rooms := engine.Group("/rooms", sessionMiddleware(log))
	rooms.POST("", h.createRoom)
	rooms.POST("/:code/join", h.joinRoom)
	rooms.GET("/:code", h.getSnapshot)
	rooms.GET("/:code/archive", h.getArchivedSnapshot)
	rooms.POST("/:code/select/:row/:col", h.cell("select", game.Select))
	rooms.POST("/:code/move/:row/:col", h.cell("move", game.AttemptMove))
	rooms.POST("/:code/click/:row/:col", h.cell("click", game.Click))
	rooms.POST("/:code/reset", h.resetRoom)

	return &Server{
		logger: log,
		engine: engine,
	}
}

func (that *Server) Handler() http.Handler {
	return that.engine
}

// Start - serves until ctx is canceled, then shuts down gracefully.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.engine,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	that.logger.Info("HTTP server stopped")

	return nil
}
