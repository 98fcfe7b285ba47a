package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/checkers-backend/internal/apperror"
	"github.com/rocketscienceinc/checkers-backend/internal/entity"
)

type gameManager interface {
	CreateRoom(ctx context.Context) (string, error)
	GetOrAssignIdentity(ctx context.Context, code, identity string) (entity.Role, error)

	Select(ctx context.Context, code, identity string, row, col int) (*entity.Snapshot, error)
	AttemptMove(ctx context.Context, code, identity string, row, col int) (*entity.Snapshot, error)
	Click(ctx context.Context, code, identity string, row, col int) (*entity.Snapshot, error)
	ResetRoom(ctx context.Context, code, identity string) (*entity.Snapshot, error)

	GetSnapshot(ctx context.Context, code, identity string) (*entity.Snapshot, error)
	GetArchivedSnapshot(ctx context.Context, code string) (*entity.Snapshot, error)
}

type cellAction func(ctx context.Context, code, identity string, row, col int) (*entity.Snapshot, error)

type handlers struct {
	logger *slog.Logger
	game   gameManager
}

func newHandlers(logger *slog.Logger, game gameManager) *handlers {
	return &handlers{
		logger: logger,
		game:   game,
	}
}

// createRoom - opens a room and joins the caller to it, who gets the first seat.
func (that *handlers) createRoom(c *gin.Context) {
	ctx := c.Request.Context()
	identity := identityFrom(c)

	code, err := that.game.CreateRoom(ctx)
	if err != nil {
		that.respondError(c, "createRoom", err)
		return
	}

	if _, err = that.game.GetOrAssignIdentity(ctx, code, identity); err != nil {
		that.respondError(c, "createRoom", err)
		return
	}

	snapshot, err := that.game.GetSnapshot(ctx, code, identity)
	if err != nil {
		that.respondError(c, "createRoom", err)
		return
	}

	c.JSON(http.StatusCreated, snapshot)
}

func (that *handlers) joinRoom(c *gin.Context) {
	code := c.Param("code")

	role, err := that.game.GetOrAssignIdentity(c.Request.Context(), code, identityFrom(c))
	if err != nil {
		that.respondError(c, "joinRoom", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"room": code,
		"role": role,
	})
}

// getSnapshot - answers 304 when the caller already has the current version (?since=<version>).
func (that *handlers) getSnapshot(c *gin.Context) {
	snapshot, err := that.game.GetSnapshot(c.Request.Context(), c.Param("code"), identityFrom(c))
	if err != nil {
		that.respondError(c, "getSnapshot", err)
		return
	}

	if since, ok := c.GetQuery("since"); ok {
		version, err := strconv.ParseUint(since, 10, 64)
		if err == nil && version == snapshot.Version {
			c.Status(http.StatusNotModified)
			return
		}
	}

	c.JSON(http.StatusOK, snapshot)
}

func (that *handlers) getArchivedSnapshot(c *gin.Context) {
	snapshot, err := that.game.GetArchivedSnapshot(c.Request.Context(), c.Param("code"))
	if err != nil {
		that.respondError(c, "getArchivedSnapshot", err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

func (that *handlers) resetRoom(c *gin.Context) {
	snapshot, err := that.game.ResetRoom(c.Request.Context(), c.Param("code"), identityFrom(c))
	if err != nil {
		that.respondError(c, "resetRoom", err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// cell - wraps select, move and click which all take a target square from the path.
func (that *handlers) cell(name string, action cellAction) gin.HandlerFunc {
	return func(c *gin.Context) {
		row, errRow := strconv.Atoi(c.Param("row"))
		col, errCol := strconv.Atoi(c.Param("col"))
		if errRow != nil || errCol != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "row and col must be integers"})
			return
		}

		snapshot, err := action(c.Request.Context(), c.Param("code"), identityFrom(c), row, col)
		if err != nil {
			that.respondError(c, name, err)
			return
		}

		c.JSON(http.StatusOK, snapshot)
	}
}

func (that *handlers) respondError(c *gin.Context, method string, err error) {
	switch {
	case errors.Is(err, apperror.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
	case errors.Is(err, apperror.ErrInvalidRoomCode):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room code"})
	default:
		that.logger.Error("request failed", "method", method, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
