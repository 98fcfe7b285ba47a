package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/checkers-backend/internal/apperror"
	"github.com/rocketscienceinc/checkers-backend/internal/checkers"
	"github.com/rocketscienceinc/checkers-backend/internal/entity"
)

type roomRepo interface {
	Create(ctx context.Context) (string, error)
	GetOrCreate(ctx context.Context, code string) error

	Update(code string, fn func(room *entity.Room) error) error
	View(code string, fn func(room *entity.Room)) error
}

type snapshotArchive interface {
	Save(ctx context.Context, snapshot *entity.Snapshot) error
	Load(ctx context.Context, code string) (*entity.Snapshot, error)
}

// GameManager - the operations the web layer calls. Rejected selects and moves are not errors here:
// the caller always gets the current snapshot back and can see that nothing changed.
type GameManager struct {
	logger *slog.Logger

	roomRepo     roomRepo
	archive      snapshotArchive
	pollInterval time.Duration
}

func NewGameManager(logger *slog.Logger, roomRepo roomRepo, archive snapshotArchive, pollInterval time.Duration) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		roomRepo:     roomRepo,
		archive:      archive,
		pollInterval: pollInterval,
	}
}

// CreateRoom - opens a new room with no seats taken and returns its code.
func (that *GameManager) CreateRoom(ctx context.Context) (string, error) {
	code, err := that.roomRepo.Create(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create room: %w", err)
	}

	log := that.logger.With("method", "CreateRoom", "room", code)

	var snapshot *entity.Snapshot
	err = that.roomRepo.View(code, func(room *entity.Room) {
		snapshot = room.Snapshot("")
	})
	if err != nil {
		return "", fmt.Errorf("failed to get room: %w", err)
	}

	that.saveSnapshot(ctx, log, snapshot)
	log.Info("room created")

	return code, nil
}

// GetOrAssignIdentity - seats identity in the room, creating the room on first reference to its code.
func (that *GameManager) GetOrAssignIdentity(ctx context.Context, code, identity string) (entity.Role, error) {
	if err := that.roomRepo.GetOrCreate(ctx, code); err != nil {
		return entity.RoleNone, fmt.Errorf("failed to get room: %w", err)
	}

	var role entity.Role
	_, err := that.update(ctx, "GetOrAssignIdentity", code, identity, func(room *entity.Room) error {
		role = room.AssignIdentity(identity)
		return nil
	})
	if err != nil {
		return entity.RoleNone, fmt.Errorf("failed to assign identity: %w", err)
	}

	that.logger.Debug("identity assigned", "room", code, "identity", identity, "role", role)

	return role, nil
}

func (that *GameManager) Select(ctx context.Context, code, identity string, row, col int) (*entity.Snapshot, error) {
	return that.update(ctx, "Select", code, identity, func(room *entity.Room) error {
		return checkers.Select(room, identity, row, col)
	})
}

func (that *GameManager) AttemptMove(ctx context.Context, code, identity string, row, col int) (*entity.Snapshot, error) {
	return that.update(ctx, "AttemptMove", code, identity, func(room *entity.Room) error {
		return checkers.Move(room, identity, row, col)
	})
}

// Click - select or move depending on whether a piece is already selected.
func (that *GameManager) Click(ctx context.Context, code, identity string, row, col int) (*entity.Snapshot, error) {
	return that.update(ctx, "Click", code, identity, func(room *entity.Room) error {
		return checkers.Click(room, identity, row, col)
	})
}

// ResetRoom - starts a new game in the room, identity is only used for the returned view.
func (that *GameManager) ResetRoom(ctx context.Context, code, identity string) (*entity.Snapshot, error) {
	return that.update(ctx, "ResetRoom", code, identity, func(room *entity.Room) error {
		room.Reset()
		return nil
	})
}

func (that *GameManager) GetSnapshot(_ context.Context, code, identity string) (*entity.Snapshot, error) {
	var snapshot *entity.Snapshot

	err := that.roomRepo.View(code, func(room *entity.Room) {
		snapshot = room.Snapshot(identity)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	snapshot.PollIntervalMs = that.pollInterval.Milliseconds()

	return snapshot, nil
}

// GetArchivedSnapshot - the last snapshot mirrored to the archive. It is viewer neutral and may lag the live room.
func (that *GameManager) GetArchivedSnapshot(ctx context.Context, code string) (*entity.Snapshot, error) {
	snapshot, err := that.archive.Load(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to load archived room: %w", err)
	}

	return snapshot, nil
}

// update - applies fn under the room lock, then mirrors the new state to the archive outside of it.
func (that *GameManager) update(ctx context.Context, method, code, identity string, fn func(room *entity.Room) error) (*entity.Snapshot, error) {
	log := that.logger.With("method", method, "room", code, "identity", identity)

	var (
		snapshot *entity.Snapshot
		changed  bool
	)

	err := that.roomRepo.Update(code, func(room *entity.Room) error {
		version := room.Version

		if err := fn(room); err != nil {
			logRejected(log, err)
		}

		changed = room.Version != version
		snapshot = room.Snapshot(identity)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}

	if changed {
		that.saveSnapshot(ctx, log, snapshot)
	}

	snapshot.PollIntervalMs = that.pollInterval.Milliseconds()

	return snapshot, nil
}

func (that *GameManager) saveSnapshot(ctx context.Context, log *slog.Logger, snapshot *entity.Snapshot) {
	archived := *snapshot
	archived.Viewer = entity.RoleSpectator

	if err := that.archive.Save(ctx, &archived); err != nil {
		log.Warn("failed to archive room", "error", err)
	}
}

func logRejected(log *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperror.ErrIllegalMove):
		log.Info("move rejected", "reason", err)
	default:
		log.Debug("transition ignored", "reason", err)
	}
}
