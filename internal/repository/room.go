package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/checkers-backend/internal/apperror"
	"github.com/rocketscienceinc/checkers-backend/internal/entity"
	"github.com/rocketscienceinc/checkers-backend/internal/pkg"
)

const defaultCodeAttempts = 32

type RoomRepository interface {
	Create(ctx context.Context) (string, error)
	GetOrCreate(ctx context.Context, code string) error

	Update(code string, fn func(room *entity.Room) error) error
	View(code string, fn func(room *entity.Room)) error
}

type codeReserver interface {
	Reserve(ctx context.Context, code string) (bool, error)
}

// guardedRoom - every room has its own lock so rooms never wait on each other.
type guardedRoom struct {
	mu   sync.Mutex
	room *entity.Room
}

type roomRegistry struct {
	// guards the map only, never held while a room is locked.
	mu    sync.RWMutex
	rooms map[string]*guardedRoom

	reserver     codeReserver
	codeAttempts int
	generateCode func() (string, error)
}

func NewRoomRepository(reserver codeReserver, codeAttempts int) RoomRepository {
	if codeAttempts <= 0 {
		codeAttempts = defaultCodeAttempts
	}

	return &roomRegistry{
		rooms:        make(map[string]*guardedRoom),
		reserver:     reserver,
		codeAttempts: codeAttempts,
		generateCode: pkg.GenerateRoomCode,
	}
}

// Create - adds a room under a fresh code that is neither used here nor reserved elsewhere.
func (that *roomRegistry) Create(ctx context.Context) (string, error) {
	for attempt := 0; attempt < that.codeAttempts; attempt++ {
		code, err := that.generateCode()
		if err != nil {
			return "", fmt.Errorf("failed to generate room code: %w", err)
		}

		if that.get(code) != nil {
			continue
		}

		reserved, err := that.reserver.Reserve(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to reserve room code %s: %w", code, err)
		}

		if !reserved {
			continue
		}

		if that.insert(code) {
			return code, nil
		}
	}

	return "", apperror.ErrRoomCodesExhausted
}

// GetOrCreate - makes sure a room exists for a well-formed code, creating it on first reference.
func (that *roomRegistry) GetOrCreate(ctx context.Context, code string) error {
	if !pkg.IsRoomCode(code) {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidRoomCode, code)
	}

	if that.get(code) != nil {
		return nil
	}

	// a code handed out by another instance may still be joined here, so the result is ignored.
	if _, err := that.reserver.Reserve(ctx, code); err != nil {
		return fmt.Errorf("failed to reserve room code %s: %w", code, err)
	}

	that.insert(code)

	return nil
}

// Update - runs fn while holding the room's lock.
func (that *roomRegistry) Update(code string, fn func(room *entity.Room) error) error {
	guarded := that.get(code)
	if guarded == nil {
		return fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, code)
	}

	guarded.mu.Lock()
	defer guarded.mu.Unlock()

	return fn(guarded.room)
}

// View - runs fn while holding the room's lock, fn must not keep the room.
func (that *roomRegistry) View(code string, fn func(room *entity.Room)) error {
	return that.Update(code, func(room *entity.Room) error {
		fn(room)
		return nil
	})
}

func (that *roomRegistry) get(code string) *guardedRoom {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.rooms[code]
}

// insert - returns false if the code is already taken.
func (that *roomRegistry) insert(code string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.rooms[code]; ok {
		return false
	}

	that.rooms[code] = &guardedRoom{room: entity.NewRoom(code)}
	return true
}
