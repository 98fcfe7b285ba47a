package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/checkers-backend/internal/apperror"
	"github.com/rocketscienceinc/checkers-backend/internal/entity"
)

// RoomArchive - claims room codes and keeps the latest snapshot of every room outside the process.
// Save ignores a snapshot whose Version is not newer than the stored one, so out of order saves keep the latest.
// Live room state is never restored from it.
type RoomArchive interface {
	Reserve(ctx context.Context, code string) (bool, error)
	Save(ctx context.Context, snapshot *entity.Snapshot) error
	Load(ctx context.Context, code string) (*entity.Snapshot, error)
}

type memoryArchive struct {
	mu        sync.Mutex
	reserved  map[string]struct{}
	snapshots map[string]entity.Snapshot
}

func NewMemoryArchive() RoomArchive {
	return &memoryArchive{
		reserved:  make(map[string]struct{}),
		snapshots: make(map[string]entity.Snapshot),
	}
}

func (that *memoryArchive) Reserve(_ context.Context, code string) (bool, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.reserved[code]; ok {
		return false, nil
	}

	that.reserved[code] = struct{}{}
	return true, nil
}

func (that *memoryArchive) Save(_ context.Context, snapshot *entity.Snapshot) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if stored, ok := that.snapshots[snapshot.Code]; ok && stored.Version >= snapshot.Version {
		return nil
	}

	that.snapshots[snapshot.Code] = copySnapshot(snapshot)
	return nil
}

func (that *memoryArchive) Load(_ context.Context, code string) (*entity.Snapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	snapshot, ok := that.snapshots[code]
	if !ok {
		return nil, apperror.ErrRoomNotFound
	}

	loaded := copySnapshot(&snapshot)
	return &loaded, nil
}

func copySnapshot(snapshot *entity.Snapshot) entity.Snapshot {
	clone := *snapshot
	if snapshot.Selected != nil {
		selected := *snapshot.Selected
		clone.Selected = &selected
	}
	return clone
}
