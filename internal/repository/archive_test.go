package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/checkers-backend/internal/apperror"
	"github.com/rocketscienceinc/checkers-backend/internal/entity"
)

func TestMemoryArchive_Reserve(t *testing.T) {
	ctx := context.Background()
	archive := NewMemoryArchive()

	// When: the same code is reserved twice
	first, err := archive.Reserve(ctx, "ABC123")
	require.NoError(t, err)

	second, err := archive.Reserve(ctx, "ABC123")
	require.NoError(t, err)

	// Then: only the first claim wins
	assert.True(t, first)
	assert.False(t, second)
}

func TestMemoryArchive_SaveAndLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns the last saved snapshot", func(t *testing.T) {
		// Given: two snapshots of the same room
		archive := NewMemoryArchive()
		room := entity.NewRoom("ABC123")

		require.NoError(t, archive.Save(ctx, room.Snapshot("")))

		room.Selected = &entity.Position{Row: 2, Col: 1}
		room.Version++
		require.NoError(t, archive.Save(ctx, room.Snapshot("")))

		// When: it is loaded
		loaded, err := archive.Load(ctx, "ABC123")

		// Then: the newer one comes back
		require.NoError(t, err)
		assert.Equal(t, room.Version, loaded.Version)
		assert.Equal(t, entity.Position{Row: 2, Col: 1}, *loaded.Selected)
	})

	t.Run("Keeps the newest snapshot when saves arrive out of order", func(t *testing.T) {
		// Given: two versions of the same room
		archive := NewMemoryArchive()
		room := entity.NewRoom("ABC123")
		older := room.Snapshot("")

		room.Selected = &entity.Position{Row: 2, Col: 1}
		room.Version++
		newer := room.Snapshot("")

		// When: the newer one is saved first
		require.NoError(t, archive.Save(ctx, newer))
		require.NoError(t, archive.Save(ctx, older))

		// Then: the older save is ignored
		loaded, err := archive.Load(ctx, "ABC123")
		require.NoError(t, err)
		assert.Equal(t, newer.Version, loaded.Version)
		assert.Equal(t, entity.StatusAwaitingDestination, loaded.Status)
	})

	t.Run("Unknown room", func(t *testing.T) {
		archive := NewMemoryArchive()

		_, err := archive.Load(ctx, "NOPE00")

		assert.ErrorIs(t, err, apperror.ErrRoomNotFound)
	})
}
