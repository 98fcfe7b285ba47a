package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoom(t *testing.T) {
	// When: a room is created
	room := NewRoom("ABC123")

	// Then: it is at the initial position with A to move
	assert.Equal(t, "ABC123", room.Code)
	assert.Equal(t, NewBoard(), room.Board)
	assert.Equal(t, ColorA, room.CurrentPlayer)
	assert.Nil(t, room.Selected)
	assert.Equal(t, ColorNone, room.Winner)
	assert.Zero(t, room.ScoreA)
	assert.Zero(t, room.ScoreB)
	assert.Empty(t, room.PlayerA)
	assert.Empty(t, room.PlayerB)
	assert.Equal(t, StatusAwaitingSelection, room.Status())
}

func TestRoom_AssignIdentity(t *testing.T) {
	t.Run("Seats A, then B, then spectators", func(t *testing.T) {
		room := NewRoom("ABC123")

		assert.Equal(t, RolePlayerA, room.AssignIdentity("alice"))
		assert.Equal(t, RolePlayerB, room.AssignIdentity("bob"))
		assert.Equal(t, RoleSpectator, room.AssignIdentity("carol"))
		assert.Equal(t, RoleSpectator, room.AssignIdentity("dave"))
	})

	t.Run("Is idempotent per identity", func(t *testing.T) {
		room := NewRoom("ABC123")
		room.AssignIdentity("alice")
		room.AssignIdentity("bob")
		room.AssignIdentity("carol")

		assert.Equal(t, RolePlayerA, room.AssignIdentity("alice"))
		assert.Equal(t, RolePlayerB, room.AssignIdentity("bob"))
		assert.Equal(t, RoleSpectator, room.AssignIdentity("carol"))
		assert.Equal(t, "alice", room.PlayerA)
		assert.Equal(t, "bob", room.PlayerB)
		assert.Len(t, room.Spectators, 1)
	})

	t.Run("Only taking a seat bumps the version", func(t *testing.T) {
		// Given: a fresh room
		room := NewRoom("ABC123")
		version := room.Version

		// When: two players and a spectator join, then everyone joins again
		room.AssignIdentity("alice")
		afterA := room.Version
		room.AssignIdentity("bob")
		afterB := room.Version
		room.AssignIdentity("carol")
		room.AssignIdentity("alice")
		room.AssignIdentity("bob")

		// Then: the version moved once per seat
		assert.Equal(t, version+1, afterA)
		assert.Equal(t, version+2, afterB)
		assert.Equal(t, afterB, room.Version)
	})

	t.Run("Empty identity is an unrecorded spectator", func(t *testing.T) {
		room := NewRoom("ABC123")

		assert.Equal(t, RoleSpectator, room.AssignIdentity(""))
		assert.Empty(t, room.PlayerA)
		assert.Empty(t, room.Spectators)
	})
}

func TestRoom_Reset(t *testing.T) {
	// Given: a room in the middle of a finished game
	room := NewRoom("ABC123")
	room.AssignIdentity("alice")
	room.AssignIdentity("bob")
	room.Board = Board{}
	room.Board[0][1] = Cell{Color: ColorB, King: true}
	room.CurrentPlayer = ColorB
	room.Selected = &Position{Row: 0, Col: 1}
	room.Winner = ColorB
	room.ScoreA = 3
	room.ScoreB = 12
	version := room.Version

	// When: the room is reset
	room.Reset()

	// Then: the game restarts but the seats are kept
	assert.Equal(t, NewBoard(), room.Board)
	assert.Equal(t, ColorA, room.CurrentPlayer)
	assert.Nil(t, room.Selected)
	assert.Equal(t, ColorNone, room.Winner)
	assert.Zero(t, room.ScoreA)
	assert.Zero(t, room.ScoreB)
	assert.Equal(t, "alice", room.PlayerA)
	assert.Equal(t, "bob", room.PlayerB)
	assert.Greater(t, room.Version, version)
}

func TestRoom_Snapshot(t *testing.T) {
	t.Run("Reports the viewer's role", func(t *testing.T) {
		room := NewRoom("ABC123")
		room.AssignIdentity("alice")
		room.AssignIdentity("bob")

		assert.Equal(t, RolePlayerA, room.Snapshot("alice").Viewer)
		assert.Equal(t, RolePlayerB, room.Snapshot("bob").Viewer)
		assert.Equal(t, RoleSpectator, room.Snapshot("stranger").Viewer)
	})

	t.Run("Is a copy that does not follow later changes", func(t *testing.T) {
		// Given: a snapshot taken with a selection
		room := NewRoom("ABC123")
		room.Selected = &Position{Row: 2, Col: 1}
		snapshot := room.Snapshot("")

		// When: the room changes afterwards
		room.Board[2][1] = Cell{}
		room.Selected.Row = 5
		room.ScoreA = 4

		// Then: the snapshot still shows the old state
		require.NotNil(t, snapshot.Selected)
		assert.Equal(t, Position{Row: 2, Col: 1}, *snapshot.Selected)
		assert.Equal(t, Cell{Color: ColorA}, snapshot.Board[2][1])
		assert.Zero(t, snapshot.ScoreA)
		assert.Equal(t, 12, snapshot.PiecesA)
		assert.Equal(t, StatusAwaitingDestination, snapshot.Status)
	})

	t.Run("Status is game_over once there is a winner", func(t *testing.T) {
		room := NewRoom("ABC123")
		room.Winner = ColorA

		assert.Equal(t, StatusGameOver, room.Snapshot("").Status)
	})
}
