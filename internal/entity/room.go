package entity

import "time"

const (
	StatusAwaitingSelection   = "awaiting_selection"
	StatusAwaitingDestination = "awaiting_destination"
	StatusGameOver            = "game_over"
)

// Room holds one game. It is not safe for concurrent use; the registry guards every room with its own lock.
type Room struct {
	Code          string
	Board         Board
	CurrentPlayer Color
	Selected      *Position
	Winner        Color
	ScoreA        int
	ScoreB        int

	// seats survive a reset.
	PlayerA    string
	PlayerB    string
	Spectators map[string]struct{}

	Version   uint64
	CreatedAt time.Time
}

type Snapshot struct {
	Code          string    `json:"code"`
	Board         Board     `json:"board"`
	CurrentPlayer Color     `json:"current_player"`
	Selected      *Position `json:"selected"`
	Winner        Color     `json:"winner"`
	ScoreA        int       `json:"score_a"`
	ScoreB        int       `json:"score_b"`
	PiecesA       int       `json:"pieces_a"`
	PiecesB       int       `json:"pieces_b"`
	Status        string    `json:"status"`
	Viewer        Role      `json:"viewer"`
	Version       uint64    `json:"version"`

	PollIntervalMs int64 `json:"poll_interval_ms,omitempty"`
}

func NewRoom(code string) *Room {
	room := &Room{
		Code:       code,
		Spectators: make(map[string]struct{}),
		CreatedAt:  time.Now(),
	}
	room.Reset()

	return room
}

// Reset - puts the game back to its initial position, seats are kept.
func (that *Room) Reset() {
	that.Board = NewBoard()
	that.CurrentPlayer = ColorA
	that.Selected = nil
	that.Winner = ColorNone
	that.ScoreA = 0
	that.ScoreB = 0
	that.Version++
}

// RoleOf - the role already held by identity, RoleNone if it has not joined.
func (that *Room) RoleOf(identity string) Role {
	switch {
	case identity == "":
		return RoleNone
	case identity == that.PlayerA:
		return RolePlayerA
	case identity == that.PlayerB:
		return RolePlayerB
	}

	if _, ok := that.Spectators[identity]; ok {
		return RoleSpectator
	}

	return RoleNone
}

// AssignIdentity - idempotent seat assignment: A, then B, then spectators.
// Taking a seat changes the viewer of a snapshot, so it bumps Version. Spectators see the same view either way.
// An empty identity is treated as an anonymous spectator and is not recorded.
func (that *Room) AssignIdentity(identity string) Role {
	if identity == "" {
		return RoleSpectator
	}

	if role := that.RoleOf(identity); role != RoleNone {
		return role
	}

	switch {
	case that.PlayerA == "":
		that.PlayerA = identity
		that.Version++
		return RolePlayerA
	case that.PlayerB == "":
		that.PlayerB = identity
		that.Version++
		return RolePlayerB
	default:
		if that.Spectators == nil {
			that.Spectators = make(map[string]struct{})
		}
		that.Spectators[identity] = struct{}{}
		return RoleSpectator
	}
}

func (that *Room) IsGameOver() bool {
	return that.Winner != ColorNone
}

func (that *Room) Status() string {
	switch {
	case that.IsGameOver():
		return StatusGameOver
	case that.Selected != nil:
		return StatusAwaitingDestination
	default:
		return StatusAwaitingSelection
	}
}

func (that *Room) AddScore(color Color) {
	switch color {
	case ColorA:
		that.ScoreA++
	case ColorB:
		that.ScoreB++
	}
}

// Snapshot - read-only copy of the room as seen by identity.
func (that *Room) Snapshot(identity string) *Snapshot {
	var selected *Position
	if that.Selected != nil {
		pos := *that.Selected
		selected = &pos
	}

	viewer := that.RoleOf(identity)
	if viewer == RoleNone {
		viewer = RoleSpectator
	}

	return &Snapshot{
		Code:          that.Code,
		Board:         that.Board,
		CurrentPlayer: that.CurrentPlayer,
		Selected:      selected,
		Winner:        that.Winner,
		ScoreA:        that.ScoreA,
		ScoreB:        that.ScoreB,
		PiecesA:       that.Board.CountPieces(ColorA),
		PiecesB:       that.Board.CountPieces(ColorB),
		Status:        that.Status(),
		Viewer:        viewer,
		Version:       that.Version,
	}
}
