package checkers

import (
	"fmt"

	"github.com/rocketscienceinc/checkers-backend/internal/apperror"
	"github.com/rocketscienceinc/checkers-backend/internal/entity"
)

// Select - marks the piece at (row, col) as the one to move. Selecting again replaces the previous selection.
// On error the room is left untouched.
func Select(room *entity.Room, identity string, row, col int) error {
	mover, err := confirmTurn(room, identity)
	if err != nil {
		return err
	}

	if !entity.InBounds(row, col) {
		return fmt.Errorf("%w: %d,%d", apperror.ErrInvalidCell, row, col)
	}

	if room.Board.At(row, col).Color != mover {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidCell, ErrNotOwnPiece)
	}

	room.Selected = &entity.Position{Row: row, Col: col}
	room.Version++

	return nil
}

// Move - moves the selected piece to (row, col). A rejected destination only drops the selection.
func Move(room *entity.Room, identity string, row, col int) error {
	mover, err := confirmTurn(room, identity)
	if err != nil {
		return err
	}

	if room.Selected == nil {
		return apperror.ErrNoSelection
	}

	from := *room.Selected

	captured, err := validateMove(&room.Board, from.Row, from.Col, row, col, mover)
	if err != nil {
		room.Selected = nil
		room.Version++

		return fmt.Errorf("invalid move %s -> (%d,%d): %w", from, row, col, err)
	}

	applyMove(room, mover, from, entity.Position{Row: row, Col: col}, captured)

	return nil
}

// Click - the single-click flow: select when nothing is selected, otherwise try to move there.
func Click(room *entity.Room, identity string, row, col int) error {
	if room.Selected == nil {
		return Select(room, identity, row, col)
	}

	return Move(room, identity, row, col)
}

// confirmTurn - returns the color identity plays if it may act right now.
func confirmTurn(room *entity.Room, identity string) (entity.Color, error) {
	if room.IsGameOver() {
		return entity.ColorNone, apperror.ErrGameFinished
	}

	role := room.RoleOf(identity)
	if !role.IsPlayer() {
		return entity.ColorNone, apperror.ErrSpectator
	}

	if role.Color() != room.CurrentPlayer {
		return entity.ColorNone, apperror.ErrNotYourTurn
	}

	return role.Color(), nil
}

// applyMove - a validated move always ends the turn; there is no multi-jump continuation.
func applyMove(room *entity.Room, mover entity.Color, from, to entity.Position, captured *entity.Position) {
	room.Board[to.Row][to.Col] = room.Board[from.Row][from.Col]
	room.Board[from.Row][from.Col] = entity.Cell{}

	if captured != nil {
		room.Board[captured.Row][captured.Col] = entity.Cell{}
		room.AddScore(mover)
	}

	if to.Row == mover.BackRank() {
		room.Board[to.Row][to.Col].King = true
	}

	updateGameStatus(room, mover)

	room.Selected = nil
	room.Version++
}

// updateGameStatus - ends the game or passes the turn.
func updateGameStatus(room *entity.Room, mover entity.Color) {
	if winner := room.Board.Winner(); winner != entity.ColorNone {
		room.Winner = winner
		return
	}

	room.CurrentPlayer = mover.Opponent()
}
