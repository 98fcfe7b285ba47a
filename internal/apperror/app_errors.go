package apperror

import "errors"

var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrInvalidRoomCode    = errors.New("invalid room code")
	ErrRoomCodesExhausted = errors.New("could not generate a free room code")

	ErrGameFinished = errors.New("game is already finished")
	ErrNotYourTurn  = errors.New("it's not your turn")
	ErrSpectator    = errors.New("spectators can't play")
	ErrNoSelection  = errors.New("no piece selected")
	ErrInvalidCell  = errors.New("invalid cell")
	ErrIllegalMove  = errors.New("illegal move")
)
