package checkers

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/checkers-backend/internal/apperror"
	"github.com/rocketscienceinc/checkers-backend/internal/entity"
)

var (
	ErrOutOfBounds      = errors.New("destination is out of bounds")
	ErrCellOccupied     = errors.New("destination is occupied")
	ErrNotOwnPiece      = errors.New("source does not hold a piece of the mover")
	ErrWrongDirection   = errors.New("only kings can move backwards")
	ErrNothingToCapture = errors.New("no opposing piece to jump over")
	ErrBadDisplacement  = errors.New("not a diagonal step or jump")
)

type MoveResult struct {
	Legal    bool
	Captured *entity.Position
}

// ValidateMove - decides whether mover may move the piece at (fromRow, fromCol) to (toRow, toCol). It never mutates the board.
func ValidateMove(board *entity.Board, fromRow, fromCol, toRow, toCol int, mover entity.Color) MoveResult {
	captured, err := validateMove(board, fromRow, fromCol, toRow, toCol, mover)
	if err != nil {
		return MoveResult{}
	}

	return MoveResult{Legal: true, Captured: captured}
}

// validateMove - same as ValidateMove but tells why a move is illegal.
func validateMove(board *entity.Board, fromRow, fromCol, toRow, toCol int, mover entity.Color) (*entity.Position, error) {
	if !entity.InBounds(toRow, toCol) {
		return nil, fmt.Errorf("%w: %w", apperror.ErrIllegalMove, ErrOutOfBounds)
	}

	if !board.At(toRow, toCol).IsEmpty() {
		return nil, fmt.Errorf("%w: %w", apperror.ErrIllegalMove, ErrCellOccupied)
	}

	piece := board.At(fromRow, fromCol)
	if piece.IsEmpty() || piece.Color != mover {
		return nil, fmt.Errorf("%w: %w", apperror.ErrIllegalMove, ErrNotOwnPiece)
	}

	rowDiff := toRow - fromRow
	colDiff := toCol - fromCol

	switch {
	case abs(rowDiff) == 1 && abs(colDiff) == 1:
		if !canMoveTowards(piece, rowDiff) {
			return nil, fmt.Errorf("%w: %w", apperror.ErrIllegalMove, ErrWrongDirection)
		}

		return nil, nil
	case abs(rowDiff) == 2 && abs(colDiff) == 2:
		mid := entity.Position{Row: fromRow + rowDiff/2, Col: fromCol + colDiff/2}

		jumped := board.At(mid.Row, mid.Col)
		if jumped.IsEmpty() || jumped.Color == mover {
			return nil, fmt.Errorf("%w: %w", apperror.ErrIllegalMove, ErrNothingToCapture)
		}

		if !canMoveTowards(piece, rowDiff) {
			return nil, fmt.Errorf("%w: %w", apperror.ErrIllegalMove, ErrWrongDirection)
		}

		return &mid, nil
	default:
		return nil, fmt.Errorf("%w: %w", apperror.ErrIllegalMove, ErrBadDisplacement)
	}
}

// canMoveTowards - kings go both ways, men only forward.
func canMoveTowards(piece entity.Cell, rowDiff int) bool {
	if piece.King {
		return true
	}

	forward := piece.Color.Forward()
	return forward != 0 && rowDiff*forward > 0
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
