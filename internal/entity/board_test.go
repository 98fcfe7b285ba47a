package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	// When: a new board is created
	board := NewBoard()

	// Then: each side has 12 men on dark squares only
	assert.Equal(t, 12, board.CountPieces(ColorA))
	assert.Equal(t, 12, board.CountPieces(ColorB))

	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			cell := board[row][col]

			if !IsDarkSquare(row, col) {
				assert.True(t, cell.IsEmpty(), "light square %d,%d must be empty", row, col)
				continue
			}

			assert.False(t, cell.King)

			switch {
			case row <= 2:
				assert.Equal(t, ColorA, cell.Color)
			case row >= 5:
				assert.Equal(t, ColorB, cell.Color)
			default:
				assert.True(t, cell.IsEmpty())
			}
		}
	}
}

func TestBoard_At(t *testing.T) {
	board := NewBoard()

	t.Run("Returns the piece inside the board", func(t *testing.T) {
		assert.Equal(t, Cell{Color: ColorA}, board.At(0, 1))
	})

	t.Run("Returns an empty cell outside the board", func(t *testing.T) {
		assert.True(t, board.At(-1, 0).IsEmpty())
		assert.True(t, board.At(0, 8).IsEmpty())
	})
}

func TestBoard_Winner(t *testing.T) {
	t.Run("No winner while both sides have pieces", func(t *testing.T) {
		board := NewBoard()

		assert.Equal(t, ColorNone, board.Winner())
	})

	t.Run("A wins when B has no pieces", func(t *testing.T) {
		// Given: a board with a single A piece
		var board Board
		board[3][2] = Cell{Color: ColorA}

		// Then: A is the winner
		assert.Equal(t, ColorA, board.Winner())
	})

	t.Run("B wins when A has no pieces", func(t *testing.T) {
		var board Board
		board[4][3] = Cell{Color: ColorB, King: true}

		assert.Equal(t, ColorB, board.Winner())
	})
}

func TestColor(t *testing.T) {
	assert.Equal(t, ColorB, ColorA.Opponent())
	assert.Equal(t, ColorA, ColorB.Opponent())
	assert.Equal(t, ColorNone, ColorNone.Opponent())

	assert.Equal(t, 1, ColorA.Forward())
	assert.Equal(t, -1, ColorB.Forward())

	assert.Equal(t, 7, ColorA.BackRank())
	assert.Equal(t, 0, ColorB.BackRank())
}

func TestCell_JSON(t *testing.T) {
	t.Run("Empty cell is encoded as null", func(t *testing.T) {
		data, err := json.Marshal(Cell{})
		require.NoError(t, err)

		assert.JSONEq(t, `null`, string(data))
	})

	t.Run("Board round trips through JSON", func(t *testing.T) {
		// Given: a board with a king on it
		board := NewBoard()
		board[7][0] = Cell{Color: ColorA, King: true}

		// When: it is encoded and decoded
		data, err := json.Marshal(board)
		require.NoError(t, err)

		var decoded Board
		require.NoError(t, json.Unmarshal(data, &decoded))

		// Then: nothing is lost
		assert.Equal(t, board, decoded)
	})
}
