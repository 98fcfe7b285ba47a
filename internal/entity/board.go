package entity

import (
	"encoding/json"
	"fmt"
)

const (
	BoardSize = 8

	// rows filled with pieces from each side at the start of a game.
	startingRows = 3
)

type Color string

const (
	ColorNone Color = ""
	ColorA    Color = "A"
	ColorB    Color = "B"
)

// Opponent - returns the other side, ColorNone stays ColorNone.
func (that Color) Opponent() Color {
	switch that {
	case ColorA:
		return ColorB
	case ColorB:
		return ColorA
	default:
		return ColorNone
	}
}

// Forward - row direction a non-king piece of this color moves in.
func (that Color) Forward() int {
	switch that {
	case ColorA:
		return 1
	case ColorB:
		return -1
	default:
		return 0
	}
}

// BackRank - the row where a piece of this color is promoted.
func (that Color) BackRank() int {
	if that == ColorA {
		return BoardSize - 1
	}
	return 0
}

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Position) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// Cell is empty when Color is ColorNone.
type Cell struct {
	Color Color `json:"color"`
	King  bool  `json:"king"`
}

func (that Cell) IsEmpty() bool {
	return that.Color == ColorNone
}

// MarshalJSON - empty cells are encoded as null.
func (that Cell) MarshalJSON() ([]byte, error) {
	if that.IsEmpty() {
		return []byte("null"), nil
	}

	type piece Cell
	return json.Marshal(piece(that))
}

func (that *Cell) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*that = Cell{}
		return nil
	}

	type piece Cell
	var p piece
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("failed to unmarshal cell: %w", err)
	}

	*that = Cell(p)
	return nil
}

// Board is indexed as Board[row][col]. It is a plain array so assignment copies it.
type Board [BoardSize][BoardSize]Cell

// NewBoard - initial layout: color A on the dark squares of rows 0-2, color B on rows 5-7.
func NewBoard() Board {
	var board Board

	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if !IsDarkSquare(row, col) {
				continue
			}

			switch {
			case row < startingRows:
				board[row][col] = Cell{Color: ColorA}
			case row >= BoardSize-startingRows:
				board[row][col] = Cell{Color: ColorB}
			}
		}
	}

	return board
}

func InBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

func IsDarkSquare(row, col int) bool {
	return (row+col)%2 == 1
}

// At - returns the cell, or an empty cell when out of bounds.
func (that *Board) At(row, col int) Cell {
	if !InBounds(row, col) {
		return Cell{}
	}
	return that[row][col]
}

func (that *Board) CountPieces(color Color) int {
	count := 0
	for row := range that {
		for col := range that[row] {
			if that[row][col].Color == color {
				count++
			}
		}
	}
	return count
}

// Winner - the side whose opponent has no pieces left, ColorNone while both sides still have pieces.
func (that *Board) Winner() Color {
	switch {
	case that.CountPieces(ColorA) == 0:
		return ColorB
	case that.CountPieces(ColorB) == 0:
		return ColorA
	default:
		return ColorNone
	}
}
