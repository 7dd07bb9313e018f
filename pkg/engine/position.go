// Package engine provides the public API for the Traffic Lights engine.
package engine

import (
	"fmt"

	"github.com/yourusername/tlengine/internal/positionid"
)

// Board holds the 12 cells of a 3x4 board, indexed row-major:
//
//	 0  1  2  3
//	 4  5  6  7
//	 8  9 10 11
//
// Boards are values; moves return a new board.
type Board [NumCells]uint8

// Board geometry and cell values
const (
	NumCells = positionid.NumCells
	Rows     = positionid.Rows
	Cols     = positionid.Cols

	Empty  uint8 = 0
	Green  uint8 = 1
	Yellow uint8 = 2
	Red    uint8 = 3

	MaxCell = Red
)

// MaxPlies bounds the length of any game: every move raises one cell by
// one and no cell passes MaxCell.
const MaxPlies = NumCells * int(MaxCell)

// Lines are the 14 three-in-a-row patterns: two windows in each row,
// every column, and the four diagonals.
var Lines = [14][3]int{
	{0, 1, 2}, {1, 2, 3},
	{4, 5, 6}, {5, 6, 7},
	{8, 9, 10}, {9, 10, 11},
	{0, 4, 8}, {1, 5, 9}, {2, 6, 10}, {3, 7, 11},
	{0, 5, 10}, {1, 6, 11}, {2, 5, 8}, {3, 6, 9},
}

// EmptyBoard returns the starting position
func EmptyBoard() Board {
	return Board{}
}

// CheckBoard returns an error if any cell is out of range
func CheckBoard(b Board) error {
	if positionid.CheckPosition(positionid.Board(b)) {
		return nil
	}
	for i, v := range b {
		if v > MaxCell {
			return fmt.Errorf("cell %s has value %d (max %d)", positionid.CellName(i), v, MaxCell)
		}
	}
	return nil
}

// mustCheck panics on boards the engine cannot have produced.
func mustCheck(b Board) {
	if err := CheckBoard(b); err != nil {
		panic("engine: invalid board: " + err.Error())
	}
}

// Sum returns the total of all cell values. It grows by one per move.
func (b Board) Sum() int {
	s := 0
	for _, v := range b {
		s += int(v)
	}
	return s
}

// PositionID returns the 4-character position ID of the board
func (b Board) PositionID() string {
	return positionid.PositionID(positionid.Board(b))
}

// String renders the board as three rows of digits.
func (b Board) String() string {
	buf := make([]byte, 0, NumCells+Rows-1)
	for i, v := range b {
		if i > 0 && i%Cols == 0 {
			buf = append(buf, '/')
		}
		buf = append(buf, '0'+v)
	}
	return string(buf)
}

// Fingerprint returns the symmetry-canonical cache key of the board
func Fingerprint(b Board) positionid.Fingerprint {
	return positionid.Canonical(positionid.Board(b))
}

// ParseBoard accepts either a position ID or 12 digits (row separators
// '/' allowed), e.g. "0120/0003/1000".
func ParseBoard(s string) (Board, error) {
	if len(s) == positionid.PositionIDLength {
		board, err := positionid.BoardFromPositionID(s)
		if err != nil {
			return Board{}, err
		}
		return Board(board), nil
	}

	var b Board
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '/' {
			continue
		}
		if c < '0' || c > '0'+MaxCell {
			return Board{}, fmt.Errorf("invalid cell %q in board %q", c, s)
		}
		if n == NumCells {
			return Board{}, fmt.Errorf("board %q has more than %d cells", s, NumCells)
		}
		b[n] = c - '0'
		n++
	}
	if n != NumCells {
		return Board{}, fmt.Errorf("board %q has %d cells, want %d", s, n, NumCells)
	}
	return b, nil
}
