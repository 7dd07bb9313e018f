// Package positionid implements position encoding for Traffic Lights boards.
//
// A board packs into 24 bits (2 bits per cell). The packed key is the basis
// for both the symmetry-canonical fingerprint used as a cache key and the
// 4-character base64 position ID used on the command line.
package positionid

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// NumCells is the number of cells on the board
	NumCells = 12
	// Rows and Cols give the grid shape (row-major indexing)
	Rows = 3
	Cols = 4
	// MaxCell is the highest cell value (red)
	MaxCell = 3
	// PositionIDLength is the length of a position ID string
	PositionIDLength = 4
)

// Base64 alphabet used for position ID encoding
const base64Chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// Board represents a Traffic Lights position, cells indexed row-major.
type Board [NumCells]uint8

// Key is the packed 24-bit form of a board in a fixed orientation.
type Key uint32

// Fingerprint identifies a board up to rotation and reflection.
type Fingerprint uint32

// Symmetry is an index permutation: cell e of the transformed board is
// cell Symmetry[e] of the original.
type Symmetry [NumCells]int

// Symmetries lists the transforms of a 3x4 rectangle that keep the grid:
// identity, 180° rotation, top-bottom flip and left-right flip.
var Symmetries = [4]Symmetry{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
	{11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0},
	{8, 9, 10, 11, 4, 5, 6, 7, 0, 1, 2, 3},
	{3, 2, 1, 0, 7, 6, 5, 4, 11, 10, 9, 8},
}

// MakeKey packs a board, cell i at bits 2i..2i+1.
func MakeKey(board Board) Key {
	var key Key
	for i, v := range board {
		key |= Key(v&0x3) << (2 * i)
	}
	return key
}

// BoardFromKey unpacks a key made by MakeKey.
func BoardFromKey(key Key) Board {
	var board Board
	for i := range board {
		board[i] = uint8(key>>(2*i)) & 0x3
	}
	return board
}

// Transform returns the board seen through a symmetry.
func Transform(board Board, sym Symmetry) Board {
	var out Board
	for e, i := range sym {
		out[e] = board[i]
	}
	return out
}

// Canonical returns the smallest packed key over all board symmetries.
// Boards that are rotations or reflections of each other share it.
func Canonical(board Board) Fingerprint {
	best := ^uint32(0)
	for s := range Symmetries {
		var k uint32
		for e, i := range Symmetries[s] {
			k |= uint32(board[i]) << (2 * e)
		}
		if k < best {
			best = k
		}
	}
	return Fingerprint(best)
}

// CheckPosition reports whether every cell is within range.
func CheckPosition(board Board) bool {
	for _, v := range board {
		if v > MaxCell {
			return false
		}
	}
	return true
}

// ErrInvalidPositionID is returned when a position ID is invalid
var ErrInvalidPositionID = errors.New("invalid position ID")

// PositionID generates a base64 position ID string from a board
func PositionID(board Board) string {
	key := MakeKey(board)
	var result [PositionIDLength]byte
	for i := range result {
		result[i] = base64Chars[(key>>(6*i))&0x3F]
	}
	return string(result[:])
}

// BoardFromPositionID decodes a base64 position ID string to a board
func BoardFromPositionID(posID string) (Board, error) {
	if len(posID) != PositionIDLength {
		return Board{}, fmt.Errorf("%w: %q has length %d", ErrInvalidPositionID, posID, len(posID))
	}

	var key Key
	for i := 0; i < PositionIDLength; i++ {
		idx := strings.IndexByte(base64Chars, posID[i])
		if idx < 0 {
			return Board{}, fmt.Errorf("%w: bad character %q", ErrInvalidPositionID, posID[i])
		}
		key |= Key(idx) << (6 * i)
	}

	return BoardFromKey(key), nil
}

// ErrInvalidCellName is returned when a cell name cannot be parsed
var ErrInvalidCellName = errors.New("invalid cell name")

// CellName returns the display name of a cell: row letter then column digit.
func CellName(cell int) string {
	if cell < 0 || cell >= NumCells {
		return "??"
	}
	return string([]byte{'A' + byte(cell/Cols), '1' + byte(cell%Cols)})
}

// ParseCellName converts a name such as "b3" to a cell index.
// Only the first two characters are significant.
func ParseCellName(name string) (int, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if len(name) < 2 {
		return -1, fmt.Errorf("%w: %q", ErrInvalidCellName, name)
	}
	row := int(name[0]) - 'A'
	col := int(name[1]) - '1'
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return -1, fmt.Errorf("%w: %q", ErrInvalidCellName, name)
	}
	return row*Cols + col, nil
}
