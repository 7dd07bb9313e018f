package engine

import (
	"errors"
	"fmt"

	"github.com/yourusername/tlengine/internal/positionid"
)

// ErrIllegalMove is returned when a requested move is not available
var ErrIllegalMove = errors.New("illegal move")

// WinningLine returns the index into Lines of the first completed line.
func WinningLine(b Board) (int, bool) {
	for i, l := range Lines {
		if v := b[l[0]]; v != Empty && v == b[l[1]] && v == b[l[2]] {
			return i, true
		}
	}
	return -1, false
}

// IsTerminal reports whether the game is over: some line holds three
// equal non-empty cells.
func IsTerminal(b Board) bool {
	_, ok := WinningLine(b)
	return ok
}

// LegalCells returns the cells that can still be raised, in increasing
// order. It is empty once the game is over.
func LegalCells(b Board) []int {
	if IsTerminal(b) {
		return nil
	}
	cells := make([]int, 0, NumCells)
	for i, v := range b {
		if v < MaxCell {
			cells = append(cells, i)
		}
	}
	return cells
}

// GenerateMoves returns every position reachable in one move, ordered by
// the cell that changed. A finished game has no moves.
//
// Moves are represented directly as the resulting positions.
func GenerateMoves(b Board) []Board {
	mustCheck(b)
	return generateMoves(b)
}

func generateMoves(b Board) []Board {
	if IsTerminal(b) {
		return nil
	}
	moves := make([]Board, 0, NumCells)
	for i, v := range b {
		if v < MaxCell {
			next := b
			next[i]++
			moves = append(moves, next)
		}
	}
	return moves
}

// Apply raises one cell and returns the new position.
func Apply(b Board, cell int) (Board, error) {
	if cell < 0 || cell >= NumCells {
		return b, fmt.Errorf("%w: no cell %d", ErrIllegalMove, cell)
	}
	if IsTerminal(b) {
		return b, fmt.Errorf("%w: game is over", ErrIllegalMove)
	}
	if b[cell] >= MaxCell {
		return b, fmt.Errorf("%w: %s is already red", ErrIllegalMove, positionid.CellName(cell))
	}
	b[cell]++
	return b, nil
}

// ChangedCell returns the cell that differs between a position and one of
// its successors, or -1 if the boards are not one move apart.
func ChangedCell(from, to Board) int {
	cell := -1
	for i := range from {
		switch {
		case from[i] == to[i]:
		case to[i] == from[i]+1 && cell < 0:
			cell = i
		default:
			return -1
		}
	}
	return cell
}
