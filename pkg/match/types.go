// Package match provides game records for Traffic Lights: games identified
// by UUID, replay validation, and a plain-text record format.
package match

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/yourusername/tlengine/internal/positionid"
	"github.com/yourusername/tlengine/pkg/engine"
)

// Match represents a series of games between two players.
type Match struct {
	// Match metadata
	Player1 string  // Name of the player moving first
	Player2 string  // Name of the player moving second
	Date    string  // Match date (YYYY-MM-DD format)
	Event   string  // Event name
	Comment string  // General match comments
	Games   []*Game // List of games in the match
}

// Game represents a single game within a match.
type Game struct {
	Number      int       // Game number (1-indexed)
	ID          uuid.UUID // Unique game identifier
	FirstDepth  int       // Search depth of player 1
	SecondDepth int       // Search depth of player 2
	Moves       []int     // Cells raised, in order
	Winner      int       // 0 = player 1, 1 = player 2, -1 = not finished
	board       engine.Board
}

// NewMatch creates a new empty match.
func NewMatch(player1, player2 string) *Match {
	return &Match{
		Player1: player1,
		Player2: player2,
		Games:   make([]*Game, 0),
	}
}

// NewGame creates a new game on the empty board with a fresh ID.
func NewGame(number int) *Game {
	return &Game{
		Number: number,
		ID:     uuid.New(),
		Moves:  make([]int, 0, engine.MaxPlies),
		Winner: -1,
	}
}

// AddGame appends a new game to the match and returns it.
func (m *Match) AddGame() *Game {
	g := NewGame(len(m.Games) + 1)
	m.Games = append(m.Games, g)
	return g
}

// AddMove plays a cell for the side to move. Illegal moves are rejected
// and leave the game unchanged.
func (g *Game) AddMove(cell int) error {
	next, err := engine.Apply(g.board, cell)
	if err != nil {
		return fmt.Errorf("game %d move %d (%s): %w",
			g.Number, len(g.Moves)+1, positionid.CellName(cell), err)
	}
	g.board = next
	g.Moves = append(g.Moves, cell)
	if engine.IsTerminal(next) {
		g.Winner = (len(g.Moves) + 1) % 2
	}
	return nil
}

// Final returns the position after the last recorded move.
func (g *Game) Final() engine.Board {
	return g.board
}

// Turn returns the side to move: 0 = player 1, 1 = player 2.
func (g *Game) Turn() int {
	return len(g.Moves) % 2
}

// Finished reports whether a line has been completed.
func (g *Game) Finished() bool {
	return g.Winner >= 0
}

// Boards replays the game and returns every position, starting with the
// empty board. Replay stops at the first illegal move.
func (g *Game) Boards() []engine.Board {
	boards := make([]engine.Board, 0, len(g.Moves)+1)
	b := engine.EmptyBoard()
	boards = append(boards, b)
	for _, cell := range g.Moves {
		next, err := engine.Apply(b, cell)
		if err != nil {
			break
		}
		b = next
		boards = append(boards, b)
	}
	return boards
}

// FromPlayed records a finished self-play game, checking every move.
func FromPlayed(number int, pg engine.PlayedGame) (*Game, error) {
	g := NewGame(number)
	g.FirstDepth = pg.FirstDepth
	g.SecondDepth = pg.SecondDepth
	for _, cell := range pg.Moves {
		if err := g.AddMove(cell); err != nil {
			return nil, err
		}
	}
	if g.Winner != pg.Winner {
		return nil, fmt.Errorf("game %d: replay winner %d, recorded %d", number, g.Winner, pg.Winner)
	}
	return g, nil
}

// ResultString returns "1-0", "0-1" or "*" for an unfinished game.
func (g *Game) ResultString() string {
	switch g.Winner {
	case 0:
		return "1-0"
	case 1:
		return "0-1"
	}
	return "*"
}
