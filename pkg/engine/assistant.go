package engine

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/yourusername/tlengine/internal/positionid"
)

// Role tells an assistant whether it plays or only advises.
type Role int

const (
	RoleComputer Role = iota // chooses its own moves
	RoleHuman                // classifies moves; the move comes from outside
)

// String returns the display name of the role.
func (r Role) String() string {
	switch r {
	case RoleComputer:
		return "computer"
	case RoleHuman:
		return "human"
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// MoveClass rates a move from the point of view of the player making it.
type MoveClass int

const (
	MoveLosing  MoveClass = iota // opponent can force a win
	MoveUnknown                  // not resolved within the depth budget
	MoveWinning                  // mover can force a win
	MoveIllegal                  // no move on this cell
)

// String returns the display name of the class.
func (c MoveClass) String() string {
	switch c {
	case MoveLosing:
		return "Losing"
	case MoveUnknown:
		return "Unknown"
	case MoveWinning:
		return "Winning"
	case MoveIllegal:
		return "Illegal"
	}
	return fmt.Sprintf("MoveClass(%d)", int(c))
}

// Abbr returns the one-letter board annotation (L, ?, W or blank).
func (c MoveClass) Abbr() string {
	switch c {
	case MoveLosing:
		return "L"
	case MoveUnknown:
		return "?"
	case MoveWinning:
		return "W"
	}
	return " "
}

// classify rates a move whose value is seen from the mover's side.
func classify(v Value) MoveClass {
	switch v {
	case NextWins:
		return MoveWinning
	case PrevWins:
		return MoveLosing
	}
	return MoveUnknown
}

// MoveWithValue is a legal move together with its classification
type MoveWithValue struct {
	Cell  int       // Cell raised by the move
	Board Board     // Resulting position
	Value Value     // Value for the mover: Solve(Board).Negate()
	Class MoveClass // Bucket derived from Value
}

// Name returns the cell name of the move, e.g. "B3".
func (m MoveWithValue) Name() string {
	return positionid.CellName(m.Cell)
}

// Analysis classifies every legal move of a position
type Analysis struct {
	Board        Board
	Moves        []MoveWithValue      // All legal moves in cell order
	Cells        [NumCells]MoveClass  // Per-cell class, MoveIllegal where no move
	WinningCells []int
	UnknownCells []int
	LosingCells  []int
}

// NumMoves returns the number of legal moves
func (an *Analysis) NumMoves() int {
	return len(an.Moves)
}

// Move returns the analysed move on a cell.
func (an *Analysis) Move(cell int) (MoveWithValue, bool) {
	for _, m := range an.Moves {
		if m.Cell == cell {
			return m, true
		}
	}
	return MoveWithValue{}, false
}

// Rand is the random source used for tie-breaking. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Pick applies the computer policy: a winning move if any, else an
// unresolved one, else a losing one, chosen uniformly within the bucket.
func (an *Analysis) Pick(r Rand) (MoveWithValue, bool) {
	for _, bucket := range [][]int{an.WinningCells, an.UnknownCells, an.LosingCells} {
		if len(bucket) == 0 {
			continue
		}
		return an.Move(bucket[r.Intn(len(bucket))])
	}
	return MoveWithValue{}, false
}

// MoveSource supplies the moves of a human-guided assistant.
type MoveSource interface {
	SelectMove(an *Analysis) (cell int, err error)
}

// MoveSourceFunc adapts a function to MoveSource
type MoveSourceFunc func(an *Analysis) (int, error)

// SelectMove calls f(an).
func (f MoveSourceFunc) SelectMove(an *Analysis) (int, error) {
	return f(an)
}

var (
	// ErrGameOver is returned when asked to move in a finished game
	ErrGameOver = errors.New("game is over")
	// ErrNoMoveSource is returned when a human assistant has nobody to ask
	ErrNoMoveSource = errors.New("no move source")
)

// AssistantOptions configures an assistant
type AssistantOptions struct {
	Role  Role   // Computer or human helper
	Depth int    // Search depth budget (0 = no lookahead, InfiniteDepth = exact)
	Cache *Cache // Transposition cache (nil = new empty cache)
	Rand  Rand   // Tie-break source (nil = randomly seeded)
}

// DefaultAssistantOptions returns the settings of the classic game
func DefaultAssistantOptions() AssistantOptions {
	return AssistantOptions{
		Role:  RoleComputer,
		Depth: 3,
	}
}

// Assistant pairs a depth budget with the cache it owns. It classifies
// moves and, for the computer role, chooses them. Not safe for concurrent
// use.
type Assistant struct {
	role  Role
	depth int
	cache *Cache
	rng   Rand
}

// NewAssistant creates an assistant with the given options
func NewAssistant(opts AssistantOptions) (*Assistant, error) {
	if opts.Role != RoleComputer && opts.Role != RoleHuman {
		return nil, fmt.Errorf("unknown role %d", int(opts.Role))
	}
	if opts.Depth < 0 {
		return nil, fmt.Errorf("depth must be >= 0, got %d", opts.Depth)
	}
	if opts.Cache == nil {
		opts.Cache = NewCache()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Assistant{
		role:  opts.Role,
		depth: opts.Depth,
		cache: opts.Cache,
		rng:   opts.Rand,
	}, nil
}

// Role returns the assistant's role
func (a *Assistant) Role() Role { return a.role }

// Depth returns the search depth budget
func (a *Assistant) Depth() int { return a.depth }

// Cache returns the assistant's transposition cache
func (a *Assistant) Cache() *Cache { return a.cache }

// Solve returns the value of a position with the assistant's budget and cache.
func (a *Assistant) Solve(b Board) Value {
	return Solve(b, a.depth, a.cache)
}

// Analyze classifies every legal move of a position.
func (a *Assistant) Analyze(b Board) *Analysis {
	mustCheck(b)

	an := &Analysis{Board: b}
	for i := range an.Cells {
		an.Cells[i] = MoveIllegal
	}
	if IsTerminal(b) {
		return an
	}

	for i, v := range b {
		if v >= MaxCell {
			continue
		}
		next := b
		next[i]++
		m := MoveWithValue{
			Cell:  i,
			Board: next,
			Value: solve(next, a.depth, a.cache).Negate(),
		}
		m.Class = classify(m.Value)
		an.Moves = append(an.Moves, m)
		an.Cells[i] = m.Class

		switch m.Class {
		case MoveWinning:
			an.WinningCells = append(an.WinningCells, i)
		case MoveLosing:
			an.LosingCells = append(an.LosingCells, i)
		default:
			an.UnknownCells = append(an.UnknownCells, i)
		}
	}

	return an
}

// Choose analyses the position and picks a move by the computer policy.
func (a *Assistant) Choose(b Board) (*Analysis, MoveWithValue, error) {
	an := a.Analyze(b)
	m, ok := an.Pick(a.rng)
	if !ok {
		return an, MoveWithValue{}, ErrGameOver
	}
	return an, m, nil
}

// ClassifyAndChoose analyses the position and returns the next one. A
// computer assistant chooses by itself and ignores src; a human assistant
// takes the cell from src and only checks that it is legal.
func (a *Assistant) ClassifyAndChoose(b Board, src MoveSource) (*Analysis, Board, error) {
	if a.role == RoleComputer {
		an, m, err := a.Choose(b)
		if err != nil {
			return an, b, err
		}
		return an, m.Board, nil
	}

	an := a.Analyze(b)
	if an.NumMoves() == 0 {
		return an, b, ErrGameOver
	}
	if src == nil {
		return an, b, ErrNoMoveSource
	}
	cell, err := src.SelectMove(an)
	if err != nil {
		return an, b, fmt.Errorf("selecting move: %w", err)
	}
	m, ok := an.Move(cell)
	if !ok {
		return an, b, fmt.Errorf("%w: %s", ErrIllegalMove, positionid.CellName(cell))
	}
	return an, m.Board, nil
}

// AssistantsOptions configures the computer/human pair of a game
type AssistantsOptions struct {
	ComputerDepth int   // Computer search depth
	HumanDepth    int   // Human helper search depth
	Preload       bool  // Solve the empty board up front
	Seed          int64 // Tie-break seed (0 = random)
}

// NewAssistants creates the computer player and the human helper. With
// Preload set, the empty board is solved at the smaller depth first and
// those results seed the other cache before it solves at its own depth.
func NewAssistants(opts AssistantsOptions) (computer, human *Assistant, err error) {
	if opts.Seed == 0 {
		opts.Seed = rand.Int63()
	}

	computer, err = NewAssistant(AssistantOptions{
		Role:  RoleComputer,
		Depth: opts.ComputerDepth,
		Rand:  rand.New(rand.NewSource(opts.Seed)),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("computer assistant: %w", err)
	}
	human, err = NewAssistant(AssistantOptions{
		Role:  RoleHuman,
		Depth: opts.HumanDepth,
		Rand:  rand.New(rand.NewSource(opts.Seed + 1)),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("human assistant: %w", err)
	}

	if opts.Preload {
		log.Printf("Loading...")
		start := time.Now()
		Preload(computer, human)
		log.Printf("Game loaded in %.3f seconds (%d positions)",
			time.Since(start).Seconds(), computer.cache.Len())
	}

	return computer, human, nil
}

// Preload solves the empty board for both assistants, shallowest first,
// sharing the shallower results with the deeper one.
func Preload(a, b *Assistant) {
	if b.depth < a.depth {
		a, b = b, a
	}
	a.Solve(EmptyBoard())
	b.cache.Merge(a.cache)
	b.Solve(EmptyBoard())
}
