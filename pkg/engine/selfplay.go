package engine

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/stat"
)

// SelfPlayOptions controls a computer-vs-computer run
type SelfPlayOptions struct {
	Games       int   // Number of games to play (default 100)
	FirstDepth  int   // Depth budget of the player moving first
	SecondDepth int   // Depth budget of the player moving second
	Seed        int64 // RNG seed (0 = random)
	Workers     int   // Number of parallel workers (0 = GOMAXPROCS)
	Preload     bool  // Solve the empty board once and seed every worker's caches
	KeepGames   bool  // Return the move list of every game
}

// PlayedGame is one finished self-play game
type PlayedGame struct {
	FirstDepth  int   // Search depth of the player moving first
	SecondDepth int   // Search depth of the player moving second
	Moves       []int // Cells raised, in order
	Winner      int   // 0 = first player, 1 = second player
}

// SelfPlayResult summarises a self-play run
type SelfPlayResult struct {
	GamesPlayed int
	FirstWins   int
	SecondWins  int

	// First player's score (1 win, 0 loss)
	FirstWinRate   float64
	FirstWinStdDev float64
	FirstWinCI     float64 // 95% confidence interval

	// Game length in plies
	MeanPlies   float64
	PliesStdDev float64
	MinPlies    int
	MaxPlies    int

	Games []PlayedGame // Only with KeepGames, in game order
}

// DefaultSelfPlayOptions returns sensible defaults
func DefaultSelfPlayOptions() SelfPlayOptions {
	return SelfPlayOptions{
		Games:       100,
		FirstDepth:  3,
		SecondDepth: 3,
		Seed:        0,
		Workers:     0,
		Preload:     true,
	}
}

// PlayGame plays one game from the empty board, first moving first, and
// returns the cells played and the winner (0 = first, 1 = second).
func PlayGame(first, second *Assistant) (PlayedGame, error) {
	players := [2]*Assistant{first, second}
	board := EmptyBoard()
	game := PlayedGame{
		FirstDepth:  first.Depth(),
		SecondDepth: second.Depth(),
		Moves:       make([]int, 0, MaxPlies),
	}

	for turn := 0; ; turn ^= 1 {
		_, m, err := players[turn].Choose(board)
		if errors.Is(err, ErrGameOver) {
			// Whoever moved last completed a line.
			game.Winner = turn ^ 1
			return game, nil
		}
		if err != nil {
			return game, err
		}
		if len(game.Moves) == MaxPlies {
			return game, fmt.Errorf("game exceeded %d plies", MaxPlies)
		}
		game.Moves = append(game.Moves, m.Cell)
		board = m.Board
	}
}

// SelfPlay plays computer-vs-computer games from the empty board. Each
// worker owns its assistants and caches; with Preload they all start from
// a copy of one solved cache. Results are reproducible for a fixed Seed
// and Workers.
func SelfPlay(opts SelfPlayOptions) (*SelfPlayResult, error) {
	if opts.Games <= 0 {
		opts.Games = 100
	}
	if opts.FirstDepth < 0 || opts.SecondDepth < 0 {
		return nil, fmt.Errorf("depths must be >= 0, got %d and %d", opts.FirstDepth, opts.SecondDepth)
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Workers > opts.Games {
		opts.Workers = opts.Games
	}
	if opts.Seed == 0 {
		opts.Seed = rand.Int63()
	}

	var firstSeed, secondSeed *Cache
	if opts.Preload {
		firstSeed, secondSeed = preloadPair(opts.FirstDepth, opts.SecondDepth)
	}

	games := make([]PlayedGame, opts.Games)
	errs := make([]error, opts.Workers)

	// Distribute games across workers
	gamesPerWorker := opts.Games / opts.Workers
	extraGames := opts.Games % opts.Workers

	var wg sync.WaitGroup
	start := 0
	for i := 0; i < opts.Workers; i++ {
		n := gamesPerWorker
		if i < extraGames {
			n++
		}
		wg.Add(1)
		go func(worker int, slots []PlayedGame) {
			defer wg.Done()
			errs[worker] = selfPlayWorker(opts, opts.Seed+int64(worker)*1000000,
				firstSeed, secondSeed, slots)
		}(i, games[start:start+n])
		start += n
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	result := summarise(games)
	if opts.KeepGames {
		result.Games = games
	}
	return result, nil
}

// preloadPair solves the empty board at both depths, sharing the shallower
// results, and returns one cache per depth.
func preloadPair(firstDepth, secondDepth int) (first, second *Cache) {
	first, second = NewCache(), NewCache()
	a := &Assistant{depth: firstDepth, cache: first}
	b := &Assistant{depth: secondDepth, cache: second}
	Preload(a, b)
	return first, second
}

// selfPlayWorker plays len(slots) games with its own pair of assistants.
func selfPlayWorker(opts SelfPlayOptions, seed int64, firstSeed, secondSeed *Cache, slots []PlayedGame) error {
	rng := rand.New(rand.NewSource(seed))

	first, err := NewAssistant(AssistantOptions{
		Role:  RoleComputer,
		Depth: opts.FirstDepth,
		Cache: firstSeed.Clone(),
		Rand:  rng,
	})
	if err != nil {
		return err
	}
	second, err := NewAssistant(AssistantOptions{
		Role:  RoleComputer,
		Depth: opts.SecondDepth,
		Cache: secondSeed.Clone(),
		Rand:  rng,
	})
	if err != nil {
		return err
	}

	for i := range slots {
		g, err := PlayGame(first, second)
		if err != nil {
			return fmt.Errorf("game %d: %w", i, err)
		}
		slots[i] = g
	}
	return nil
}

// summarise computes the run statistics
func summarise(games []PlayedGame) *SelfPlayResult {
	result := &SelfPlayResult{GamesPlayed: len(games)}
	if len(games) == 0 {
		return result
	}

	scores := make([]float64, len(games))
	plies := make([]float64, len(games))
	result.MinPlies = math.MaxInt
	for i, g := range games {
		if g.Winner == 0 {
			result.FirstWins++
			scores[i] = 1
		} else {
			result.SecondWins++
		}
		n := len(g.Moves)
		plies[i] = float64(n)
		result.MinPlies = min(result.MinPlies, n)
		result.MaxPlies = max(result.MaxPlies, n)
	}

	result.FirstWinRate = stat.Mean(scores, nil)
	result.MeanPlies = stat.Mean(plies, nil)

	// Calculate standard deviations
	if n := float64(len(games)); n > 1 {
		result.FirstWinStdDev = stat.StdDev(scores, nil)
		result.FirstWinCI = 1.96 * result.FirstWinStdDev / math.Sqrt(n)
		result.PliesStdDev = stat.StdDev(plies, nil)
	}

	return result
}
