// tlengine - A Traffic Lights solver and analysis engine
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/yourusername/tlengine/internal/positionid"
	"github.com/yourusername/tlengine/pkg/engine"
	"github.com/yourusername/tlengine/pkg/match"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "solve":
		cmdSolve(args)
	case "analyze":
		cmdAnalyze(args)
	case "moves":
		cmdMoves(args)
	case "selfplay":
		cmdSelfPlay(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tlengine - Traffic Lights Solver

Usage: tlengine <command> [options]

Commands:
  solve     Compute the game value of a position
  analyze   Classify every legal move of a position
  moves     List the legal moves of a position
  selfplay  Play computer-vs-computer games and report statistics

Use "tlengine <command> -h" for command-specific help.

Position Format:
  Either a 4-character position ID (e.g. "AAAA" for the empty board)
  or 12 cell values row by row, e.g. "0120/0003/1000".
  Cells: 0 empty, 1 green, 2 yellow, 3 red.`)
}

func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func positionFlags(fs *flag.FlagSet) (pos, short *string) {
	pos = fs.String("position", "", "Position ID or cell digits (default: empty board)")
	short = fs.String("p", "", "Position (short form)")
	return pos, short
}

func parsePosition(pos, short string) engine.Board {
	if pos == "" {
		pos = short
	}
	if pos == "" {
		return engine.EmptyBoard()
	}
	board, err := engine.ParseBoard(pos)
	if err != nil {
		fail("invalid position: %v", err)
	}
	return board
}

func parseDepth(depth int) int {
	if depth < 0 {
		return engine.InfiniteDepth
	}
	return depth
}

func cmdSolve(args []string) {
	fs := flag.NewFlagSet("solve", flag.ExitOnError)
	pos, short := positionFlags(fs)
	depth := fs.Int("depth", -1, "Search depth (-1 = exact)")
	fs.Parse(args)

	board := parsePosition(*pos, *short)
	cache := engine.NewCache()

	start := time.Now()
	value := engine.Solve(board, parseDepth(*depth), cache)
	elapsed := time.Since(start)

	fmt.Printf("Position: %s (%s)\n", board.PositionID(), board)
	fmt.Printf("Value:    %v\n", value)
	lookups, hits, _ := cache.Stats()
	fmt.Printf("Solved in %.3fs, %d positions cached, %d/%d cache hits\n",
		elapsed.Seconds(), cache.Len(), hits, lookups)
}

func cmdAnalyze(args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	pos, short := positionFlags(fs)
	depth := fs.Int("depth", 3, "Search depth (-1 = exact)")
	preload := fs.Bool("preload", false, "Solve the empty board first")
	seed := fs.Int64("seed", 0, "Random seed for the suggested move (0 = random)")
	fs.Parse(args)

	board := parsePosition(*pos, *short)

	computer, _, err := engine.NewAssistants(engine.AssistantsOptions{
		ComputerDepth: parseDepth(*depth),
		HumanDepth:    0,
		Preload:       *preload,
		Seed:          *seed,
	})
	if err != nil {
		fail("%v", err)
	}

	an, m, err := computer.Choose(board)
	renderAnalysis(os.Stdout, an)
	if err != nil {
		fmt.Println("\nGame over: the previous player has won.")
		return
	}

	fmt.Printf("\nWinning: %s\n", cellList(an.WinningCells))
	fmt.Printf("Unknown: %s\n", cellList(an.UnknownCells))
	fmt.Printf("Losing:  %s\n", cellList(an.LosingCells))
	fmt.Printf("\nComputer move: %s\n", m.Name())
}

func cmdMoves(args []string) {
	fs := flag.NewFlagSet("moves", flag.ExitOnError)
	pos, short := positionFlags(fs)
	fs.Parse(args)

	board := parsePosition(*pos, *short)
	moves := engine.GenerateMoves(board)
	if len(moves) == 0 {
		fmt.Println("No legal moves (game over)")
		return
	}

	fmt.Printf("%d legal moves:\n", len(moves))
	for _, m := range moves {
		cell := engine.ChangedCell(board, m)
		fmt.Printf("  %s -> %s  %s\n", positionid.CellName(cell), m.PositionID(), m)
	}
}

func cmdSelfPlay(args []string) {
	fs := flag.NewFlagSet("selfplay", flag.ExitOnError)
	games := fs.Int("games", 100, "Number of games to play")
	first := fs.Int("first", 3, "Depth of the first player (-1 = exact)")
	second := fs.Int("second", 3, "Depth of the second player (-1 = exact)")
	workers := fs.Int("workers", 0, "Number of worker goroutines (0 = auto)")
	seed := fs.Int64("seed", 0, "Random seed (0 = random)")
	preload := fs.Bool("preload", true, "Solve the empty board once before playing")
	record := fs.String("record", "", "Write the games to this file")
	fs.Parse(args)

	opts := engine.SelfPlayOptions{
		Games:       *games,
		FirstDepth:  parseDepth(*first),
		SecondDepth: parseDepth(*second),
		Workers:     *workers,
		Seed:        *seed,
		Preload:     *preload,
		KeepGames:   *record != "",
	}

	start := time.Now()
	result, err := engine.SelfPlay(opts)
	elapsed := time.Since(start)
	if err != nil {
		fail("self-play: %v", err)
	}

	fmt.Printf("Self-play (%d games, depths %d vs %d, %.1fs):\n",
		result.GamesPlayed, opts.FirstDepth, opts.SecondDepth, elapsed.Seconds())
	fmt.Printf("  First player:  %d wins (%.1f%% ± %.1f%%)\n",
		result.FirstWins, result.FirstWinRate*100, result.FirstWinCI*100)
	fmt.Printf("  Second player: %d wins\n", result.SecondWins)
	fmt.Printf("  Game length:   %.1f ± %.1f plies (min %d, max %d)\n",
		result.MeanPlies, result.PliesStdDev, result.MinPlies, result.MaxPlies)

	if *record != "" {
		if err := writeRecord(*record, opts, result); err != nil {
			fail("writing record: %v", err)
		}
		log.Printf("Wrote %d games to %s", len(result.Games), *record)
	}
}

func writeRecord(path string, opts engine.SelfPlayOptions, result *engine.SelfPlayResult) error {
	m := match.NewMatch(
		fmt.Sprintf("computer:%d", opts.FirstDepth),
		fmt.Sprintf("computer:%d", opts.SecondDepth),
	)
	m.Date = time.Now().Format("2006-01-02")
	m.Event = "self-play"

	for i, pg := range result.Games {
		g, err := match.FromPlayed(i+1, pg)
		if err != nil {
			return err
		}
		m.Games = append(m.Games, g)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := match.ExportRecord(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func cellList(cells []int) string {
	if len(cells) == 0 {
		return "-"
	}
	names := make([]string, len(cells))
	for i, c := range cells {
		names[i] = positionid.CellName(c)
	}
	return strings.Join(names, " ")
}
