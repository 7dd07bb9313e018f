package match

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/yourusername/tlengine/internal/positionid"
)

// Record format, modelled on Jellyfish MAT files. Each numbered line
// holds one move of each player. Tag values are Go-quoted strings; the
// game ID and the players' search depths are optional on import.
//
//  ; [Player 1 "computer:3"]
//  ; [Player 2 "human"]
//  ; [Date "2026-10-15"]
//
//  Game 1 5f1c4a8e-0b55-4c36-9d1e-2a4f0c7d9b11 depths 3 36
//   1) B2 B3
//   2) B2 C1
//   ...
//  Result 1-0

var (
	gameHeaderRE = regexp.MustCompile(`^Game\s+(\d+)(?:\s+(\S+))?(?:\s+depths\s+(\d+)\s+(\d+))?$`)
	moveLineRE   = regexp.MustCompile(`^(\d+)\)\s*(.*)$`)
	resultRE     = regexp.MustCompile(`^Result\s+(1-0|0-1|\*)$`)
	tagRE        = regexp.MustCompile(`\[(\w+(?:\s\d)?)\s+("(?:[^"\\]|\\.)*")\]`)
)

// ImportRecord reads a match from the record format. Every move is
// replayed; illegal moves and results that disagree with the replay are
// errors.
func ImportRecord(r io.Reader) (*Match, error) {
	scanner := bufio.NewScanner(r)
	match := &Match{
		Games: make([]*Game, 0),
	}

	var currentGame *Game
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines
		if line == "" {
			continue
		}

		// Parse metadata comments
		if strings.HasPrefix(line, ";") {
			if m := tagRE.FindStringSubmatch(line); m != nil {
				value, err := strconv.Unquote(m[2])
				if err != nil {
					return nil, fmt.Errorf("line %d: tag %s: %w", lineNo, m[1], err)
				}
				switch strings.ToLower(m[1]) {
				case "player 1", "player1":
					match.Player1 = value
				case "player 2", "player2":
					match.Player2 = value
				case "date":
					match.Date = value
				case "event":
					match.Event = value
				case "comment":
					match.Comment = value
				}
			}
			continue
		}

		// Parse game header
		if m := gameHeaderRE.FindStringSubmatch(line); m != nil {
			number, _ := strconv.Atoi(m[1])
			currentGame = NewGame(number)
			if m[2] != "" {
				id, err := uuid.Parse(m[2])
				if err != nil {
					return nil, fmt.Errorf("line %d: game ID: %w", lineNo, err)
				}
				currentGame.ID = id
			}
			if m[3] != "" {
				currentGame.FirstDepth, _ = strconv.Atoi(m[3])
				currentGame.SecondDepth, _ = strconv.Atoi(m[4])
			}
			match.Games = append(match.Games, currentGame)
			continue
		}

		if currentGame == nil {
			return nil, fmt.Errorf("line %d: %q outside a game", lineNo, line)
		}

		// Parse move lines
		if m := moveLineRE.FindStringSubmatch(line); m != nil {
			for _, name := range strings.Fields(m[2]) {
				cell, err := positionid.ParseCellName(name)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				if err := currentGame.AddMove(cell); err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
			}
			continue
		}

		// Parse result line
		if m := resultRE.FindStringSubmatch(line); m != nil {
			if got := currentGame.ResultString(); got != m[1] {
				return nil, fmt.Errorf("line %d: game %d recorded as %s but replays as %s",
					lineNo, currentGame.Number, m[1], got)
			}
			continue
		}

		return nil, fmt.Errorf("line %d: unrecognised %q", lineNo, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading record: %w", err)
	}

	return match, nil
}

// ExportRecord writes a match in the record format.
func ExportRecord(w io.Writer, match *Match) error {
	bw := bufio.NewWriter(w)

	// Header
	if match.Player1 != "" {
		fmt.Fprintf(bw, "; [Player 1 %q]\n", match.Player1)
	}
	if match.Player2 != "" {
		fmt.Fprintf(bw, "; [Player 2 %q]\n", match.Player2)
	}
	if match.Date != "" {
		fmt.Fprintf(bw, "; [Date %q]\n", match.Date)
	}
	if match.Event != "" {
		fmt.Fprintf(bw, "; [Event %q]\n", match.Event)
	}
	if match.Comment != "" {
		fmt.Fprintf(bw, "; [Comment %q]\n", match.Comment)
	}

	for _, g := range match.Games {
		fmt.Fprintf(bw, "\nGame %d %s depths %d %d\n", g.Number, g.ID, g.FirstDepth, g.SecondDepth)
		for i := 0; i < len(g.Moves); i += 2 {
			fmt.Fprintf(bw, " %d) %s", i/2+1, positionid.CellName(g.Moves[i]))
			if i+1 < len(g.Moves) {
				fmt.Fprintf(bw, " %s", positionid.CellName(g.Moves[i+1]))
			}
			bw.WriteByte('\n')
		}
		fmt.Fprintf(bw, "Result %s\n", g.ResultString())
	}

	return bw.Flush()
}
