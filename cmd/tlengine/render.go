package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/yourusername/tlengine/pkg/engine"
)

// renderAnalysis prints the board next to the per-cell move classes.
func renderAnalysis(w io.Writer, an *engine.Analysis) error {
	buf := bufio.NewWriter(w)
	fmt.Fprintln(buf, "      1   2   3   4          AI analysis")
	fmt.Fprintln(buf, "    +---+---+---+---+      +---+---+---+---+")
	for r := 0; r < engine.Rows; r++ {
		fmt.Fprintf(buf, "  %c |", 'A'+r)
		for c := 0; c < engine.Cols; c++ {
			fmt.Fprintf(buf, " %d |", an.Board[r*engine.Cols+c])
		}
		fmt.Fprint(buf, "      |")
		for c := 0; c < engine.Cols; c++ {
			fmt.Fprintf(buf, " %s |", an.Cells[r*engine.Cols+c].Abbr())
		}
		fmt.Fprintln(buf)
		fmt.Fprintln(buf, "    +---+---+---+---+      +---+---+---+---+")
	}
	return buf.Flush()
}
