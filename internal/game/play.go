package game

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Play runs g to completion on a line-based terminal: one guess per line on
// in, feedback on out. Invalid guesses are reported and re-prompted without
// using a row. It returns nil when the game ends or in is exhausted.
func (e *Engine) Play(in io.Reader, out io.Writer, g *Game) error {
	sc := bufio.NewScanner(in)
	for !g.Finished {
		fmt.Fprintf(out, "guess %d/%d: ", len(g.Guesses)+1, g.Rows)
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		p, err := e.Guess(g, line)
		if err != nil {
			if errors.Is(err, ErrFinished) {
				break
			}
			fmt.Fprintf(out, "%v, try again\n", err)
			continue
		}
		fmt.Fprintf(out, "%d %s\n", p, p)
	}

	if g.Won {
		fmt.Fprintf(out, "solved in %d/%d\n", len(g.Guesses), g.Rows)
	} else {
		fmt.Fprintf(out, "out of guesses, the answer was %s\n", g.Answer)
	}
	fmt.Fprintln(out, g.History())
	return nil
}
