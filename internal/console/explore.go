// Package console implements the interactive group explorer: enter a guess,
// see how it splits the remaining candidates, then enter the clue the real
// game showed to narrow the candidates down to that group.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Akari202/wordle/internal/group"
	"github.com/Akari202/wordle/internal/matrix"
	"github.com/Akari202/wordle/internal/pattern"
)

const (
	groupPreview     = 14
	remainingPreview = 100
)

// Grouper partitions candidates by the pattern guess produces against each.
// *matrix.Cache satisfies it.
type Grouper interface {
	GroupByPattern(ctx context.Context, guess string, candidates []string) (*group.Map, error)
}

// Explore runs the explorer until a single candidate remains or in is
// exhausted. Unknown or malformed guesses and clues are reported on out and
// the loop continues; any other error ends it.
func Explore(ctx context.Context, in io.Reader, out io.Writer, g Grouper, candidates []string) error {
	sc := bufio.NewScanner(in)
	read := func(prompt string) (string, bool) {
		fmt.Fprint(out, prompt)
		if !sc.Scan() {
			fmt.Fprintln(out)
			return "", false
		}
		return strings.TrimSpace(sc.Text()), true
	}

	remaining := append([]string(nil), candidates...)
	for len(remaining) > 1 {
		guess, ok := read("Guess: ")
		if !ok {
			return sc.Err()
		}
		guess = strings.ToLower(guess)
		if guess == "" {
			continue
		}
		if _, err := pattern.EncodeWord(guess); err != nil {
			fmt.Fprintf(out, "%v\n", err)
			continue
		}

		groups, err := g.GroupByPattern(ctx, guess, remaining)
		switch {
		case errors.Is(err, matrix.ErrUnknownWord):
			fmt.Fprintf(out, "%v\n", err)
			continue
		case err != nil:
			return err
		}
		PrintGroups(out, guess, groups)

		raw, ok := read("Clue (ternary): ")
		if !ok {
			return sc.Err()
		}
		clue, err := pattern.ParseTernary(raw)
		if err != nil {
			fmt.Fprintln(out, "Invalid input")
		} else if ws := groups.Words(clue); ws == nil {
			fmt.Fprintf(out, "no possible input with pattern %s\n", clue)
		} else {
			remaining = ws
		}
		fmt.Fprintln(out, preview(remaining, remainingPreview))
	}
	if len(remaining) == 1 {
		fmt.Fprintf(out, "Answer: %s\n", remaining[0])
	}
	return nil
}

// PrintGroups writes the summary and one line per group, in first-seen order.
func PrintGroups(out io.Writer, guess string, groups *group.Map) {
	fmt.Fprintf(out, "\nGroups for %s\n", guess)
	fmt.Fprintf(out, "Total number of groups: %d\n", groups.Len())
	fmt.Fprintf(out, "Average group length: %.2f\n", groups.MeanSize())
	fmt.Fprintf(out, "Longest group: %d\n", groups.MaxSize())
	for _, grp := range groups.Groups() {
		fmt.Fprintf(out, "%s %d: %s\n", grp.Pattern, len(grp.Words), preview(grp.Words, groupPreview))
	}
}

func preview(ws []string, n int) string {
	if len(ws) > n {
		ws = ws[:n]
	}
	return "[" + strings.Join(ws, " ") + "]"
}
