// internal/game/types.go
//
// Core type definitions for the game loop.
// Defines:
//   - Status: coarse state of a game (playing/won/lost).
//   - Game: state for a single in-progress or finished game.

package game

import "github.com/Akari202/wordle/internal/pattern"

// Status is the coarse state of a game.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Game holds the state of a single game session.
type Game struct {
	ID       string            // Unique game identifier (random hex string).
	Answer   string            // The solution word (always lowercase).
	Rows     int               // Maximum number of guesses allowed.
	Guesses  []string          // Guesses made so far (lowercased).
	Patterns []pattern.Pattern // Feedback for each guess, same order as Guesses.
	Finished bool              // True once the game is over (won or lost).
	Won      bool              // True if the game was finished with a win.
}

// Status reports the current state.
func (g *Game) Status() Status {
	if g.Finished {
		if g.Won {
			return StatusWon
		}
		return StatusLost
	}
	return StatusPlaying
}

// Remaining is the number of guesses left.
func (g *Game) Remaining() int { return g.Rows - len(g.Guesses) }

// History renders every pattern so far, one row per line.
func (g *Game) History() string { return pattern.RenderSequence(g.Patterns) }

func (g *Game) clone() *Game {
	cp := *g
	cp.Guesses = append([]string(nil), g.Guesses...)
	cp.Patterns = append([]pattern.Pattern(nil), g.Patterns...)
	return &cp
}
