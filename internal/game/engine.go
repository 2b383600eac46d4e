// internal/game/engine.go
//
// Game engine for a single session.
// Responsibilities:
//   - Create new games (6 rows) with a given, random or daily answer.
//   - Validate and apply guesses (five letters a–z, allowed list).
//   - Score guesses through the Scorer, which reads the pattern matrix when it
//     is ready and scores directly otherwise.
//   - Track state transitions: playing → won/lost.
//
// A game ends on the all-exact pattern or once every row is used.
package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/Akari202/wordle/internal/pattern"
	"github.com/Akari202/wordle/internal/words"
)

// DefaultRows is the number of guesses a game allows.
const DefaultRows = 6

var (
	ErrFinished   = errors.New("game finished")
	ErrNotAllowed = errors.New("not in word list")
	ErrNotAnswer  = errors.New("not an answer word")
)

// Scorer produces the feedback pattern for a guess against an answer.
// *matrix.Cache satisfies it.
type Scorer interface {
	PatternFor(guess, answer string) (pattern.Pattern, error)
}

// Engine creates and advances games over one vocabulary.
type Engine struct {
	vocab  *words.Vocabulary
	scorer Scorer
}

// NewEngine returns an Engine scoring with s.
func NewEngine(v *words.Vocabulary, s Scorer) *Engine {
	return &Engine{vocab: v, scorer: s}
}

// New constructs a game. If answer is empty a random answer is chosen;
// otherwise it must be one of the answer words.
func (e *Engine) New(answer string) (*Game, error) {
	ans := strings.ToLower(strings.TrimSpace(answer))
	if ans == "" {
		ans = e.vocab.RandomAnswer()
	} else if !e.vocab.IsAnswer(ans) {
		return nil, fmt.Errorf("%w: %q", ErrNotAnswer, ans)
	}
	return &Game{
		ID:      randomID(),
		Answer:  ans,
		Rows:    DefaultRows,
		Guesses: []string{},
	}, nil
}

// Guess validates and scores guess, mutating g.
//
// Validation rules:
//   - Game must not be finished.
//   - Guess must be five letters a–z after trimming and lowercasing.
//   - Guess must be in the allowed list.
func (e *Engine) Guess(g *Game, guess string) (pattern.Pattern, error) {
	if g.Finished {
		return 0, ErrFinished
	}
	guess = strings.ToLower(strings.TrimSpace(guess))
	if _, err := pattern.EncodeWord(guess); err != nil {
		return 0, err
	}
	if !e.vocab.IsAllowed(guess) {
		return 0, fmt.Errorf("%w: %q", ErrNotAllowed, guess)
	}

	p, err := e.scorer.PatternFor(guess, g.Answer)
	if err != nil {
		return 0, err
	}
	g.Guesses = append(g.Guesses, guess)
	g.Patterns = append(g.Patterns, p)

	if p.Solved() {
		g.Finished, g.Won = true, true
	} else if len(g.Guesses) >= g.Rows {
		g.Finished = true
	}
	return p, nil
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
