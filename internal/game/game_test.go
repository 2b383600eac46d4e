package game

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akari202/wordle/internal/pattern"
	"github.com/Akari202/wordle/internal/words"
)

type directScorer struct{}

func (directScorer) PatternFor(guess, answer string) (pattern.Pattern, error) {
	g, err := pattern.EncodeWord(guess)
	if err != nil {
		return 0, err
	}
	a, err := pattern.EncodeWord(answer)
	if err != nil {
		return 0, err
	}
	return pattern.Score(g, a), nil
}

func testEngine() *Engine {
	v := words.New([]string{"abbey", "baggy", "crane", "slate"}, []string{"speed", "erase", "trace"})
	return NewEngine(v, directScorer{})
}

func TestNewGame(t *testing.T) {
	e := testEngine()

	g, err := e.New("  ABBEY ")
	require.NoError(t, err)
	assert.Equal(t, "abbey", g.Answer)
	assert.Equal(t, DefaultRows, g.Rows)
	assert.Len(t, g.ID, 16)
	assert.Equal(t, StatusPlaying, g.Status())

	g, err = e.New("")
	require.NoError(t, err)
	assert.Contains(t, []string{"abbey", "baggy", "crane", "slate"}, g.Answer)

	_, err = e.New("speed")
	assert.ErrorIs(t, err, ErrNotAnswer)
}

func TestGuessWins(t *testing.T) {
	e := testEngine()
	g, err := e.New("baggy")
	require.NoError(t, err)

	p, err := e.Guess(g, "abbey")
	require.NoError(t, err)
	assert.Equal(t, "11002", p.Ternary())
	assert.Equal(t, StatusPlaying, g.Status())

	p, err = e.Guess(g, "BAGGY")
	require.NoError(t, err)
	assert.Equal(t, pattern.AllExact, p)
	assert.Equal(t, StatusWon, g.Status())
	assert.Equal(t, []string{"abbey", "baggy"}, g.Guesses)
	assert.Equal(t, "🟨🟨⬛⬛🟩\n🟩🟩🟩🟩🟩", g.History())

	_, err = e.Guess(g, "crane")
	assert.ErrorIs(t, err, ErrFinished)
}

func TestGuessLosesAfterSixRows(t *testing.T) {
	e := testEngine()
	g, err := e.New("crane")
	require.NoError(t, err)

	for i := 0; i < DefaultRows; i++ {
		require.False(t, g.Finished)
		_, err := e.Guess(g, "speed")
		require.NoError(t, err)
	}
	assert.Equal(t, StatusLost, g.Status())
	assert.Zero(t, g.Remaining())
	assert.Len(t, g.Patterns, DefaultRows)
}

func TestGuessValidation(t *testing.T) {
	e := testEngine()
	g, err := e.New("crane")
	require.NoError(t, err)

	_, err = e.Guess(g, "cran")
	assert.ErrorIs(t, err, pattern.ErrInvalidWord)
	_, err = e.Guess(g, "cr4ne")
	assert.ErrorIs(t, err, pattern.ErrInvalidWord)
	_, err = e.Guess(g, "zzzzz")
	assert.ErrorIs(t, err, ErrNotAllowed)

	assert.Empty(t, g.Guesses)
	assert.Equal(t, DefaultRows, g.Remaining())
}

func TestScorerErrorDoesNotUseRow(t *testing.T) {
	e := NewEngine(words.New([]string{"crane"}, nil), failingScorer{})
	g, err := e.New("crane")
	require.NoError(t, err)
	_, err = e.Guess(g, "crane")
	require.Error(t, err)
	assert.Empty(t, g.Guesses)
}

type failingScorer struct{}

func (failingScorer) PatternFor(string, string) (pattern.Pattern, error) {
	return 0, errors.New("boom")
}

func TestDailyIsDeterministic(t *testing.T) {
	e := testEngine()
	day := time.Date(2024, 3, 9, 23, 30, 0, 0, time.UTC)

	a, err := e.Daily(day, "salt")
	require.NoError(t, err)
	b, err := e.Daily(day.Add(15*time.Minute).In(time.FixedZone("X", 5*3600)), "salt")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	// 23:45 UTC is still the same UTC day.
	assert.Equal(t, "2024-03-09", DateKey(day.Add(15*time.Minute)))
	assert.Equal(t, a.Answer, b.Answer)

	idx := DailyIndex(day, "salt", 4)
	assert.True(t, idx >= 0 && idx < 4)
	assert.Zero(t, DailyIndex(day, "salt", 0))
}

func TestPlayScriptedSession(t *testing.T) {
	e := testEngine()
	g, err := e.New("baggy")
	require.NoError(t, err)

	in := strings.NewReader("nope\n\nzzzzz\nabbey\nbaggy\n")
	var out bytes.Buffer
	require.NoError(t, e.Play(in, &out, g))

	s := out.String()
	assert.Contains(t, s, "try again")
	assert.Contains(t, s, "166 🟨🟨⬛⬛🟩")
	assert.Contains(t, s, "242 🟩🟩🟩🟩🟩")
	assert.Contains(t, s, "solved in 2/6")
	assert.True(t, g.Won)
}

func TestPlayReportsAnswerOnLoss(t *testing.T) {
	e := testEngine()
	g, err := e.New("crane")
	require.NoError(t, err)

	in := strings.NewReader(strings.Repeat("speed\n", DefaultRows))
	var out bytes.Buffer
	require.NoError(t, e.Play(in, &out, g))
	assert.Contains(t, out.String(), "the answer was crane")
}

func TestPlayStopsAtEOF(t *testing.T) {
	e := testEngine()
	g, err := e.New("crane")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, e.Play(strings.NewReader("speed\n"), &out, g))
	assert.False(t, g.Finished)
	assert.Len(t, g.Guesses, 1)
}

func TestStore(t *testing.T) {
	e := testEngine()
	s := NewStore()
	g, err := e.New("crane")
	require.NoError(t, err)
	s.Put(g)

	_, err = s.Get("missing")
	assert.ErrorIs(t, err, ErrGameNotFound)

	got, err := s.Update(g.ID, func(g *Game) error {
		_, err := e.Guess(g, "trace")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"trace"}, got.Guesses)

	// A failed update leaves the stored game untouched.
	_, err = s.Update(g.ID, func(g *Game) error {
		_, err := e.Guess(g, "zzzzz")
		return err
	})
	assert.ErrorIs(t, err, ErrNotAllowed)

	stored, err := s.Get(g.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"trace"}, stored.Guesses)

	// Returned games are copies.
	stored.Guesses[0] = "mutated"
	again, err := s.Get(g.ID)
	require.NoError(t, err)
	assert.Equal(t, "trace", again.Guesses[0])
	assert.Equal(t, 1, s.Len())
}

func TestStoreConcurrentGuesses(t *testing.T) {
	e := testEngine()
	s := NewStore()
	g, err := e.New("crane")
	require.NoError(t, err)
	s.Put(g)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Update(g.ID, func(g *Game) error {
				_, err := e.Guess(g, "speed")
				return err
			})
		}()
	}
	wg.Wait()

	final, err := s.Get(g.ID)
	require.NoError(t, err)
	assert.Len(t, final.Guesses, DefaultRows)
	assert.Equal(t, StatusLost, final.Status())
}
