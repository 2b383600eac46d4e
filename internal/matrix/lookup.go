package matrix

import (
	"context"
	"errors"

	"github.com/Akari202/wordle/internal/group"
	"github.com/Akari202/wordle/internal/pattern"
)

// loaded returns the snapshot, treating a persist failure as success.
// The failure has already been logged by build.
func (c *Cache) loaded(ctx context.Context) (*Snapshot, error) {
	s, err := c.LoadOrBuild(ctx)
	if err != nil && !errors.Is(err, ErrCachePersist) {
		return nil, err
	}
	return s, nil
}

// PatternMatrixFor slices the cached matrix: one row per word of rowWords,
// one column per word of colWords, both in the order given. Every row word
// must be a guess and every column word an answer; the first word that is not
// yields an *UnknownWordError.
func (c *Cache) PatternMatrixFor(ctx context.Context, rowWords, colWords []string) (*pattern.Matrix, error) {
	s, err := c.loaded(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.Index.Rows(rowWords)
	if err != nil {
		return nil, err
	}
	cols, err := s.Index.Cols(colWords)
	if err != nil {
		return nil, err
	}
	return s.Matrix.Slice(rows, cols), nil
}

// PatternFor returns the pattern for one pair. It reads the cache only when
// it is already Ready and both words are indexed; otherwise the pair is
// scored directly. It never triggers a load.
func (c *Cache) PatternFor(guess, answer string) (pattern.Pattern, error) {
	if s, ok := c.Snapshot(); ok {
		if p, err := s.Pattern(guess, answer); err == nil {
			return p, nil
		}
	}
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

// GroupByPattern partitions candidates by the pattern each would show for guess.
// guess must be a guess word and every candidate an answer word.
func (c *Cache) GroupByPattern(ctx context.Context, guess string, candidates []string) (*group.Map, error) {
	s, err := c.loaded(ctx)
	if err != nil {
		return nil, err
	}
	r, ok := s.Index.Row(guess)
	if !ok {
		return nil, &UnknownWordError{Word: guess}
	}
	cols, err := s.Index.Cols(candidates)
	if err != nil {
		return nil, err
	}
	row := make([]pattern.Pattern, len(cols))
	for i, col := range cols {
		row[i] = s.Matrix.At(r, col)
	}
	return group.ByPattern(row, candidates), nil
}
