package matrix

import (
	"github.com/Akari202/wordle/internal/pattern"
	"github.com/Akari202/wordle/internal/words"
)

// Index maps words to matrix positions. Rows follow the guess vocabulary
// (answers then extra guesses), columns follow the answers. Built once per
// snapshot and never modified.
type Index struct {
	rows map[string]int
	cols map[string]int
}

// NewIndex builds the row and column maps for v. When a word appears more than
// once, its first position is used; duplicates carry identical patterns anyway.
func NewIndex(v *words.Vocabulary) *Index {
	guesses := v.Guesses()
	idx := &Index{
		rows: make(map[string]int, len(guesses)),
		cols: make(map[string]int, len(v.Answers)),
	}
	for i, w := range guesses {
		if _, ok := idx.rows[w]; !ok {
			idx.rows[w] = i
		}
	}
	for i, w := range v.Answers {
		if _, ok := idx.cols[w]; !ok {
			idx.cols[w] = i
		}
	}
	return idx
}

// Row returns the row position of a guess word.
func (x *Index) Row(w string) (int, bool) {
	i, ok := x.rows[w]
	return i, ok
}

// Col returns the column position of an answer word.
func (x *Index) Col(w string) (int, bool) {
	i, ok := x.cols[w]
	return i, ok
}

// Rows resolves every word to a row position, failing on the first unknown one.
func (x *Index) Rows(ws []string) ([]int, error) {
	return resolve(x.rows, ws)
}

// Cols resolves every word to a column position, failing on the first unknown one.
func (x *Index) Cols(ws []string) ([]int, error) {
	return resolve(x.cols, ws)
}

func resolve(m map[string]int, ws []string) ([]int, error) {
	out := make([]int, len(ws))
	for i, w := range ws {
		j, ok := m[w]
		if !ok {
			return nil, &UnknownWordError{Word: w}
		}
		out[i] = j
	}
	return out, nil
}

// Snapshot is a ready matrix together with the index it must be read through.
type Snapshot struct {
	Matrix *pattern.Matrix
	Index  *Index
}

// Pattern returns the cached pattern for guess against answer.
func (s *Snapshot) Pattern(guess, answer string) (pattern.Pattern, error) {
	r, ok := s.Index.Row(guess)
	if !ok {
		return 0, &UnknownWordError{Word: guess}
	}
	c, ok := s.Index.Col(answer)
	if !ok {
		return 0, &UnknownWordError{Word: answer}
	}
	return s.Matrix.At(r, c), nil
}
