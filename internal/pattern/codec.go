package pattern

import (
	"errors"
	"fmt"
)

// ErrInvalidWord reports a word of the wrong length or outside a–z.
var ErrInvalidWord = errors.New("invalid word")

// InvalidWordError names the offending word.
type InvalidWordError struct {
	Word   string
	Reason string
}

func (e *InvalidWordError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrInvalidWord, e.Word, e.Reason)
}

func (e *InvalidWordError) Unwrap() error { return ErrInvalidWord }

// Word is a word as a fixed array of letter codes.
type Word [WordLength]byte

// String returns the letters of w.
func (w Word) String() string { return string(w[:]) }

// EncodeWord maps each letter of s to its byte code.
// Words are expected already lower-cased by the loader.
func EncodeWord(s string) (Word, error) {
	var w Word
	if len(s) != WordLength {
		return w, &InvalidWordError{Word: s, Reason: fmt.Sprintf("length %d, want %d", len(s), WordLength)}
	}
	for i := 0; i < WordLength; i++ {
		c := s[i]
		if c < 'a' || c > 'z' {
			return w, &InvalidWordError{Word: s, Reason: fmt.Sprintf("letter %q at position %d", c, i)}
		}
		w[i] = c
	}
	return w, nil
}

// EncodeVocabulary encodes every word; all must be valid.
func EncodeVocabulary(words []string) ([]Word, error) {
	out := make([]Word, len(words))
	for i, s := range words {
		w, err := EncodeWord(s)
		if err != nil {
			return nil, fmt.Errorf("word %d: %w", i, err)
		}
		out[i] = w
	}
	return out, nil
}
