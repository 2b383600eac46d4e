// Package assets embeds the default word list so the binary runs without
// any files configured.
package assets

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
)

//go:embed words.json
var wordsJSON []byte

// WordList is the on-disk word list format:
//
//	{"answer_words": [...], "possible_words": [...]}
//
// possible_words holds valid guesses that are never answers.
type WordList struct {
	AnswerWords   []string `json:"answer_words"`
	PossibleWords []string `json:"possible_words"`
}

// DecodeWordList parses a word list document from r.
func DecodeWordList(r io.Reader) (*WordList, error) {
	var wl WordList
	if err := json.NewDecoder(r).Decode(&wl); err != nil {
		return nil, fmt.Errorf("decode word list: %w", err)
	}
	return &wl, nil
}

// DefaultWordList returns the embedded word list.
func DefaultWordList() (*WordList, error) {
	var wl WordList
	if err := json.Unmarshal(wordsJSON, &wl); err != nil {
		return nil, fmt.Errorf("decode embedded word list: %w", err)
	}
	return &wl, nil
}
