// internal/words/words.go
//
// Vocabulary loading.
//
// Responsibilities:
//   - Load the answer and extra-guess lists from a JSON word list, from a pair
//     of plain-text files, or from the embedded default.
//   - Normalise words (trim, lowercase, 5 letters a–z) and report rejects.
//   - Expose the guess vocabulary ordering the pattern matrix is built over.
//
// Sources, first match wins:
//  1. Paths.JSON set: {"answer_words": [...], "possible_words": [...]}.
//  2. Paths.Answers and Paths.Allowed set: one word per line each.
//  3. Only Paths.Allowed set: that list serves as answers and guesses.
//  4. Nothing set: assets/words.json.
//
// Guess vocabulary = answers followed by extra guesses, so an answer word has
// the same position as a row and as a column of the matrix.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/blake2b"

	"github.com/Akari202/wordle/assets"
	"github.com/Akari202/wordle/internal/pattern"
)

// ErrEmptyAnswers is returned when no valid answer word survives normalisation.
var ErrEmptyAnswers = errors.New("words: answers list is empty")

// Paths selects where word lists are read from. Empty fields are unset.
type Paths struct {
	JSON    string // WORDS_FILE
	Answers string // WORDS_ANSWERS_FILE
	Allowed string // WORDS_ALLOWED_FILE
}

// Vocabulary holds the answer list and the extra guesses, both in load order.
// It is read-only once built.
type Vocabulary struct {
	Answers []string
	Extra   []string

	allowed map[string]struct{}
	answers map[string]struct{}
}

// New builds a Vocabulary from already-normalised lists.
func New(answers, extra []string) *Vocabulary {
	v := &Vocabulary{
		Answers: answers,
		Extra:   extra,
		allowed: make(map[string]struct{}, len(answers)+len(extra)),
		answers: toSet(answers),
	}
	for _, w := range answers {
		v.allowed[w] = struct{}{}
	}
	for _, w := range extra {
		v.allowed[w] = struct{}{}
	}
	return v
}

// Load reads the vocabulary from the configured source.
func Load(p Paths) (*Vocabulary, error) {
	var ansList, extraList []string

	switch {
	case p.JSON != "":
		f, err := os.Open(p.JSON)
		if err != nil {
			return nil, fmt.Errorf("open word list: %w", err)
		}
		defer f.Close()
		wl, err := assets.DecodeWordList(f)
		if err != nil {
			return nil, err
		}
		ansList, extraList = normalize(wl.AnswerWords, p.JSON), normalize(wl.PossibleWords, p.JSON)

	case p.Answers != "" && p.Allowed != "":
		var err error
		if ansList, err = readWordFile(p.Answers); err != nil {
			return nil, err
		}
		if extraList, err = readWordFile(p.Allowed); err != nil {
			return nil, err
		}

	case p.Allowed != "":
		var err error
		if ansList, err = readWordFile(p.Allowed); err != nil {
			return nil, err
		}

	default:
		wl, err := assets.DefaultWordList()
		if err != nil {
			return nil, err
		}
		ansList, extraList = normalize(wl.AnswerWords, "embedded"), normalize(wl.PossibleWords, "embedded")
	}

	if len(ansList) == 0 {
		return nil, ErrEmptyAnswers
	}
	return New(ansList, withoutAnswers(extraList, ansList)), nil
}

// readWordFile loads one word per line, skipping blanks and # comments.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word file: %w", err)
	}
	defer f.Close()
	return readLines(f, path)
}

func readLines(r io.Reader, source string) ([]string, error) {
	var raw []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		raw = append(raw, s)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}
	return normalize(raw, source), nil
}

// normalize lowercases and keeps only words the codec accepts.
func normalize(in []string, source string) []string {
	out := make([]string, 0, len(in))
	rejected := 0
	for _, s := range in {
		w := strings.ToLower(strings.TrimSpace(s))
		if _, err := pattern.EncodeWord(w); err != nil {
			rejected++
			continue
		}
		out = append(out, w)
	}
	if rejected > 0 {
		log.Warn().Str("source", source).Int("rejected", rejected).Msg("skipped invalid words")
	}
	return out
}

// withoutAnswers drops extra guesses that are already answers, keeping order.
// Duplicates inside either list are left alone.
func withoutAnswers(extra, answers []string) []string {
	ans := toSet(answers)
	out := make([]string, 0, len(extra))
	for _, w := range extra {
		if _, ok := ans[w]; !ok {
			out = append(out, w)
		}
	}
	return out
}

func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// Guesses returns the guess vocabulary: answers first, then extra guesses.
func (v *Vocabulary) Guesses() []string {
	out := make([]string, 0, len(v.Answers)+len(v.Extra))
	out = append(out, v.Answers...)
	return append(out, v.Extra...)
}

// IsAllowed reports whether w is a valid guess.
func (v *Vocabulary) IsAllowed(w string) bool {
	_, ok := v.allowed[strings.ToLower(w)]
	return ok
}

// IsAnswer reports whether w is an answer word.
func (v *Vocabulary) IsAnswer(w string) bool {
	_, ok := v.answers[strings.ToLower(w)]
	return ok
}

// Stats returns (answers, guesses) counts.
func (v *Vocabulary) Stats() (answersCount int, guessCount int) {
	return len(v.Answers), len(v.Answers) + len(v.Extra)
}

// RandomAnswer returns a cryptographically random answer.
func (v *Vocabulary) RandomAnswer() string {
	if len(v.Answers) == 0 {
		return ""
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(v.Answers))))
	if err != nil {
		return v.Answers[0]
	}
	return v.Answers[n.Int64()]
}

// Fingerprint identifies the exact word ordering a matrix was built over.
// Any change to either list, including order, changes the fingerprint.
func (v *Vocabulary) Fingerprint() [32]byte {
	h, _ := blake2b.New256(nil)
	fmt.Fprintf(h, "L=%d;answers=%d;", pattern.WordLength, len(v.Answers))
	for _, w := range v.Answers {
		io.WriteString(h, w)
	}
	fmt.Fprintf(h, ";extra=%d;", len(v.Extra))
	for _, w := range v.Extra {
		io.WriteString(h, w)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
