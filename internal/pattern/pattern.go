// internal/pattern/pattern.go
//
// Feedback digits and their packed integer form.
// Defines:
//   - Digit: per-letter feedback (miss/misplaced/exact).
//   - Pattern: the L digits of one guess/answer pair packed base 3,
//     position 0 in the least significant place.
//   - Render helpers producing the familiar ⬛🟨🟩 rows.

package pattern

import (
	"errors"
	"fmt"
	"strings"
)

// WordLength is the number of letters in every word (L).
const WordLength = 5

// Digit is the evaluation result for a single letter position.
// The numeric values are the base-3 digits used by Pattern.
type Digit uint8

const (
	Miss      Digit = 0 // letter does not occur (or all occurrences are used up)
	Misplaced Digit = 1 // letter occurs elsewhere in the answer
	Exact     Digit = 2 // letter is in the correct position
)

// Pattern is the packed feedback for one guess against one answer.
// Valid values are 0 <= p < Count.
type Pattern uint8

const (
	// Count is the number of distinct patterns (3^L).
	Count = 243
	// AllExact is the pattern of a solved guess (every digit Exact).
	AllExact Pattern = Count - 1
)

// ErrInvalidPattern reports an integer outside [0, Count) or a malformed digit.
var ErrInvalidPattern = errors.New("invalid pattern")

var pow3 = [WordLength]int{1, 3, 9, 27, 81}

// Encode packs digits into a Pattern: Σ d[i]·3^i.
// Digits are assumed valid; use EncodeDigits for untrusted input.
func Encode(d [WordLength]Digit) Pattern {
	var p int
	for i, x := range d {
		p += int(x) * pow3[i]
	}
	return Pattern(p)
}

// EncodeDigits validates and packs a digit slice of length WordLength.
func EncodeDigits(ds []Digit) (Pattern, error) {
	if len(ds) != WordLength {
		return 0, fmt.Errorf("%w: need %d digits, got %d", ErrInvalidPattern, WordLength, len(ds))
	}
	var d [WordLength]Digit
	for i, x := range ds {
		if x > Exact {
			return 0, fmt.Errorf("%w: digit %d at position %d", ErrInvalidPattern, x, i)
		}
		d[i] = x
	}
	return Encode(d), nil
}

// Decode unpacks p into exactly WordLength digits, least significant first.
func Decode(p Pattern) ([WordLength]Digit, error) {
	var d [WordLength]Digit
	if int(p) >= Count {
		return d, fmt.Errorf("%w: %d out of range [0,%d)", ErrInvalidPattern, p, Count)
	}
	cur := int(p)
	for i := range d {
		d[i] = Digit(cur % 3)
		cur /= 3
	}
	return d, nil
}

// FromInt converts an integer from an external source (JSON, console) into a Pattern.
func FromInt(n int) (Pattern, error) {
	if n < 0 || n >= Count {
		return 0, fmt.Errorf("%w: %d out of range [0,%d)", ErrInvalidPattern, n, Count)
	}
	return Pattern(n), nil
}

// ParseTernary reads a clue typed as one digit per letter position,
// position 0 first (the same order Render draws the squares in).
// "20010" means exact, miss, miss, misplaced, miss.
func ParseTernary(s string) (Pattern, error) {
	s = strings.TrimSpace(s)
	if len(s) != WordLength {
		return 0, fmt.Errorf("%w: %q must have %d digits", ErrInvalidPattern, s, WordLength)
	}
	ds := make([]Digit, WordLength)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '2' {
			return 0, fmt.Errorf("%w: %q has non-ternary digit %q", ErrInvalidPattern, s, c)
		}
		ds[i] = Digit(c - '0')
	}
	return EncodeDigits(ds)
}

// Ternary is the inverse of ParseTernary.
func (p Pattern) Ternary() string {
	d, err := Decode(p)
	if err != nil {
		return "?"
	}
	var b strings.Builder
	for _, x := range d {
		b.WriteByte(byte('0' + x))
	}
	return b.String()
}

// Solved reports whether every position is Exact.
func (p Pattern) Solved() bool { return p == AllExact }

var glyphs = [...]string{
	Miss:      "⬛",
	Misplaced: "🟨",
	Exact:     "🟩",
}

// Render draws p as coloured squares, position 0 first.
func Render(p Pattern) string {
	d, err := Decode(p)
	if err != nil {
		return strings.Repeat("?", WordLength)
	}
	var b strings.Builder
	for _, x := range d {
		b.WriteString(glyphs[x])
	}
	return b.String()
}

// String implements fmt.Stringer using Render.
func (p Pattern) String() string { return Render(p) }

// RenderSequence renders each pattern on its own line, in order.
// Used to print a full guess history.
func RenderSequence(ps []Pattern) string {
	rows := make([]string, len(ps))
	for i, p := range ps {
		rows[i] = Render(p)
	}
	return strings.Join(rows, "\n")
}
