package pattern

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for n := 0; n < Count; n++ {
		p := Pattern(n)
		d, err := Decode(p)
		require.NoError(t, err)
		assert.Equal(t, p, Encode(d), "pattern %d", n)
	}
}

func TestDecodeEncodeDigits(t *testing.T) {
	d := [WordLength]Digit{Exact, Miss, Misplaced, Exact, Miss}
	p := Encode(d)
	assert.Equal(t, Pattern(2+0+9+54+0), p)

	back, err := Decode(p)
	require.NoError(t, err)
	assert.Equal(t, d, back)
}

func TestDecodeOutOfRange(t *testing.T) {
	_, err := Decode(Pattern(Count))
	assert.ErrorIs(t, err, ErrInvalidPattern)

	_, err = FromInt(-1)
	assert.ErrorIs(t, err, ErrInvalidPattern)
	_, err = FromInt(Count)
	assert.ErrorIs(t, err, ErrInvalidPattern)

	p, err := FromInt(242)
	require.NoError(t, err)
	assert.True(t, p.Solved())
}

func TestEncodeDigitsRejectsBadInput(t *testing.T) {
	_, err := EncodeDigits([]Digit{0, 1, 2})
	assert.ErrorIs(t, err, ErrInvalidPattern)

	_, err = EncodeDigits([]Digit{0, 1, 2, 3, 0})
	assert.ErrorIs(t, err, ErrInvalidPattern)
}

func TestParseTernary(t *testing.T) {
	p, err := ParseTernary("20010")
	require.NoError(t, err)
	assert.Equal(t, Pattern(2+27), p)
	assert.Equal(t, "20010", p.Ternary())

	p, err = ParseTernary(" 00000\n")
	require.NoError(t, err)
	assert.Equal(t, Pattern(0), p)

	for _, bad := range []string{"", "2001", "200100", "20a10", "30010"} {
		_, err := ParseTernary(bad)
		assert.ErrorIs(t, err, ErrInvalidPattern, "input %q", bad)
	}
}

func TestRender(t *testing.T) {
	assert.Equal(t, "🟩🟩🟩🟩🟩", Render(AllExact))
	assert.Equal(t, "⬛⬛⬛⬛⬛", Render(0))

	p, err := ParseTernary("21000")
	require.NoError(t, err)
	assert.Equal(t, "🟩🟨⬛⬛⬛", Render(p))
	assert.Equal(t, Render(p), p.String())
}

func TestRenderSequence(t *testing.T) {
	first, _ := ParseTernary("10110")
	out := RenderSequence([]Pattern{first, AllExact})
	assert.Equal(t, "🟨⬛🟨🟨⬛\n🟩🟩🟩🟩🟩", out)
	assert.Equal(t, "", RenderSequence(nil))
}

func TestEncodeWord(t *testing.T) {
	w, err := EncodeWord("crane")
	require.NoError(t, err)
	assert.Equal(t, Word{'c', 'r', 'a', 'n', 'e'}, w)
	assert.Equal(t, "crane", w.String())

	for _, bad := range []string{"", "cran", "cranes", "CRANE", "cr4ne"} {
		_, err := EncodeWord(bad)
		require.Error(t, err, bad)
		assert.ErrorIs(t, err, ErrInvalidWord)

		var iwe *InvalidWordError
		require.True(t, errors.As(err, &iwe))
		assert.Equal(t, bad, iwe.Word)
	}
}

func TestEncodeVocabulary(t *testing.T) {
	ws, err := EncodeVocabulary([]string{"abbey", "baggy"})
	require.NoError(t, err)
	assert.Len(t, ws, 2)

	_, err = EncodeVocabulary([]string{"abbey", "bag", "baggy"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidWord)
	assert.True(t, strings.HasPrefix(err.Error(), "word 1:"), err.Error())
}
