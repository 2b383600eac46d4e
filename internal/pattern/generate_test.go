package pattern

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWord(t *testing.T, s string) Word {
	t.Helper()
	w, err := EncodeWord(s)
	require.NoError(t, err)
	return w
}

func mustWords(t *testing.T, ss ...string) []Word {
	t.Helper()
	ws, err := EncodeVocabulary(ss)
	require.NoError(t, err)
	return ws
}

func TestScoreFixtures(t *testing.T) {
	cases := []struct {
		guess, answer, want string
	}{
		{"speed", "erase", "10110"},
		{"erase", "speed", "10011"},
		{"alloy", "llama", "12100"},
		{"abbey", "baggy", "11002"},
		{"crane", "slate", "00202"},
		{"geese", "eerie", "02102"},
		{"eerie", "geese", "12002"},
		{"abbey", "kebab", "11210"},
		{"lever", "eerie", "02011"},
		{"robot", "rebut", "20202"},
		{"sissy", "swiss", "21120"},
		{"apple", "paper", "11201"},
		{"cigar", "rebut", "00001"},
	}
	for _, tc := range cases {
		t.Run(tc.guess+"_"+tc.answer, func(t *testing.T) {
			got := Score(mustWord(t, tc.guess), mustWord(t, tc.answer))
			assert.Equal(t, tc.want, got.Ternary())
		})
	}
}

func TestScoreSelfIsAllExact(t *testing.T) {
	for _, s := range []string{"abbey", "baggy", "eerie", "zzzzz", "crane"} {
		w := mustWord(t, s)
		assert.Equal(t, AllExact, Score(w, w), s)
	}
}

func TestScoreRepeatedGuessLetterSingleAnswerOccurrence(t *testing.T) {
	// One 'e' in the answer: only the first unmatched 'e' of the guess is yellow.
	got := Score(mustWord(t, "eeeex"), mustWord(t, "abcde"))
	assert.Equal(t, "10000", got.Ternary())

	// The green occurrence consumes the only 'l'; the other 'l' stays grey.
	got = Score(mustWord(t, "hello"), mustWord(t, "world"))
	assert.Equal(t, "00021", got.Ternary())
}

func TestScoreAcceptsAnyBytes(t *testing.T) {
	// Words built directly rather than through EncodeWord compare byte for byte.
	got := Score(Word{'S', 'P', 'E', 'E', 'D'}, Word{'E', 'R', 'A', 'S', 'E'})
	assert.Equal(t, "10110", got.Ternary())

	upper := []Word{{'A', 'B', 'B', 'E', 'Y'}, {'B', 'A', 'G', 'G', 'Y'}}
	m, err := Generate(context.Background(), upper, upper, WithWorkers(2))
	require.NoError(t, err)
	assert.Equal(t, [][]int{{242, 166}, {166, 242}}, m.Grid())
}

func TestScoreIsDirectional(t *testing.T) {
	a, b := mustWord(t, "speed"), mustWord(t, "erase")
	assert.NotEqual(t, Score(a, b), Score(b, a))
}

func TestGenerateAbbeyBaggy(t *testing.T) {
	vocab := mustWords(t, "abbey", "baggy")
	m, err := Generate(context.Background(), vocab, vocab)
	require.NoError(t, err)
	require.Equal(t, 2, m.Rows())
	require.Equal(t, 2, m.Cols())

	want := [][]int{
		{242, 166},
		{166, 242},
	}
	if diff := cmp.Diff(want, m.Grid()); diff != "" {
		t.Fatalf("matrix mismatch (-want +got):\n%s", diff)
	}

	again, err := Generate(context.Background(), vocab, vocab)
	require.NoError(t, err)
	assert.Equal(t, m.Grid(), again.Grid())
}

func TestGenerateMatchesScoreForAnyWorkerCount(t *testing.T) {
	guesses := mustWords(t, "speed", "erase", "alloy", "llama", "abbey", "baggy",
		"geese", "eerie", "crane", "slate", "robot", "rebut", "sissy", "swiss", "apple")
	answers := guesses[3:11]

	base, err := Generate(context.Background(), guesses, answers, WithWorkers(1))
	require.NoError(t, err)
	for r, g := range guesses {
		for c, a := range answers {
			assert.Equal(t, Score(g, a), base.At(r, c), "%s/%s", g, a)
		}
	}

	for _, n := range []int{2, 3, 8, 64} {
		m, err := Generate(context.Background(), guesses, answers, WithWorkers(n))
		require.NoError(t, err)
		if diff := cmp.Diff(base.Grid(), m.Grid()); diff != "" {
			t.Fatalf("workers=%d differs (-1 worker +n):\n%s", n, diff)
		}
	}
}

func TestGenerateProgressCoversAllRows(t *testing.T) {
	guesses := mustWords(t, "speed", "erase", "alloy", "llama", "abbey", "baggy", "geese")
	var rows atomic.Int64
	_, err := Generate(context.Background(), guesses, guesses[:2],
		WithWorkers(2), WithProgress(func(n int) { rows.Add(int64(n)) }))
	require.NoError(t, err)
	assert.Equal(t, int64(len(guesses)), rows.Load())
}

func TestGenerateEmpty(t *testing.T) {
	m, err := Generate(context.Background(), nil, mustWords(t, "abbey"))
	require.NoError(t, err)
	assert.Equal(t, 0, m.Rows())
	assert.Equal(t, 1, m.Cols())
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Generate(ctx, mustWords(t, "abbey", "baggy"), mustWords(t, "abbey"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMatrixSliceAndBytes(t *testing.T) {
	vocab := mustWords(t, "abbey", "baggy", "speed")
	m, err := Generate(context.Background(), vocab, vocab)
	require.NoError(t, err)

	s := m.Slice([]int{2, 0}, []int{1})
	assert.Equal(t, [][]int{{int(m.At(2, 1))}, {int(m.At(0, 1))}}, s.Grid())

	back, err := MatrixFromBytes(m.Rows(), m.Cols(), m.Bytes())
	require.NoError(t, err)
	assert.Equal(t, m.Grid(), back.Grid())

	_, err = MatrixFromBytes(1, 1, []byte{243})
	assert.ErrorIs(t, err, ErrInvalidPattern)
	_, err = MatrixFromBytes(2, 2, []byte{0})
	assert.Error(t, err)
}
