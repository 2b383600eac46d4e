package group

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akari202/wordle/internal/pattern"
)

func scoreRow(t *testing.T, guess string, candidates []string) []pattern.Pattern {
	t.Helper()
	g, err := pattern.EncodeWord(guess)
	require.NoError(t, err)
	row := make([]pattern.Pattern, len(candidates))
	for i, c := range candidates {
		a, err := pattern.EncodeWord(c)
		require.NoError(t, err)
		row[i] = pattern.Score(g, a)
	}
	return row
}

func TestByPatternPartitionsCandidates(t *testing.T) {
	candidates := []string{"slate", "crane", "trace", "crate", "baggy", "abbey", "react"}
	m := ByPattern(scoreRow(t, "crane", candidates), candidates)

	seen := map[string]int{}
	for _, g := range m.Groups() {
		require.NotEmpty(t, g.Words)
		for _, w := range g.Words {
			seen[w]++
		}
	}
	for _, c := range candidates {
		assert.Equal(t, 1, seen[c], "candidate %s", c)
	}
	assert.Equal(t, len(candidates), m.Total())

	sum := 0
	for _, s := range m.Sizes() {
		sum += s
	}
	assert.Equal(t, len(candidates), sum)
}

func TestByPatternOrdering(t *testing.T) {
	row := []pattern.Pattern{5, 7, 5, 0, 7, 5}
	words := []string{"a", "b", "c", "d", "e", "f"}
	m := ByPattern(row, words)

	assert.Equal(t, []pattern.Pattern{5, 7, 0}, m.Patterns())
	want := []Group{
		{Pattern: 5, Words: []string{"a", "c", "f"}},
		{Pattern: 7, Words: []string{"b", "e"}},
		{Pattern: 0, Words: []string{"d"}},
	}
	if diff := cmp.Diff(want, m.Groups()); diff != "" {
		t.Fatalf("groups mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []int{3, 2, 1}, m.Sizes())
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, 3, m.MaxSize())
	assert.InDelta(t, 2.0, m.MeanSize(), 1e-9)

	p, ws, ok := m.Largest()
	require.True(t, ok)
	assert.Equal(t, pattern.Pattern(5), p)
	assert.Equal(t, []string{"a", "c", "f"}, ws)
	assert.Nil(t, m.Words(100))
}

func TestLargestTieGoesToFirstSeen(t *testing.T) {
	m := ByPattern([]pattern.Pattern{9, 3, 3, 9}, []string{"a", "b", "c", "d"})
	p, _, ok := m.Largest()
	require.True(t, ok)
	assert.Equal(t, pattern.Pattern(9), p)
}

func TestEmpty(t *testing.T) {
	m := ByPattern(nil, nil)
	assert.Zero(t, m.Len())
	assert.Zero(t, m.MeanSize())
	assert.Zero(t, m.MaxSize())
	_, _, ok := m.Largest()
	assert.False(t, ok)
	assert.Empty(t, m.Groups())
}

func TestWordsReturnsCopy(t *testing.T) {
	m := ByPattern([]pattern.Pattern{1, 1}, []string{"x", "y"})
	ws := m.Words(1)
	ws[0] = "mutated"
	assert.Equal(t, []string{"x", "y"}, m.Words(1))
}
