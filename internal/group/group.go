// Package group partitions candidate answers by the feedback pattern a single
// guess would produce against each of them.
package group

import (
	"github.com/Akari202/wordle/internal/pattern"
)

// Map is an ordered partition of candidates keyed by pattern. Patterns appear
// in the order their first member was seen; members keep candidate order.
type Map struct {
	order   []pattern.Pattern
	buckets map[pattern.Pattern][]string
	total   int
}

// ByPattern groups candidates[i] under row[i]. row and candidates must have
// the same length; extra entries on either side are ignored.
func ByPattern(row []pattern.Pattern, candidates []string) *Map {
	n := min(len(row), len(candidates))
	m := &Map{buckets: make(map[pattern.Pattern][]string)}
	for i := 0; i < n; i++ {
		p := row[i]
		if _, ok := m.buckets[p]; !ok {
			m.order = append(m.order, p)
		}
		m.buckets[p] = append(m.buckets[p], candidates[i])
	}
	m.total = n
	return m
}

// Len is the number of distinct patterns.
func (m *Map) Len() int { return len(m.order) }

// Total is the number of grouped candidates.
func (m *Map) Total() int { return m.total }

// Patterns returns the patterns in first-seen order.
func (m *Map) Patterns() []pattern.Pattern {
	return append([]pattern.Pattern(nil), m.order...)
}

// Words returns the members of p, or nil if no candidate produced it.
func (m *Map) Words(p pattern.Pattern) []string {
	ws, ok := m.buckets[p]
	if !ok {
		return nil
	}
	return append([]string(nil), ws...)
}

// Sizes returns the size of each group in Patterns order.
func (m *Map) Sizes() []int {
	out := make([]int, len(m.order))
	for i, p := range m.order {
		out[i] = len(m.buckets[p])
	}
	return out
}

// MeanSize is the average group size, 0 for an empty map.
func (m *Map) MeanSize() float64 {
	if len(m.order) == 0 {
		return 0
	}
	return float64(m.total) / float64(len(m.order))
}

// MaxSize is the size of the largest group.
func (m *Map) MaxSize() int {
	best := 0
	for _, ws := range m.buckets {
		best = max(best, len(ws))
	}
	return best
}

// Largest returns the biggest group; ties go to the pattern seen first.
func (m *Map) Largest() (pattern.Pattern, []string, bool) {
	if len(m.order) == 0 {
		return 0, nil, false
	}
	best := m.order[0]
	for _, p := range m.order[1:] {
		if len(m.buckets[p]) > len(m.buckets[best]) {
			best = p
		}
	}
	return best, m.Words(best), true
}

// Group is one pattern and its members.
type Group struct {
	Pattern pattern.Pattern `json:"pattern"`
	Words   []string        `json:"words"`
}

// Groups lists every group in Patterns order.
func (m *Map) Groups() []Group {
	out := make([]Group, len(m.order))
	for i, p := range m.order {
		out[i] = Group{Pattern: p, Words: m.Words(p)}
	}
	return out
}
