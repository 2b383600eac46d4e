package httpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClientLimiterForgetsIdleClients(t *testing.T) {
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newClientLimiter(1)
	l.now = func() time.Time { return clock }

	l.get("10.0.0.1")
	l.get("10.0.0.2")
	assert.Equal(t, 2, l.len())

	// 10.0.0.2 stays active, 10.0.0.1 goes quiet.
	clock = clock.Add(2 * time.Minute)
	l.get("10.0.0.2")
	assert.Equal(t, 2, l.len())

	clock = clock.Add(2 * time.Minute)
	l.get("10.0.0.2")
	assert.Equal(t, 1, l.len())

	clock = clock.Add(limiterIdle + limiterSweep)
	l.get("10.0.0.3")
	assert.Equal(t, 1, l.len())
}

func TestClientLimiterKeepsBudgetWhileActive(t *testing.T) {
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newClientLimiter(1)
	l.now = func() time.Time { return clock }

	first := l.get("10.0.0.1")
	clock = clock.Add(limiterSweep)
	assert.Same(t, first, l.get("10.0.0.1"))
}
