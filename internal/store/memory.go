// internal/store/memory.go
//
// In-memory implementation of Store.
// Used in tests and when CACHE_BACKEND=memory. State is lost on restart.
// Concurrency-safe via RWMutex.

package store

import (
	"context"
	"sync"

	"github.com/Akari202/wordle/internal/pattern"
)

type memory struct {
	mu        sync.RWMutex           // guards artifacts
	artifacts map[[32]byte]*Artifact // keyed by vocabulary fingerprint
}

// NewMemoryStore constructs an empty in-memory Store.
func NewMemoryStore() Store {
	return &memory{artifacts: make(map[[32]byte]*Artifact)}
}

// Save stores a copy of a so later mutation by the caller cannot leak in.
func (m *memory) Save(ctx context.Context, a *Artifact) error {
	cp, err := copyArtifact(a)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.artifacts[a.Fingerprint] = cp
	return nil
}

func (m *memory) Load(ctx context.Context, fingerprint [32]byte) (*Artifact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.artifacts[fingerprint]; ok {
		return a, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Location() string { return "memory" }

func copyArtifact(a *Artifact) (*Artifact, error) {
	mx, err := pattern.MatrixFromBytes(a.Matrix.Rows(), a.Matrix.Cols(), a.Matrix.Bytes())
	if err != nil {
		return nil, err
	}
	return &Artifact{Fingerprint: a.Fingerprint, WordLength: a.WordLength, Matrix: mx}, nil
}
