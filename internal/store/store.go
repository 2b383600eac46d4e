// internal/store/store.go
//
// Persistence for pattern matrix artifacts.
// A Store keeps the fully generated guess×answer matrix so later runs skip
// generation. Backends:
//   - file:   a single binary blob (file.go)
//   - sqlite: one row per vocabulary fingerprint (sqlite.go)
//   - memory: process-local map, for tests and throwaway runs (memory.go)

package store

import (
	"context"
	"encoding/hex"
	"errors"

	"github.com/Akari202/wordle/internal/pattern"
)

var (
	// ErrNotFound means no artifact is stored yet.
	ErrNotFound = errors.New("artifact not found")
	// ErrCorrupt means an artifact exists but cannot be trusted.
	ErrCorrupt = errors.New("artifact corrupt")
)

// Artifact is a stored matrix plus the vocabulary fingerprint it was built for.
type Artifact struct {
	Fingerprint [32]byte
	WordLength  int
	Matrix      *pattern.Matrix
}

// FingerprintHex renders the fingerprint for logs and keys.
func (a *Artifact) FingerprintHex() string { return hex.EncodeToString(a.Fingerprint[:]) }

// Store defines the persistence interface for matrix artifacts.
type Store interface {
	// Load returns the artifact for the given vocabulary fingerprint.
	// Backends holding a single artifact may return one with a different
	// fingerprint; callers must compare. Returns ErrNotFound or ErrCorrupt
	// (possibly wrapped).
	Load(ctx context.Context, fingerprint [32]byte) (*Artifact, error)

	// Save persists a, replacing any artifact stored under the same key.
	Save(ctx context.Context, a *Artifact) error

	// Location describes where artifacts live (path, DSN, "memory").
	Location() string
}
