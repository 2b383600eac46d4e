// internal/matrix/cache.go
//
// Lazily loaded pattern matrix for one vocabulary.
//
// Lifecycle (monotonic once Ready):
//
//	Empty ──LoadOrBuild──▶ Building ──▶ Ready
//	  ▲                       │
//	  └──── load/build error ─┘
//
// Building first asks the store for an artifact matching the vocabulary
// fingerprint; on a miss it generates the full matrix and saves it. All
// callers arriving while another is Building wait on the same mutex and then
// see the same snapshot, so the work happens at most once per process.

package matrix

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Akari202/wordle/internal/pattern"
	"github.com/Akari202/wordle/internal/store"
	"github.com/Akari202/wordle/internal/words"
)

// State is the cache lifecycle state.
type State int32

const (
	StateEmpty State = iota
	StateBuilding
	StateReady
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateBuilding:
		return "building"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Cache owns the matrix and index for one vocabulary and one store.
type Cache struct {
	vocab   *words.Vocabulary
	store   store.Store
	genOpts []pattern.GenerateOption

	mu     sync.Mutex // serialises Empty → Ready transitions
	state  atomic.Int32
	snap   atomic.Pointer[Snapshot]
	builds atomic.Int64
}

// Option configures a Cache.
type Option func(*Cache)

// WithWorkers bounds generation parallelism (0 = GOMAXPROCS).
func WithWorkers(n int) Option {
	return func(c *Cache) { c.genOpts = append(c.genOpts, pattern.WithWorkers(n)) }
}

// WithProgress forwards generation progress (rows per finished chunk).
func WithProgress(fn func(rows int)) Option {
	return func(c *Cache) { c.genOpts = append(c.genOpts, pattern.WithProgress(fn)) }
}

// New returns an Empty cache. Nothing is read until LoadOrBuild.
func New(v *words.Vocabulary, st store.Store, opts ...Option) *Cache {
	c := &Cache{vocab: v, store: st}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Vocabulary returns the vocabulary the cache indexes.
func (c *Cache) Vocabulary() *words.Vocabulary { return c.vocab }

// State reports the current lifecycle state.
func (c *Cache) State() State { return State(c.state.Load()) }

// Builds reports how many times the full matrix has been generated.
func (c *Cache) Builds() int64 { return c.builds.Load() }

// Snapshot returns the ready snapshot without loading anything.
func (c *Cache) Snapshot() (*Snapshot, bool) {
	s := c.snap.Load()
	return s, s != nil
}

// LoadOrBuild returns the snapshot, loading or generating it on first use.
//
// If the matrix was generated but could not be saved, the snapshot is returned
// together with a *CachePersistError; the cache is Ready regardless.
// A stored artifact that is unreadable, corrupt or built for another
// vocabulary yields a *CacheLoadError and the cache stays Empty.
func (c *Cache) LoadOrBuild(ctx context.Context) (*Snapshot, error) {
	if s := c.snap.Load(); s != nil {
		return s, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if s := c.snap.Load(); s != nil {
		return s, nil
	}

	c.state.Store(int32(StateBuilding))
	fp := c.vocab.Fingerprint()

	a, err := c.store.Load(ctx, fp)
	switch {
	case err == nil:
		if err := c.validate(a, fp); err != nil {
			c.state.Store(int32(StateEmpty))
			return nil, &CacheLoadError{Location: c.store.Location(), Err: err}
		}
		log.Info().Str("store", c.store.Location()).
			Int("rows", a.Matrix.Rows()).Int("cols", a.Matrix.Cols()).
			Msg("loaded pattern matrix")
		return c.ready(a.Matrix), nil

	case errors.Is(err, store.ErrNotFound):
		return c.build(ctx, fp)

	default:
		c.state.Store(int32(StateEmpty))
		return nil, &CacheLoadError{Location: c.store.Location(), Err: err}
	}
}

// Rebuild generates the matrix regardless of what is stored, saves it and
// replaces the current snapshot. Used to recover from a CacheLoadError.
func (c *Cache) Rebuild(ctx context.Context) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snap.Load() == nil {
		c.state.Store(int32(StateBuilding))
	}
	return c.build(ctx, c.vocab.Fingerprint())
}

// build must be called with mu held.
func (c *Cache) build(ctx context.Context, fp [32]byte) (*Snapshot, error) {
	fail := func(err error) (*Snapshot, error) {
		if c.snap.Load() == nil {
			c.state.Store(int32(StateEmpty))
		}
		return nil, err
	}

	guesses, err := pattern.EncodeVocabulary(c.vocab.Guesses())
	if err != nil {
		return fail(fmt.Errorf("encode guesses: %w", err))
	}
	answers, err := pattern.EncodeVocabulary(c.vocab.Answers)
	if err != nil {
		return fail(fmt.Errorf("encode answers: %w", err))
	}

	log.Info().Int("guesses", len(guesses)).Int("answers", len(answers)).Msg("generating pattern matrix")
	start := time.Now()
	m, err := pattern.Generate(ctx, guesses, answers, c.genOpts...)
	if err != nil {
		return fail(fmt.Errorf("generate: %w", err))
	}
	c.builds.Add(1)
	log.Info().Dur("took", time.Since(start)).Msg("generated pattern matrix")

	s := c.ready(m)

	a := &store.Artifact{Fingerprint: fp, WordLength: pattern.WordLength, Matrix: m}
	if err := c.store.Save(ctx, a); err != nil {
		log.Warn().Err(err).Str("store", c.store.Location()).Msg("persist pattern matrix")
		return s, &CachePersistError{Location: c.store.Location(), Err: err}
	}
	log.Debug().Str("store", c.store.Location()).Msg("persisted pattern matrix")
	return s, nil
}

func (c *Cache) ready(m *pattern.Matrix) *Snapshot {
	s := &Snapshot{Matrix: m, Index: NewIndex(c.vocab)}
	c.snap.Store(s)
	c.state.Store(int32(StateReady))
	return s
}

// validate checks that a stored artifact lines up with the vocabulary's rows and columns.
func (c *Cache) validate(a *store.Artifact, fp [32]byte) error {
	if a.Fingerprint != fp {
		return fmt.Errorf("stale artifact: fingerprint %s does not match vocabulary", a.FingerprintHex())
	}
	if a.WordLength != pattern.WordLength {
		return fmt.Errorf("artifact word length %d, want %d", a.WordLength, pattern.WordLength)
	}
	_, guesses := c.vocab.Stats()
	if a.Matrix.Rows() != guesses || a.Matrix.Cols() != len(c.vocab.Answers) {
		return fmt.Errorf("artifact is %dx%d, vocabulary needs %dx%d",
			a.Matrix.Rows(), a.Matrix.Cols(), guesses, len(c.vocab.Answers))
	}
	return nil
}
