package matrix

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownWord  = errors.New("unknown word")
	ErrCacheLoad    = errors.New("cache load failed")
	ErrCachePersist = errors.New("cache persist failed")
)

// UnknownWordError names a word that is not in the built index.
type UnknownWordError struct {
	Word string
}

func (e *UnknownWordError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownWord, e.Word)
}

func (e *UnknownWordError) Unwrap() error { return ErrUnknownWord }

// CacheLoadError reports a stored artifact that exists but cannot be used.
// Nothing is built when it is returned; the caller decides whether to Rebuild.
type CacheLoadError struct {
	Location string
	Err      error
}

func (e *CacheLoadError) Error() string {
	return fmt.Sprintf("%s (%s): %v", ErrCacheLoad, e.Location, e.Err)
}

func (e *CacheLoadError) Is(target error) bool { return target == ErrCacheLoad }
func (e *CacheLoadError) Unwrap() error        { return e.Err }

// CachePersistError reports that a freshly built matrix could not be saved.
// It is not fatal: the snapshot returned alongside it is complete and usable.
type CachePersistError struct {
	Location string
	Err      error
}

func (e *CachePersistError) Error() string {
	return fmt.Sprintf("%s (%s): %v", ErrCachePersist, e.Location, e.Err)
}

func (e *CachePersistError) Is(target error) bool { return target == ErrCachePersist }
func (e *CachePersistError) Unwrap() error        { return e.Err }
