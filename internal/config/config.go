// internal/config/config.go
//
// Process configuration.
// Values come from the environment, after .env has been loaded with godotenv.
// CLI flags override individual fields after Load returns.

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/Akari202/wordle/internal/store"
	"github.com/Akari202/wordle/internal/words"
)

// Cache backends accepted by CACHE_BACKEND.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

var ErrUnknownBackend = errors.New("unknown cache backend")

// Config is everything the commands need.
type Config struct {
	Port         string
	LogLevel     zerolog.Level
	Words        words.Paths
	CacheBackend string
	CachePath    string
	GenWorkers   int
	DailySalt    string
	AdminSecret  string
	RateLimit    float64 // requests per second per client, 0 = off
	ClientOrigin string
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the environment only.
func FromEnv() (*Config, error) {
	c := &Config{
		Port: getEnv("PORT", "5175"),
		Words: words.Paths{
			JSON:    os.Getenv("WORDS_FILE"),
			Answers: os.Getenv("WORDS_ANSWERS_FILE"),
			Allowed: os.Getenv("WORDS_ALLOWED_FILE"),
		},
		CacheBackend: strings.ToLower(getEnv("CACHE_BACKEND", BackendFile)),
		CachePath:    os.Getenv("CACHE_PATH"),
		DailySalt:    getEnv("DAILY_SALT", "wordle-daily"),
		AdminSecret:  os.Getenv("ADMIN_JWT_SECRET"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
	}

	lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	c.LogLevel = lvl

	if c.GenWorkers, err = envInt("GEN_WORKERS", 0); err != nil {
		return nil, err
	}
	if c.GenWorkers < 0 {
		return nil, fmt.Errorf("GEN_WORKERS: must not be negative, got %d", c.GenWorkers)
	}
	if v := os.Getenv("RATE_LIMIT"); v != "" {
		if c.RateLimit, err = strconv.ParseFloat(v, 64); err != nil || c.RateLimit < 0 {
			return nil, fmt.Errorf("RATE_LIMIT: invalid value %q", v)
		}
	}

	if c.CachePath == "" {
		c.CachePath = DefaultCachePath(c.CacheBackend)
	}
	switch c.CacheBackend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, c.CacheBackend)
	}
	return c, nil
}

// DefaultCachePath is where a backend keeps its artifact when CACHE_PATH is unset.
func DefaultCachePath(backend string) string {
	switch backend {
	case BackendSQLite:
		return "./data/patterns.db"
	case BackendMemory:
		return ""
	default:
		return "./data/pattern_matrix.bin"
	}
}

// OpenStore constructs the configured matrix store. The returned closer must
// be called on shutdown; it is a no-op for backends without resources.
func (c *Config) OpenStore() (store.Store, io.Closer, error) {
	switch c.CacheBackend {
	case BackendMemory:
		return store.NewMemoryStore(), nopCloser{}, nil
	case BackendSQLite:
		s, err := store.OpenSQLite(c.CachePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, s, nil
	case BackendFile:
		return store.NewFileStore(c.CachePath), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, c.CacheBackend)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return n, nil
}
