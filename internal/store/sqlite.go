// internal/store/sqlite.go
//
// SQLite-backed matrix store.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout).
//   - Applying embedded migrations (idempotent, recorded in _migrations).
//   - Storing one matrix row per vocabulary fingerprint, checksummed.

package store

import (
	"bytes"
	"context"
	"database/sql"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/blake2b"

	"github.com/Akari202/wordle/internal/pattern"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore keeps artifacts in a pattern_matrices table.
type SQLiteStore struct {
	db  *sql.DB
	dsn string
}

// OpenSQLite opens (and creates if missing) the database at dsn and migrates it.
func OpenSQLite(dsn string) (*SQLiteStore, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db, dsn: dsn}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) Location() string { return s.dsn }

// openDB ensures the parent directory exists, then opens with busy timeout and WAL.
func openDB(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies embedded migrations in lexical order, each in its own transaction.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := migrationsFS.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// Load selects the artifact stored under fingerprint.
func (s *SQLiteStore) Load(ctx context.Context, fingerprint [32]byte) (*Artifact, error) {
	var (
		wordLen, rows, cols int
		data, checksum      []byte
	)
	err := s.db.QueryRowContext(ctx, `
        SELECT word_len, rows, cols, data, checksum
        FROM pattern_matrices
        WHERE fingerprint=?`, hex.EncodeToString(fingerprint[:]),
	).Scan(&wordLen, &rows, &cols, &data, &checksum)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query pattern_matrices: %w", err)
	}

	if sum := blake2b.Sum256(data); !bytes.Equal(sum[:], checksum) {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}
	m, err := pattern.MatrixFromBytes(rows, cols, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &Artifact{Fingerprint: fingerprint, WordLength: wordLen, Matrix: m}, nil
}

// Save upserts a under its fingerprint.
func (s *SQLiteStore) Save(ctx context.Context, a *Artifact) error {
	data := a.Matrix.Bytes()
	sum := blake2b.Sum256(data)
	_, err := s.db.ExecContext(ctx, `
        INSERT OR REPLACE INTO pattern_matrices
            (fingerprint, word_len, rows, cols, data, checksum, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.FingerprintHex(), a.WordLength, a.Matrix.Rows(), a.Matrix.Cols(),
		data, sum[:], time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert pattern_matrices: %w", err)
	}
	return nil
}
