package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

const (
	pragmaForeignKeysOn  = `PRAGMA foreign_keys=ON`
	pragmaJournalModeWAL = `PRAGMA journal_mode=WAL`
	pragmaBusyTimeout    = `PRAGMA busy_timeout=5000`
)

// Store owns the single writer connection to the ledger file. Every
// repository and aggregate operation serializes through mu, so concurrent
// callers never interleave statements on the shared connection.
type Store struct {
	mu   sync.Mutex
	db   *sql.DB
	path string
}

// Open establishes the ledger connection at path, applies the SQLite
// pragmas, and brings the schema up to date. Safe to call on every process
// start, including against a file populated by a prior run. There is no
// default location; the caller always names the file.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrStorageInit)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("%w: create parent dir: %v", ErrStorageInit, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrStorageInit, path, err)
	}

	// SQLite supports one writer at a time; a second pooled connection
	// would only trade SQLITE_BUSY errors with the first.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := configureSQLite(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", ErrStorageInit, err)
	}

	if err := RunMigrations(db, DefaultMigrations()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", ErrStorageInit, err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying connection. The store is unusable afterward.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying sql.DB for direct queries. Statements issued
// through it bypass the store's serialization; prefer the Store methods.
func (s *Store) DB() *sql.DB {
	if s == nil {
		return nil
	}
	return s.db
}

// Path returns the ledger file location this store was opened with.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

func configureSQLite(db *sql.DB) error {
	pragmas := []string{pragmaForeignKeysOn, pragmaJournalModeWAL, pragmaBusyTimeout}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("apply %s: %w", stmt, err)
		}
	}
	return nil
}
