// Package store implements the SQLite-backed tag store for ftag.
//
// A store is a single database file holding files, tags, and their
// associations. Opening resolves the file's location (an explicit directory,
// an upward discovery walk, or the in-memory sentinel), creates and migrates
// the schema on first use, and prepares a statement cache that lives until
// Close. One store may be open per process at a time.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/dukaforge/ftag/internal/discover"
	"github.com/dukaforge/ftag/pkg/types"
)

// processOpen enforces the one-open-store-per-process rule. Open fails with
// ErrAlreadyOpen until the previous store is closed.
var processOpen struct {
	mu   sync.Mutex
	held bool
}

// Store is an open tag store. The zero value is not usable; call Open.
// Callers own the handle and must Close it exactly once on every exit path;
// Close on an already-closed store is a no-op.
type Store struct {
	db       *sql.DB
	stmts    *stmtCache
	config   types.Config
	location string
}

// Open resolves the store location described by cfg, opens the database, and
// runs schema migration if the store file was just created.
//
// Location resolution:
//   - cfg.Database == types.MemoryDatabase: a transient in-memory store;
//     no discovery, no directory change, fresh schema every time.
//   - cfg.Directory != "": the process changes into that directory and the
//     store file is opened there, created if absent.
//   - otherwise: discovery walks upward from the working directory; the
//     process changes into the directory containing the store file. The
//     store is never created implicitly in this mode; a failed walk returns
//     ErrStoreNotFound with the working directory unchanged.
func Open(cfg types.Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	processOpen.mu.Lock()
	defer processOpen.mu.Unlock()
	if processOpen.held {
		return nil, types.ErrAlreadyOpen
	}

	db, location, err := openDatabase(cfg)
	if err != nil {
		return nil, err
	}

	processOpen.held = true
	return &Store{
		db:       db,
		stmts:    newStmtCache(db),
		config:   cfg,
		location: location,
	}, nil
}

// openDatabase resolves the location per cfg and returns a live connection.
func openDatabase(cfg types.Config) (*sql.DB, string, error) {
	if cfg.Database == types.MemoryDatabase {
		// A named in-memory database with a shared cache: every
		// connection in the pool sees the same data, and the unique
		// name isolates repeated opens within one process.
		dsn := fmt.Sprintf("file:ftag-%s?mode=memory&cache=shared", uuid.NewString())
		db, err := connect(dsn)
		if err != nil {
			return nil, "", fmt.Errorf("open in-memory store: %w", err)
		}
		if err := migrate(db); err != nil {
			db.Close()
			return nil, "", err
		}
		return db, types.MemoryDatabase, nil
	}

	if cfg.Directory != "" {
		if err := os.Chdir(cfg.Directory); err != nil {
			return nil, "", fmt.Errorf("enter store directory: %w", err)
		}
		db, err := openOrCreate(cfg.Database)
		if err != nil {
			return nil, "", err
		}
		return db, storeLocation(cfg.Database), nil
	}

	dir, err := discover.LocateFromWorkingDir(cfg.Database)
	if err != nil {
		return nil, "", fmt.Errorf("locate store %q: %w", cfg.Database, err)
	}
	if err := os.Chdir(dir); err != nil {
		return nil, "", fmt.Errorf("enter store directory: %w", err)
	}

	// The file exists; open read-write without creating.
	db, err := connect("file:" + cfg.Database + "?mode=rw")
	if err != nil {
		return nil, "", fmt.Errorf("open store %q: %w", cfg.Database, err)
	}
	return db, storeLocation(cfg.Database), nil
}

// openOrCreate opens the named store file read-write, falling back to
// open-with-create plus schema migration when the file is absent.
func openOrCreate(name string) (*sql.DB, error) {
	db, err := connect("file:" + name + "?mode=rw")
	if err == nil {
		return db, nil
	}

	db, err = connect("file:" + name + "?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("create store %q: %w", name, err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// connect opens a connection for dsn and verifies it with a ping. The pool
// is pinned to a single connection: the store is single-threaded, and a lone
// persistent connection keeps shared-cache in-memory databases alive.
func connect(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if err := enablePragmas(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// enablePragmas sets SQLite pragmas for safety.
func enablePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	return nil
}

// migrate applies the schema inside one transaction so a crash mid-creation
// never leaves a half-built schema.
func migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer tx.Rollback()

	for _, ddl := range schemaDDL {
		if _, err := tx.Exec(ddl); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}
	return nil
}

// storeLocation returns the absolute path of the store file in the current
// directory, for diagnostics.
func storeLocation(name string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return name
	}
	return filepath.Join(cwd, name)
}

// Location returns where the open store lives: an absolute file path, or
// the in-memory sentinel for transient stores.
func (s *Store) Location() string {
	return s.location
}

// Close releases all cached statement handles, then the database handle, and
// clears the process-wide open mark. Closing an unopened or already-closed
// store is a no-op.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	stmtErr := s.stmts.closeAll()
	dbErr := s.db.Close()
	s.db = nil

	processOpen.mu.Lock()
	processOpen.held = false
	processOpen.mu.Unlock()

	if stmtErr != nil {
		return stmtErr
	}
	if dbErr != nil {
		return fmt.Errorf("close store: %w", dbErr)
	}
	return nil
}
