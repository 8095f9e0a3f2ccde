// Package sqlite implements the repository interfaces on an embedded SQLite
// database.
//
// WHY A SECOND BACKEND?
// Production runs against MongoDB, but SQLite lives inside the binary as a
// single file. No server to start, which makes it the backend for local
// development (DB_DRIVER=sqlite) and for tests (":memory:").
//
// modernc.org/sqlite is a pure Go translation of SQLite, so no C compiler
// is needed and cross-compilation keeps working.
//
// DOCUMENTS AS ROWS:
// Each collection maps to one table. Nullable document fields (image,
// cloudinary_id) are nullable columns and scan through sql.NullString.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/xid"

	"github.com/sakif/sweet-memories/internal/apperror"
	"github.com/sakif/sweet-memories/internal/repository"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

var _ repository.Store = (*DB)(nil)

// DB wraps a sql.DB connection pool and implements repository.Store.
type DB struct {
	conn *sql.DB
}

// New opens the database at dbPath and runs migrations.
//
// dbPath examples:
//   - "data/sweet_memories.db" → file-based database (persistent)
//   - ":memory:"               → in-memory database, lost on close
//
// An in-memory database exists per connection, so the pool is pinned to a
// single connection in that case; otherwise every pooled connection would
// see its own empty schema.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	if dbPath == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets readers proceed while a write is in progress.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Ping checks the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite: ping: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (db *DB) Close(_ context.Context) error {
	return db.conn.Close()
}

// migrate creates the tables if they are missing.
//
// CREATE TABLE IF NOT EXISTS is idempotent, so this runs on every start.
// created_at is stored as Unix milliseconds so ORDER BY compares integers
// instead of formatted time strings.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS memories (
			id            TEXT PRIMARY KEY,
			title         TEXT NOT NULL,
			date          TEXT NOT NULL,
			description   TEXT NOT NULL,
			tag           TEXT NOT NULL,
			image         TEXT,
			cloudinary_id TEXT,
			favorite      INTEGER NOT NULL DEFAULT 0,
			created_at    INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_memories_date_created ON memories(date DESC, created_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("creating memories table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS guestbook_entries (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			message    TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_guestbook_created ON guestbook_entries(created_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("creating guestbook_entries table: %w", err)
	}

	return nil
}

// parseID validates the textual xid encoding before any query runs.
func parseID(resource, id string) (string, error) {
	parsed, err := xid.FromString(id)
	if err != nil {
		return "", apperror.ValidationFailed("id", fmt.Sprintf("invalid %s id %q", resource, id))
	}
	return parsed.String(), nil
}
