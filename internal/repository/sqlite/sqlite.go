// Package sqlite implements the repository interfaces on an embedded SQLite
// database (modernc.org/sqlite - a pure Go translation of SQLite, no CGo,
// so cross-compilation stays painless).
//
// The default DSN is ":memory:": the whole collection lives and dies with
// the process, which is exactly the persistence model this service promises.
// A file path can be supplied instead for deployments that want durability.
//
// WHY A DATABASE FOR IN-MEMORY STATE?
// The stores hold process-wide mutable state hit by concurrent requests.
// database/sql serializes each statement, the UNIQUE(username) constraint
// closes the duplicate-registration race, and AUTOINCREMENT hands out
// sequential IDs without a hand-rolled counter + mutex.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	// Blank import: the driver registers itself with database/sql under the
	// name "sqlite" in its init().
	_ "modernc.org/sqlite"
)

// InMemoryDSN is the data source for a store that vanishes with the process.
const InMemoryDSN = ":memory:"

// DB wraps a sql.DB connection pool and provides the user and article
// repository methods. It is constructed once at process start and handed to
// the services - never ambient package-level state.
type DB struct {
	conn *sql.DB
}

// New opens the database, verifies the connection, and creates the schema.
//
// dsn examples:
//   - ":memory:"          → in-memory store (default; lost on close)
//   - "data/articles.db"  → file-backed store
func New(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// An in-memory SQLite database exists per connection. The pool must be
	// pinned to a single connection or each pooled connection would see its
	// own empty database.
	conn.SetMaxOpenConns(1)

	// sql.Open is lazy; Ping forces a real connection so a bad path fails
	// here instead of on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. For an in-memory store this discards
// every record, so call it only at shutdown.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps this safe to
// run against an existing file-backed database.
//
// AUTOINCREMENT (as opposed to plain INTEGER PRIMARY KEY) guarantees SQLite
// never hands out a previously used rowid - deleted article IDs stay dead,
// which is an invariant of this API.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			username      TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    DATETIME NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS articles (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			title      TEXT NOT NULL,
			content    TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL,
			updated_at DATETIME
		);
	`)
	if err != nil {
		return fmt.Errorf("creating articles table: %w", err)
	}

	return nil
}

// resetTable empties a table and rewinds its AUTOINCREMENT counter so the
// next insert starts from ID 1 again. Shared by the Reset methods.
func (db *DB) resetTable(table string) error {
	if _, err := db.conn.Exec(`DELETE FROM ` + table); err != nil {
		return fmt.Errorf("sqlite: clearing %s: %w", table, err)
	}
	// sqlite_sequence only exists once the first AUTOINCREMENT insert has
	// happened; resetting an untouched store is a no-op.
	if _, err := db.conn.Exec(`DELETE FROM sqlite_sequence WHERE name = ?`, table); err != nil &&
		!strings.Contains(err.Error(), "no such table") {
		return fmt.Errorf("sqlite: resetting %s counter: %w", table, err)
	}
	return nil
}
