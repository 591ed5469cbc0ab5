// Package sqlite implements the domain repositories on an SQLite database.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// Open opens (creating if necessary) the portfolio database at the given path
// and applies the schema.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single writer at a time; SQLite serializes writes anyway and a single
	// connection avoids SQLITE_BUSY under concurrent refresh workers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	return &DB{DB: db}, nil
}

// migrate creates the two portfolio relations. The schema (and the
// UNIQUE(symbol, date) constraint on price_history) is the storage contract
// every other component depends on.
func migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS portfolio (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		purchase_price REAL NOT NULL,
		purchase_date TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS price_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol TEXT NOT NULL,
		price REAL NOT NULL,
		date TEXT NOT NULL,
		UNIQUE(symbol, date)
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
