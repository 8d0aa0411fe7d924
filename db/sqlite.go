package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// OpenSQLite opens (or creates) the venue catalog database at path,
// enables WAL mode and runs migrations.
func OpenSQLite(path string) (*sql.DB, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
		}
	}

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// A single connection keeps :memory: databases alive across calls.
	conn.SetMaxOpenConns(1)

	if err := configureSQLite(conn); err != nil {
		return nil, closeWith(conn, err)
	}
	if err := migrateSQLite(conn); err != nil {
		return nil, closeWith(conn, fmt.Errorf("running migrations: %w", err))
	}
	return conn, nil
}

func closeWith(conn *sql.DB, err error) error {
	if closeErr := conn.Close(); closeErr != nil {
		return fmt.Errorf("%w (also failed to close: %v)", err, closeErr)
	}
	return err
}

func configureSQLite(conn *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			return fmt.Errorf("executing %s: %w", p, err)
		}
	}
	return nil
}

var sqliteMigrations = []string{
	`CREATE TABLE IF NOT EXISTS venues (
		id               TEXT PRIMARY KEY,
		position         INTEGER NOT NULL,
		name             TEXT NOT NULL,
		area             TEXT NOT NULL,
		sport            TEXT NOT NULL,
		status           TEXT NOT NULL,
		players          INTEGER NOT NULL CHECK (players >= 0),
		vibe             INTEGER NOT NULL CHECK (vibe BETWEEN 1 AND 10),
		distance_km      REAL NOT NULL CHECK (distance_km >= 0),
		x                REAL NOT NULL CHECK (x BETWEEN 0 AND 100),
		y                REAL NOT NULL CHECK (y BETWEEN 0 AND 100),
		address          TEXT NOT NULL DEFAULT '',
		courts_or_tables INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_venues_position ON venues(position)`,
}

func migrateSQLite(conn *sql.DB) error {
	for i, m := range sqliteMigrations {
		if _, err := conn.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
