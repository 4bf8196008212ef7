// Package storage keeps a history of completed scans in a SQLite database
// under <root>/.jdisco/jdisco.db. Full scan results are stored as compressed
// JSON blobs next to a few queryable summary columns.
package storage

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const currentSchemaVersion = 1

// DB is an open scan-history database.
type DB struct {
	conn   *sql.DB
	logger *slog.Logger
	dbPath string
}

// Exists reports whether a history database has been created under root.
// It never creates state, so read-only callers can check before Open.
func Exists(root string) bool {
	return fileExists(filepath.Join(root, ".jdisco", "jdisco.db"))
}

// Open opens or creates the history database at <root>/.jdisco/jdisco.db.
func Open(root string, logger *slog.Logger) (*DB, error) {
	stateDir := filepath.Join(root, ".jdisco")
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .jdisco directory: %w", err)
	}

	dbPath := filepath.Join(stateDir, "jdisco.db")
	dbExists := fileExists(dbPath)

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	db := &DB{conn: conn, logger: logger, dbPath: dbPath}

	if !dbExists {
		logger.Info("Creating new history database", "path", dbPath)
	}
	if err := db.initializeSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.dbPath
}

// WithTx runs fn inside a transaction, committing on nil and rolling back on
// error.
func (db *DB) WithTx(fn func(tx *sql.Tx) error) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction failed: %w (rollback also failed: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (db *DB) initializeSchema() error {
	return db.WithTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY,
				applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)`); err != nil {
			return fmt.Errorf("failed to create schema_version table: %w", err)
		}

		if _, err := tx.Exec(`
			CREATE TABLE IF NOT EXISTS scans (
				scan_id TEXT PRIMARY KEY,
				project TEXT NOT NULL,
				root TEXT NOT NULL,
				fingerprint TEXT NOT NULL,
				started_at TIMESTAMP NOT NULL,
				finished_at TIMESTAMP NOT NULL,
				files_scanned INTEGER NOT NULL,
				entities INTEGER NOT NULL,
				business_components INTEGER NOT NULL,
				jsf_pages INTEGER NOT NULL,
				db_configs INTEGER NOT NULL,
				business_rule_methods INTEGER NOT NULL,
				model BLOB NOT NULL
			)`); err != nil {
			return fmt.Errorf("failed to create scans table: %w", err)
		}

		if _, err := tx.Exec(`
			CREATE INDEX IF NOT EXISTS idx_scans_project
			ON scans(project, finished_at DESC)`); err != nil {
			return fmt.Errorf("failed to create scans index: %w", err)
		}

		if _, err := tx.Exec(`
			INSERT OR IGNORE INTO schema_version (version) VALUES (?)`,
			currentSchemaVersion); err != nil {
			return fmt.Errorf("failed to record schema version: %w", err)
		}
		return nil
	})
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
