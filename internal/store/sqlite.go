// ABOUTME: SQLite implementation of the audit ledger
// ABOUTME: Uses modernc.org/sqlite by default or mattn/go-sqlite3 when configured

package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// Supported driver names, as registered with database/sql.
const (
	DriverModernc = "sqlite"
	DriverCgo     = "sqlite3"
)

// MemoryPath keeps the ledger in memory for the life of the process.
const MemoryPath = ":memory:"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens the ledger at path with the modernc driver.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	return OpenSQLiteStore(DriverModernc, path)
}

// OpenSQLiteStore opens the ledger with the named driver. Parent directories
// of file paths are created if needed and the schema is applied.
func OpenSQLiteStore(driver, path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	if driver != DriverModernc && driver != DriverCgo {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}

	memory := path == MemoryPath || strings.HasPrefix(path, "file::memory:")
	if !memory {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open(driver, path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Each connection to :memory: is its own database.
	if memory {
		db.SetMaxOpenConns(1)
	} else if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("audit ledger initialized", "driver", driver, "path", path)
	return s, nil
}

func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS audit_log (
			audit_id    TEXT PRIMARY KEY,
			actor       TEXT NOT NULL,
			action      TEXT NOT NULL,
			screen      TEXT NOT NULL,
			target_id   TEXT NOT NULL,
			ts          TEXT NOT NULL,
			detail_json TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_audit_log_ts ON audit_log(ts);
		CREATE INDEX IF NOT EXISTS idx_audit_log_screen ON audit_log(screen, ts);
		CREATE INDEX IF NOT EXISTS idx_audit_log_target ON audit_log(screen, target_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
