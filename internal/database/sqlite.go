package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/kadgis/fieldstore/internal/config"

	_ "modernc.org/sqlite"
)

// driverName is the database/sql name registered by modernc.org/sqlite.
const driverName = "sqlite"

// Database wraps the single embedded SQLite handle shared by every repository.
type Database struct {
	DB   *sql.DB
	path string
}

// Open opens (creating if needed) the SQLite file named by cfg, applies the
// connection pragmas, and pings it so an unusable file fails here rather than
// on first query.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Database, error) {
	if cfg.Path != ":memory:" {
		if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	db, err := sql.Open(driverName, buildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite serializes writers; one connection keeps program order for the
	// single foreground caller and makes :memory: databases usable.
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxOpenConns)
	db.SetConnMaxIdleTime(0)
	db.SetConnMaxLifetime(0)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{DB: db, path: cfg.Path}, nil
}

// buildDSN renders the modernc.org/sqlite DSN with _pragma parameters so the
// pragmas apply to every connection the pool opens.
func buildDSN(cfg config.DatabaseConfig) string {
	params := url.Values{}
	params.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", cfg.BusyTimeoutMS))
	if cfg.JournalMode != "" && cfg.Path != ":memory:" {
		params.Add("_pragma", fmt.Sprintf("journal_mode(%s)", cfg.JournalMode))
	}
	params.Add("_pragma", "foreign_keys(1)")
	return "file:" + cfg.Path + "?" + params.Encode()
}

// Ping checks if the database connection is alive.
func (db *Database) Ping(ctx context.Context) error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database is not open")
	}
	return db.DB.PingContext(ctx)
}

// Close closes the underlying handle. Safe to call more than once.
func (db *Database) Close() error {
	if db == nil || db.DB == nil {
		return nil
	}
	return db.DB.Close()
}

// Path returns the file the database was opened from.
func (db *Database) Path() string {
	return db.path
}

// Version reports the embedded engine version (SELECT sqlite_version()).
func (db *Database) Version(ctx context.Context) (string, error) {
	var version string
	if err := db.DB.QueryRowContext(ctx, `SELECT sqlite_version()`).Scan(&version); err != nil {
		return "", fmt.Errorf("failed to query sqlite version: %w", err)
	}
	return version, nil
}

// Stats returns connection pool statistics.
func (db *Database) Stats() sql.DBStats {
	return db.DB.Stats()
}
