// Package storage provides SQLite implementations of the storage ports.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mbaylis/pomo-cli/internal/ports"
	_ "modernc.org/sqlite"
)

// sqliteStorage implements the ports.Storage interface using SQLite.
type sqliteStorage struct {
	db          *sql.DB
	historyRepo ports.HistoryRepository
	logRepo     ports.SessionLogRepository
	counterRepo ports.CounterRepository
}

// Ensure sqliteStorage implements ports.Storage.
var _ ports.Storage = (*sqliteStorage)(nil)

// New creates a new SQLite storage instance.
func New(dbPath string) (ports.Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	storage := &sqliteStorage{
		db:          db,
		historyRepo: newHistoryRepository(db),
		logRepo:     newSessionLogRepository(db),
		counterRepo: newCounterRepository(db),
	}

	if err := storage.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return storage, nil
}

// NewMemory creates a new in-memory SQLite storage instance for testing.
func NewMemory() (ports.Storage, error) {
	return New(":memory:")
}

// History returns the daily ledger repository.
func (s *sqliteStorage) History() ports.HistoryRepository {
	return s.historyRepo
}

// SessionLog returns the completed-session log repository.
func (s *sqliteStorage) SessionLog() ports.SessionLogRepository {
	return s.logRepo
}

// Counters returns the lifetime counter repository.
func (s *sqliteStorage) Counters() ports.CounterRepository {
	return s.counterRepo
}

// Wipe removes all persisted history, log entries and counters.
func (s *sqliteStorage) Wipe(ctx context.Context) error {
	for _, table := range []string{"daily_records", "session_log", "counters"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to wipe %s: %w", table, err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *sqliteStorage) Close() error {
	return s.db.Close()
}

// Migrate creates the database schema.
func (s *sqliteStorage) Migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS daily_records (
		date TEXT PRIMARY KEY,
		focus_seconds INTEGER NOT NULL DEFAULT 0,
		completed_sessions INTEGER NOT NULL DEFAULT 0,
		goal_achieved INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS session_log (
		id TEXT PRIMARY KEY,
		started_at DATETIME NOT NULL,
		ended_at DATETIME NOT NULL,
		duration_seconds INTEGER NOT NULL,
		git_branch TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_session_log_ended ON session_log(ended_at);

	CREATE TABLE IF NOT EXISTS counters (
		name TEXT PRIMARY KEY,
		value INTEGER NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}
