// Package ports defines the interfaces (driven and driving ports)
// between the tracker core and external infrastructure, following
// hexagonal architecture principles.
package ports

import (
	"context"
	"time"

	"github.com/mbaylis/pomo-cli/internal/domain"
)

// HistoryRepository persists the per-date ledger.
// This is a driven port (implemented by adapters).
type HistoryRepository interface {
	// UpsertDay writes one daily record, replacing any existing row
	// for the same date key.
	UpsertDay(ctx context.Context, rec domain.DailyRecord) error

	// LoadAll retrieves every persisted daily record.
	LoadAll(ctx context.Context) ([]domain.DailyRecord, error)

	// FindRange retrieves records with date keys in [from, to],
	// inclusive, ordered by date.
	FindRange(ctx context.Context, from, to string) ([]domain.DailyRecord, error)
}

// SessionLogRepository persists individual completed focus sessions.
// This is a driven port (implemented by adapters).
type SessionLogRepository interface {
	// Append writes one completed session.
	Append(ctx context.Context, entry domain.SessionLogEntry) error

	// FindRecent retrieves entries that ended at or after since,
	// newest first.
	FindRecent(ctx context.Context, since time.Time) ([]domain.SessionLogEntry, error)
}

// CounterRepository persists named lifetime counters, currently just
// the completed-focus-session cycle counter.
// This is a driven port (implemented by adapters).
type CounterRepository interface {
	// Get returns the counter value, zero if never written.
	Get(ctx context.Context, name string) (int, error)

	// Set writes the counter value.
	Set(ctx context.Context, name string, value int) error
}

// Storage is the combined persistence gateway.
// This is a driven port (implemented by adapters).
type Storage interface {
	// History provides access to the daily ledger records.
	History() HistoryRepository

	// SessionLog provides access to the completed-session log.
	SessionLog() SessionLogRepository

	// Counters provides access to lifetime counters.
	Counters() CounterRepository

	// Wipe removes all persisted history, log entries and counters.
	Wipe(ctx context.Context) error

	// Close closes the storage connection.
	Close() error

	// Migrate runs database migrations.
	Migrate() error
}
