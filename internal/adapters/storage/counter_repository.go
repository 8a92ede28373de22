package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mbaylis/pomo-cli/internal/ports"
)

// counterRepository implements ports.CounterRepository using SQLite.
type counterRepository struct {
	db *sql.DB
}

// newCounterRepository creates a new counter repository.
func newCounterRepository(db *sql.DB) ports.CounterRepository {
	return &counterRepository{db: db}
}

// Get returns the counter value, zero if never written.
func (r *counterRepository) Get(ctx context.Context, name string) (int, error) {
	var value int
	err := r.db.QueryRowContext(ctx, "SELECT value FROM counters WHERE name = ?", name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get counter %s: %w", name, err)
	}
	return value, nil
}

// Set writes the counter value.
func (r *counterRepository) Set(ctx context.Context, name string, value int) error {
	query := `
		INSERT INTO counters (name, value) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value
	`
	if _, err := r.db.ExecContext(ctx, query, name, value); err != nil {
		return fmt.Errorf("failed to set counter %s: %w", name, err)
	}
	return nil
}
