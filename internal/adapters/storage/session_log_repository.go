package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mbaylis/pomo-cli/internal/domain"
	"github.com/mbaylis/pomo-cli/internal/ports"
)

// sessionLogRepository implements ports.SessionLogRepository using SQLite.
type sessionLogRepository struct {
	db *sql.DB
}

// newSessionLogRepository creates a new session log repository.
func newSessionLogRepository(db *sql.DB) ports.SessionLogRepository {
	return &sessionLogRepository{db: db}
}

// Append writes one completed session.
func (r *sessionLogRepository) Append(ctx context.Context, entry domain.SessionLogEntry) error {
	query := `
		INSERT INTO session_log (id, started_at, ended_at, duration_seconds, git_branch)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.StartedAt,
		entry.EndedAt,
		entry.DurationSeconds,
		entry.GitBranch,
	)
	if err != nil {
		return fmt.Errorf("failed to append session log entry: %w", err)
	}

	return nil
}

// FindRecent retrieves entries that ended at or after since, newest first.
func (r *sessionLogRepository) FindRecent(ctx context.Context, since time.Time) ([]domain.SessionLogEntry, error) {
	query := `
		SELECT id, started_at, ended_at, duration_seconds, git_branch
		FROM session_log
		WHERE ended_at >= ?
		ORDER BY ended_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query session log: %w", err)
	}
	defer rows.Close()

	var entries []domain.SessionLogEntry
	for rows.Next() {
		var entry domain.SessionLogEntry
		var branch sql.NullString
		if err := rows.Scan(&entry.ID, &entry.StartedAt, &entry.EndedAt, &entry.DurationSeconds, &branch); err != nil {
			return nil, fmt.Errorf("failed to scan session log entry: %w", err)
		}
		entry.GitBranch = branch.String
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate session log: %w", err)
	}

	return entries, nil
}
