package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mbaylis/pomo-cli/internal/domain"
	"github.com/mbaylis/pomo-cli/internal/ports"
)

// historyRepository implements ports.HistoryRepository using SQLite.
type historyRepository struct {
	db *sql.DB
}

// newHistoryRepository creates a new history repository.
func newHistoryRepository(db *sql.DB) ports.HistoryRepository {
	return &historyRepository{db: db}
}

// UpsertDay writes one daily record, replacing any existing row for
// the same date key.
func (r *historyRepository) UpsertDay(ctx context.Context, rec domain.DailyRecord) error {
	query := `
		INSERT INTO daily_records (date, focus_seconds, completed_sessions, goal_achieved)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			focus_seconds = excluded.focus_seconds,
			completed_sessions = excluded.completed_sessions,
			goal_achieved = excluded.goal_achieved
	`

	_, err := r.db.ExecContext(ctx, query,
		rec.Date,
		rec.FocusSeconds,
		rec.CompletedSessions,
		boolToInt(rec.GoalAchieved),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert daily record: %w", err)
	}

	return nil
}

// LoadAll retrieves every persisted daily record.
func (r *historyRepository) LoadAll(ctx context.Context) ([]domain.DailyRecord, error) {
	query := `
		SELECT date, focus_seconds, completed_sessions, goal_achieved
		FROM daily_records
		ORDER BY date
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily records: %w", err)
	}
	defer rows.Close()

	return scanDailyRecords(rows)
}

// FindRange retrieves records with date keys in [from, to], inclusive.
func (r *historyRepository) FindRange(ctx context.Context, from, to string) ([]domain.DailyRecord, error) {
	query := `
		SELECT date, focus_seconds, completed_sessions, goal_achieved
		FROM daily_records
		WHERE date >= ? AND date <= ?
		ORDER BY date
	`

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily records: %w", err)
	}
	defer rows.Close()

	return scanDailyRecords(rows)
}

func scanDailyRecords(rows *sql.Rows) ([]domain.DailyRecord, error) {
	var recs []domain.DailyRecord
	for rows.Next() {
		var rec domain.DailyRecord
		var achieved int
		if err := rows.Scan(&rec.Date, &rec.FocusSeconds, &rec.CompletedSessions, &achieved); err != nil {
			return nil, fmt.Errorf("failed to scan daily record: %w", err)
		}
		rec.GoalAchieved = achieved != 0
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily records: %w", err)
	}
	return recs, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
