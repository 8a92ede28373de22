package domain

import "time"

// SessionLogEntry records one completed focus session. The daily
// ledger keeps only aggregates; the log keeps the individual sessions
// for history browsing.
type SessionLogEntry struct {
	ID              string
	StartedAt       time.Time
	EndedAt         time.Time
	DurationSeconds int
	GitBranch       string
}

// NewSessionLogEntry creates a log entry for a focus session that ran
// from start to end.
func NewSessionLogEntry(start, end time.Time, durationSeconds int, branch string) SessionLogEntry {
	return SessionLogEntry{
		ID:              generateID(),
		StartedAt:       start,
		EndedAt:         end,
		DurationSeconds: durationSeconds,
		GitBranch:       branch,
	}
}
