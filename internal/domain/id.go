package domain

import "github.com/google/uuid"

// generateID returns a new unique identifier for log entries.
func generateID() string {
	return uuid.New().String()
}
