package ports

import "github.com/mbaylis/pomo-cli/internal/domain"

// Presenter receives fire-and-forget signals on event boundaries:
// notification, sound and title-flash dispatch. The core never waits on
// or inspects the outcome.
// This is a driven port (implemented by adapters).
type Presenter interface {
	// OnSessionComplete is fired exactly once when a countdown in the
	// given mode reaches zero.
	OnSessionComplete(mode domain.Mode)

	// OnGoalAchieved is fired exactly once per date when accumulated
	// focus time first meets the configured goal.
	OnGoalAchieved(goalHours float64)
}

// SettingsStore loads and saves the settings record.
// This is a driven port (implemented by adapters).
type SettingsStore interface {
	// Load retrieves the persisted settings, or defaults when nothing
	// valid is persisted.
	Load() (domain.Settings, error)

	// Save persists the settings.
	Save(domain.Settings) error
}
