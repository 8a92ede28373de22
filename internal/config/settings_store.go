package config

import (
	"fmt"

	"github.com/mbaylis/pomo-cli/internal/domain"
	"github.com/mbaylis/pomo-cli/internal/ports"
)

// SettingsStore adapts the TOML config file to the ports.SettingsStore
// gateway. The timer section of the config is the persisted form of the
// domain settings.
type SettingsStore struct{}

// Ensure SettingsStore implements ports.SettingsStore.
var _ ports.SettingsStore = (*SettingsStore)(nil)

// NewSettingsStore creates a new settings store.
func NewSettingsStore() *SettingsStore {
	return &SettingsStore{}
}

// Load retrieves the persisted settings. Malformed or invalid persisted
// values fall back to defaults with an error the caller may absorb.
func (s *SettingsStore) Load() (domain.Settings, error) {
	cfg, err := Load()
	if err != nil {
		return domain.DefaultSettings(), fmt.Errorf("failed to load config: %w", err)
	}
	settings := TimerToSettings(cfg.Timer)
	if err := settings.Validate(); err != nil {
		return domain.DefaultSettings(), fmt.Errorf("persisted settings invalid: %w", err)
	}
	return settings, nil
}

// Save persists the settings, preserving the non-timer config sections.
func (s *SettingsStore) Save(settings domain.Settings) error {
	cfg, err := Load()
	if err != nil {
		cfg = DefaultConfig()
	}
	cfg.Timer = SettingsToTimer(settings)
	return Save(cfg)
}

// TimerToSettings converts the config timer section to domain settings.
func TimerToSettings(t TimerConfig) domain.Settings {
	return domain.Settings{
		FocusMinutes:      t.FocusMinutes,
		ShortBreakMinutes: t.ShortBreakMinutes,
		LongBreakMinutes:  t.LongBreakMinutes,
		AutoStartBreaks:   t.AutoStartBreaks,
		AutoStartFocus:    t.AutoStartFocus,
		GoalHours:         t.GoalHours,
		CycleDisplayCount: t.CycleDisplayCount,
	}
}

// SettingsToTimer converts domain settings to the config timer section.
func SettingsToTimer(s domain.Settings) TimerConfig {
	return TimerConfig{
		FocusMinutes:      s.FocusMinutes,
		ShortBreakMinutes: s.ShortBreakMinutes,
		LongBreakMinutes:  s.LongBreakMinutes,
		AutoStartBreaks:   s.AutoStartBreaks,
		AutoStartFocus:    s.AutoStartFocus,
		GoalHours:         s.GoalHours,
		CycleDisplayCount: s.CycleDisplayCount,
	}
}
