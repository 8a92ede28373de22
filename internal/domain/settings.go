package domain

// Settings holds the user-tunable timer configuration. All durations
// are in whole minutes and must be positive.
type Settings struct {
	FocusMinutes      int
	ShortBreakMinutes int
	LongBreakMinutes  int
	AutoStartBreaks   bool
	AutoStartFocus    bool
	GoalHours         float64
	CycleDisplayCount int
}

// DefaultSettings returns the standard pomodoro configuration.
func DefaultSettings() Settings {
	return Settings{
		FocusMinutes:      25,
		ShortBreakMinutes: 5,
		LongBreakMinutes:  15,
		AutoStartBreaks:   false,
		AutoStartFocus:    false,
		GoalHours:         4.0,
		CycleDisplayCount: 4,
	}
}

// Validate rejects non-positive durations, goal hours and display
// counts. Called at the settings-update boundary; on error the prior
// settings stay in effect.
func (s Settings) Validate() error {
	if s.FocusMinutes <= 0 || s.ShortBreakMinutes <= 0 || s.LongBreakMinutes <= 0 {
		return ErrInvalidSettings
	}
	if s.GoalHours <= 0 || s.CycleDisplayCount <= 0 {
		return ErrInvalidSettings
	}
	return nil
}

// DurationSeconds returns the configured countdown length for a mode.
func (s Settings) DurationSeconds(mode Mode) int {
	switch mode {
	case ModeShortBreak:
		return s.ShortBreakMinutes * 60
	case ModeLongBreak:
		return s.LongBreakMinutes * 60
	default:
		return s.FocusMinutes * 60
	}
}

// GoalSeconds returns the daily goal expressed in seconds.
func (s Settings) GoalSeconds() int {
	return int(s.GoalHours * 3600)
}
