package domain

import "time"

// Mode is the current session category.
type Mode string

const (
	ModeFocus      Mode = "focus"
	ModeShortBreak Mode = "short_break"
	ModeLongBreak  Mode = "long_break"
)

// FocusSessionsPerCycle is the number of completed focus sessions that
// make up one cycle; the last session of a cycle is followed by a long
// break. This is a fixed rule of the technique, independent of how many
// progress dots the UI renders.
const FocusSessionsPerCycle = 4

// ParseMode converts a stored mode string back to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeFocus, ModeShortBreak, ModeLongBreak:
		return Mode(s), nil
	}
	return "", ErrUnknownMode
}

// Label returns a human-readable name for the mode.
func (m Mode) Label() string {
	switch m {
	case ModeShortBreak:
		return "Short Break"
	case ModeLongBreak:
		return "Long Break"
	default:
		return "Focus"
	}
}

// IsBreak reports whether the mode is one of the two break kinds.
func (m Mode) IsBreak() bool {
	return m == ModeShortBreak || m == ModeLongBreak
}

// NextAfterFocus returns the break that follows the given lifetime
// count of completed focus sessions: every 4th session earns a long
// break, the rest a short one.
func NextAfterFocus(completedFocusSessions int) Mode {
	if completedFocusSessions%FocusSessionsPerCycle == 0 {
		return ModeLongBreak
	}
	return ModeShortBreak
}

// SessionState is the countdown state machine: the current mode crossed
// with the running flag. While running, remaining time is derived from
// Anchor; while paused it is frozen at RemainingAtPause.
//
// Invariants: Running implies a non-zero Anchor; !Running implies a
// zero Anchor.
type SessionState struct {
	Mode             Mode
	Running          bool
	Anchor           time.Time
	DurationSeconds  int
	RemainingAtPause int

	// completionHandled latches after a completion has been processed
	// so repeated polls observing remaining == 0 fire side effects only
	// once. Cleared by the next SwitchMode.
	completionHandled bool
}

// NewSessionState returns the initial state: focus mode, not running,
// full configured duration on the clock.
func NewSessionState(settings Settings) *SessionState {
	duration := settings.DurationSeconds(ModeFocus)
	return &SessionState{
		Mode:             ModeFocus,
		Running:          false,
		DurationSeconds:  duration,
		RemainingAtPause: duration,
	}
}

// Remaining returns the seconds left on the countdown as observed at
// now. Paused states report the frozen value.
func (s *SessionState) Remaining(now time.Time) int {
	if !s.Running {
		return s.RemainingAtPause
	}
	return Remaining(s.DurationSeconds, s.Anchor, now)
}

// ToggleRunning flips the running flag. Starting re-derives the anchor
// so that time elapsed before the pause is preserved; pausing freezes
// the current remaining value and clears the anchor.
func (s *SessionState) ToggleRunning(now time.Time) {
	if s.Running {
		s.RemainingAtPause = Remaining(s.DurationSeconds, s.Anchor, now)
		s.Anchor = time.Time{}
		s.Running = false
		return
	}
	elapsed := s.DurationSeconds - s.RemainingAtPause
	s.Anchor = now.Add(-time.Duration(elapsed) * time.Second)
	s.Running = true
}

// ResetTimer puts the full configured duration back on the clock and
// stops the countdown.
func (s *SessionState) ResetTimer() {
	s.RemainingAtPause = s.DurationSeconds
	s.Anchor = time.Time{}
	s.Running = false
	s.completionHandled = false
}

// SwitchMode moves to the target mode with its configured duration.
// When autoStart is set the anchor is planted at now immediately, so no
// wall-clock time is lost between the decision and the first poll.
func (s *SessionState) SwitchMode(target Mode, durationSeconds int, autoStart bool, now time.Time) {
	s.Mode = target
	s.DurationSeconds = durationSeconds
	s.RemainingAtPause = durationSeconds
	s.Running = autoStart
	s.completionHandled = false
	if autoStart {
		s.Anchor = now
	} else {
		s.Anchor = time.Time{}
	}
}

// ApplySettings reloads the configured duration for the current mode
// and stops the countdown, discarding in-progress elapsed time. No
// proration is attempted.
func (s *SessionState) ApplySettings(settings Settings) {
	s.DurationSeconds = settings.DurationSeconds(s.Mode)
	s.ResetTimer()
}

// MarkCompletionHandled attempts to claim the one-shot completion
// latch. It returns true exactly once per countdown; subsequent calls
// return false until SwitchMode arms a new countdown.
func (s *SessionState) MarkCompletionHandled() bool {
	if s.completionHandled {
		return false
	}
	s.completionHandled = true
	return true
}

// CompletionHandled reports whether the current countdown's completion
// has already been processed.
func (s *SessionState) CompletionHandled() bool { return s.completionHandled }
