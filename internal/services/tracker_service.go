package services

import (
	"context"
	"log"
	"time"

	"github.com/mbaylis/pomo-cli/internal/domain"
	"github.com/mbaylis/pomo-cli/internal/ports"
)

// cycleCounterName is the persisted name of the lifetime
// completed-focus-session counter.
const cycleCounterName = "completed_focus_sessions"

// TrackerService owns the countdown state machine, the cycle counter
// and the daily ledger, and drives all side effects: ledger accounting,
// persistence writes and presenter signals. All mutation happens on the
// single poll/event callback path, so the service carries no locking.
type TrackerService struct {
	clock         domain.Clock
	storage       ports.Storage
	settingsStore ports.SettingsStore
	presenter     ports.Presenter
	gitDetector   ports.GitDetector
	workingDir    string

	settings domain.Settings
	state    *domain.SessionState
	ledger   *domain.Ledger

	// cycleCount is the lifetime number of completed focus sessions.
	// Every 4th completion routes to a long break.
	cycleCount int

	// lastAccrual is the accounting anchor: focus seconds between it
	// and "now" are attributed to the ledger on each tick.
	lastAccrual time.Time

	// lastRemaining is the last observed remaining value, used to clamp
	// against a backwards system clock.
	lastRemaining int

	// sessionStart marks when the current focus countdown first began
	// running, for the session log.
	sessionStart time.Time
}

// NewTrackerService builds a tracker from persisted settings, history
// and counters. Load failures are absorbed: the tracker starts from
// defaults or an empty ledger and logs the problem.
func NewTrackerService(ctx context.Context, clock domain.Clock, storage ports.Storage, settingsStore ports.SettingsStore, presenter ports.Presenter, gitDetector ports.GitDetector, workingDir string) *TrackerService {
	t := &TrackerService{
		clock:         clock,
		storage:       storage,
		settingsStore: settingsStore,
		presenter:     presenter,
		gitDetector:   gitDetector,
		workingDir:    workingDir,
		ledger:        domain.NewLedger(),
	}

	settings, err := settingsStore.Load()
	if err != nil {
		log.Printf("settings load failed, using defaults: %v", err)
		settings = domain.DefaultSettings()
	}
	t.settings = settings
	t.state = domain.NewSessionState(settings)
	t.lastRemaining = t.state.DurationSeconds

	recs, err := storage.History().LoadAll(ctx)
	if err != nil {
		log.Printf("history load failed, starting empty: %v", err)
	} else {
		t.ledger.Load(recs)
	}

	count, err := storage.Counters().Get(ctx, cycleCounterName)
	if err != nil {
		log.Printf("cycle counter load failed, starting at zero: %v", err)
		count = 0
	}
	t.cycleCount = count

	return t
}

// Snapshot is a read-only view of the tracker for rendering.
type Snapshot struct {
	Mode             domain.Mode
	Running          bool
	RemainingSeconds int
	DurationSeconds  int
	CycleCount       int
	Today            domain.DailyRecord
	Settings         domain.Settings
}

// Snapshot returns the current tracker state as observed at the
// clock's now.
func (t *TrackerService) Snapshot() Snapshot {
	now := t.clock.Now()
	today, _ := t.ledger.Day(domain.DateKey(now))
	remaining := t.state.Remaining(now)
	if t.state.Running {
		remaining = domain.ClampRemaining(remaining, t.lastRemaining)
	}
	return Snapshot{
		Mode:             t.state.Mode,
		Running:          t.state.Running,
		RemainingSeconds: remaining,
		DurationSeconds:  t.state.DurationSeconds,
		CycleCount:       t.cycleCount,
		Today:            today,
		Settings:         t.settings,
	}
}

// Settings returns the active settings.
func (t *TrackerService) Settings() domain.Settings { return t.settings }

// Tick is the poll path: it accounts elapsed focus time to the ledger,
// re-derives remaining time from the anchor and handles completion.
// Besides the periodic poll it must be called immediately when the
// process regains the foreground, so a deadline that passed while
// suspended is recognized in a single catch-up pass rather than by
// replaying missed ticks.
func (t *TrackerService) Tick(ctx context.Context) {
	if !t.state.Running {
		return
	}
	now := t.clock.Now()

	// Ledger accounting runs before completion handling so the final
	// partial second of a focus session is never lost.
	t.accrueFocus(ctx, now)

	remaining := domain.ClampRemaining(t.state.Remaining(now), t.lastRemaining)
	t.lastRemaining = remaining

	if domain.Completed(remaining) && !t.state.CompletionHandled() {
		t.handleCompletion(ctx, now)
	}
}

// accrueFocus attributes whole seconds elapsed since the last
// accounting point to the ledger, splitting across midnight so each
// second lands on the day it was earned. Accrual is capped at the
// countdown length: time suspended past the deadline belongs to no
// session.
func (t *TrackerService) accrueFocus(ctx context.Context, now time.Time) {
	if t.state.Mode != domain.ModeFocus || !t.state.Running {
		return
	}
	delta := int(now.Sub(t.lastAccrual) / time.Second)
	if delta <= 0 {
		return
	}
	if limit := domain.Remaining(t.state.DurationSeconds, t.state.Anchor, t.lastAccrual); delta > limit {
		delta = limit
	}
	if delta <= 0 {
		return
	}

	for _, slice := range domain.SplitAcrossDays(t.lastAccrual, delta) {
		t.ledger.AddFocusSeconds(slice.Date, slice.Seconds)
		if t.ledger.EvaluateGoal(slice.Date, t.settings.GoalHours) {
			t.presenter.OnGoalAchieved(t.settings.GoalHours)
		}
		t.persistDay(ctx, slice.Date)
	}
	t.lastAccrual = t.lastAccrual.Add(time.Duration(delta) * time.Second)
}

// handleCompletion processes a countdown that reached zero: exactly
// once per countdown it fires the presenter, updates the ledger and
// cycle counter for focus sessions, and switches to the next mode.
func (t *TrackerService) handleCompletion(ctx context.Context, now time.Time) {
	if !t.state.MarkCompletionHandled() {
		return
	}
	mode := t.state.Mode

	if mode == domain.ModeFocus {
		t.cycleCount++
		key := domain.DateKey(now)
		t.ledger.AddCompletedSession(key)
		t.persistDay(ctx, key)
		t.persistCycleCount(ctx)
		t.appendLogEntry(ctx, now)
		t.presenter.OnSessionComplete(mode)
		t.switchTo(ctx, domain.NextAfterFocus(t.cycleCount), t.settings.AutoStartBreaks, now)
		return
	}

	t.presenter.OnSessionComplete(mode)
	t.switchTo(ctx, domain.ModeFocus, t.settings.AutoStartFocus, now)
}

// switchTo moves the state machine to target and resets the
// per-countdown bookkeeping.
func (t *TrackerService) switchTo(ctx context.Context, target domain.Mode, autoStart bool, now time.Time) {
	t.state.SwitchMode(target, t.settings.DurationSeconds(target), autoStart, now)
	t.lastRemaining = t.state.DurationSeconds
	t.sessionStart = time.Time{}
	if autoStart {
		t.lastAccrual = now
		if target == domain.ModeFocus {
			t.sessionStart = now
		}
	}
}

// ToggleRunning flips the countdown between running and paused.
func (t *TrackerService) ToggleRunning(ctx context.Context) {
	now := t.clock.Now()
	if t.state.Running {
		t.accrueFocus(ctx, now)
		t.state.ToggleRunning(now)
		t.lastRemaining = t.state.RemainingAtPause
		return
	}
	fresh := t.state.RemainingAtPause == t.state.DurationSeconds
	t.state.ToggleRunning(now)
	t.lastRemaining = t.state.Remaining(now)
	t.lastAccrual = now
	if t.state.Mode == domain.ModeFocus && fresh {
		t.sessionStart = now
	}
}

// ResetTimer puts the full configured duration back on the clock for
// the current mode and stops the countdown.
func (t *TrackerService) ResetTimer(ctx context.Context) {
	now := t.clock.Now()
	if t.state.Running {
		t.accrueFocus(ctx, now)
	}
	t.state.ResetTimer()
	t.lastRemaining = t.state.DurationSeconds
	t.sessionStart = time.Time{}
}

// SwitchMode manually moves to the target mode.
func (t *TrackerService) SwitchMode(ctx context.Context, target domain.Mode, autoStart bool) {
	now := t.clock.Now()
	if t.state.Running {
		t.accrueFocus(ctx, now)
	}
	t.switchTo(ctx, target, autoStart, now)
}

// UpdateSettings validates and applies new settings. The countdown for
// the current mode is reloaded and stopped, discarding in-progress
// elapsed time; no proration. A changed goal re-derives today's goal
// latch.
func (t *TrackerService) UpdateSettings(ctx context.Context, s domain.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	now := t.clock.Now()
	if t.state.Running {
		t.accrueFocus(ctx, now)
	}

	goalChanged := s.GoalHours != t.settings.GoalHours
	t.settings = s
	t.state.ApplySettings(s)
	t.lastRemaining = t.state.DurationSeconds
	t.sessionStart = time.Time{}

	if goalChanged {
		key := domain.DateKey(now)
		t.ledger.ResetGoal(key, s.GoalHours)
		t.persistDay(ctx, key)
	}

	if err := t.settingsStore.Save(s); err != nil {
		log.Printf("settings save failed: %v", err)
	}
	return nil
}

// History returns all ledger records ordered by date.
func (t *TrackerService) History() []domain.DailyRecord {
	return t.ledger.Days()
}

// RecentSessions returns completed focus sessions from the log that
// ended at or after since.
func (t *TrackerService) RecentSessions(ctx context.Context, since time.Time) ([]domain.SessionLogEntry, error) {
	return t.storage.SessionLog().FindRecent(ctx, since)
}

// Wipe clears all persisted history and resets the cycle counter. The
// in-flight countdown is left alone.
func (t *TrackerService) Wipe(ctx context.Context) error {
	if err := t.storage.Wipe(ctx); err != nil {
		return err
	}
	t.ledger = domain.NewLedger()
	t.cycleCount = 0
	return nil
}

func (t *TrackerService) persistDay(ctx context.Context, key string) {
	rec, ok := t.ledger.Day(key)
	if !ok {
		return
	}
	if err := t.storage.History().UpsertDay(ctx, rec); err != nil {
		log.Printf("history save failed for %s: %v", key, err)
	}
}

func (t *TrackerService) persistCycleCount(ctx context.Context) {
	if err := t.storage.Counters().Set(ctx, cycleCounterName, t.cycleCount); err != nil {
		log.Printf("cycle counter save failed: %v", err)
	}
}

// appendLogEntry records a completed focus session, tagged with the
// current git branch when the working directory is inside a repo.
func (t *TrackerService) appendLogEntry(ctx context.Context, now time.Time) {
	start := t.sessionStart
	if start.IsZero() {
		start = now.Add(-time.Duration(t.state.DurationSeconds) * time.Second)
	}

	branch := ""
	if t.gitDetector != nil && t.gitDetector.IsAvailable() {
		if info, err := t.gitDetector.Detect(ctx, t.workingDir); err == nil && info != nil {
			branch = info.Branch
		}
	}

	entry := domain.NewSessionLogEntry(start, now, t.state.DurationSeconds, branch)
	if err := t.storage.SessionLog().Append(ctx, entry); err != nil {
		log.Printf("session log save failed: %v", err)
	}
}
