package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbaylis/pomo-cli/internal/adapters/storage"
	"github.com/mbaylis/pomo-cli/internal/domain"
	"github.com/mbaylis/pomo-cli/internal/ports"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// fakePresenter records fired signals.
type fakePresenter struct {
	completed []domain.Mode
	goals     []float64
}

func (p *fakePresenter) OnSessionComplete(mode domain.Mode) {
	p.completed = append(p.completed, mode)
}

func (p *fakePresenter) OnGoalAchieved(goalHours float64) {
	p.goals = append(p.goals, goalHours)
}

// fakeSettingsStore serves canned settings and records saves.
type fakeSettingsStore struct {
	settings domain.Settings
	saved    []domain.Settings
}

func (s *fakeSettingsStore) Load() (domain.Settings, error) { return s.settings, nil }

func (s *fakeSettingsStore) Save(settings domain.Settings) error {
	s.saved = append(s.saved, settings)
	return nil
}

func setupTracker(t *testing.T, settings domain.Settings) (*TrackerService, *fakeClock, *fakePresenter, ports.Storage) {
	t.Helper()

	store, err := storage.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	clock := &fakeClock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)}
	presenter := &fakePresenter{}
	tracker := NewTrackerService(context.Background(), clock, store,
		&fakeSettingsStore{settings: settings}, presenter, nil, "")

	return tracker, clock, presenter, store
}

func TestTrackerService_PauseResumeRoundTrip(t *testing.T) {
	tracker, clock, _, _ := setupTracker(t, domain.DefaultSettings())
	ctx := context.Background()

	tracker.ToggleRunning(ctx)
	clock.Advance(10 * time.Second)
	tracker.Tick(ctx)

	tracker.ToggleRunning(ctx) // pause
	snap := tracker.Snapshot()
	assert.False(t, snap.Running)
	assert.Equal(t, 1490, snap.RemainingSeconds)

	tracker.ToggleRunning(ctx) // resume immediately
	snap = tracker.Snapshot()
	assert.True(t, snap.Running)
	assert.Equal(t, 1490, snap.RemainingSeconds)

	// The elapsed focus time was accounted before the pause froze it.
	assert.Equal(t, 10, snap.Today.FocusSeconds)
}

func TestTrackerService_SuspensionCatchUp(t *testing.T) {
	tracker, clock, presenter, store := setupTracker(t, domain.DefaultSettings())
	ctx := context.Background()

	tracker.ToggleRunning(ctx)

	// No polls fire while suspended; the first post-resume evaluation
	// must recognize the deadline that passed and complete exactly once.
	clock.Advance(1500*time.Second + 500*time.Millisecond)
	tracker.Tick(ctx)

	snap := tracker.Snapshot()
	assert.Equal(t, domain.ModeShortBreak, snap.Mode)
	assert.False(t, snap.Running)
	assert.Equal(t, 1, snap.CycleCount)
	assert.Equal(t, 1500, snap.Today.FocusSeconds)
	assert.Equal(t, 1, snap.Today.CompletedSessions)
	require.Len(t, presenter.completed, 1)
	assert.Equal(t, domain.ModeFocus, presenter.completed[0])

	// A slow poller observing the same zero must not re-fire.
	tracker.Tick(ctx)
	assert.Len(t, presenter.completed, 1)
	assert.Equal(t, 1, tracker.Snapshot().CycleCount)

	// Completion was persisted.
	recs, err := store.History().LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 1500, recs[0].FocusSeconds)
	assert.Equal(t, 1, recs[0].CompletedSessions)

	count, err := store.Counters().Get(ctx, cycleCounterName)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestTrackerService_EveryFourthFocusEarnsLongBreak(t *testing.T) {
	tracker, clock, presenter, _ := setupTracker(t, domain.DefaultSettings())
	ctx := context.Background()

	var breaks []domain.Mode
	for i := 0; i < 4; i++ {
		tracker.SwitchMode(ctx, domain.ModeFocus, true)
		clock.Advance(1500*time.Second + 100*time.Millisecond)
		tracker.Tick(ctx)
		breaks = append(breaks, tracker.Snapshot().Mode)
	}

	assert.Equal(t, []domain.Mode{
		domain.ModeShortBreak,
		domain.ModeShortBreak,
		domain.ModeShortBreak,
		domain.ModeLongBreak,
	}, breaks)
	assert.Equal(t, 4, tracker.Snapshot().CycleCount)
	assert.Len(t, presenter.completed, 4)
}

func TestTrackerService_BreakCompletionReturnsToFocus(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.AutoStartFocus = true
	tracker, clock, presenter, _ := setupTracker(t, settings)
	ctx := context.Background()

	tracker.SwitchMode(ctx, domain.ModeShortBreak, true)
	clock.Advance(300*time.Second + 100*time.Millisecond)
	tracker.Tick(ctx)

	snap := tracker.Snapshot()
	assert.Equal(t, domain.ModeFocus, snap.Mode)
	assert.True(t, snap.Running, "auto_start_focus should start the next focus session")
	require.Len(t, presenter.completed, 1)
	assert.Equal(t, domain.ModeShortBreak, presenter.completed[0])

	// Break time never accrues to the ledger.
	assert.Equal(t, 0, snap.Today.FocusSeconds)
}

func TestTrackerService_AutoStartBreaks(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.AutoStartBreaks = true
	tracker, clock, _, _ := setupTracker(t, settings)
	ctx := context.Background()

	tracker.ToggleRunning(ctx)
	clock.Advance(1501 * time.Second)
	tracker.Tick(ctx)

	snap := tracker.Snapshot()
	assert.Equal(t, domain.ModeShortBreak, snap.Mode)
	assert.True(t, snap.Running, "auto_start_breaks should start the break immediately")
	assert.Equal(t, 300, snap.DurationSeconds)
}

func TestTrackerService_GoalCrossingFiresOnce(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.GoalHours = 1.0
	settings.FocusMinutes = 120
	tracker, clock, presenter, _ := setupTracker(t, settings)
	ctx := context.Background()

	tracker.ToggleRunning(ctx)

	clock.Advance(3599 * time.Second)
	tracker.Tick(ctx)
	assert.Empty(t, presenter.goals)
	assert.False(t, tracker.Snapshot().Today.GoalAchieved)

	clock.Advance(time.Second)
	tracker.Tick(ctx)
	require.Len(t, presenter.goals, 1)
	assert.Equal(t, 1.0, presenter.goals[0])
	assert.True(t, tracker.Snapshot().Today.GoalAchieved)

	clock.Advance(100 * time.Second)
	tracker.Tick(ctx)
	assert.Len(t, presenter.goals, 1, "goal must not re-fire for the same date")
}

func TestTrackerService_MidnightSplitsAccrual(t *testing.T) {
	tracker, clock, _, _ := setupTracker(t, domain.DefaultSettings())
	ctx := context.Background()

	clock.now = time.Date(2026, 3, 10, 23, 59, 50, 0, time.Local)
	tracker.ToggleRunning(ctx)

	clock.Advance(20 * time.Second)
	tracker.Tick(ctx)

	history := tracker.History()
	require.Len(t, history, 2)
	assert.Equal(t, "2026-03-10", history[0].Date)
	assert.Equal(t, 10, history[0].FocusSeconds)
	assert.Equal(t, "2026-03-11", history[1].Date)
	assert.Equal(t, 10, history[1].FocusSeconds)
}

func TestTrackerService_ClockAnomalyClampsRemaining(t *testing.T) {
	tracker, clock, _, _ := setupTracker(t, domain.DefaultSettings())
	ctx := context.Background()

	tracker.ToggleRunning(ctx)
	clock.Advance(10 * time.Second)
	tracker.Tick(ctx)
	assert.Equal(t, 1490, tracker.Snapshot().RemainingSeconds)

	// System clock steps backwards: remaining holds at its last
	// observed value instead of growing.
	clock.Advance(-5 * time.Second)
	tracker.Tick(ctx)
	assert.Equal(t, 1490, tracker.Snapshot().RemainingSeconds)
}

func TestTrackerService_UpdateSettings(t *testing.T) {
	tracker, clock, _, _ := setupTracker(t, domain.DefaultSettings())
	ctx := context.Background()

	t.Run("discards in-progress elapsed time", func(t *testing.T) {
		tracker.ToggleRunning(ctx)
		clock.Advance(10 * time.Second)
		tracker.Tick(ctx)

		updated := tracker.Settings()
		updated.FocusMinutes = 50
		require.NoError(t, tracker.UpdateSettings(ctx, updated))

		snap := tracker.Snapshot()
		assert.False(t, snap.Running)
		assert.Equal(t, 3000, snap.RemainingSeconds)
		// Accrued before the discard.
		assert.Equal(t, 10, snap.Today.FocusSeconds)
	})

	t.Run("rejects non-positive values", func(t *testing.T) {
		bad := tracker.Settings()
		bad.FocusMinutes = 0
		err := tracker.UpdateSettings(ctx, bad)
		assert.ErrorIs(t, err, domain.ErrInvalidSettings)
		assert.Equal(t, 50, tracker.Settings().FocusMinutes, "prior settings stay in effect")
	})
}

func TestTrackerService_GoalChangeResetsLatch(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.GoalHours = 1.0
	settings.FocusMinutes = 120
	tracker, clock, presenter, _ := setupTracker(t, settings)
	ctx := context.Background()

	tracker.ToggleRunning(ctx)
	clock.Advance(3600 * time.Second)
	tracker.Tick(ctx)
	require.Len(t, presenter.goals, 1)
	require.True(t, tracker.Snapshot().Today.GoalAchieved)

	raised := tracker.Settings()
	raised.GoalHours = 2.0
	require.NoError(t, tracker.UpdateSettings(ctx, raised))
	assert.False(t, tracker.Snapshot().Today.GoalAchieved, "raised goal should clear the latch")
}

func TestTrackerService_ResetTimer(t *testing.T) {
	tracker, clock, _, _ := setupTracker(t, domain.DefaultSettings())
	ctx := context.Background()

	tracker.ToggleRunning(ctx)
	clock.Advance(30 * time.Second)
	tracker.Tick(ctx)

	tracker.ResetTimer(ctx)
	snap := tracker.Snapshot()
	assert.False(t, snap.Running)
	assert.Equal(t, 1500, snap.RemainingSeconds)
	// The elapsed time before the reset still counts for the day.
	assert.Equal(t, 30, snap.Today.FocusSeconds)
}

func TestTrackerService_Wipe(t *testing.T) {
	tracker, clock, _, store := setupTracker(t, domain.DefaultSettings())
	ctx := context.Background()

	tracker.ToggleRunning(ctx)
	clock.Advance(1501 * time.Second)
	tracker.Tick(ctx)
	require.Equal(t, 1, tracker.Snapshot().CycleCount)

	require.NoError(t, tracker.Wipe(ctx))
	assert.Equal(t, 0, tracker.Snapshot().CycleCount)
	assert.Empty(t, tracker.History())

	recs, err := store.History().LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestTrackerService_LoadsPersistedState(t *testing.T) {
	store, err := storage.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	ctx := context.Background()

	require.NoError(t, store.History().UpsertDay(ctx, domain.DailyRecord{
		Date: "2026-03-09", FocusSeconds: 600, CompletedSessions: 2,
	}))
	require.NoError(t, store.Counters().Set(ctx, cycleCounterName, 7))

	clock := &fakeClock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)}
	tracker := NewTrackerService(ctx, clock, store,
		&fakeSettingsStore{settings: domain.DefaultSettings()}, &fakePresenter{}, nil, "")

	assert.Equal(t, 7, tracker.Snapshot().CycleCount)
	history := tracker.History()
	require.Len(t, history, 1)
	assert.Equal(t, 600, history[0].FocusSeconds)
}
