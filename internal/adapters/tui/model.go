// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"

	"github.com/mbaylis/pomo-cli/internal/config"
	"github.com/mbaylis/pomo-cli/internal/domain"
	"github.com/mbaylis/pomo-cli/internal/services"
)

// pollInterval is the countdown re-check cadence. Sub-second so a
// completion is observed within one interval of the true deadline.
const pollInterval = 100 * time.Millisecond

// flashToggles is how many times the window title alternates after a
// completion.
const flashToggles = 6

// tickMsg is sent on every timer tick.
type tickMsg time.Time

// flashMsg drives the window-title flash after a completion.
type flashMsg time.Time

// Model represents the TUI state.
type Model struct {
	ctx     context.Context
	tracker *services.TrackerService

	progress progress.Model
	theme    config.ThemeConfig
	width    int
	height   int

	snapshot services.Snapshot

	// flashTicks counts down the remaining title toggles.
	flashTicks int
	flashOn    bool
}

// getTerminalWidth returns the current terminal width, defaulting to 80.
func getTerminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w < 40 {
		return 80
	}
	return w
}

// NewModel creates a new TUI model.
func NewModel(ctx context.Context, tracker *services.TrackerService, theme *config.ThemeConfig) Model {
	resolved := config.DefaultThemeConfig()
	if theme != nil {
		resolved = *theme
	}
	w := getTerminalWidth()
	pbar := progress.New(progress.WithGradient(resolved.FocusGradientStart, resolved.FocusGradientEnd))
	pbar.Width = w - 16

	return Model{
		ctx:      ctx,
		tracker:  tracker,
		progress: pbar,
		theme:    resolved,
		width:    w,
		snapshot: tracker.Snapshot(),
	}
}

// Run starts the timer interface and blocks until the user quits.
func Run(ctx context.Context, tracker *services.TrackerService, theme *config.ThemeConfig) error {
	p := tea.NewProgram(
		NewModel(ctx, tracker, theme),
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// Init schedules the first tick when a countdown is already running.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle("🍅 pomo")}
	if m.snapshot.Running {
		cmds = append(cmds, tickCmd())
	}
	return tea.Batch(cmds...)
}

// tickCmd creates a command that sends a tick message.
func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// flashCmd creates a command that sends a title-flash message.
func flashCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return flashMsg(t)
	})
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		return m.handleTick()

	case tea.FocusMsg:
		// Regained foreground: the poll callbacks that should have
		// fired while suspended never did, so reconcile in one pass.
		before := m.snapshot.Mode
		m.tracker.Tick(m.ctx)
		m.snapshot = m.tracker.Snapshot()
		if m.snapshot.Mode != before {
			return m, m.startFlash()
		}
		return m, nil

	case flashMsg:
		return m.handleFlash()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 16
		if m.progress.Width > 60 {
			m.progress.Width = 60
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case " ", "p":
		wasRunning := m.snapshot.Running
		m.tracker.ToggleRunning(m.ctx)
		m.snapshot = m.tracker.Snapshot()
		if !wasRunning && m.snapshot.Running {
			return m, tickCmd()
		}
		return m, nil

	case "r":
		m.tracker.ResetTimer(m.ctx)
		m.snapshot = m.tracker.Snapshot()
		return m, nil

	case "f":
		m.tracker.SwitchMode(m.ctx, domain.ModeFocus, false)
		m.snapshot = m.tracker.Snapshot()
		return m, nil

	case "s":
		m.tracker.SwitchMode(m.ctx, domain.ModeShortBreak, false)
		m.snapshot = m.tracker.Snapshot()
		return m, nil

	case "l":
		m.tracker.SwitchMode(m.ctx, domain.ModeLongBreak, false)
		m.snapshot = m.tracker.Snapshot()
		return m, nil
	}

	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	before := m.snapshot.Mode
	m.tracker.Tick(m.ctx)
	m.snapshot = m.tracker.Snapshot()

	var cmds []tea.Cmd
	if m.snapshot.Mode != before {
		cmds = append(cmds, m.startFlash())
	}
	// Polling stops whenever the countdown is not running; a key press
	// or auto-start schedules it again.
	if m.snapshot.Running {
		cmds = append(cmds, tickCmd())
	}
	return m, tea.Batch(cmds...)
}

// startFlash arms the window-title flash fired after a completion.
func (m *Model) startFlash() tea.Cmd {
	m.flashTicks = flashToggles
	m.flashOn = false
	return flashCmd()
}

func (m Model) handleFlash() (tea.Model, tea.Cmd) {
	if m.flashTicks <= 0 {
		return m, tea.SetWindowTitle("🍅 pomo")
	}
	m.flashTicks--
	m.flashOn = !m.flashOn
	title := "🍅 pomo"
	if m.flashOn {
		title = "⏰ " + m.snapshot.Mode.Label()
	}
	return m, tea.Batch(tea.SetWindowTitle(title), flashCmd())
}
