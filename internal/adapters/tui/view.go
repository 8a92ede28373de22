package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mbaylis/pomo-cli/internal/domain"
)

// View renders the timer screen.
func (m Model) View() string {
	snap := m.snapshot

	modeColor := m.theme.ColorFocus
	if snap.Mode.IsBreak() {
		modeColor = m.theme.ColorBreak
	}
	if !snap.Running {
		modeColor = m.theme.ColorPaused
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(modeColor)).
		Bold(true)
	clockStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(modeColor)).
		Bold(true).
		Padding(1, 0)
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.ColorHelp))

	var sections []string

	header := snap.Mode.Label()
	if !snap.Running {
		header += "  ⏸"
	}
	sections = append(sections, titleStyle.Render(header))
	sections = append(sections, clockStyle.Render(formatClock(snap.RemainingSeconds)))

	ratio := 0.0
	if snap.DurationSeconds > 0 {
		ratio = 1 - float64(snap.RemainingSeconds)/float64(snap.DurationSeconds)
	}
	sections = append(sections, m.progress.ViewAs(ratio))

	sections = append(sections, renderCycleDots(snap.CycleCount, snap.Settings.CycleDisplayCount, modeColor, m.theme.ColorPaused))
	sections = append(sections, m.renderGoalLine())

	pauseAction := "[space] start"
	if snap.Running {
		pauseAction = "[space] pause"
	}
	sections = append(sections, helpStyle.Render(fmt.Sprintf("%s  [r]eset  [f]ocus  [s]hort  [l]ong  [q]uit", pauseAction)))

	body := lipgloss.JoinVertical(lipgloss.Center, sections...)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	return body
}

// renderGoalLine shows today's accumulated focus time against the goal.
func (m Model) renderGoalLine() string {
	snap := m.snapshot
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	line := fmt.Sprintf("today %s / %.1fh · %d sessions",
		formatHours(snap.Today.FocusSeconds),
		snap.Settings.GoalHours,
		snap.Today.CompletedSessions,
	)
	if snap.Today.GoalAchieved {
		line += "  🎯"
	}
	return style.Render(line)
}

// renderCycleDots shows progress through the current display cycle of
// focus sessions. The display count is cosmetic; it never affects when
// a long break is earned.
func renderCycleDots(cycleCount, displayCount int, fillColor, emptyColor string) string {
	if displayCount <= 0 {
		displayCount = domain.FocusSessionsPerCycle
	}
	filled := cycleCount % displayCount
	if filled == 0 && cycleCount > 0 {
		filled = displayCount
	}

	fillStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(fillColor))
	emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(emptyColor))

	var b strings.Builder
	for i := 0; i < displayCount; i++ {
		if i > 0 {
			b.WriteString(" ")
		}
		if i < filled {
			b.WriteString(fillStyle.Render("●"))
		} else {
			b.WriteString(emptyStyle.Render("○"))
		}
	}
	return b.String()
}

// formatClock formats remaining seconds as MM:SS, or H:MM:SS past an
// hour.
func formatClock(seconds int) string {
	if seconds >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// formatHours formats focus seconds as a compact hours/minutes string.
func formatHours(seconds int) string {
	h := seconds / 3600
	min := (seconds % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm", h, min)
	}
	return fmt.Sprintf("%dm", min)
}
