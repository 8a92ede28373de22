package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// statusCmd shows today's ledger record and the active settings.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's focus totals and goal progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap := app.tracker.Snapshot()

		fmt.Printf("Today: %s focus, %d sessions completed\n",
			formatFocusTime(snap.Today.FocusSeconds), snap.Today.CompletedSessions)

		goalSeconds := snap.Settings.GoalSeconds()
		pct := 0
		if goalSeconds > 0 {
			pct = snap.Today.FocusSeconds * 100 / goalSeconds
		}
		check := ""
		if snap.Today.GoalAchieved {
			check = " ✓"
		}
		fmt.Printf("Goal:  %.1fh (%d%%)%s\n", snap.Settings.GoalHours, pct, check)
		fmt.Printf("Lifetime focus sessions: %d\n", snap.CycleCount)

		return nil
	},
}

// formatFocusTime formats seconds as "1h05m" or "42m".
func formatFocusTime(seconds int) string {
	h := seconds / 3600
	min := (seconds % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm", h, min)
	}
	return fmt.Sprintf("%dm", min)
}
