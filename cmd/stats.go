package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var statsDays int

// statsCmd renders recent daily ledger records as a table.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show focus totals per day",
	RunE: func(cmd *cobra.Command, args []string) error {
		records := app.tracker.History()
		if len(records) == 0 {
			fmt.Println("No history yet. Run a focus session first.")
			return nil
		}
		if statsDays > 0 && len(records) > statsDays {
			records = records[len(records)-statsDays:]
		}

		headerStyle := lipgloss.NewStyle().Bold(true)
		fmt.Println(headerStyle.Render(fmt.Sprintf("%-12s %10s %10s %6s", "Date", "Focus", "Sessions", "Goal")))

		for _, rec := range records {
			goal := ""
			if rec.GoalAchieved {
				goal = "✓"
			}
			fmt.Printf("%-12s %10s %10d %6s\n",
				rec.Date, formatFocusTime(rec.FocusSeconds), rec.CompletedSessions, goal)
		}

		return nil
	},
}

func init() {
	statsCmd.Flags().IntVarP(&statsDays, "days", "n", 14, "Number of most recent days to show")
}
