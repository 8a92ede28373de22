package cmd

import (
	"fmt"
	"time"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"
)

var historyDays int

// historyCmd lists completed focus sessions from the session log,
// optionally fuzzy-filtered by date or git branch.
var historyCmd = &cobra.Command{
	Use:   "history [query]",
	Short: "List completed focus sessions",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		since := time.Now().AddDate(0, 0, -historyDays)
		entries, err := app.tracker.RecentSessions(app.ctx, since)
		if err != nil {
			return fmt.Errorf("failed to load session history: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No completed sessions in range.")
			return nil
		}

		lines := make([]string, len(entries))
		for i, e := range entries {
			branch := e.GitBranch
			if branch == "" {
				branch = "-"
			}
			lines[i] = fmt.Sprintf("%s  %3dm  %s",
				e.EndedAt.Local().Format("2006-01-02 15:04"),
				e.DurationSeconds/60,
				branch)
		}

		if len(args) == 1 {
			matches := fuzzy.Find(args[0], lines)
			if len(matches) == 0 {
				fmt.Println("No sessions match.")
				return nil
			}
			for _, match := range matches {
				fmt.Println(lines[match.Index])
			}
			return nil
		}

		for _, line := range lines {
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyDays, "days", "n", 30, "How many days back to search")
}
