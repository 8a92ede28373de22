package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetForce bool

// resetCmd wipes all persisted history and the lifetime cycle counter.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe all history and counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetForce {
			return fmt.Errorf("this deletes all history; re-run with --force to confirm")
		}
		if err := app.tracker.Wipe(app.ctx); err != nil {
			return fmt.Errorf("failed to wipe history: %w", err)
		}
		fmt.Println("History and counters wiped.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetForce, "force", false, "Confirm the wipe")
}
