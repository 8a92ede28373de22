package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mbaylis/pomo-cli/internal/domain"
)

// configCmd manages timer settings.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Get and set timer settings",
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show one setting or all settings",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := app.tracker.Settings()
		if len(args) == 0 {
			for _, key := range settingKeys {
				fmt.Printf("%-22s %s\n", key, settingValue(s, key))
			}
			return nil
		}
		value := settingValue(s, args[0])
		if value == "" {
			return fmt.Errorf("unknown setting %q", args[0])
		}
		fmt.Println(value)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := app.tracker.Settings()
		if err := applySetting(&s, args[0], args[1]); err != nil {
			return err
		}
		if err := app.tracker.UpdateSettings(app.ctx, s); err != nil {
			return fmt.Errorf("rejected: %w", err)
		}
		fmt.Printf("%s = %s\n", args[0], settingValue(s, args[0]))
		return nil
	},
}

var settingKeys = []string{
	"focus_minutes",
	"short_break_minutes",
	"long_break_minutes",
	"auto_start_breaks",
	"auto_start_focus",
	"goal_hours",
	"cycle_display_count",
}

func settingValue(s domain.Settings, key string) string {
	switch key {
	case "focus_minutes":
		return strconv.Itoa(s.FocusMinutes)
	case "short_break_minutes":
		return strconv.Itoa(s.ShortBreakMinutes)
	case "long_break_minutes":
		return strconv.Itoa(s.LongBreakMinutes)
	case "auto_start_breaks":
		return strconv.FormatBool(s.AutoStartBreaks)
	case "auto_start_focus":
		return strconv.FormatBool(s.AutoStartFocus)
	case "goal_hours":
		return strconv.FormatFloat(s.GoalHours, 'g', -1, 64)
	case "cycle_display_count":
		return strconv.Itoa(s.CycleDisplayCount)
	}
	return ""
}

func applySetting(s *domain.Settings, key, value string) error {
	switch key {
	case "focus_minutes", "short_break_minutes", "long_break_minutes", "cycle_display_count":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s requires an integer: %w", key, err)
		}
		switch key {
		case "focus_minutes":
			s.FocusMinutes = n
		case "short_break_minutes":
			s.ShortBreakMinutes = n
		case "long_break_minutes":
			s.LongBreakMinutes = n
		case "cycle_display_count":
			s.CycleDisplayCount = n
		}
	case "auto_start_breaks", "auto_start_focus":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s requires true or false: %w", key, err)
		}
		if key == "auto_start_breaks" {
			s.AutoStartBreaks = b
		} else {
			s.AutoStartFocus = b
		}
	case "goal_hours":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("goal_hours requires a number: %w", err)
		}
		s.GoalHours = f
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}
