// Package notification provides desktop notification utilities.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"
	"github.com/mbaylis/pomo-cli/internal/config"
	"github.com/mbaylis/pomo-cli/internal/domain"
	"github.com/mbaylis/pomo-cli/internal/ports"
)

// Notifier implements the ports.Presenter gateway with desktop
// notifications and an optional sound beep. All dispatch is
// fire-and-forget; errors are discarded.
type Notifier struct {
	cfg *config.NotificationConfig
}

// Ensure Notifier implements ports.Presenter.
var _ ports.Presenter = (*Notifier)(nil)

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{cfg: cfg}
}

// OnSessionComplete displays a notification when a countdown finishes.
func (n *Notifier) OnSessionComplete(mode domain.Mode) {
	var title, message string
	switch mode {
	case domain.ModeFocus:
		title = "🍅 Focus Complete!"
		message = "Great job! Time for a break."
	case domain.ModeLongBreak:
		title = "☕ Long Break Over!"
		message = "Recharged? Ready to focus again."
	default:
		title = "☕ Break Over!"
		message = "Your break is complete. Ready to focus?"
	}
	n.notify(title, message)
}

// OnGoalAchieved displays a notification when the daily goal is first
// reached.
func (n *Notifier) OnGoalAchieved(goalHours float64) {
	title := "🎯 Daily Goal Reached!"
	message := fmt.Sprintf("You hit your %.1fh focus goal for today.", goalHours)
	n.notify(title, message)
}

func (n *Notifier) notify(title, message string) {
	if n.cfg == nil || !n.cfg.Enabled {
		return
	}
	_ = beeep.Notify(title, message, "")
	if n.cfg.Sound {
		_ = beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration)
	}
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}
