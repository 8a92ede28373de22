package tui

import (
	"strings"
	"testing"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{60, "01:00"},
		{1500, "25:00"},
		{3599, "59:59"},
		{3600, "1:00:00"},
		{5400, "1:30:00"},
	}

	for _, tt := range tests {
		if got := formatClock(tt.seconds); got != tt.want {
			t.Errorf("formatClock(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatHours(t *testing.T) {
	if got := formatHours(300); got != "5m" {
		t.Errorf("formatHours(300) = %q, want 5m", got)
	}
	if got := formatHours(3900); got != "1h05m" {
		t.Errorf("formatHours(3900) = %q, want 1h05m", got)
	}
}

func TestRenderCycleDots(t *testing.T) {
	t.Run("two of four filled", func(t *testing.T) {
		dots := renderCycleDots(2, 4, "#FF0000", "#888888")
		if got := strings.Count(dots, "●"); got != 2 {
			t.Errorf("filled dots = %d, want 2", got)
		}
		if got := strings.Count(dots, "○"); got != 2 {
			t.Errorf("empty dots = %d, want 2", got)
		}
	})

	t.Run("completed cycle shows all filled", func(t *testing.T) {
		dots := renderCycleDots(4, 4, "#FF0000", "#888888")
		if got := strings.Count(dots, "●"); got != 4 {
			t.Errorf("filled dots = %d, want 4", got)
		}
	})

	t.Run("zero sessions shows none filled", func(t *testing.T) {
		dots := renderCycleDots(0, 4, "#FF0000", "#888888")
		if got := strings.Count(dots, "●"); got != 0 {
			t.Errorf("filled dots = %d, want 0", got)
		}
	})
}
