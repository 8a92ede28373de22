package domain

import "time"

// Remaining computes the whole seconds left on a countdown of
// durationSeconds anchored at anchor, observed at now. The countdown is
// derived from timestamps alone, never from accumulated ticks, so time
// that passed while the process was suspended is caught up in a single
// call. If the system clock moved backwards past the anchor, elapsed is
// treated as zero; callers that need the stronger "never increases"
// guarantee clamp against their last observation (see ClampRemaining).
func Remaining(durationSeconds int, anchor, now time.Time) int {
	elapsed := int(now.Sub(anchor) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	remaining := durationSeconds - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Completed reports whether a countdown with the given remaining
// seconds has reached its deadline.
func Completed(remaining int) bool { return remaining == 0 }

// ClampRemaining guards a freshly computed remaining value against a
// backwards clock step: while the anchor is unchanged a running
// countdown can only shrink, so any value above the last observation is
// replaced by the last observation.
func ClampRemaining(computed, lastObserved int) int {
	if computed > lastObserved {
		return lastObserved
	}
	return computed
}
