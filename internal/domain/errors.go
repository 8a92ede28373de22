package domain

import "errors"

var (
	// ErrInvalidSettings indicates a settings update with a non-positive
	// duration or goal. The previous settings stay in effect.
	ErrInvalidSettings = errors.New("invalid settings: durations and goal must be positive")

	// ErrUnknownMode indicates a mode string that is not focus,
	// short_break or long_break.
	ErrUnknownMode = errors.New("unknown session mode")
)
