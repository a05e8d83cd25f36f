package logger

import "log/slog"

// NewNope returns a logger that discards everything.
// Packages use it as their default so a logger option is never required.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
