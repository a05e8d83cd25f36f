package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config selects the handler used for local output.
type Config struct {
	Output    io.Writer // defaults to os.Stdout
	Level     string    // debug, info, warn, error; defaults to info
	Format    string    // json or text; defaults to json
	Component string    // added as "component" to every record when set
}

// New creates a logger for cfg with optional context extractors.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	l := slog.New(NewLogHandlerDecorator(newLocalHandler(cfg), extractors...))
	if cfg.Component != "" {
		l = l.With(slog.String("component", cfg.Component))
	}
	return l
}

// ParseLevel maps a level name to slog.Level. Unknown names map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newLocalHandler(cfg Config) slog.Handler {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.NewTextHandler(out, opts)
	}
	return slog.NewJSONHandler(out, opts)
}
