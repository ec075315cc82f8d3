package app

import (
	"io"
	"log/slog"
)

// levelNames maps the accepted log-level configuration values onto slog
// levels. The CLI validates user input against this same set.
var levelNames = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// LogLevels returns the accepted log-level names, for flag validation.
func LogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// newLogger builds the checker's isolated logger from the process
// configuration. It never sets the global logger. An unknown level name
// falls back to warn, the CLI default, so embedders constructing a Config
// by hand get quiet output rather than a failure.
func newLogger(cfg *Config, outW io.Writer) *slog.Logger {
	level, ok := levelNames[cfg.LogLevel]
	if !ok {
		level = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}
