package app

import (
	"io"
	"log/slog"
)

// newLogger builds the app's isolated logger from the validated config. It
// never touches the global logger, so harness runs and parallel tests each
// keep their own output stream.
func newLogger(cfg *Config, outW io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		// The CLI rejects unknown levels before a Config exists; a Config
		// built in code with an empty level gets the usual default.
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}
