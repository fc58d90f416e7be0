// Package app wires the pieces of the program together: logger, document
// loading, variable context assembly, registry construction, and the
// optional bridge emission. It owns no domain logic of its own.
package app

import (
	"io"
	"log/slog"

	"github.com/vk/taskgridgo/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config

	registry *registry.Registry
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger.
func NewApp(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg, outW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
	}
}

// Registry returns the built registry. Nil until Run has succeeded. This is
// primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
