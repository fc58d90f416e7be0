package app

import (
	"errors"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPath string   // task documents: .hcl, .yaml, .yml
	VarsFiles  []string // extra YAML variable files, merged after documents

	Dataset string // when set, only tasks for this dataset are summarized

	BridgeURL       string // when set, the built registry is emitted here
	BridgeNamespace string
	BridgeTimeout   time.Duration

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config value.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}

	return &cfg, nil
}
