package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	BoardPath string // board definition file (.hcl, .yaml or .yml)

	Output    string // rendered output format: "text" or "json"
	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.BoardPath == "" {
		return nil, errors.New("BoardPath is a required configuration field and cannot be empty")
	}
	if cfg.Output == "" {
		cfg.Output = "text"
	}
	if cfg.Output != "text" && cfg.Output != "json" {
		return nil, fmt.Errorf("invalid output format %q: must be 'text' or 'json'", cfg.Output)
	}

	return &cfg, nil
}
