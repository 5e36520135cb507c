package config

import "context"

// Loader is the interface for a format-specific board definition loader.
type Loader interface {
	// Load reads a board definition from the given path and translates it
	// into the format-agnostic model. Syntax errors fail the load; semantic
	// problems are left in the model for the builder replay to collect.
	Load(ctx context.Context, path string) (*Model, error)
}
