package config

import "context"

// Loader is the interface for a format-specific configuration source.
type Loader interface {
	// Load reads configuration from the given paths, merges the documents in
	// order (later paths win) and returns the root table.
	Load(ctx context.Context, paths ...string) (Node, error)
}
