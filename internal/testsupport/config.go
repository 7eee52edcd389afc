// Package testsupport provides shared helpers for building test
// configurations and content trees.
package testsupport

import (
	"path/filepath"
	"testing"

	"lantern/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Content.RootDir = filepath.Join(base, "units")
	cfg.Storage.Bucket = "test-bucket"
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Journal.Enabled = false

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithRootDir points the config at an existing content tree.
func WithRootDir(root string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Content.RootDir = root
	}
}

// WithKeyPrefix overrides the manifest storage prefix.
func WithKeyPrefix(prefix string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Storage.KeyPrefix = prefix
	}
}
