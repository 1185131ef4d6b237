package testsupport

import (
	"path/filepath"
	"testing"

	"trackflow/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.WorkDir = filepath.Join(base, "work")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.CatalogDB = filepath.Join(base, "work", "catalog.db")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithKeywords overrides the instrumental keyword set on the test config.
func WithKeywords(keywords ...string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Demucs.SkipKeywords = keywords
	}
}
