package config_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"trackflow/internal/config"
	"trackflow/internal/instrumental"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Fatal("file should not exist")
	}
	if resolved != path {
		t.Fatalf("resolved to %q", resolved)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults %+v", cfg.Logging)
	}
	if !reflect.DeepEqual(cfg.Demucs.SkipKeywords, instrumental.DefaultKeywords()) {
		t.Fatalf("unexpected keyword defaults %v", cfg.Demucs.SkipKeywords)
	}
	if cfg.Paths.CatalogDB != filepath.Join(cfg.Paths.WorkDir, "catalog.db") {
		t.Fatalf("catalog db should default under work dir, got %q", cfg.Paths.CatalogDB)
	}
}

func TestLoadOverridesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, `
[paths]
work_dir = "`+dir+`/work"
log_dir = "`+dir+`/logs"

[demucs]
skip_keywords = ["  inst  ", "", "karaoke"]

[logging]
format = "JSON"
level = "Debug"
`)

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Fatal("file should exist")
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging not normalized: %+v", cfg.Logging)
	}
	if !reflect.DeepEqual(cfg.Demucs.SkipKeywords, []string{"inst", "karaoke"}) {
		t.Fatalf("keywords not cleaned: %v", cfg.Demucs.SkipKeywords)
	}
	if !filepath.IsAbs(cfg.Paths.WorkDir) {
		t.Fatalf("work dir not absolute: %q", cfg.Paths.WorkDir)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"jpeg quality", "[artwork]\njpeg_quality = 0\n", "jpeg_quality"},
		{"resize width", "[artwork]\nresize_width = -1\n", "resize_width"},
		{"log format", "[logging]\nformat = \"xml\"\n", "logging.format"},
		{"log level", "[logging]\nlevel = \"verbose\"\n", "logging.level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := config.Load(writeConfig(t, tc.body))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("got %v, want error mentioning %s", err, tc.want)
			}
		})
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.WorkDir = filepath.Join(dir, "work")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}
	for _, d := range []string{cfg.Paths.WorkDir, cfg.Paths.LogDir} {
		if info, err := os.Stat(d); err != nil || !info.IsDir() {
			t.Fatalf("%q not created", d)
		}
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatal(err)
	}
	if _, _, exists, err := config.Load(path); err != nil || !exists {
		t.Fatalf("sample config should load, err=%v exists=%v", err, exists)
	}
}
