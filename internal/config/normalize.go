package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeTools(); err != nil {
		return err
	}
	c.normalizeDemucs()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.CatalogDB) == "" {
		c.Paths.CatalogDB = filepath.Join(c.Paths.WorkDir, "catalog.db")
		return nil
	}
	if c.Paths.CatalogDB, err = expandPath(c.Paths.CatalogDB); err != nil {
		return fmt.Errorf("paths.catalog_db: %w", err)
	}
	return nil
}

func (c *Config) normalizeTools() error {
	for name, field := range map[string]*string{
		"tools.mp3tag":     &c.Tools.Mp3Tag,
		"tools.mediahuman": &c.Tools.MediaHuman,
		"tools.foobar2000": &c.Tools.Foobar2000,
		"tools.flac":       &c.Tools.Flac,
		"tools.metaflac":   &c.Tools.Metaflac,
		"tools.magick":     &c.Tools.Magick,
	} {
		trimmed := strings.TrimSpace(*field)
		if trimmed == "" {
			*field = ""
			continue
		}
		expanded, err := expandPath(trimmed)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*field = expanded
	}
	return nil
}

// normalizeDemucs trims and drops empty keywords. An empty list is legal and
// means nothing classifies as instrumental.
func (c *Config) normalizeDemucs() {
	cleaned := make([]string, 0, len(c.Demucs.SkipKeywords))
	for _, kw := range c.Demucs.SkipKeywords {
		kw = strings.TrimSpace(kw)
		if kw != "" {
			cleaned = append(cleaned, kw)
		}
	}
	c.Demucs.SkipKeywords = cleaned
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
