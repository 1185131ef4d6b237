package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateArtwork(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.WorkDir == "" {
		return errors.New("paths.work_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateArtwork() error {
	if c.Artwork.JpegQuality < 1 || c.Artwork.JpegQuality > 100 {
		return fmt.Errorf("artwork.jpeg_quality must be between 1 and 100, got %d", c.Artwork.JpegQuality)
	}
	if c.Artwork.WebpQuality < 1 || c.Artwork.WebpQuality > 100 {
		return fmt.Errorf("artwork.webp_quality must be between 1 and 100, got %d", c.Artwork.WebpQuality)
	}
	if c.Artwork.ResizeWidth < 1 {
		return fmt.Errorf("artwork.resize_width must be positive, got %d", c.Artwork.ResizeWidth)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
