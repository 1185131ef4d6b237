package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"trackflow/internal/config"
	"trackflow/internal/instrumental"
	"trackflow/internal/logging"
	"trackflow/internal/state"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.New(logging.Options{
			Level:       cfg.Logging.Level,
			Format:      cfg.Logging.Format,
			OutputPaths: []string{filepath.Join(cfg.Paths.LogDir, "trackflow.log")},
		})
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// classifier builds the keyword classifier from the loaded configuration.
func (c *commandContext) classifier() *instrumental.Classifier {
	cfg, err := c.ensureConfig()
	if err != nil {
		return instrumental.Default()
	}
	return instrumental.New(cfg.Demucs.SkipKeywords)
}

// resolveAlbumFolder turns an optional positional argument into an absolute
// album folder path, defaulting to the current directory.
func resolveAlbumFolder(args []string) (string, error) {
	target := "."
	if len(args) > 0 && strings.TrimSpace(args[len(args)-1]) != "" {
		target = args[len(args)-1]
	}
	folder, err := config.ExpandPath(target)
	if err != nil {
		return "", fmt.Errorf("resolve album folder: %w", err)
	}
	info, err := os.Stat(folder)
	if err != nil {
		return "", fmt.Errorf("inspect album folder %q: %w", folder, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%q is not a directory", folder)
	}
	return folder, nil
}

// openAlbum loads the state document of an album folder.
func (c *commandContext) openAlbum(folder string) (*state.Store, error) {
	store := state.NewStore(folder, c.ensureLogger())
	if !store.Exists() {
		return nil, fmt.Errorf("no %s in %s; run 'trackflow import' first", state.DocumentName, folder)
	}
	return store, nil
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
