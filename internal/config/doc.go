// Package config loads and validates the TOML configuration file. Defaults
// apply when the file is absent, so a fresh install works without one.
package config
