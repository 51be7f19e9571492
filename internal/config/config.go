// Package config loads server settings from defaults, an optional TOML file
// and IMAGE_TRANSFORM_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/ironsheep/image-transform-mcp/internal/backend"
	"github.com/pelletier/go-toml/v2"
)

// Environment variables that override file settings.
const (
	EnvTmpDir   = "IMAGE_TRANSFORM_TMP_DIR"
	EnvBackend  = "IMAGE_TRANSFORM_BACKEND"
	EnvLogLevel = "IMAGE_TRANSFORM_LOG_LEVEL"
	EnvReload   = "IMAGE_TRANSFORM_RELOAD"
)

// Config holds the server settings.
type Config struct {
	// TmpDir is where scratch files go. Empty means os.TempDir().
	TmpDir string `toml:"tmp_dir"`

	// Backend is "auto", "full" or "basic".
	Backend string `toml:"backend"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `toml:"log_level"`

	// Reload persists and decodes the canvas again after every mutation.
	Reload bool `toml:"reload_after_mutation"`

	// JPEGQuality is used when a tool call asks for JPEG without a quality.
	JPEGQuality int `toml:"jpeg_quality"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Backend:     backend.Auto,
		LogLevel:    "info",
		JPEGQuality: 90,
	}
}

// Load returns the defaults overlaid with the TOML file at path (skipped
// when path is empty) and then with the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("unknown keys in %s:\n%s", path, strict.String())
		}
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvTmpDir); ok {
		c.TmpDir = v
	}
	if v, ok := lookup(EnvBackend); ok && v != "" {
		c.Backend = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvReload); ok && v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", EnvReload, v, err)
		}
		c.Reload = on
	}
	return nil
}

// Validate checks the backend name, log level and JPEG quality.
func (c *Config) Validate() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	known := false
	for _, name := range backend.Names() {
		if c.Backend == name {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown backend %q (want one of %s)", c.Backend, strings.Join(backend.Names(), ", "))
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg_quality %d out of range 1-100", c.JPEGQuality)
	}
	return nil
}

// Level returns LogLevel as a slog.Level.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}
