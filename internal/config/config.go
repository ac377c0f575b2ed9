// Package config provides configuration for the table subsystem:
// TOML file loading with environment overrides, validated defaults,
// and a file watcher for live reload.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "TABLESTORM_"

// Errors returned by configuration operations.
var (
	ErrInvalidValue = errors.New("invalid configuration value")
)

// Config holds the tunables of the widget runtime.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// BlurWindowMs is the blur-coalescing window in milliseconds.
	BlurWindowMs int `toml:"blur_window_ms"`

	// GeometryTolerance is the maximum on-screen distance the save
	// fallback accepts when matching a widget to a table node.
	GeometryTolerance int `toml:"geometry_tolerance"`

	// AutoGrow appends a new row when cell navigation advances past
	// the last cell.
	AutoGrow bool `toml:"auto_grow"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		LogLevel:          "info",
		BlurWindowMs:      150,
		GeometryTolerance: 5,
		AutoGrow:          true,
	}
}

// BlurWindow returns the blur window as a duration.
func (c Config) BlurWindow() time.Duration {
	return time.Duration(c.BlurWindowMs) * time.Millisecond
}

// Validate checks the configuration for out-of-range values.
func (c Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q: %w", c.LogLevel, ErrInvalidValue)
	}
	if c.BlurWindowMs < 0 {
		return fmt.Errorf("blur_window_ms %d: %w", c.BlurWindowMs, ErrInvalidValue)
	}
	if c.GeometryTolerance < 0 {
		return fmt.Errorf("geometry_tolerance %d: %w", c.GeometryTolerance, ErrInvalidValue)
	}
	return nil
}

// Load reads configuration from the TOML file at path, layered over
// the defaults and under environment overrides. A missing file is not
// an error; defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("reading config file %s: %w", path, err)
		}
	} else if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overlays TABLESTORM_* environment variables.
func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "BLUR_WINDOW_MS"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.BlurWindowMs = n
		}
	}
	if v, ok := os.LookupEnv(EnvPrefix + "GEOMETRY_TOLERANCE"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.GeometryTolerance = n
		}
	}
	if v, ok := os.LookupEnv(EnvPrefix + "AUTO_GROW"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.AutoGrow = b
		}
	}
}
