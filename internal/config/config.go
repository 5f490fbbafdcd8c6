// Package config loads server configuration from an optional TOML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/pelletier/go-toml/v2"

	"github.com/dslh/mcp-imagegen/internal/logging"
)

// EnvConfigPath names a config file to load when none is given explicitly
const EnvConfigPath = "IMAGEGEN_CONFIG"

// Config represents the full server configuration
type Config struct {
	Upstream UpstreamConfig `toml:"upstream"`
	Storage  StorageConfig  `toml:"storage"`
	Logging  logging.Config `toml:"logging"`
}

// Load reads the config file at path, falling back to $IMAGEGEN_CONFIG. With
// no file at all the configuration comes from defaults and the environment.
// A named file that does not exist is an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	cfg := &Config{}
	if path != "" {
		var err error
		if cfg, err = load(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize applies defaults, loads environment overrides, and validates every section
func (c *Config) Finalize() error {
	if err := c.Upstream.Finalize(); err != nil {
		return fmt.Errorf("upstream: %w", err)
	}
	if err := c.Storage.Finalize(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Logging.Finalize(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

// Merge applies non-zero values from overlay, then revalidates. Command line
// flags are merged this way so they take precedence over the environment.
func (c *Config) Merge(overlay *Config) error {
	c.Upstream.Merge(&overlay.Upstream)
	c.Storage.Merge(&overlay.Storage)
	c.Logging.Merge(&overlay.Logging)

	if err := c.Upstream.validate(); err != nil {
		return fmt.Errorf("upstream: %w", err)
	}
	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config TOML: %w", err)
	}

	cfg.expandEnvVars()
	return &cfg, nil
}

// expandEnvVars performs ${VAR} expansion on the string values that commonly
// reference the environment
func (c *Config) expandEnvVars() {
	c.Upstream.APIKey = expandString(c.Upstream.APIKey)
	c.Upstream.BaseURL = expandString(c.Upstream.BaseURL)
	c.Storage.OutputDir = expandString(c.Storage.OutputDir)
}

// envVarPattern matches ${VAR_NAME} patterns
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandString expands ${VAR} references. Unset variables expand to "".
func expandString(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})
}
