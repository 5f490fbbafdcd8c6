package logging

import "os"

const (
	EnvLevel  = "LOG_LEVEL"
	EnvFormat = "LOG_FORMAT"
)

// Config holds logging settings, read from the [logging] table
type Config struct {
	Level  Level  `toml:"level"`
	Format Format `toml:"format"`
}

// Finalize applies defaults, loads environment overrides, and validates the configuration
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.Validate()
}

// Merge applies non-zero values from the overlay configuration
func (c *Config) Merge(overlay *Config) {
	if overlay.Level != "" {
		c.Level = overlay.Level
	}
	if overlay.Format != "" {
		c.Format = overlay.Format
	}
}

// Validate normalizes the level and checks the format
func (c *Config) Validate() error {
	c.Level = ParseLevel(string(c.Level))
	return c.Format.Validate()
}

func (c *Config) loadDefaults() {
	if c.Level == "" {
		c.Level = LevelInfo
	}
	if c.Format == "" {
		c.Format = FormatText
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvLevel); v != "" {
		c.Level = Level(v)
	}
	if v := os.Getenv(EnvFormat); v != "" {
		c.Format = Format(v)
	}
}
