package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/dslh/mcp-imagegen/internal/openrouter"
)

const (
	EnvAPIKey  = "OPENROUTER_API_KEY"
	EnvBaseURL = "OPENROUTER_BASE_URL"
	EnvTimeout = "OPENROUTER_TIMEOUT"
)

// UpstreamConfig configures the OpenRouter client. The API key is not
// required here: its absence is reported per tool call.
type UpstreamConfig struct {
	APIKey     string `toml:"api_key"`
	BaseURL    string `toml:"base_url"`
	Referer    string `toml:"referer"`
	Title      string `toml:"title"`
	Timeout    string `toml:"timeout"`
	timeoutVal time.Duration
}

// TimeoutDuration returns the parsed request timeout
func (c *UpstreamConfig) TimeoutDuration() time.Duration {
	return c.timeoutVal
}

// ClientConfig converts the section into openrouter client settings
func (c *UpstreamConfig) ClientConfig() openrouter.Config {
	return openrouter.Config{
		APIKey:  c.APIKey,
		BaseURL: c.BaseURL,
		Referer: c.Referer,
		Title:   c.Title,
		Timeout: c.timeoutVal,
	}
}

// Finalize applies defaults, loads environment overrides, and validates the section
func (c *UpstreamConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies non-zero values from overlay
func (c *UpstreamConfig) Merge(overlay *UpstreamConfig) {
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Referer != "" {
		c.Referer = overlay.Referer
	}
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *UpstreamConfig) loadDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = openrouter.DefaultBaseURL
	}
	if c.Referer == "" {
		c.Referer = openrouter.DefaultReferer
	}
	if c.Title == "" {
		c.Title = openrouter.DefaultTitle
	}
	if c.Timeout == "" {
		c.Timeout = openrouter.DefaultTimeout.String()
	}
}

func (c *UpstreamConfig) loadEnv() {
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		c.Timeout = v
	}
}

func (c *UpstreamConfig) validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base_url: %q", c.BaseURL)
	}

	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	c.timeoutVal = d
	return nil
}
