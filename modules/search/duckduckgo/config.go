package duckduckgo

import (
	"fmt"
	"time"
)

// Config holds the configuration for the DuckDuckGo search module.
type Config struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// defaults fills zero-valued fields with sensible defaults.
func (c *Config) defaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://api.duckduckgo.com"
	}
	if c.Timeout == "" {
		c.Timeout = "10s"
	}
}

// parsedTimeout returns the timeout as a time.Duration.
// Assumes the value has been validated by validateTimeout.
func (c *Config) parsedTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// validateTimeout checks that the timeout string is a valid Go duration.
func (c *Config) validateTimeout() error {
	_, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return fmt.Errorf("search.duckduckgo: invalid timeout %q: %w", c.Timeout, err)
	}
	return nil
}
