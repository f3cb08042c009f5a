package sqlite

import "fmt"

// defaultDBFile is the database filename under the app data directory when
// no explicit path is configured.
const defaultDBFile = "stats.db"

// Config holds the configuration for the sqlite stats module.
type Config struct {
	Path        string `yaml:"path"`
	WAL         *bool  `yaml:"wal"`
	BusyTimeout int    `yaml:"busy_timeout_ms"`

	// RetentionDays is how long usage rows are kept before the purge job
	// removes them.
	RetentionDays int `yaml:"retention_days"`
}

// defaults fills zero-valued fields with sensible defaults.
func (c *Config) defaults() {
	if c.BusyTimeout <= 0 {
		c.BusyTimeout = 5000
	}
	if c.RetentionDays <= 0 {
		c.RetentionDays = 30
	}
}

// walEnabled reports whether WAL mode should be set; default on.
func (c *Config) walEnabled() bool {
	return c.WAL == nil || *c.WAL
}

// validate checks config invariants.
func (c *Config) validate() error {
	if c.RetentionDays < 0 {
		return fmt.Errorf("stats.sqlite: retention_days must be positive, got %d", c.RetentionDays)
	}
	return nil
}
