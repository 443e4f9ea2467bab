// Package config loads runtime settings for the jobtrack CLI.
package config

import "time"

// Config holds runtime settings.
//
// Fields:
//   - DatabasePath: SQLite DSN/path of the local store.
//   - NotifyEnabled: whether account-activity notifications are sent at all.
//   - NotifyEndpoint: HTTP endpoint of the form relay.
//   - NotifyAccessKey: access key passed with every submission.
//   - NotifyTimeout: per-attempt HTTP timeout for notifications.
type Config struct {
	DatabasePath    string
	NotifyEnabled   bool
	NotifyEndpoint  string
	NotifyAccessKey string
	NotifyTimeout   time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "jobtrack.db"
	c.NotifyEnabled = false
	c.NotifyEndpoint = "https://api.web3forms.com/submit"
	c.NotifyAccessKey = ""
	c.NotifyTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
