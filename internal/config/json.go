package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/jobtrack/internal/flagx"
	"github.com/dmitrijs2005/jobtrack/internal/timex"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "10s" or as integer nanoseconds.
type jsonConfig struct {
	DatabasePath    string         `json:"database_path"`
	NotifyEnabled   bool           `json:"notify_enabled"`
	NotifyEndpoint  string         `json:"notify_endpoint"`
	NotifyAccessKey string         `json:"notify_access_key"`
	NotifyTimeout   timex.Duration `json:"notify_timeout"`
}

// parseJSON overlays Config with values loaded from the JSON file named by
// the -c/-config flags. When neither flag is given, nothing is loaded.
// Read or unmarshal errors panic; config must be valid if present.
func parseJSON(cfg *Config) {
	path := flagx.JSONConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	jc := jsonConfig{
		DatabasePath:    cfg.DatabasePath,
		NotifyEnabled:   cfg.NotifyEnabled,
		NotifyEndpoint:  cfg.NotifyEndpoint,
		NotifyAccessKey: cfg.NotifyAccessKey,
		NotifyTimeout:   timex.Duration{Duration: cfg.NotifyTimeout},
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.DatabasePath = jc.DatabasePath
	cfg.NotifyEnabled = jc.NotifyEnabled
	cfg.NotifyEndpoint = jc.NotifyEndpoint
	cfg.NotifyAccessKey = jc.NotifyAccessKey
	cfg.NotifyTimeout = jc.NotifyTimeout.Duration
}
