package config

import (
	"fmt"
	"strings"
)

// Validate checks ranges and that exactly one data source is configured.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.HTTP.Port < 1 || cfg.HTTP.Port > 65535 {
		errs = append(errs, fmt.Sprintf("http.port %d out of range", cfg.HTTP.Port))
	}
	if cfg.HTTP.ReadTimeout < 0 || cfg.HTTP.WriteTimeout < 0 || cfg.HTTP.IdleTimeout < 0 {
		errs = append(errs, "http timeouts must not be negative")
	}

	hasCSV := cfg.Data.Buildings != "" || cfg.Data.Paths != ""
	switch {
	case cfg.Data.OSM != "" && hasCSV:
		errs = append(errs, "data: only one of osm or buildings/paths may be set")
	case cfg.Data.OSM == "" && (cfg.Data.Buildings == "" || cfg.Data.Paths == ""):
		errs = append(errs, "data: buildings and paths are both required")
	}

	if cfg.Search.MaxSettledNodes < 0 {
		errs = append(errs, fmt.Sprintf("search.max_settled_nodes %d must not be negative", cfg.Search.MaxSettledNodes))
	}

	switch strings.ToLower(cfg.Logging.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("logging.format %q must be text or json", cfg.Logging.Format))
	}
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Sprintf("logging.level %q is unknown", cfg.Logging.Level))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
