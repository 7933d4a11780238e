// Package config loads the duelsrv runtime configuration.
package config

// Config holds the runtime settings for the duelscore service
type Config struct {
	// Addr is the listen address of the HTTP server.
	Addr string `koanf:"addr"`
	// DBPath is the sqlite database file; empty disables persistence.
	DBPath string `koanf:"db_path"`
	// CORSOrigin is the allowed cross-origin for browser clients.
	CORSOrigin string `koanf:"cors_origin"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// TiePolicy is "separate" or "second" (legacy: ties credit player 2).
	TiePolicy string `koanf:"tie_policy"`
	// SkipMalformed makes match scoring skip bad lines instead of failing.
	SkipMalformed bool `koanf:"skip_malformed"`
}

// Default returns the built-in configuration defaults
func Default() *Config {
	return &Config{
		Addr:          ":8080",
		DBPath:        "duelscore.db",
		CORSOrigin:    "*",
		LogLevel:      "info",
		TiePolicy:     "separate",
		SkipMalformed: false,
	}
}
