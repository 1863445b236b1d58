package config

import (
	"os"
	"strings"
)

// loadFromEnv overrides config from TASKLIST_* environment variables.
func loadFromEnv(cfg *Config) {
	str := func(name, key string, target *string) {
		if v := os.Getenv(name); v != "" {
			*target = v
			cfg.setSource(key, SourceEnv)
		}
	}
	boolean := func(name, key string, target *bool) {
		if v := os.Getenv(name); v != "" {
			*target = boolFromString(v)
			cfg.setSource(key, SourceEnv)
		}
	}

	str("TASKLIST_SEED", "seed_file", &cfg.SeedFile)
	boolean("TASKLIST_SAMPLE", "sample_tasks", &cfg.SampleTasks)
	str("TASKLIST_LOG_DIR", "log_dir", &cfg.LogDir)
	str("TASKLIST_LOG_FILE", "log_file", &cfg.LogFile)
	str("TASKLIST_LOG_LEVEL", "log_level", &cfg.LogLevel)
	str("TASKLIST_LOG_FORMAT", "log_format", &cfg.LogFormat)
	boolean("TASKLIST_LOG_TIMESTAMPS", "log_timestamps", &cfg.LogTimestamps)
	boolean("TASKLIST_LOG_CALLER", "log_caller", &cfg.LogCaller)
	boolean("TASKLIST_MOUSE", "ui.mouse", &cfg.UI.Mouse)
	boolean("TASKLIST_ALT_SCREEN", "ui.alt_screen", &cfg.UI.AltScreen)
}

func boolFromString(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
