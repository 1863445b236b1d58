package config

import (
	"flag"
)

// flagKeys maps flag names to the configuration keys they set.
var flagKeys = map[string]string{
	"seed":           "seed_file",
	"sample":         "sample_tasks",
	"log-dir":        "log_dir",
	"log-file":       "log_file",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
	"mouse":          "ui.mouse",
	"alt-screen":     "ui.alt_screen",
}

// parseFlags defines and parses the global CLI flags.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("tasklist", flag.ContinueOnError)
	}

	var configFile string
	fs.StringVar(&configFile, "config", cfg.ConfigFile, "Path to an extra config file")

	// Initial tasks
	fs.StringVar(&cfg.SeedFile, "seed", cfg.SeedFile, "Seed file with initial tasks (JSON)")
	fs.BoolVar(&cfg.SampleTasks, "sample", cfg.SampleTasks, "Start with the sample tasks")

	// Logging
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Directory for session logs")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Write logs to this file instead of a session log")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text|json|logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Include caller location in logs")

	// Terminal UI
	fs.BoolVar(&cfg.UI.Mouse, "mouse", cfg.UI.Mouse, "Enable mouse support in the terminal UI")
	fs.BoolVar(&cfg.UI.AltScreen, "alt-screen", cfg.UI.AltScreen, "Use the alternate screen buffer")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			cfg.setSource(key, SourceFlag)
		}
	})
	return nil
}
