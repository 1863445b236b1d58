package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tasklist configuration file
# Values can be overridden by environment variables (TASKLIST_*) or CLI flags

# Seed file with initial tasks, appended in order at start-up (JSON)
# seed_file = "tasks.seed.json"

# Start with the built-in sample tasks
sample_tasks = false

# Session logs are written under log_dir/<project>/ while the terminal UI runs
log_dir = "~/.tasklist/logs"

# Write logs to a fixed file instead
# log_file = "/tmp/tasklist.log"

# Logging: debug, info, warn, error / text, json, logfmt
log_level = "info"
log_format = "text"
log_timestamps = false
log_caller = false

[ui]
# Click checkboxes, delete marks and buttons with the mouse (needs alt_screen)
mouse = true
# Run full-screen in the alternate screen buffer
alt_screen = true
`
}
