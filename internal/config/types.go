package config

// Source represents where a configuration value came from.
type Source string

const (
	SourceDefault  Source = "default"
	SourceUserFile Source = "user file"
	SourceProjFile Source = "project file"
	SourceFile     Source = "config file"
	SourceEnv      Source = "environment"
	SourceFlag     Source = "flag"
)

// Default values.
const (
	DefaultLogDir    = "~/.tasklist/logs"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultMouse     = true
	DefaultAltScreen = true
)

// Config holds the full configuration for tasklist.
type Config struct {
	// Initial tasks
	SeedFile    string `toml:"seed_file"`
	SampleTasks bool   `toml:"sample_tasks"`

	// Logging
	LogDir        string `toml:"log_dir"`
	LogFile       string `toml:"log_file"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Terminal UI
	UI UIConfig `toml:"ui"`

	// ConfigFile is the explicit --config path, if any.
	ConfigFile string `toml:"-"`

	// ProjectRoot is the working directory (computed).
	ProjectRoot string `toml:"-"`

	// Sources maps each configuration key to where its value came from.
	Sources map[string]Source `toml:"-"`

	// Warnings collects non-fatal problems found while loading, such as
	// unknown keys in config files.
	Warnings []string `toml:"-"`
}

// UIConfig holds terminal UI settings.
type UIConfig struct {
	Mouse     bool `toml:"mouse"`
	AltScreen bool `toml:"alt_screen"`
}

// Keys returns the configuration keys in display order.
func Keys() []string {
	return []string{
		"seed_file",
		"sample_tasks",
		"log_dir",
		"log_file",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
		"ui.mouse",
		"ui.alt_screen",
	}
}

// SourceOf returns where key's value came from.
func (c *Config) SourceOf(key string) Source {
	if s, ok := c.Sources[key]; ok {
		return s
	}
	return SourceDefault
}

func (c *Config) setSource(key string, s Source) {
	if c.Sources == nil {
		c.Sources = make(map[string]Source)
	}
	c.Sources[key] = s
}
