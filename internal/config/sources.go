package config

import (
	"os"
	"path/filepath"
)

// projectConfigNames are looked up in the working directory, in order.
var projectConfigNames = []string{"tasklist.toml", ".tasklist.toml"}

func findProjectConfigFile() string {
	return firstFile(projectConfigNames...)
}

func findUserConfigFile() string {
	return firstFile(userConfigCandidates()...)
}

// userConfigCandidates lists user-level config paths in lookup order:
// ~/.tasklist/tasklist.toml, then tasklist/tasklist.toml under the OS config
// directory (XDG_CONFIG_HOME, ~/Library/Application Support or %AppData%).
func userConfigCandidates() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".tasklist", "tasklist.toml"))
	}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "tasklist", "tasklist.toml"))
	}
	return paths
}

// firstFile returns the first path that exists and is not a directory.
func firstFile(paths ...string) string {
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	*cfg = Config{
		LogDir:    DefaultLogDir,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		UI: UIConfig{
			Mouse:     DefaultMouse,
			AltScreen: DefaultAltScreen,
		},
		Sources: make(map[string]Source),
	}
}
