// Package config handles XDG configuration directory, file paths and settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "ltask"

	// SettingsFile is the optional YAML settings filename.
	SettingsFile = "config.yaml"

	// LogFile receives debug logs while the interactive UI owns the terminal.
	LogFile = "ltask.log"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// ID schemes.
const (
	IDsTimestamp = "timestamp"
	IDsUUID      = "uuid"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Settings holds values from config.yaml, or defaults.
	Settings Settings
}

// Settings is the content of config.yaml.
type Settings struct {
	// Storage configures the persisted store.
	Storage StorageSettings `yaml:"storage"`

	// IDs selects how task IDs are generated: timestamp or uuid.
	IDs string `yaml:"ids"`

	// Placeholder is shown in place of an empty due date.
	Placeholder string `yaml:"placeholder"`
}

// StorageSettings configures the persisted store.
type StorageSettings struct {
	// Backend is file or sqlite.
	Backend string `yaml:"backend"`

	// Key is the single named key holding the task collection.
	Key string `yaml:"key"`
}

// DefaultSettings returns the settings used when config.yaml is absent.
func DefaultSettings() Settings {
	return Settings{
		Storage: StorageSettings{
			Backend: BackendFile,
			Key:     "tasks",
		},
		IDs:         IDsTimestamp,
		Placeholder: "No Due Date",
	}
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/ltask or $HOME/.config/ltask.
// Settings are read from config.yaml when present.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}

	settings, err := LoadSettings(cfg.SettingsPath())
	if err != nil {
		return nil, err
	}
	cfg.Settings = settings
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// LoadSettings reads settings from path. A missing file yields defaults;
// fields left out of the file keep their default values.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return Settings{}, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return settings, nil
}

// Validate checks enumerated settings.
func (s *Settings) Validate() error {
	s.Storage.Backend = strings.ToLower(strings.TrimSpace(s.Storage.Backend))
	switch s.Storage.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("unknown storage backend: %q", s.Storage.Backend)
	}

	if strings.TrimSpace(s.Storage.Key) == "" {
		return errors.New("storage key must not be empty")
	}
	if strings.ContainsAny(s.Storage.Key, `/\`) {
		return fmt.Errorf("storage key must not contain path separators: %q", s.Storage.Key)
	}

	s.IDs = strings.ToLower(strings.TrimSpace(s.IDs))
	switch s.IDs {
	case IDsTimestamp, IDsUUID:
	default:
		return fmt.Errorf("unknown id scheme: %q", s.IDs)
	}
	return nil
}

// SettingsPath returns the path to config.yaml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// LogPath returns the path to the debug log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.Dir, LogFile)
}

// DatabasePath returns the path to the SQLite database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Dir, AppName+".db")
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
