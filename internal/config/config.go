// Package config loads and validates the sprintrec configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/solks/sprintrec/internal/reconcile"
)

const (
	// AppName is the application name used for the config directory.
	AppName = "sprintrec"
	// ConfigFile is the name of the TOML configuration file.
	ConfigFile = "config.toml"
)

// Config is the immutable configuration record for one run. It is loaded
// once and passed to component constructors; components never reach back
// into the file.
type Config struct {
	Clockify ClockifyConfig `toml:"clockify"`
	Sprint   SprintConfig   `toml:"sprint"`
	Tasks    TasksConfig    `toml:"tasks"`
	UI       UIConfig       `toml:"ui"`
}

// ClockifyConfig selects the workspace and user whose entries are fetched.
// Empty workspace or user names select the last candidate the API returns.
type ClockifyConfig struct {
	APIKey        string `toml:"api_key"`
	BaseURL       string `toml:"base_url"`
	WorkspaceName string `toml:"workspace_name"`
	UserName      string `toml:"user_name"`
}

// SprintConfig describes the sprint window and its time budget.
type SprintConfig struct {
	// StartUnix is the sprint start instant in epoch seconds.
	StartUnix int64 `toml:"start_unix"`
	// Days is the sprint length in whole days.
	Days int `toml:"days"`
	// TotalHours is the total sprint time budget in hours.
	TotalHours float64 `toml:"total_hours"`
}

// TasksConfig points at the YAML task plan.
type TasksConfig struct {
	File string `toml:"file"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// Theme is the bubbletint theme name used by the TUI.
	Theme string `toml:"theme"`
}

// DefaultConfig returns a Config with defaults for everything that has a
// sensible one. Credentials, the sprint window and the plan file have no
// defaults and must come from the file.
func DefaultConfig() Config {
	return Config{
		Clockify: ClockifyConfig{
			BaseURL: "https://api.clockify.me/api/v1",
		},
		Sprint: SprintConfig{
			Days: 14,
		},
		UI: UIConfig{
			Theme: "dracula",
		},
	}
}

// GetConfigPath returns the path to the config file, creating the config
// directory if needed. Uses os.UserConfigDir for XDG compliance.
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	appDir := filepath.Join(configDir, AppName)
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(appDir, ConfigFile), nil
}

// Load reads and validates the config file at path.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault reads the config file at path, returning defaults when the
// file does not exist. A present-but-broken file is still an error; the
// defaults are not usable for a real run and exist so that commands like
// `config show` work before any setup.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}

	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that everything a reconciliation run needs is present.
func (c Config) Validate() error {
	if c.Clockify.APIKey == "" {
		return errors.New("clockify.api_key is required")
	}
	if c.Sprint.StartUnix <= 0 {
		return errors.New("sprint.start_unix must be a positive epoch timestamp")
	}
	if c.Sprint.Days <= 0 {
		return errors.New("sprint.days must be positive")
	}
	if c.Sprint.TotalHours < 0 {
		return errors.New("sprint.total_hours must not be negative")
	}
	if c.Tasks.File == "" {
		return errors.New("tasks.file is required")
	}
	return nil
}

// Window derives the sprint window from the sprint settings.
func (c Config) Window() reconcile.Window {
	return reconcile.Window{
		Start: time.Unix(c.Sprint.StartUnix, 0).UTC(),
		Days:  c.Sprint.Days,
	}
}

// GenerateSampleConfig returns a commented sample configuration, used by
// `sprintrec config init`.
func GenerateSampleConfig() string {
	return `# sprintrec configuration file

[clockify]
# API key from https://app.clockify.me/user/settings
api_key = ""
# Leave workspace_name/user_name empty if you only have one of each.
workspace_name = ""
user_name = ""

[sprint]
# Sprint start as epoch seconds, e.g. from: date -d '2024-03-04' +%s
start_unix = 0
days = 14
# Total sprint time budget in hours.
total_hours = 80.0

[tasks]
# YAML task plan. Each task needs a rule ("task:<text>" or
# "project:<name>") and estimated_hours.
file = "sprint-plan.yml"

[ui]
# Theme for the interactive view (any bubbletint theme name).
theme = "dracula"
`
}
