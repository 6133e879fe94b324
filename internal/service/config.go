package service

import (
	"fmt"
	"os"

	"github.com/solks/sprintrec/internal/config"
)

// ConfigService provides operations for inspecting and bootstrapping the
// configuration.
type ConfigService struct {
	configPath string
	config     config.Config
}

// NewConfigService creates a new ConfigService.
func NewConfigService(configPath string, cfg config.Config) *ConfigService {
	return &ConfigService{
		configPath: configPath,
		config:     cfg,
	}
}

// Get returns the current configuration.
func (s *ConfigService) Get() config.Config {
	return s.config
}

// GetPath returns the path to the config file.
func (s *ConfigService) GetPath() string {
	return s.configPath
}

// Exists checks if the config file exists.
func (s *ConfigService) Exists() bool {
	_, err := os.Stat(s.configPath)
	return err == nil
}

// Init writes a commented sample config file. It refuses to overwrite an
// existing one.
func (s *ConfigService) Init() error {
	if s.Exists() {
		return fmt.Errorf("config file already exists at %s", s.configPath)
	}

	if err := os.WriteFile(s.configPath, []byte(config.GenerateSampleConfig()), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
