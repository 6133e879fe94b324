// Package service provides the business logic layer for sprintrec. It wires
// the Clockify client, the task plan and the reconciliation engine behind a
// small API shared by the CLI and the TUI.
package service

import (
	"github.com/solks/sprintrec/internal/config"
)

// Services holds all service instances used by the application.
type Services struct {
	Sprint *SprintService
	Config *ConfigService
}

// NewServices creates a Services instance from the default config location.
func NewServices() (*Services, error) {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}

	return NewServicesWithConfig(configPath, cfg), nil
}

// NewServicesWithConfig creates a Services instance from an explicit config
// (useful for --config overrides and tests).
func NewServicesWithConfig(configPath string, cfg config.Config) *Services {
	return &Services{
		Sprint: NewSprintService(cfg),
		Config: NewConfigService(configPath, cfg),
	}
}
