package cmd

import (
	"context"
	"io"
	"os"

	"github.com/solks/sprintrec/internal/config"
	"github.com/solks/sprintrec/internal/plan"
	"github.com/solks/sprintrec/internal/reconcile"
	"github.com/solks/sprintrec/internal/service"
)

// SprintRunner is the slice of the sprint service the commands drive.
type SprintRunner interface {
	Report(ctx context.Context) (*reconcile.Result, error)
	Plan() ([]plan.Task, error)
}

// Deps holds external dependencies for CLI commands, enabling testability.
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Exit   func(code int)

	// LoadServices builds the services from the config at configPath, or
	// from the default config location when configPath is empty.
	LoadServices func(configPath string) (*service.Services, error)
	// NewRunner extracts the sprint runner from loaded services. Tests
	// replace this to avoid the network.
	NewRunner func(s *service.Services) SprintRunner
}

// DefaultDeps returns the default production dependencies.
func DefaultDeps() *Deps {
	return &Deps{
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		Stdin:        os.Stdin,
		Exit:         os.Exit,
		LoadServices: loadServices,
		NewRunner: func(s *service.Services) SprintRunner {
			return s.Sprint
		},
	}
}

// loadServices builds services from an explicit config path, falling back to
// the default config location.
func loadServices(configPath string) (*service.Services, error) {
	if configPath == "" {
		return service.NewServices()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return service.NewServicesWithConfig(configPath, cfg), nil
}

// deps is the global dependencies instance used by commands.
// In production, this is DefaultDeps(). Tests can replace it.
var deps = DefaultDeps()

// SetDeps sets the global dependencies (for testing).
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps resets dependencies to defaults (for testing cleanup).
func ResetDeps() {
	deps = DefaultDeps()
}
