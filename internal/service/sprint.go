package service

import (
	"context"
	"fmt"

	"github.com/solks/sprintrec/internal/clockify"
	"github.com/solks/sprintrec/internal/config"
	"github.com/solks/sprintrec/internal/plan"
	"github.com/solks/sprintrec/internal/reconcile"
)

// SprintService runs the fetch-plan-reconcile pipeline for one sprint.
type SprintService struct {
	cfg    config.Config
	client *clockify.Client
}

// NewSprintService creates a SprintService for the given configuration.
func NewSprintService(cfg config.Config) *SprintService {
	client := clockify.New(cfg.Clockify.APIKey,
		clockify.WithBaseURL(cfg.Clockify.BaseURL))
	return &SprintService{cfg: cfg, client: client}
}

// Report resolves the configured workspace and user, fetches the project
// lookup and the time entry feed, loads the task plan and reconciles all of
// it against the sprint window. Every failure aborts the run; nothing here
// is retryable.
func (s *SprintService) Report(ctx context.Context) (*reconcile.Result, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	workspace, err := s.client.FindWorkspace(ctx, s.cfg.Clockify.WorkspaceName)
	if err != nil {
		return nil, err
	}

	user, err := s.client.FindUser(ctx, workspace.ID, s.cfg.Clockify.UserName)
	if err != nil {
		return nil, err
	}

	projects, err := s.client.Projects(ctx, workspace.ID)
	if err != nil {
		return nil, err
	}

	entries, err := s.client.TimeEntries(ctx, workspace.ID, user.ID)
	if err != nil {
		return nil, err
	}

	tasks, err := plan.Load(s.cfg.Tasks.File)
	if err != nil {
		return nil, err
	}

	return reconcile.Run(entries, projects, tasks, s.cfg.Window(), s.cfg.Sprint.TotalHours)
}

// Plan loads the task plan without touching the network.
func (s *SprintService) Plan() ([]plan.Task, error) {
	if s.cfg.Tasks.File == "" {
		return nil, fmt.Errorf("invalid configuration: tasks.file is required")
	}
	return plan.Load(s.cfg.Tasks.File)
}
