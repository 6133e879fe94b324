package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/solks/sprintrec/internal/clockify"
	"github.com/solks/sprintrec/internal/config"
	"github.com/solks/sprintrec/internal/reconcile"
)

// fakeClockify serves the minimal Clockify API surface the pipeline touches.
// Sprint window in the tests is [1709510400, +2 days).
func fakeClockify(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	write := func(w http.ResponseWriter, body string) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}

	mux.HandleFunc("/workspaces", func(w http.ResponseWriter, r *http.Request) {
		write(w, `[{"id": "w1", "name": "Work"}]`)
	})
	mux.HandleFunc("/workspaces/w1/users", func(w http.ResponseWriter, r *http.Request) {
		write(w, `[{"id": "u1", "name": "Alice"}]`)
	})
	mux.HandleFunc("/workspaces/w1/projects", func(w http.ResponseWriter, r *http.Request) {
		write(w, `[
			{"id": "p1", "name": "Alpha", "archived": false},
			{"id": "p2", "name": "Retired", "archived": true}
		]`)
	})
	mux.HandleFunc("/workspaces/w1/user/u1/time-entries", func(w http.ResponseWriter, r *http.Request) {
		// e1 matches task:design, e2 matches project:Alpha, e3 matches
		// nothing, e4 starts before the sprint window.
		write(w, `[
			{"id": "e1", "description": "Design review", "projectId": "p1",
			 "timeInterval": {"start": "2024-03-04T09:00:00Z", "duration": "PT2H"}},
			{"id": "e2", "description": "Bug triage", "projectId": "p1",
			 "timeInterval": {"start": "2024-03-04T11:00:00Z", "duration": "PT1H30M"}},
			{"id": "e3", "description": "Standup", "projectId": "p1",
			 "timeInterval": {"start": "2024-03-04T13:00:00Z", "duration": "PT30M"}},
			{"id": "e4", "description": "Design prep", "projectId": "p1",
			 "timeInterval": {"start": "2024-03-01T09:00:00Z", "duration": "PT8H"}}
		]`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func testConfig(t *testing.T, baseURL string) config.Config {
	t.Helper()

	planPath := filepath.Join(t.TempDir(), "plan.yml")
	planYAML := `tasks:
  - rule: "task:design"
    estimated_hours: 5
  - rule: "project:Alpha"
    estimated_hours: 10
`
	if err := os.WriteFile(planPath, []byte(planYAML), 0644); err != nil {
		t.Fatalf("failed to write plan file: %v", err)
	}

	return config.Config{
		Clockify: config.ClockifyConfig{
			APIKey:        "k",
			BaseURL:       baseURL,
			WorkspaceName: "Work",
			UserName:      "Alice",
		},
		Sprint: config.SprintConfig{
			StartUnix:  1709510400, // 2024-03-04T00:00:00Z
			Days:       2,
			TotalHours: 40,
		},
		Tasks: config.TasksConfig{File: planPath},
	}
}

func TestSprintService_Report(t *testing.T) {
	server := fakeClockify(t)
	svc := NewSprintService(testConfig(t, server.URL))

	res, err := svc.Report(context.Background())
	if err != nil {
		t.Fatalf("Report returned unexpected error: %v", err)
	}

	if len(res.Lines) != 3 {
		t.Fatalf("got %d result lines, expected 3", len(res.Lines))
	}

	expected := []reconcile.Line{
		{SpentHours: 2, EstimatedHours: 5, Label: "design"},
		{SpentHours: 1.5, EstimatedHours: 10, Label: "alpha"},
		{SpentHours: 0.5, EstimatedHours: 25, Label: reconcile.OffPlanLabel},
	}
	for i, want := range expected {
		if res.Lines[i] != want {
			t.Errorf("line %d = %+v, expected %+v", i, res.Lines[i], want)
		}
	}
}

func TestSprintService_Report_InvalidConfig(t *testing.T) {
	svc := NewSprintService(config.Config{})
	_, err := svc.Report(context.Background())
	if err == nil {
		t.Error("Report succeeded with an empty config, expected validation error")
	}
}

func TestSprintService_Report_UnknownWorkspace(t *testing.T) {
	server := fakeClockify(t)
	cfg := testConfig(t, server.URL)
	cfg.Clockify.WorkspaceName = "Missing"
	svc := NewSprintService(cfg)

	_, err := svc.Report(context.Background())
	if !errors.Is(err, clockify.ErrWorkspaceNotFound) {
		t.Errorf("Report error = %v, expected ErrWorkspaceNotFound", err)
	}
}

func TestSprintService_Report_UnknownUser(t *testing.T) {
	server := fakeClockify(t)
	cfg := testConfig(t, server.URL)
	cfg.Clockify.UserName = "Bob"
	svc := NewSprintService(cfg)

	_, err := svc.Report(context.Background())
	if !errors.Is(err, clockify.ErrUserNotFound) {
		t.Errorf("Report error = %v, expected ErrUserNotFound", err)
	}
}

func TestSprintService_Plan(t *testing.T) {
	svc := NewSprintService(testConfig(t, "http://unused.invalid"))

	tasks, err := svc.Plan()
	if err != nil {
		t.Fatalf("Plan returned unexpected error: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("Plan returned %d tasks, expected 2", len(tasks))
	}
}

func TestSprintService_Plan_Unconfigured(t *testing.T) {
	svc := NewSprintService(config.Config{})
	if _, err := svc.Plan(); err == nil {
		t.Error("Plan succeeded without a configured plan file, expected error")
	}
}
