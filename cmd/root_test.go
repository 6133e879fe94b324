package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/solks/sprintrec/internal/clockify"
	"github.com/solks/sprintrec/internal/config"
	"github.com/solks/sprintrec/internal/plan"
	"github.com/solks/sprintrec/internal/reconcile"
	"github.com/solks/sprintrec/internal/service"
)

// fakeRunner substitutes the sprint service in command tests.
type fakeRunner struct {
	result    *reconcile.Result
	reportErr error
	tasks     []plan.Task
	planErr   error
}

func (f *fakeRunner) Report(ctx context.Context) (*reconcile.Result, error) {
	return f.result, f.reportErr
}

func (f *fakeRunner) Plan() ([]plan.Task, error) {
	return f.tasks, f.planErr
}

// testDeps installs buffer-backed deps around a fake runner and returns the
// output buffers plus a pointer to the captured exit code (-1 = not called).
func testDeps(t *testing.T, runner SprintRunner) (stdout, stderr *bytes.Buffer, exitCode *int) {
	t.Helper()

	stdout = &bytes.Buffer{}
	stderr = &bytes.Buffer{}
	code := -1
	exitCode = &code

	SetDeps(&Deps{
		Stdout: stdout,
		Stderr: stderr,
		Stdin:  strings.NewReader(""),
		Exit:   func(c int) { code = c },
		LoadServices: func(configPath string) (*service.Services, error) {
			return service.NewServicesWithConfig(configPath, config.DefaultConfig()), nil
		},
		NewRunner: func(s *service.Services) SprintRunner { return runner },
	})
	t.Cleanup(ResetDeps)

	return stdout, stderr, exitCode
}

func execute(t *testing.T, args ...string) {
	t.Helper()
	rootCmd.SetOut(deps.Stdout)
	rootCmd.SetErr(deps.Stderr)
	rootCmd.SetArgs(args)
	_ = rootCmd.Execute()
}

func testResult() *reconcile.Result {
	return &reconcile.Result{
		Lines: []reconcile.Line{
			{SpentHours: 2, EstimatedHours: 5, Label: "design"},
			{SpentHours: 1, EstimatedHours: 35, Label: reconcile.OffPlanLabel},
		},
		TotalScheduledHours: 5,
		TotalSpentHours:     3,
		BudgetHours:         40,
		Window:              reconcile.Window{Start: time.Unix(1709510400, 0).UTC(), Days: 2},
	}
}

func TestRootCmd_Report(t *testing.T) {
	stdout, stderr, exitCode := testDeps(t, &fakeRunner{result: testResult()})

	execute(t, "--json=false")

	if *exitCode != -1 {
		t.Fatalf("report exited with code %d, stderr: %s", *exitCode, stderr.String())
	}

	out := stdout.String()
	for _, want := range []string{"design", reconcile.OffPlanLabel, "40.0%"} {
		if !strings.Contains(out, want) {
			t.Errorf("report output missing %q:\n%s", want, out)
		}
	}
}

func TestRootCmd_ReportJSON(t *testing.T) {
	stdout, _, exitCode := testDeps(t, &fakeRunner{result: testResult()})

	execute(t, "--json")

	if *exitCode != -1 {
		t.Fatalf("report exited with code %d", *exitCode)
	}
	out := stdout.String()
	if !strings.Contains(out, `"lines"`) || !strings.Contains(out, `"sprint_days": 2`) {
		t.Errorf("JSON output looks wrong:\n%s", out)
	}
}

func TestRootCmd_ReportWorkspaceError(t *testing.T) {
	_, stderr, exitCode := testDeps(t, &fakeRunner{reportErr: clockify.ErrWorkspaceNotFound})

	execute(t, "--json=false")

	if *exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", *exitCode)
	}
	out := stderr.String()
	if !strings.Contains(out, "workspace not found") {
		t.Errorf("stderr missing error details:\n%s", out)
	}
	if !strings.Contains(out, "workspace_name") {
		t.Errorf("stderr missing the workspace hint:\n%s", out)
	}
}

func TestRootCmd_ReportUnresolvedProject(t *testing.T) {
	_, stderr, exitCode := testDeps(t, &fakeRunner{reportErr: reconcile.ErrUnresolvedProject})

	execute(t, "--json=false")

	if *exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "archived or deleted project") {
		t.Errorf("stderr missing the unresolved project hint:\n%s", stderr.String())
	}
}

func TestRootCmd_ConfigLoadFailure(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	code := -1

	SetDeps(&Deps{
		Stdout: stdout,
		Stderr: stderr,
		Stdin:  strings.NewReader(""),
		Exit:   func(c int) { code = c },
		LoadServices: func(configPath string) (*service.Services, error) {
			return nil, config.Config{}.Validate()
		},
		NewRunner: func(s *service.Services) SprintRunner { return &fakeRunner{} },
	})
	t.Cleanup(ResetDeps)

	execute(t, "--json=false")

	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "config init") {
		t.Errorf("stderr missing the config init hint:\n%s", stderr.String())
	}
}
