// Package reconcile implements the sprint reconciliation engine. It matches
// a feed of time entries against the planned task list for one sprint
// window and aggregates spent-vs-estimated hours per task, bucketing
// unmatched time as off-plan.
package reconcile

import (
	"errors"
	"fmt"
	"time"

	"github.com/solks/sprintrec/internal/duration"
	"github.com/solks/sprintrec/internal/entry"
	"github.com/solks/sprintrec/internal/plan"
)

// OffPlanLabel labels the synthetic trailing result line that holds
// in-window time matching no planned task.
const OffPlanLabel = "Off-scheduled"

// ErrUnresolvedProject indicates an entry whose project identifier is absent
// from the lookup at the moment a project rule needs the display name.
var ErrUnresolvedProject = errors.New("unresolved project")

// Window is the sprint time window, a half-open interval [Start, End()).
type Window struct {
	Start time.Time
	Days  int
}

// End returns the exclusive end of the window, Start plus Days whole days.
func (w Window) End() time.Time {
	return w.Start.Add(w.Length())
}

// Length returns the window duration.
func (w Window) Length() time.Duration {
	return time.Duration(w.Days) * 24 * time.Hour
}

// Contains reports whether t falls inside the window. The start instant is
// included, the end instant is not.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End())
}

// Line is one row of the reconciliation result.
type Line struct {
	SpentHours     float64 `json:"spent_hours"`
	EstimatedHours float64 `json:"estimated_hours"`
	Label          string  `json:"label"`
}

// Result is the outcome of one reconciliation run: one line per planned task
// in plan order, followed by the off-plan line.
type Result struct {
	Lines []Line `json:"lines"`

	TotalScheduledHours float64 `json:"total_scheduled_hours"`
	TotalSpentHours     float64 `json:"total_spent_hours"`
	BudgetHours         float64 `json:"budget_hours"`

	Window Window `json:"-"`
}

// Run reconciles the entry feed against the planned tasks in a single pass.
//
// The upstream feed repeats entries, so each entry identifier is processed
// at most once. Entries starting outside the window are ignored entirely.
// Each remaining entry is credited to the first task, in precedence order,
// whose rule matches it; time matching no task accumulates in the off-plan
// bucket. Running entries (nil duration) are eligible but contribute zero.
//
// Any malformed duration, unresolvable project on a project-rule check, or
// invalid rule aborts the run; the engine performs no local recovery.
func Run(entries []entry.Entry, projects entry.ProjectLookup, tasks []plan.Task, window Window, budgetHours float64) (*Result, error) {
	order := plan.PrecedenceOrder(tasks)
	spent := make([]float64, len(tasks))
	processed := make(map[string]struct{}, len(entries))
	var offPlan float64

	for _, e := range entries {
		if !window.Contains(e.Start) {
			continue
		}
		if _, seen := processed[e.ID]; seen {
			continue
		}
		processed[e.ID] = struct{}{}

		elapsed, err := duration.Hours(e.Duration)
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", e.ID, err)
		}

		credited := false
		for _, i := range order {
			r := tasks[i].Rule

			var projectName string
			if r.NeedsProject() {
				name, ok := projects[e.ProjectID]
				if !ok {
					return nil, fmt.Errorf("%w: entry %s references project %q",
						ErrUnresolvedProject, e.ID, e.ProjectID)
				}
				projectName = name
			}

			matched, err := r.Matches(projectName, e.Description)
			if err != nil {
				return nil, err
			}
			if matched {
				// First match wins: at most one task is credited per entry.
				spent[i] += elapsed
				credited = true
				break
			}
		}
		if !credited {
			offPlan += elapsed
		}
	}

	scheduled := plan.TotalEstimatedHours(tasks)

	result := &Result{
		Lines:               make([]Line, 0, len(tasks)+1),
		TotalScheduledHours: scheduled,
		BudgetHours:         budgetHours,
		Window:              window,
	}
	for i, t := range tasks {
		result.Lines = append(result.Lines, Line{
			SpentHours:     spent[i],
			EstimatedHours: t.EstimatedHours,
			Label:          t.Label,
		})
		result.TotalSpentHours += spent[i]
	}
	// The off-plan budget may go negative when the plan overcommits the
	// sprint; that is the caller's data to interpret, not an error here.
	result.Lines = append(result.Lines, Line{
		SpentHours:     offPlan,
		EstimatedHours: budgetHours - scheduled,
		Label:          OffPlanLabel,
	})
	result.TotalSpentHours += offPlan

	return result, nil
}

// AchievementPercent is the share of the scheduled work that was done,
// counting each task at most up to its estimate. Returns 0 when nothing was
// scheduled.
func (r *Result) AchievementPercent() float64 {
	if r.TotalScheduledHours == 0 {
		return 0
	}
	var done float64
	for _, line := range r.PlannedLines() {
		done += min(line.SpentHours, line.EstimatedHours)
	}
	return done / r.TotalScheduledHours * 100
}

// TotalTimePercent is total spent time (on-plan plus off-plan) relative to
// the sprint budget. Returns 0 when the budget is zero.
func (r *Result) TotalTimePercent() float64 {
	if r.BudgetHours == 0 {
		return 0
	}
	return r.TotalSpentHours / r.BudgetHours * 100
}

// ExpectedPercent is how far through the sprint window the given instant is,
// capped at 100.
func (r *Result) ExpectedPercent(now time.Time) float64 {
	length := r.Window.Length()
	if length <= 0 {
		return 0
	}
	elapsed := now.Sub(r.Window.Start)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > length {
		elapsed = length
	}
	return float64(elapsed) / float64(length) * 100
}

// PlannedLines returns the per-task lines without the trailing off-plan line.
func (r *Result) PlannedLines() []Line {
	if len(r.Lines) == 0 {
		return nil
	}
	return r.Lines[:len(r.Lines)-1]
}

// OffPlanLine returns the trailing off-plan line.
func (r *Result) OffPlanLine() Line {
	if len(r.Lines) == 0 {
		return Line{Label: OffPlanLabel}
	}
	return r.Lines[len(r.Lines)-1]
}
