// Package plan loads the sprint task plan and determines the order in which
// task rules are evaluated against time entries.
package plan

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/solks/sprintrec/internal/rule"
)

// Task is one row of the sprint plan.
type Task struct {
	Rule           rule.Rule
	EstimatedHours float64
	Label          string
}

// taskRow is the on-disk YAML shape of a single plan row.
type taskRow struct {
	Rule           string  `yaml:"rule"`
	EstimatedHours float64 `yaml:"estimated_hours"`
	Label          string  `yaml:"label"`
}

// planFile is the on-disk YAML shape of the plan.
type planFile struct {
	Tasks []taskRow `yaml:"tasks"`
}

// Load reads a YAML plan file and parses each row's match rule. A rule with
// an unrecognized prefix or a negative estimate fails the whole load; the
// plan is configuration and defects in it must surface immediately.
func Load(path string) ([]Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}
	return Parse(data)
}

// Parse parses plan YAML into an ordered task list.
func Parse(data []byte) ([]Task, error) {
	var file planFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse plan file: %w", err)
	}

	tasks := make([]Task, 0, len(file.Tasks))
	for i, row := range file.Tasks {
		r, err := rule.Parse(row.Rule)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}

		if row.EstimatedHours < 0 {
			return nil, fmt.Errorf("task %d (%q): estimated hours must not be negative, got %v",
				i+1, row.Rule, row.EstimatedHours)
		}

		label := strings.TrimSpace(row.Label)
		if label == "" {
			label = r.Text
		}

		tasks = append(tasks, Task{
			Rule:           r,
			EstimatedHours: row.EstimatedHours,
			Label:          label,
		})
	}

	return tasks, nil
}

// TotalEstimatedHours sums the estimates over all planned tasks.
func TotalEstimatedHours(tasks []Task) float64 {
	var total float64
	for _, t := range tasks {
		total += t.EstimatedHours
	}
	return total
}

// PrecedenceOrder returns the indices of tasks in matching order: task rules
// strictly before project rules, ties broken by rule text descending.
//
// Task rules must be tried first so that an entry matching both a task rule
// and its parent project rule is credited to the task, never double-counted.
// The secondary ordering keeps runs deterministic when several rules of the
// same kind exist; no stronger semantics are attached to it.
func PrecedenceOrder(tasks []Task) []int {
	order := make([]int, len(tasks))
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		ra, rb := tasks[order[a]].Rule, tasks[order[b]].Rule
		if ra.Kind != rb.Kind {
			return kindRank(ra.Kind) < kindRank(rb.Kind)
		}
		return ra.Text > rb.Text
	})

	return order
}

func kindRank(k rule.Kind) int {
	switch k {
	case rule.KindTask:
		return 0
	case rule.KindProject:
		return 1
	default:
		return 2
	}
}
