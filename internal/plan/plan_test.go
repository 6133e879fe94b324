package plan

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/solks/sprintrec/internal/rule"
)

const samplePlan = `tasks:
  - rule: "task:design"
    estimated_hours: 5
  - rule: "project:Alpha"
    estimated_hours: 10
    label: "Alpha maintenance"
  - rule: "task:review"
    estimated_hours: 2.5
`

func TestParse(t *testing.T) {
	tasks, err := Parse([]byte(samplePlan))
	if err != nil {
		t.Fatalf("Parse returned unexpected error: %v", err)
	}

	if len(tasks) != 3 {
		t.Fatalf("Parse returned %d tasks, expected 3", len(tasks))
	}

	if tasks[0].Rule.Kind != rule.KindTask || tasks[0].Rule.Text != "design" {
		t.Errorf("task 1 rule = %+v, expected task rule with text 'design'", tasks[0].Rule)
	}
	if tasks[0].EstimatedHours != 5 {
		t.Errorf("task 1 estimate = %v, expected 5", tasks[0].EstimatedHours)
	}
	if tasks[0].Label != "design" {
		t.Errorf("task 1 label = %q, expected rule text as default label", tasks[0].Label)
	}

	if tasks[1].Label != "Alpha maintenance" {
		t.Errorf("task 2 label = %q, expected explicit label to win", tasks[1].Label)
	}
	if tasks[1].Rule.Kind != rule.KindProject {
		t.Errorf("task 2 rule kind = %v, expected project rule", tasks[1].Rule.Kind)
	}

	if tasks[2].EstimatedHours != 2.5 {
		t.Errorf("task 3 estimate = %v, expected 2.5", tasks[2].EstimatedHours)
	}
}

func TestParse_UnknownRule(t *testing.T) {
	data := []byte("tasks:\n  - rule: \"milestone:v1\"\n    estimated_hours: 1\n")
	_, err := Parse(data)
	if !errors.Is(err, rule.ErrUnknownRuleKind) {
		t.Errorf("Parse error = %v, expected ErrUnknownRuleKind", err)
	}
}

func TestParse_NegativeEstimate(t *testing.T) {
	data := []byte("tasks:\n  - rule: \"task:design\"\n    estimated_hours: -1\n")
	_, err := Parse(data)
	if err == nil {
		t.Error("Parse accepted a negative estimate, expected error")
	}
}

func TestParse_ZeroEstimate(t *testing.T) {
	data := []byte("tasks:\n  - rule: \"task:design\"\n    estimated_hours: 0\n")
	tasks, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse returned unexpected error for zero estimate: %v", err)
	}
	if tasks[0].EstimatedHours != 0 {
		t.Errorf("estimate = %v, expected 0 (zero estimates are valid)", tasks[0].EstimatedHours)
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("tasks: [unclosed"))
	if err == nil {
		t.Error("Parse accepted invalid YAML, expected error")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yml")
	if err := os.WriteFile(path, []byte(samplePlan), 0644); err != nil {
		t.Fatalf("failed to write plan file: %v", err)
	}

	tasks, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned unexpected error: %v", err)
	}
	if len(tasks) != 3 {
		t.Errorf("Load returned %d tasks, expected 3", len(tasks))
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does_not_exist.yml"))
	if err == nil {
		t.Error("Load succeeded for a missing file, expected error")
	}
}

func TestTotalEstimatedHours(t *testing.T) {
	tasks, err := Parse([]byte(samplePlan))
	if err != nil {
		t.Fatalf("Parse returned unexpected error: %v", err)
	}
	if total := TotalEstimatedHours(tasks); total != 17.5 {
		t.Errorf("TotalEstimatedHours = %v, expected 17.5", total)
	}
}

func TestPrecedenceOrder_TaskRulesFirst(t *testing.T) {
	tasks, err := Parse([]byte(samplePlan))
	if err != nil {
		t.Fatalf("Parse returned unexpected error: %v", err)
	}

	order := PrecedenceOrder(tasks)
	if len(order) != 3 {
		t.Fatalf("PrecedenceOrder returned %d indices, expected 3", len(order))
	}

	// Both task rules must come before the project rule; among the task
	// rules, "review" sorts before "design" (text descending).
	expected := []int{2, 0, 1}
	for i, idx := range expected {
		if order[i] != idx {
			t.Errorf("order[%d] = %d, expected %d (full order %v)", i, order[i], idx, order)
		}
	}
}

func TestPrecedenceOrder_DoesNotReorderInput(t *testing.T) {
	tasks, err := Parse([]byte(samplePlan))
	if err != nil {
		t.Fatalf("Parse returned unexpected error: %v", err)
	}

	_ = PrecedenceOrder(tasks)

	if tasks[0].Rule.Text != "design" || tasks[1].Rule.Text != "alpha" || tasks[2].Rule.Text != "review" {
		t.Error("PrecedenceOrder mutated the task list; report order must stay the plan order")
	}
}
