// Package rule implements the match rules that tie time entries to planned
// tasks. A rule is parsed once from its plan-file string and evaluated as a
// pure predicate against each entry.
package rule

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRuleKind indicates a rule string with neither recognized prefix,
// or a Rule that was not built through Parse. This is a configuration
// defect and always fatal.
var ErrUnknownRuleKind = errors.New("unknown rule kind")

// Kind discriminates the two supported rule variants.
type Kind int

const (
	// KindUnknown is the zero value; evaluating it is an error.
	KindUnknown Kind = iota
	// KindTask matches when the rule text occurs in the entry description.
	KindTask
	// KindProject matches when the rule text equals the project display name.
	KindProject
)

// String returns a short human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindTask:
		return "task"
	case KindProject:
		return "project"
	default:
		return "unknown"
	}
}

const (
	projectPrefix = "project:"
	taskPrefix    = "task:"
)

// Rule is a parsed match rule. Construct with Parse; the zero value fails
// every evaluation with ErrUnknownRuleKind.
type Rule struct {
	Kind Kind
	// Text is the lowercased, trimmed payload the rule compares against.
	Text string
	// Raw is the original plan-file string, kept for display.
	Raw string
}

// Parse builds a Rule from a plan string using the prefix convention
// "project:<name>" or "task:<text>". Prefix matching is case-insensitive
// and surrounding whitespace in the payload is ignored.
func Parse(raw string) (Rule, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))

	switch {
	case strings.HasPrefix(normalized, projectPrefix):
		return Rule{
			Kind: KindProject,
			Text: strings.TrimSpace(normalized[len(projectPrefix):]),
			Raw:  raw,
		}, nil
	case strings.HasPrefix(normalized, taskPrefix):
		return Rule{
			Kind: KindTask,
			Text: strings.TrimSpace(normalized[len(taskPrefix):]),
			Raw:  raw,
		}, nil
	default:
		return Rule{}, fmt.Errorf("%w: %q", ErrUnknownRuleKind, raw)
	}
}

// Matches reports whether an entry with the given project display name and
// description satisfies the rule. Comparison is case-insensitive: project
// rules require an exact name match, task rules a description substring.
func (r Rule) Matches(projectName, description string) (bool, error) {
	switch r.Kind {
	case KindProject:
		return strings.ToLower(projectName) == r.Text, nil
	case KindTask:
		return strings.Contains(strings.ToLower(description), r.Text), nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownRuleKind, r.Raw)
	}
}

// NeedsProject reports whether evaluating the rule requires the entry's
// project identifier to be resolved to a display name.
func (r Rule) NeedsProject() bool {
	return r.Kind == KindProject
}
