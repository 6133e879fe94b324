package ui

import (
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
)

// Styles contains all the styles used by the sprint report view.
type Styles struct {
	App   lipgloss.Style
	Title lipgloss.Style

	Summary      lipgloss.Style
	SummaryLabel lipgloss.Style
	SummaryValue lipgloss.Style

	TaskLabel    lipgloss.Style
	TaskRatio    lipgloss.Style
	TaskHours    lipgloss.Style
	OffPlanLabel lipgloss.Style
	Overspent    lipgloss.Style

	StatusBar lipgloss.Style
	HelpKey   lipgloss.Style
	HelpDesc  lipgloss.Style

	Error   lipgloss.Style
	Loading lipgloss.Style
}

// NewStylesFromRegistry creates a Styles struct using colors from a
// bubbletint registry.
func NewStylesFromRegistry(r *tint.Registry) Styles {
	primary := r.Purple()
	accent := r.Cyan()
	muted := r.BrightBlack()
	warning := r.Yellow()
	errorColor := r.Red()
	fg := r.Fg()

	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),
		Title: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			MarginBottom(1),

		Summary: lipgloss.NewStyle().
			MarginBottom(1),
		SummaryLabel: lipgloss.NewStyle().
			Foreground(muted),
		SummaryValue: lipgloss.NewStyle().
			Foreground(fg).
			Bold(true),

		TaskLabel: lipgloss.NewStyle().
			Foreground(fg),
		TaskRatio: lipgloss.NewStyle().
			Foreground(accent).
			Width(8).
			Align(lipgloss.Right),
		TaskHours: lipgloss.NewStyle().
			Foreground(muted),
		OffPlanLabel: lipgloss.NewStyle().
			Foreground(warning).
			Italic(true),
		Overspent: lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true),

		StatusBar: lipgloss.NewStyle().
			Foreground(muted).
			MarginTop(1),
		HelpKey: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		HelpDesc: lipgloss.NewStyle().
			Foreground(muted),

		Error: lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true),
		Loading: lipgloss.NewStyle().
			Foreground(muted),
	}
}
