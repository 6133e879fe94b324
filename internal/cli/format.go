// Package cli renders reconciliation results for the terminal, either as a
// styled bar chart or as JSON for machine consumers.
package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/solks/sprintrec/internal/reconcile"
)

// DefaultBarWidth is the width of the spent/estimated bars in characters.
const DefaultBarWidth = 30

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	barSpentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("173"))
	barOverStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	barRestStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	offPlanStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("180")).Italic(true)
)

// FormatHours formats fractional hours for display, e.g. "2.0h" or "1.5h".
func FormatHours(hours float64) string {
	return fmt.Sprintf("%.1fh", hours)
}

// FormatRatio formats a spent/estimated ratio as a percentage. A
// non-positive estimate has no meaningful ratio and renders as "n/a"; the
// engine deliberately leaves that judgement to the presentation layer.
func FormatRatio(spent, estimated float64) string {
	if estimated <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", spent/estimated*100)
}

// RenderReport renders the reconciliation result as a styled bar chart. The
// header mirrors the summary the original report carried: achievement over
// the scheduled work, total time against the budget, and how far through
// the sprint the clock is.
func RenderReport(res *reconcile.Result, now time.Time, barWidth int) string {
	if barWidth <= 0 {
		barWidth = DefaultBarWidth
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Sprint %s to %s (%d days)",
		res.Window.Start.Format("2006-01-02"),
		res.Window.End().Format("2006-01-02"),
		res.Window.Days)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Tasks achievement: %.1f%% - Total time: %.1f%% - Expected: %.1f%%\n",
		res.AchievementPercent(), res.TotalTimePercent(), res.ExpectedPercent(now)))
	b.WriteString("\n")

	labelWidth := 0
	for _, line := range res.Lines {
		if len(line.Label) > labelWidth {
			labelWidth = len(line.Label)
		}
	}

	for i, line := range res.Lines {
		offPlan := i == len(res.Lines)-1

		label := fmt.Sprintf("%-*s", labelWidth, line.Label)
		if offPlan {
			label = offPlanStyle.Render(label)
		}

		b.WriteString(fmt.Sprintf("%s  %s  %7s  %s\n",
			label,
			renderBar(line.SpentHours, line.EstimatedHours, barWidth),
			FormatRatio(line.SpentHours, line.EstimatedHours),
			subtleStyle.Render(fmt.Sprintf("%s / %s", FormatHours(line.SpentHours), FormatHours(line.EstimatedHours)))))
	}

	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(fmt.Sprintf("Total spent: %s of %s budget (%s scheduled)",
		FormatHours(res.TotalSpentHours),
		FormatHours(res.BudgetHours),
		FormatHours(res.TotalScheduledHours))))
	b.WriteString("\n")

	return b.String()
}

// renderBar draws a fixed-width bar filled proportionally to spent over
// estimated. Overspent bars fill completely in the warning color.
func renderBar(spent, estimated float64, width int) string {
	if estimated <= 0 {
		return barRestStyle.Render(strings.Repeat("░", width))
	}

	ratio := spent / estimated
	if ratio >= 1 {
		return barOverStyle.Render(strings.Repeat("█", width))
	}

	filled := int(ratio * float64(width))
	return barSpentStyle.Render(strings.Repeat("█", filled)) +
		barRestStyle.Render(strings.Repeat("░", width-filled))
}

// jsonReport is the machine-readable shape of a reconciliation result.
type jsonReport struct {
	SprintStart        string           `json:"sprint_start"`
	SprintEnd          string           `json:"sprint_end"`
	SprintDays         int              `json:"sprint_days"`
	BudgetHours        float64          `json:"budget_hours"`
	ScheduledHours     float64          `json:"scheduled_hours"`
	SpentHours         float64          `json:"spent_hours"`
	AchievementPercent float64          `json:"achievement_percent"`
	TotalTimePercent   float64          `json:"total_time_percent"`
	Lines              []reconcile.Line `json:"lines"`
}

// RenderJSON renders the reconciliation result as indented JSON.
func RenderJSON(res *reconcile.Result) (string, error) {
	report := jsonReport{
		SprintStart:        res.Window.Start.Format(time.RFC3339),
		SprintEnd:          res.Window.End().Format(time.RFC3339),
		SprintDays:         res.Window.Days,
		BudgetHours:        res.BudgetHours,
		ScheduledHours:     res.TotalScheduledHours,
		SpentHours:         res.TotalSpentHours,
		AchievementPercent: res.AchievementPercent(),
		TotalTimePercent:   res.TotalTimePercent(),
		Lines:              res.Lines,
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}
	return string(data), nil
}
