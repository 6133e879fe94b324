// Package tui provides the interactive terminal view of the sprint report.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/solks/sprintrec/internal/reconcile"
	"github.com/solks/sprintrec/internal/service"
	"github.com/solks/sprintrec/internal/tui/ui"
)

// Reporter produces a reconciliation result. Satisfied by
// service.SprintService; tests substitute fakes.
type Reporter interface {
	Report(ctx context.Context) (*reconcile.Result, error)
}

// reportLoadedMsg is sent when a reconciliation run finishes.
type reportLoadedMsg struct {
	result *reconcile.Result
	err    error
}

// Model is the sprint report TUI model.
type Model struct {
	reporter Reporter
	styles   ui.Styles
	keys     ui.KeyMap

	progress progress.Model
	spinner  spinner.Model

	result   *reconcile.Result
	err      error
	loading  bool
	showHelp bool
	width    int
}

// New creates a new TUI model around the given reporter.
func New(reporter Reporter, themeName string) Model {
	styles := ui.NewThemeProvider(themeName).Styles()

	p := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	p.Width = 40

	s := spinner.New()
	s.Spinner = spinner.Dot

	return Model{
		reporter: reporter,
		styles:   styles,
		keys:     ui.DefaultKeyMap(),
		progress: p,
		spinner:  s,
		loading:  true,
	}
}

// Run starts the TUI for the given services.
func Run(services *service.Services) error {
	model := New(services.Sprint, services.Config.Get().UI.Theme)
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

// load runs one reconciliation in the background.
func (m Model) load() tea.Cmd {
	reporter := m.reporter
	return func() tea.Msg {
		result, err := reporter.Report(context.Background())
		return reportLoadedMsg{result: result, err: err}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			if m.loading {
				return m, nil
			}
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.load())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		barWidth := msg.Width - 40
		if barWidth < 10 {
			barWidth = 10
		}
		if barWidth > 60 {
			barWidth = 60
		}
		m.progress.Width = barWidth
		return m, nil

	case reportLoadedMsg:
		m.loading = false
		m.result = msg.result
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Sprint report"))
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(m.styles.Loading.Render(m.spinner.View() + " Fetching time entries..."))
		b.WriteString("\n")

	case m.err != nil:
		b.WriteString(m.styles.Error.Render("Error: " + m.err.Error()))
		b.WriteString("\n")

	case m.result != nil:
		b.WriteString(m.viewSummary())
		b.WriteString("\n")
		b.WriteString(m.viewTasks())
	}

	b.WriteString(m.viewStatusBar())

	return m.styles.App.Render(b.String())
}

func (m Model) viewSummary() string {
	res := m.result
	now := time.Now()

	summary := fmt.Sprintf("%s %s   %s %s   %s %s",
		m.styles.SummaryLabel.Render("achievement"),
		m.styles.SummaryValue.Render(fmt.Sprintf("%.1f%%", res.AchievementPercent())),
		m.styles.SummaryLabel.Render("total time"),
		m.styles.SummaryValue.Render(fmt.Sprintf("%.1f%%", res.TotalTimePercent())),
		m.styles.SummaryLabel.Render("expected"),
		m.styles.SummaryValue.Render(fmt.Sprintf("%.1f%%", res.ExpectedPercent(now))))

	window := fmt.Sprintf("%s to %s (%d days)",
		res.Window.Start.Format("2006-01-02"),
		res.Window.End().Format("2006-01-02"),
		res.Window.Days)

	return m.styles.Summary.Render(summary + "\n" + m.styles.SummaryLabel.Render(window))
}

func (m Model) viewTasks() string {
	var b strings.Builder

	labelWidth := 0
	for _, line := range m.result.Lines {
		if len(line.Label) > labelWidth {
			labelWidth = len(line.Label)
		}
	}

	for i, line := range m.result.Lines {
		offPlan := i == len(m.result.Lines)-1

		label := fmt.Sprintf("%-*s", labelWidth, line.Label)
		if offPlan {
			label = m.styles.OffPlanLabel.Render(label)
		} else {
			label = m.styles.TaskLabel.Render(label)
		}

		ratio := m.styles.TaskRatio.Render(formatRatio(line.SpentHours, line.EstimatedHours))
		if line.EstimatedHours > 0 && line.SpentHours > line.EstimatedHours {
			ratio = m.styles.Overspent.Render(formatRatio(line.SpentHours, line.EstimatedHours))
		}

		b.WriteString(fmt.Sprintf("%s  %s  %s  %s\n",
			label,
			m.progress.ViewAs(barRatio(line.SpentHours, line.EstimatedHours)),
			ratio,
			m.styles.TaskHours.Render(fmt.Sprintf("%.1fh / %.1fh", line.SpentHours, line.EstimatedHours))))
	}

	return b.String()
}

func (m Model) viewStatusBar() string {
	if m.showHelp {
		help := []struct{ key, desc string }{
			{"r", "refresh"},
			{"?", "help"},
			{"q", "quit"},
		}
		parts := make([]string, 0, len(help))
		for _, h := range help {
			parts = append(parts, m.styles.HelpKey.Render(h.key)+" "+m.styles.HelpDesc.Render(h.desc))
		}
		return m.styles.StatusBar.Render(strings.Join(parts, "  "))
	}
	return m.styles.StatusBar.Render("r refresh · ? help · q quit")
}

// barRatio clamps spent/estimated into [0, 1] for the progress bar. Tasks
// with no positive estimate show an empty bar; the ratio column carries the
// n/a signal.
func barRatio(spent, estimated float64) float64 {
	if estimated <= 0 {
		return 0
	}
	ratio := spent / estimated
	if ratio > 1 {
		return 1
	}
	return ratio
}

func formatRatio(spent, estimated float64) string {
	if estimated <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", spent/estimated*100)
}
