package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/solks/sprintrec/internal/cli"
	"github.com/solks/sprintrec/internal/clockify"
	"github.com/solks/sprintrec/internal/duration"
	"github.com/solks/sprintrec/internal/reconcile"
	"github.com/solks/sprintrec/internal/rule"
)

var rootCmd = &cobra.Command{
	Use:   "sprintrec",
	Short: "Reconcile Clockify time entries against a sprint task plan",
	Long: `sprintrec fetches your time entries from Clockify, matches them against
the planned task list for the current sprint, and reports spent versus
estimated hours per task. Time matching no planned task is bucketed as
off-scheduled.

Usage:
  sprintrec                     Run the sprint report
  sprintrec --json              Emit the report as JSON
  sprintrec tasks               Show the parsed task plan and match order
  sprintrec tui                 Interactive report view
  sprintrec config              Show the current configuration
  sprintrec config init         Write a sample config file

Task plan rules:
  task:<text>        Matches entries whose description contains <text>
  project:<name>     Matches entries logged on the project <name>

Both rule kinds match case-insensitively. Task rules always take
precedence over project rules, so an entry matching both is credited to
the task, never counted twice.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runReport(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to the config file (default: user config dir)")
	rootCmd.Flags().Bool("json", false, "Emit the report as JSON")
	rootCmd.Flags().Int("width", cli.DefaultBarWidth, "Bar chart width in characters")
}

// SetVersionInfo sets the version information for the CLI.
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"sprintrec version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// runReport runs one reconciliation and renders the result.
func runReport(cmd *cobra.Command) {
	configPath, _ := cmd.Root().PersistentFlags().GetString("config")

	services, err := deps.LoadServices(configPath)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to load configuration")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Run 'sprintrec config init' to create a sample config file")
		deps.Exit(1)
		return
	}

	result, err := deps.NewRunner(services).Report(cmd.Context())
	if err != nil {
		reportRunError(err)
		deps.Exit(1)
		return
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		out, err := cli.RenderJSON(result)
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to encode report: %v\n", err)
			deps.Exit(1)
			return
		}
		_, _ = fmt.Fprintln(deps.Stdout, out)
		return
	}

	width, _ := cmd.Flags().GetInt("width")
	_, _ = fmt.Fprint(deps.Stdout, cli.RenderReport(result, time.Now(), width))
}

// reportRunError prints a failure from the reconciliation pipeline with a
// hint matched to the error kind. All of these reflect configuration or
// upstream data defects; none are retryable.
func reportRunError(err error) {
	_, _ = fmt.Fprintln(deps.Stderr, "Error: Sprint report failed")
	_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)

	switch {
	case errors.Is(err, clockify.ErrWorkspaceNotFound):
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check clockify.workspace_name in your config, or leave it empty to use your only workspace")
	case errors.Is(err, clockify.ErrUserNotFound):
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check clockify.user_name in your config, or leave it empty")
	case errors.Is(err, rule.ErrUnknownRuleKind):
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Every plan rule must start with 'task:' or 'project:'")
	case errors.Is(err, reconcile.ErrUnresolvedProject):
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: A time entry references an archived or deleted project; restore it in Clockify or adjust the entry")
	case errors.Is(err, duration.ErrMalformedDuration):
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Clockify returned a duration sprintrec cannot parse; please report this")
	}
}
