package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solks/sprintrec/internal/tui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive sprint report",
	Long: `Launch the interactive terminal view of the sprint report.

The report is fetched when the view opens and can be refreshed without
leaving the terminal.

Keyboard shortcuts:
  r     Refresh (re-fetch entries and reconcile)
  ?     Toggle help
  q     Quit`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runTUI(cmd)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// runTUI initializes services and runs the interactive view.
func runTUI(cmd *cobra.Command) {
	configPath, _ := cmd.Root().PersistentFlags().GetString("config")

	services, err := deps.LoadServices(configPath)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to load configuration")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Run 'sprintrec config init' to create a sample config file")
		deps.Exit(1)
		return
	}

	if err := tui.Run(services); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: TUI failed: %v\n", err)
		deps.Exit(1)
		return
	}
}
