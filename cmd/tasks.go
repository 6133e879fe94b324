package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/solks/sprintrec/internal/plan"
)

// tasksCmd represents the tasks command
var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Show the parsed task plan and its match order",
	Long: `Show the task plan as sprintrec understands it: each task's rule,
estimated hours, and the order in which rules are tried against time
entries.

Match order differs from plan order: task rules are always tried before
project rules, so an entry matching both a task and its parent project
is credited to the task. The report itself keeps the plan order.

This command also validates the plan; a rule with an unrecognized prefix
or a negative estimate fails here before any API call is made.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		showTasks(cmd)
	},
}

func init() {
	rootCmd.AddCommand(tasksCmd)
}

// showTasks loads, validates and displays the task plan.
func showTasks(cmd *cobra.Command) {
	configPath, _ := cmd.Root().PersistentFlags().GetString("config")

	services, err := deps.LoadServices(configPath)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to load configuration")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Run 'sprintrec config init' to create a sample config file")
		deps.Exit(1)
		return
	}

	tasks, err := deps.NewRunner(services).Plan()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to load the task plan")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Every rule must start with 'task:' or 'project:', and estimates must not be negative")
		deps.Exit(1)
		return
	}

	if len(tasks) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "The task plan is empty; all sprint time would be off-scheduled")
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Task plan (%d %s):\n", len(tasks), pluralize("task", len(tasks)))
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	for i, t := range tasks {
		_, _ = fmt.Fprintf(deps.Stdout, "[%d] %-24s %-10s %6.1fh  %s\n",
			i+1, t.Label, t.Rule.Kind, t.EstimatedHours, t.Rule.Raw)
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	_, _ = fmt.Fprintf(deps.Stdout, "Total estimated: %.1fh\n", plan.TotalEstimatedHours(tasks))

	_, _ = fmt.Fprintln(deps.Stdout)
	_, _ = fmt.Fprintln(deps.Stdout, "Match order (first match wins):")
	for rank, idx := range plan.PrecedenceOrder(tasks) {
		_, _ = fmt.Fprintf(deps.Stdout, "  %d. %s\n", rank+1, tasks[idx].Rule.Raw)
	}
}

// pluralize returns the singular or plural form of a word based on count.
func pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}
