package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/solks/sprintrec/internal/config"
	"github.com/solks/sprintrec/internal/service"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or manage configuration settings",
	Long: `Display the current effective configuration for sprintrec.

Shows the config file location, whether it exists, and all current
settings. A run needs at least the Clockify API key, the sprint window
and the task plan file; 'sprintrec config init' writes a commented
sample to get started.

Configuration file location:
  ~/.config/sprintrec/config.toml      Linux/macOS
  %APPDATA%\sprintrec\config.toml      Windows`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		showConfig()
	},
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample config file",
	Long:  `Write a commented sample configuration file to the default location. Refuses to overwrite an existing file.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		initConfig()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
}

// showConfig displays the current effective configuration.
func showConfig() {
	configPath, err := config.GetConfigPath()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine config file location")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check that your home directory is accessible")
		deps.Exit(1)
		return
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to load configuration")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Check that your config file is valid TOML format: %s\n", configPath)
		deps.Exit(1)
		return
	}

	svc := service.NewConfigService(configPath, cfg)

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration for sprintrec")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 60))
	_, _ = fmt.Fprintf(deps.Stdout, "Config file:      %s\n", configPath)
	if svc.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:           File exists")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:           No config file (using defaults)")
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintln(deps.Stdout, "Clockify:")
	_, _ = fmt.Fprintf(deps.Stdout, "  api_key:        %s\n", maskSecret(cfg.Clockify.APIKey))
	_, _ = fmt.Fprintf(deps.Stdout, "  base_url:       %s\n", cfg.Clockify.BaseURL)
	_, _ = fmt.Fprintf(deps.Stdout, "  workspace_name: %s\n", orPlaceholder(cfg.Clockify.WorkspaceName, "(any)"))
	_, _ = fmt.Fprintf(deps.Stdout, "  user_name:      %s\n", orPlaceholder(cfg.Clockify.UserName, "(any)"))
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintln(deps.Stdout, "Sprint:")
	if cfg.Sprint.StartUnix > 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "  start:          %s (epoch %d)\n",
			time.Unix(cfg.Sprint.StartUnix, 0).UTC().Format("2006-01-02 15:04 MST"), cfg.Sprint.StartUnix)
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "  start:          (not set)")
	}
	_, _ = fmt.Fprintf(deps.Stdout, "  days:           %d\n", cfg.Sprint.Days)
	_, _ = fmt.Fprintf(deps.Stdout, "  total_hours:    %.1f\n", cfg.Sprint.TotalHours)
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintf(deps.Stdout, "Tasks file:       %s\n", orPlaceholder(cfg.Tasks.File, "(not set)"))
	_, _ = fmt.Fprintf(deps.Stdout, "Theme:            %s\n", cfg.UI.Theme)

	if err := cfg.Validate(); err != nil {
		_, _ = fmt.Fprintln(deps.Stdout)
		_, _ = fmt.Fprintf(deps.Stdout, "Note: configuration is incomplete for a report run: %v\n", err)
	}
}

// initConfig writes a sample config file to the default location.
func initConfig() {
	configPath, err := config.GetConfigPath()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine config file location")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	svc := service.NewConfigService(configPath, config.DefaultConfig())
	if err := svc.Init(); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to create config file")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Created sample config at %s\n", configPath)
	_, _ = fmt.Fprintln(deps.Stdout, "Fill in your Clockify API key, the sprint window and the task plan path")
}

// maskSecret hides all but the last four characters of a secret.
func maskSecret(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", len(secret)-4) + secret[len(secret)-4:]
}

func orPlaceholder(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}
