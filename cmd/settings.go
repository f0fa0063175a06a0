package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/chronos/internal/model"
	"github.com/manav03panchal/chronos/internal/output"
	"github.com/manav03panchal/chronos/internal/parser"
)

// settingsCmd represents the settings command.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show time settings and progress, and log sleep",
	Long: `Show the time-allocation settings with the life progress derived from
them, and record last night's sleep.

Life progress is the time since birth over the life expectancy preset
(average 73, healthy 95, or the custom value). Year progress runs from the
last birthday to the next one.

Logging between 7 and 9 hours of sleep strengthens health.

Examples:
  chronos settings
  chronos settings progress
  chronos settings sleep 7.5
  chronos settings sleep 7h30m`,
	Args: cobra.NoArgs,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsProgressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show life, year, month and day progress",
	Args:  cobra.NoArgs,
	RunE:  runSettingsProgress,
}

var settingsSleepCmd = &cobra.Command{
	Use:   "sleep HOURS",
	Short: "Record how long you slept",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsSleep,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsProgressCmd)
	settingsCmd.AddCommand(settingsSleepCmd)
	rootCmd.AddCommand(settingsCmd)
}

func printSettings(s model.UserSettings) error {
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintData(s)
	}
	ctx.CLIFormatter().PrintSettings(s)
	return nil
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	s, err := ctx.Planner.Settings(cmd.Context())
	if err != nil {
		return err
	}
	m, err := ctx.Planner.Metrics(cmd.Context())
	if err != nil {
		return err
	}
	saved, err := ctx.Store.Exists(cmd.Context(), model.NSSettings)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintData(output.SettingsResponse{Settings: s, Progress: m, Saved: saved})
	}

	cli := ctx.CLIFormatter()
	cli.PrintSettings(s)
	if !saved {
		cli.Muted("  (defaults, nothing saved yet)")
	}
	cli.Println()
	cli.PrintTimeMetrics(m)
	return nil
}

func runSettingsProgress(cmd *cobra.Command, args []string) error {
	m, err := ctx.Planner.Metrics(cmd.Context())
	if err != nil {
		return err
	}
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintData(m)
	}
	ctx.CLIFormatter().PrintTimeMetrics(m)
	return nil
}

func runSettingsSleep(cmd *cobra.Command, args []string) error {
	hours, err := parser.ParseSleep(args[0])
	if err != nil {
		return err
	}
	s, err := ctx.Planner.LogSleep(cmd.Context(), hours)
	if err != nil {
		return err
	}
	announce(cmd.Context(), model.NotifySuccess, "Sleep logged")

	if !ctx.IsJSON() {
		ctx.CLIFormatter().Success("Sleep logged")
	}
	return printSettings(s)
}
