package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/chronos/internal/tui"
)

// dashboardCmd represents the dashboard command.
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash", "d", "tui"},
	Short:   "Open the interactive TUI dashboard",
	Long: `Open an interactive terminal dashboard.

The dashboard shows:
  - The six attribute bars, refreshed every second
  - Today's daily tasks and their streaks
  - The latest notification as a short-lived toast

Keyboard Controls:
  ↑/k ↓/j - Move between tasks
  space   - Toggle the selected task
  r       - Refresh data
  q       - Quit dashboard

Examples:
  chronos dashboard
  chronos dash`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	notes, cancel := ctx.Ledger.Subscribe(0)
	defer cancel()

	config := tui.DashboardConfig{
		Attributes:    ctx.Attributes,
		Daily:         ctx.Daily,
		Progress:      ctx.Planner,
		Notifications: notes,
		Now:           ctx.Formatter.Now,
	}

	return tui.Run(config)
}
