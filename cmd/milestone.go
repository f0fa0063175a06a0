package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/chronos/internal/model"
)

// Milestone command flags.
var (
	milestoneFlagCategory string
	milestoneFlagYear     string
)

// milestoneCmd represents the milestone command.
var milestoneCmd = &cobra.Command{
	Use:     "milestone",
	Aliases: []string{"milestones", "ms"},
	Short:   "Track long-term milestones",
	Long: `Track long-term milestones.

Completing a milestone strengthens skill and spirit.

Examples:
  chronos milestone
  chronos milestone add "Run a marathon" --category health --year 2027
  chronos milestone done 01JB5...
  chronos milestone status 01JB5... long-term`,
	Args: cobra.NoArgs,
	RunE: runMilestoneList,
}

var milestoneListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List milestones",
	Args:    cobra.NoArgs,
	RunE:    runMilestoneList,
}

var milestoneAddCmd = &cobra.Command{
	Use:   "add TITLE",
	Short: "Add a pending milestone",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runMilestoneAdd,
}

var milestoneDoneCmd = &cobra.Command{
	Use:               "done ID",
	Short:             "Mark a milestone completed",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeMilestones,
	RunE:              runMilestoneDone,
}

var milestoneStatusCmd = &cobra.Command{
	Use:               "status ID STATUS",
	Short:             "Set a milestone's status (completed, pending, long-term, missed)",
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completeMilestoneStatus,
	RunE:              runMilestoneStatus,
}

func init() {
	milestoneAddCmd.Flags().StringVarP(&milestoneFlagCategory, "category", "c", "", "Category label")
	milestoneAddCmd.Flags().StringVarP(&milestoneFlagYear, "year", "y", "", "Target year")

	milestoneCmd.AddCommand(milestoneListCmd)
	milestoneCmd.AddCommand(milestoneAddCmd)
	milestoneCmd.AddCommand(milestoneDoneCmd)
	milestoneCmd.AddCommand(milestoneStatusCmd)
	rootCmd.AddCommand(milestoneCmd)
}

func printMilestones(ms []model.Milestone) error {
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintData(ms)
	}
	ctx.CLIFormatter().PrintMilestones(ms)
	return nil
}

func runMilestoneList(cmd *cobra.Command, args []string) error {
	ms, err := ctx.Planner.Milestones(cmd.Context())
	if err != nil {
		return err
	}
	return printMilestones(ms)
}

func runMilestoneAdd(cmd *cobra.Command, args []string) error {
	ms, err := ctx.Planner.AddMilestone(cmd.Context(), strings.Join(args, " "), milestoneFlagCategory, milestoneFlagYear)
	if err != nil {
		return err
	}
	announce(cmd.Context(), model.NotifySuccess, "Milestone added")

	if !ctx.IsJSON() {
		ctx.CLIFormatter().Success("Milestone added")
	}
	return printMilestones(ms)
}

func runMilestoneDone(cmd *cobra.Command, args []string) error {
	return setMilestoneStatus(cmd, args[0], model.MilestoneCompleted)
}

func runMilestoneStatus(cmd *cobra.Command, args []string) error {
	return setMilestoneStatus(cmd, args[0], model.MilestoneStatus(args[1]))
}

func setMilestoneStatus(cmd *cobra.Command, id string, status model.MilestoneStatus) error {
	ms, err := ctx.Planner.SetMilestoneStatus(cmd.Context(), id, status)
	if err != nil {
		return err
	}
	announce(cmd.Context(), model.NotifyInfo, "Milestone marked "+string(status))

	if !ctx.IsJSON() {
		ctx.CLIFormatter().Success("Milestone marked " + string(status))
	}
	return printMilestones(ms)
}
