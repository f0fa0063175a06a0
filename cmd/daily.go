package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/chronos/internal/model"
)

var dailyArchiveFlagAborted bool

// dailyCmd represents the daily command.
var dailyCmd = &cobra.Command{
	Use:     "daily",
	Aliases: []string{"habits"},
	Short:   "Manage daily check-in tasks",
	Long: `Manage recurring daily tasks and their streaks.

A task can be checked in once per calendar day. Checking in on consecutive
days extends its streak; missing a day resets the streak on the next
check-in. Completion marks reset when a new day starts.

Examples:
  chronos daily
  chronos daily add "Read 20 pages"
  chronos daily toggle 01JB3...
  chronos daily archive 01JB3... --aborted
  chronos daily history
  chronos daily history rm 01JB4...`,
	Args: cobra.NoArgs,
	RunE: runDailyList,
}

var dailyListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List today's daily tasks",
	Args:    cobra.NoArgs,
	RunE:    runDailyList,
}

var dailyAddCmd = &cobra.Command{
	Use:   "add TITLE",
	Short: "Add a daily task",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDailyAdd,
}

var dailyToggleCmd = &cobra.Command{
	Use:     "toggle ID",
	Aliases: []string{"check", "done"},
	Short:   "Check a task in for today, or undo today's check-in",
	Args:    cobra.ExactArgs(1),
	RunE:    runDailyToggle,
}

var dailyArchiveCmd = &cobra.Command{
	Use:   "archive ID",
	Short: "Move a task into the history",
	Long: `Move a task out of the active set and record it in the history with its
final streak. The outcome is "completed" unless --aborted is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runDailyArchive,
}

var dailyHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List archived tasks, newest first",
	Args:  cobra.NoArgs,
	RunE:  runDailyHistory,
}

var dailyHistoryRmCmd = &cobra.Command{
	Use:     "rm ID",
	Aliases: []string{"delete", "remove"},
	Short:   "Delete an archived task",
	Args:    cobra.ExactArgs(1),
	RunE:    runDailyHistoryRm,
}

func init() {
	dailyArchiveCmd.Flags().BoolVar(&dailyArchiveFlagAborted, "aborted", false, "Record the task as aborted instead of completed")

	dailyToggleCmd.ValidArgsFunction = completeDailyTasks
	dailyArchiveCmd.ValidArgsFunction = completeDailyTasks
	dailyHistoryRmCmd.ValidArgsFunction = completeHistory

	dailyHistoryCmd.AddCommand(dailyHistoryRmCmd)
	dailyCmd.AddCommand(dailyListCmd)
	dailyCmd.AddCommand(dailyAddCmd)
	dailyCmd.AddCommand(dailyToggleCmd)
	dailyCmd.AddCommand(dailyArchiveCmd)
	dailyCmd.AddCommand(dailyHistoryCmd)
	rootCmd.AddCommand(dailyCmd)
}

func runDailyList(cmd *cobra.Command, args []string) error {
	tasks, err := ctx.Daily.List(cmd.Context())
	if err != nil {
		return err
	}
	return printDailyTasks(tasks)
}

func printDailyTasks(tasks []model.DailyTask) error {
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintData(tasks)
	}
	ctx.CLIFormatter().PrintDailyTasks(tasks)
	return nil
}

func runDailyAdd(cmd *cobra.Command, args []string) error {
	tasks, err := ctx.Daily.Add(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}
	if !ctx.IsJSON() {
		ctx.CLIFormatter().Success("Added " + tasks[len(tasks)-1].Title)
	}
	return printDailyTasks(tasks)
}

func runDailyToggle(cmd *cobra.Command, args []string) error {
	tasks, err := ctx.Daily.Toggle(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if !ctx.IsJSON() {
		for _, t := range tasks {
			if t.ID != args[0] {
				continue
			}
			cli := ctx.CLIFormatter()
			if t.Completed {
				cli.Success(fmt.Sprintf("Checked in %s (streak %d)", t.Title, t.Streak))
			} else {
				cli.Muted("Check-in undone for " + t.Title)
			}
		}
	}
	return printDailyTasks(tasks)
}

func runDailyArchive(cmd *cobra.Command, args []string) error {
	status := model.ArchiveCompleted
	if dailyArchiveFlagAborted {
		status = model.ArchiveAborted
	}

	entry, err := ctx.Daily.Archive(cmd.Context(), args[0], status)
	if err != nil {
		return err
	}

	if entry != nil {
		announce(cmd.Context(), model.NotifyInfo, fmt.Sprintf("Archived %s as %s", entry.Title, entry.Status))
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintData(entry)
	}

	cli := ctx.CLIFormatter()
	if entry == nil {
		cli.Muted("No active task " + args[0] + "; nothing archived.")
		return nil
	}
	cli.Success(fmt.Sprintf("Archived %s as %s (final streak %d)", entry.Title, entry.Status, entry.FinalStreak))
	return nil
}

func runDailyHistory(cmd *cobra.Command, args []string) error {
	history, err := ctx.Daily.History(cmd.Context())
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintData(history)
	}

	ctx.CLIFormatter().PrintHistory(history)
	return nil
}

func runDailyHistoryRm(cmd *cobra.Command, args []string) error {
	history, err := ctx.Daily.DeleteHistory(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintData(history)
	}

	ctx.CLIFormatter().Success("Deleted " + args[0])
	return nil
}
