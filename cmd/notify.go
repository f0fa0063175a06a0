package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/chronos/internal/logging"
	"github.com/manav03panchal/chronos/internal/model"
)

// notifyCmd represents the notify command.
var notifyCmd = &cobra.Command{
	Use:     "notify",
	Aliases: []string{"notifications"},
	Short:   "Show or clear the notification history",
	Long: `Show the most recent system messages, newest first.

Examples:
  chronos notify
  chronos notify history
  chronos notify clear`,
	Args: cobra.NoArgs,
	RunE: runNotifyHistory,
}

var notifyHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the notification history",
	Args:  cobra.NoArgs,
	RunE:  runNotifyHistory,
}

var notifyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the notification history",
	Args:  cobra.NoArgs,
	RunE:  runNotifyClear,
}

func init() {
	notifyCmd.AddCommand(notifyHistoryCmd)
	notifyCmd.AddCommand(notifyClearCmd)
	rootCmd.AddCommand(notifyCmd)
}

func runNotifyHistory(cmd *cobra.Command, args []string) error {
	history, err := ctx.Ledger.History(cmd.Context())
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintData(history)
	}

	ctx.CLIFormatter().PrintNotifications(history)
	return nil
}

func runNotifyClear(cmd *cobra.Command, args []string) error {
	if err := ctx.Ledger.Clear(cmd.Context()); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintData([]model.Notification{})
	}

	ctx.CLIFormatter().Success("Notification history cleared")
	return nil
}

// announce records a ledger message. A failure to persist it is logged and
// never fails the command that triggered it.
func announce(c context.Context, t model.NotificationType, message string) {
	if err := ctx.Ledger.Notify(c, message, t); err != nil {
		logging.WarnContext(c, "notification not persisted", logging.KeyError, err)
	}
}
