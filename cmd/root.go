// Package cmd provides the CLI commands for Chronos.
package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/chronos/internal/errors"
	"github.com/manav03panchal/chronos/internal/logging"
	"github.com/manav03panchal/chronos/internal/output"
	"github.com/manav03panchal/chronos/internal/runtime"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagFormat string
	flagColor  string
	flagDebug  bool
)

// ctx is the shared runtime context.
var ctx *runtime.Context

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "chronos",
	Short: "A life dashboard for the terminal",
	Long: `Chronos keeps a small personal record: six attributes that fade
unless you tend them, daily check-ins with streaks, a journal, milestones,
and one letter sealed for your future self.

Examples:
  chronos attrs
  chronos daily add "Read 20 pages"
  chronos daily toggle 01J...
  chronos log add "Finished the draft" --highlight
  chronos letter seal "Dear future me" --on +5y
  chronos dashboard`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for completion and help commands (but allow __complete for dynamic completions)
		if cmd.Name() == "completion" || cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		format, err := output.ParseFormat(flagFormat)
		if err != nil {
			return errors.NewUserErrorWithField("format", flagFormat, err.Error(), "Use cli, json or plain")
		}
		colorMode, err := output.ParseColorMode(flagColor)
		if err != nil {
			return errors.NewUserErrorWithField("color", flagColor, err.Error(), "Use auto, always or never")
		}
		if flagDebug {
			logging.InitDebug()
		}

		opts := runtime.DefaultOptions()
		opts.Format = format
		opts.ColorMode = colorMode
		opts.Debug = flagDebug

		ctx, err = runtime.New(opts)
		if err != nil {
			return err
		}
		ctx.Formatter.Writer = cmd.OutOrStdout()
		c := logging.WithRequestID(cmd.Context(), logging.GenerateRequestID())
		cmd.SetContext(logging.WithCommand(c, cmd.CommandPath()))
		return nil
	},
	RunE: runAttrs,
}

// Execute runs the command tree. Identity and access failures are recorded
// in the notification history before the stores are closed.
func Execute() error {
	err := rootCmd.Execute()
	if ctx != nil {
		if err != nil {
			ctx.Ledger.Report(context.Background(), err)
		}
		if cerr := ctx.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "cli",
		"Output format: cli, json, plain")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto",
		"Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug output")

	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("chronos %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
	},
}

// Die prints an error and exits.
func Die(err error) {
	if ctx != nil && ctx.IsJSON() {
		ctx.JSONFormatter().PrintError(err)
	} else {
		os.Stderr.WriteString("Error: " + errors.FormatByCategory(err) + "\n")
	}
	os.Exit(1)
}
