package cmd

import (
	"github.com/spf13/cobra"
)

var attrsFlagPeek bool

// attrsCmd represents the attrs command.
var attrsCmd = &cobra.Command{
	Use:     "attrs",
	Aliases: []string{"attributes", "status"},
	Short:   "Show the six core attributes",
	Long: `Show health, mind, skill, social, adventure and spirit.

Reading the attributes applies the decay accumulated since the last read
and moves the baseline forward. Use --peek to look without advancing it.

Examples:
  chronos attrs
  chronos attrs --peek
  chronos attrs -f json`,
	Args: cobra.NoArgs,
	RunE: runAttrs,
}

// analyticsCmd represents the analytics command.
var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show the self report derived from the attributes",
	Args:  cobra.NoArgs,
	RunE:  runAnalytics,
}

func init() {
	attrsCmd.Flags().BoolVar(&attrsFlagPeek, "peek", false, "Show current values without advancing the decay baseline")

	rootCmd.AddCommand(attrsCmd)
	rootCmd.AddCommand(analyticsCmd)
}

func runAttrs(cmd *cobra.Command, args []string) error {
	read := ctx.Attributes.Tick
	if attrsFlagPeek {
		read = ctx.Attributes.Peek
	}
	attrs, err := read(cmd.Context())
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintAttributes(attrs, attrsFlagPeek)
	}

	cli := ctx.CLIFormatter()
	cli.Title("Attributes")
	cli.PrintAttributes(attrs)
	return nil
}

func runAnalytics(cmd *cobra.Command, args []string) error {
	a, err := ctx.Attributes.Analytics(cmd.Context())
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintData(a)
	}

	ctx.CLIFormatter().PrintAnalytics(a)
	return nil
}
