package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/chronos/internal/model"
	"github.com/manav03panchal/chronos/internal/output"
	"github.com/manav03panchal/chronos/internal/parser"
)

// Letter command flags.
var (
	letterFlagOn  string
	letterFlagKey string
)

// letterCmd represents the letter command.
var letterCmd = &cobra.Command{
	Use:   "letter",
	Short: "Seal a letter for your future self",
	Long: `Keep one letter addressed to your future self.

A sealed letter shows only its target date until it is opened with its
key, a pattern of '.' and '-'. When no key is given at sealing time one
is generated and shown once. The target date is advisory: the right key
opens the letter at any time.

Examples:
  chronos letter seal "Dear future me" --on +5y
  chronos letter seal "Dear future me" --on 2031-01-01 --key .-.-..
  chronos letter status
  chronos letter open .-.-..`,
	Args: cobra.NoArgs,
	RunE: runLetterShow,
}

var letterSealCmd = &cobra.Command{
	Use:   "seal CONTENT",
	Short: "Seal a new letter, replacing the current one",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLetterSeal,
}

var letterOpenCmd = &cobra.Command{
	Use:   "open [KEY]",
	Short: "Open the letter with its key",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLetterOpen,
}

var letterStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a letter is sealed or open",
	Args:  cobra.NoArgs,
	RunE:  runLetterStatus,
}

func init() {
	letterSealCmd.Flags().StringVar(&letterFlagOn, "on", "", "Date to read the letter on (e.g. +5y, 2031-01-01, next year)")
	letterSealCmd.Flags().StringVar(&letterFlagKey, "key", "", "Key pattern of '.' and '-' (generated when omitted)")
	_ = letterSealCmd.MarkFlagRequired("on")

	letterCmd.AddCommand(letterSealCmd)
	letterCmd.AddCommand(letterOpenCmd)
	letterCmd.AddCommand(letterStatusCmd)
	rootCmd.AddCommand(letterCmd)
}

func runLetterShow(cmd *cobra.Command, args []string) error {
	letter, err := ctx.Letters.Get(cmd.Context(), "")
	if err != nil {
		return err
	}
	return printLetter(letter)
}

func printLetter(letter model.FutureLetter) error {
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintLetter(letter)
	}
	ctx.CLIFormatter().PrintLetter(letter)
	return nil
}

func runLetterSeal(cmd *cobra.Command, args []string) error {
	now := ctx.Formatter.Now()
	target, err := parser.ParseTarget(letterFlagOn, now, ctx.Config.Location())
	if err != nil {
		if tpe, ok := err.(*parser.TimeParseError); ok {
			return tpe.ToUserError()
		}
		return err
	}

	letter, err := ctx.Letters.Save(cmd.Context(), strings.Join(args, " "), target, letterFlagKey)
	if err != nil {
		return err
	}
	announce(cmd.Context(), model.NotifySuccess, "Letter sealed until "+output.FormatDate(target))

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintLetter(letter)
	}

	cli := ctx.CLIFormatter()
	cli.Success("Letter sealed until " + output.FormatDate(target))
	if letterFlagKey == "" {
		cli.Printf("  Key: %s\n", letter.DecryptionKey)
		cli.Muted("  Keep this key. It is not shown again.")
	}
	return nil
}

func runLetterOpen(cmd *cobra.Command, args []string) error {
	key := ""
	if len(args) > 0 {
		key = args[0]
	}
	letter, err := ctx.Letters.Get(cmd.Context(), key)
	if err != nil {
		return err
	}
	if key != "" && letter.Status == model.LetterOpen {
		announce(cmd.Context(), model.NotifySuccess, "Letter opened")
	}
	return printLetter(letter)
}

func runLetterStatus(cmd *cobra.Command, args []string) error {
	status, err := ctx.Letters.Status(cmd.Context())
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintData(map[string]model.LetterStatus{"status": status})
	}

	ctx.CLIFormatter().Printf("Letter: %s\n", status)
	return nil
}
