package cmd

import (
	"encoding/base64"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/chronos/internal/errors"
	"github.com/manav03panchal/chronos/internal/journal"
	"github.com/manav03panchal/chronos/internal/model"
	"github.com/manav03panchal/chronos/internal/parser"
	"github.com/manav03panchal/chronos/internal/validate"
)

// Log command flags.
var (
	logFlagHighlight bool
	logFlagTags      []string
	logFlagImages    []string
	logFlagVoice     string
	logFlagDuration  string
	logFlagPage      int
	logFlagSize      int
	logFlagOut       string
)

// logCmd represents the log command.
var logCmd = &cobra.Command{
	Use:     "log",
	Aliases: []string{"journal"},
	Short:   "Write and read journal entries",
	Long: `Write and read journal entries, newest first.

Entries can carry tags, inline images and one voice recording. Voice
recordings are kept in the blob store and removed with their entry.

Examples:
  chronos log add "Shipped the release" --highlight --tag work
  chronos log add "Trail run" --image summit.jpg
  chronos log add "Voice memo" --voice memo.webm --duration 0:45
  chronos log list --page 1
  chronos log play 01JB5... --out memo.webm
  chronos log rm 01JB5...`,
	Args: cobra.NoArgs,
	RunE: runLogList,
}

var logAddCmd = &cobra.Command{
	Use:   "add CONTENT",
	Short: "Write a journal entry",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLogAdd,
}

var logListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List journal entries one page at a time",
	Args:    cobra.NoArgs,
	RunE:    runLogList,
}

var logRmCmd = &cobra.Command{
	Use:     "rm ID",
	Aliases: []string{"delete", "remove"},
	Short:   "Delete a journal entry and its voice recording",
	Args:    cobra.ExactArgs(1),
	RunE:    runLogRm,
}

var logPlayCmd = &cobra.Command{
	Use:   "play ID",
	Short: "Write an entry's voice recording to a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogPlay,
}

func init() {
	logAddCmd.Flags().BoolVar(&logFlagHighlight, "highlight", false, "Mark the entry as a highlight")
	logAddCmd.Flags().StringArrayVarP(&logFlagTags, "tag", "t", nil, "Tag the entry (repeatable)")
	logAddCmd.Flags().StringArrayVar(&logFlagImages, "image", nil, "Attach an image file (repeatable)")
	logAddCmd.Flags().StringVar(&logFlagVoice, "voice", "", "Attach a voice recording file")
	logAddCmd.Flags().StringVar(&logFlagDuration, "duration", "", "Length of the voice recording (e.g. 0:45, 2m)")

	for _, c := range []*cobra.Command{logCmd, logListCmd} {
		c.Flags().IntVarP(&logFlagPage, "page", "p", 0, "Page number, starting at 0")
		c.Flags().IntVarP(&logFlagSize, "size", "n", 10, "Entries per page")
	}

	logPlayCmd.Flags().StringVarP(&logFlagOut, "out", "o", "", "File to write the recording to")
	_ = logPlayCmd.MarkFlagRequired("out")

	logRmCmd.ValidArgsFunction = completeLogs
	logPlayCmd.ValidArgsFunction = completeLogs

	logCmd.AddCommand(logAddCmd)
	logCmd.AddCommand(logListCmd)
	logCmd.AddCommand(logRmCmd)
	logCmd.AddCommand(logPlayCmd)
	rootCmd.AddCommand(logCmd)
}

func runLogAdd(cmd *cobra.Command, args []string) error {
	entry := model.LogEntry{
		Content:     strings.Join(args, " "),
		IsHighlight: logFlagHighlight,
	}
	for _, label := range logFlagTags {
		if label = validate.SanitizeTag(label); label != "" {
			entry.Tags = append(entry.Tags, model.NewTag(label))
		}
	}
	for _, path := range logFlagImages {
		uri, err := imageDataURI(path)
		if err != nil {
			return err
		}
		entry.Images = append(entry.Images, uri)
	}

	var voice *journal.Voice
	if logFlagVoice != "" {
		v, err := attachVoice(cmd, logFlagVoice, logFlagDuration)
		if err != nil {
			return err
		}
		v.Apply(&entry)
		voice = &v
	}

	saved, err := ctx.Journal.Save(cmd.Context(), entry)
	if err != nil {
		// An entry that was never stored cannot reference the recording.
		if voice != nil && saved.ID == "" {
			_ = ctx.Blobs.Remove(cmd.Context(), voice.URI)
		}
		return err
	}
	announce(cmd.Context(), model.NotifySuccess, "Log saved")

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintData(saved)
	}

	cli := ctx.CLIFormatter()
	cli.Success("Log saved")
	cli.PrintLog(saved)
	return nil
}

// imageDataURI inlines an image file the way the journal stores images.
func imageDataURI(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.NewUserErrorWithField("image", path, "Cannot read image", "Check the file path")
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", errors.NewUserErrorWithField("image", path, "Not an image ("+mime+")", "Attach PNG, JPEG, GIF or WebP files")
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func attachVoice(cmd *cobra.Command, path, length string) (journal.Voice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return journal.Voice{}, errors.NewUserErrorWithField("voice", path, "Cannot read recording", "Check the file path")
	}
	if length == "" {
		length = "0:00"
	}
	d := parser.ParseDuration(length)
	if !d.Valid {
		return journal.Voice{}, parser.NewDurationError(length).ToUserError()
	}
	return ctx.Journal.AttachVoice(cmd.Context(), data, d.Duration)
}

func runLogList(cmd *cobra.Command, args []string) error {
	page, err := ctx.Journal.Page(cmd.Context(), logFlagPage, logFlagSize)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintData(page)
	}

	ctx.CLIFormatter().PrintLogPage(page, logFlagPage)
	return nil
}

func runLogRm(cmd *cobra.Command, args []string) error {
	if err := ctx.Journal.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintData(map[string]string{"deleted": args[0]})
	}

	ctx.CLIFormatter().Success("Deleted log " + args[0])
	return nil
}

func runLogPlay(cmd *cobra.Command, args []string) error {
	data, found, err := ctx.Journal.Playback(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if !found {
		return errors.NewUserError("Entry "+args[0]+" has no stored recording",
			"Only recordings attached with --voice can be played back")
	}
	if err := os.WriteFile(logFlagOut, data, 0644); err != nil {
		return errors.NewSystemErrorWithOp("write", "write recording to "+logFlagOut, err)
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintData(map[string]any{"path": logFlagOut, "bytes": len(data)})
	}

	ctx.CLIFormatter().Success("Wrote recording to " + logFlagOut)
	return nil
}
