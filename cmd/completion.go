package cmd

import (
	"github.com/spf13/cobra"
)

// completionCmd represents the completion command.
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for chronos.

Task, log and milestone IDs complete from the local store.

Bash:
  $ source <(chronos completion bash)

  # To load completions for each session, execute once:
  $ chronos completion bash > /etc/bash_completion.d/chronos

Zsh:
  # If shell completion is not already enabled in your environment,
  # enable it once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  $ chronos completion zsh > "${fpath[1]}/_chronos"

Fish:
  $ chronos completion fish | source

  # To load completions for each session, execute once:
  $ chronos completion fish > ~/.config/fish/completions/chronos.fish
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
