package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for verovio.

Load it in the current session or install it for every session:

Bash:
  $ source <(verovio completion bash)
  # Linux:
  $ verovio completion bash > /etc/bash_completion.d/verovio
  # macOS:
  $ verovio completion bash > $(brew --prefix)/etc/bash_completion.d/verovio

Zsh:
  $ verovio completion zsh > "${fpath[1]}/_verovio"
  # Requires compinit; if completion is not enabled yet, run once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

Fish:
  $ verovio completion fish | source
  $ verovio completion fish > ~/.config/fish/completions/verovio.fish

PowerShell:
  PS> verovio completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}
