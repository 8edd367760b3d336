package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for sightline.

To load completions:

Bash:
  $ source <(sightline completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ sightline completion bash > /etc/bash_completion.d/sightline
  # macOS:
  $ sightline completion bash > $(brew --prefix)/etc/bash_completion.d/sightline

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ sightline completion zsh > "${fpath[1]}/_sightline"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ sightline completion fish | source

  # To load completions for each session, execute once:
  $ sightline completion fish > ~/.config/fish/completions/sightline.fish

PowerShell:
  PS> sightline completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> sightline completion powershell > sightline.ps1
  # and source this file from your PowerShell profile.
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

	return cmd
}
