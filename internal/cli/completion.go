package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/boxdeform/pkg/host"
)

// startModes are the modes --mode accepts.
var startModes = []string{host.ModeObject.String(), host.ModeEdit.String(), host.ModePaint.String()}

// completeScene completes scene documents.
func completeScene(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"json"}, cobra.ShellCompDirectiveFilterFileExt
}

// completeMode completes the --mode flag.
func completeMode(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return startModes, cobra.ShellCompDirectiveNoFileComp
}

// completeFormat completes the cage --format flag.
func completeFormat(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{formatJSON, formatText}, cobra.ShellCompDirectiveNoFileComp
}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for boxdeform.

Besides command names, the scripts complete scene documents (*.json) for
run, apply and cage, the start modes of --mode (object, edit, paint) and the
cage --format values (json, text).

To load completions:

Bash:
  $ source <(boxdeform completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ boxdeform completion bash > /etc/bash_completion.d/boxdeform
  # macOS:
  $ boxdeform completion bash > $(brew --prefix)/etc/bash_completion.d/boxdeform

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ boxdeform completion zsh > "${fpath[1]}/_boxdeform"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ boxdeform completion fish | source

  # To load completions for each session, execute once:
  $ boxdeform completion fish > ~/.config/fish/completions/boxdeform.fish

PowerShell:
  PS> boxdeform completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> boxdeform completion powershell > boxdeform.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}
