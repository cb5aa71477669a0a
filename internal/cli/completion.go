package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/cattree/pkg/dashboard"
	"github.com/matzehuels/cattree/pkg/layout"
	"github.com/matzehuels/cattree/pkg/render/nodelink"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for cattree.

To load completions:

Bash:
  $ source <(cattree completion bash)

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ cattree completion zsh > "${fpath[1]}/_cattree"

Fish:
  $ cattree completion fish > ~/.config/fish/completions/cattree.fish

PowerShell:
  PS> cattree completion powershell | Out-String | Invoke-Expression
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

// fixedCompletion completes a flag from a fixed list of values.
func fixedCompletion(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// registerTreeCompletions completes the enumerated flags of the tree command.
func registerTreeCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("direction", fixedCompletion(
		layout.TopBottom.String()+"\t"+layout.TopBottom.Label(),
		layout.LeftRight.String()+"\t"+layout.LeftRight.Label()))
	_ = cmd.RegisterFlagCompletionFunc("format", fixedCompletion(dashboard.Formats...))
	_ = cmd.RegisterFlagCompletionFunc("engine", fixedCompletion(
		string(nodelink.EnginePinned), string(nodelink.EngineDot)))
	_ = cmd.MarkFlagFilename("input", "json")
}
