package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/fabmenu/pkg/layout"
	"github.com/matzehuels/fabmenu/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for fabmenu.

Bash:
  $ source <(fabmenu completion bash)

Zsh:
  $ fabmenu completion zsh > "${fpath[1]}/_fabmenu"

Fish:
  $ fabmenu completion fish > ~/.config/fish/completions/fabmenu.fish

PowerShell:
  PS> fabmenu completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
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

// registerFlagCompletions adds value completions for the enum flags shared
// by several subcommands of root.
func registerFlagCompletions(root *cobra.Command) {
	values := map[string][]string{
		"corner":   names(layout.Corners()),
		"strategy": names(layout.Strategies()),
		"engine":   {pipeline.EngineSink, pipeline.EngineNodelink},
	}
	for _, sub := range root.Commands() {
		for flag, vs := range values {
			if sub.Flags().Lookup(flag) == nil {
				continue
			}
			_ = sub.RegisterFlagCompletionFunc(flag, cobra.FixedCompletions(vs, cobra.ShellCompDirectiveNoFileComp))
		}
	}
}

func names[T ~string](xs []T) []string {
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = string(x)
	}
	return out
}
