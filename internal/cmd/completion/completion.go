// Package completion provides shell completion generation commands.
package completion

import (
	"io"

	"github.com/spf13/cobra"
)

// shell describes one completion target.
type shell struct {
	name    string
	title   string
	install string
	example string
	gen     func(root *cobra.Command, w io.Writer) error
}

var shells = []shell{
	{
		name:  "bash",
		title: "bash",
		install: `To load completions in your current shell session:

  source <(tws completion bash)

To load completions for every new session:

  # Linux
  tws completion bash > /etc/bash_completion.d/tws

  # macOS (requires bash-completion)
  tws completion bash > $(brew --prefix)/etc/bash_completion.d/tws`,
		example: `  # Load in current session
  source <(tws completion bash)

  # Install permanently (Linux)
  tws completion bash | sudo tee /etc/bash_completion.d/tws > /dev/null`,
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenBashCompletionV2(w, true)
		},
	},
	{
		name:  "zsh",
		title: "zsh",
		install: `To load completions in your current shell session:

  source <(tws completion zsh)

To load completions for every new session, ensure compinit is enabled in
~/.zshrc and write the script into your fpath:

  tws completion zsh > "${fpath[1]}/_tws"`,
		example: `  # Install permanently
  mkdir -p ~/.zsh/completions
  tws completion zsh > ~/.zsh/completions/_tws`,
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenZshCompletion(w)
		},
	},
	{
		name:  "fish",
		title: "fish",
		install: `To load completions in your current shell session:

  tws completion fish | source

To load completions for every new session:

  tws completion fish > ~/.config/fish/completions/tws.fish`,
		example: `  # Install permanently
  tws completion fish > ~/.config/fish/completions/tws.fish`,
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenFishCompletion(w, true)
		},
	},
	{
		name:  "powershell",
		title: "PowerShell",
		install: `To load completions in your current shell session:

  tws completion powershell | Out-String | Invoke-Expression

To load completions for every new session, add the output to your
PowerShell profile ($PROFILE).`,
		example: `  # Install permanently (add to $PROFILE)
  tws completion powershell >> $PROFILE`,
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenPowerShellCompletionWithDesc(w)
		},
	},
}

// NewCmdCompletion creates the completion command.
func NewCmdCompletion() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for tws.

These scripts enable tab-completion for commands, flags, and arguments.
See each sub-command's help for installation instructions.`,
	}

	for _, s := range shells {
		cmd.AddCommand(newCmdShell(s))
	}

	return cmd
}

func newCmdShell(s shell) *cobra.Command {
	return &cobra.Command{
		Use:                   s.name,
		Short:                 "Generate " + s.title + " completion script",
		Long:                  "Generate " + s.title + " completion script for tws.\n\n" + s.install,
		Example:               s.example,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return s.gen(cmd.Root(), cmd.OutOrStdout())
		},
	}
}
