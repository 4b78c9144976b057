// Package root provides the root command for the tws CLI.
package root

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/open-cli-collective/tailwind-shorthand/internal/cmd/apply"
	"github.com/open-cli-collective/tailwind-shorthand/internal/cmd/check"
	"github.com/open-cli-collective/tailwind-shorthand/internal/cmd/completion"
	"github.com/open-cli-collective/tailwind-shorthand/internal/cmd/configcmd"
	initcmd "github.com/open-cli-collective/tailwind-shorthand/internal/cmd/init"
	"github.com/open-cli-collective/tailwind-shorthand/internal/cmd/rules"
	"github.com/open-cli-collective/tailwind-shorthand/internal/logger"
	"github.com/open-cli-collective/tailwind-shorthand/internal/version"
)

// NewCmdRoot creates the root command for tws.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tws",
		Short: "Collapse Tailwind longhand classes into shorthands",
		Long: `tws finds Tailwind class lists that can be written shorter.

"mt-4 mr-4 mb-4 ml-4" becomes "m-4", "w-8 h-8" becomes "size-8", and
classes already covered by a shorthand in the same list are dropped.
Variant prefixes, negative values and important markers are respected.

Get started by running: tws check .`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if err := logger.Init(logger.Level(verbose)); err != nil {
				return err
			}
			logger.L().Debug("starting", zap.String("command", cmd.CommandPath()), zap.String("version", version.Version))
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/tws/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "", "output format: table, json, plain (default: table)")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "log debug output to stderr")

	cmd.SetVersionTemplate(version.String() + "\n")

	// Subcommands
	cmd.AddCommand(apply.NewCmdApply())
	cmd.AddCommand(check.NewCmdCheck())
	cmd.AddCommand(rules.NewCmdRules())
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
