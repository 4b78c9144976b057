// Package rules provides the rules command for tws.
package rules

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/tailwind-shorthand/internal/config"
	"github.com/open-cli-collective/tailwind-shorthand/internal/view"
	"github.com/open-cli-collective/tailwind-shorthand/pkg/shorthand"
)

type rulesOptions struct {
	configPath string
	output     string
	noColor    bool
	out        io.Writer
}

// NewCmdRules creates the rules command.
func NewCmdRules() *cobra.Command {
	opts := &rulesOptions{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List shorthand rules",
		Long: `List every shorthand family tws knows about.

Each family has one shorthand covering all of its sides, optional axis
partials covering some of them, and longhands covering one side each.
Names reflect the vocabulary from the config file.`,
		Example: `  # Show the rule table
  tws rules

  # As JSON
  tws rules -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.out = cmd.OutOrStdout()
			return runRules(opts)
		},
	}

	return cmd
}

func runRules(opts *rulesOptions) error {
	cfg, err := config.LoadWithEnv(config.Resolve(opts.configPath))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w (run 'tws init' to reconfigure)", err)
	}

	format := opts.output
	if format == "" {
		format = cfg.OutputFormat
	}
	if err := view.ValidateFormat(format); err != nil {
		return err
	}
	renderer := view.NewRenderer(view.Format(format), opts.noColor)
	if opts.out != nil {
		renderer.SetWriter(opts.out)
	}

	headers := []string{"FAMILY", "SHORTHAND", "PARTIALS", "LONGHANDS"}
	var rows [][]string
	for _, rule := range cfg.Catalog().Rules() {
		rows = append(rows, []string{
			rule.Name,
			rule.Shorthand().Label(),
			labels(rule.Partials()),
			labels(rule.Longhands()),
		})
	}

	renderer.RenderTable(headers, rows)
	return nil
}

func labels(members []shorthand.Member) string {
	if len(members) == 0 {
		return "-"
	}
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.Label()
	}
	return strings.Join(out, ", ")
}
