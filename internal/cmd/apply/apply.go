// Package apply provides the apply command for tws.
package apply

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/open-cli-collective/tailwind-shorthand/internal/config"
	"github.com/open-cli-collective/tailwind-shorthand/internal/logger"
	"github.com/open-cli-collective/tailwind-shorthand/internal/scan"
	"github.com/open-cli-collective/tailwind-shorthand/internal/view"
	"github.com/open-cli-collective/tailwind-shorthand/pkg/shorthand"
)

type applyOptions struct {
	configPath string
	output     string
	noColor    bool
	merge      bool
	in         io.Reader
	out        io.Writer
}

// outcome pairs an input class list with its result for rendering.
type outcome struct {
	Input string `json:"input"`
	shorthand.Result
}

// NewCmdApply creates the apply command.
func NewCmdApply() *cobra.Command {
	opts := &applyOptions{}

	cmd := &cobra.Command{
		Use:   "apply [classes...]",
		Short: "Shorten a class list",
		Long: `Rewrite a class list using shorthand classes.

The arguments are joined into one class list. With no arguments, each
non-empty line of standard input is treated as a separate class list.`,
		Example: `  # Collapse margins
  tws apply mt-4 mr-4 mb-4 ml-4

  # Print only the rewritten list
  tws apply -o plain "w-8 h-8 rounded-full"

  # Resolve conflicts first, then shorten
  tws apply --merge "p-2 p-4 w-4 h-4"

  # Read class lists from a file
  tws apply -o json < classes.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.in = cmd.InOrStdin()
			opts.out = cmd.OutOrStdout()
			return runApply(opts, args)
		},
	}

	cmd.Flags().BoolVar(&opts.merge, "merge", false, "resolve conflicting classes with tailwind-merge before shortening")

	return cmd
}

func runApply(opts *applyOptions, args []string) error {
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

	lists, fromStdin, err := classLists(opts.in, args)
	if err != nil {
		return err
	}
	if len(lists) == 0 {
		return errors.New("no classes given")
	}

	scanner := scan.New(scan.Options{
		Catalog: cfg.Catalog(),
		Merge:   cfg.Merge || opts.merge,
	})

	outcomes := make([]outcome, 0, len(lists))
	for _, list := range lists {
		result := scanner.Apply(list)
		logger.L().Debug("applied", zap.String("input", list), zap.String("value", result.Value), zap.Bool("applied", result.Applied))
		outcomes = append(outcomes, outcome{Input: list, Result: result})
	}

	renderer := view.NewRenderer(view.Format(format), opts.noColor)
	if opts.out != nil {
		renderer.SetWriter(opts.out)
	}

	switch renderer.Format() {
	case view.FormatJSON:
		if fromStdin {
			return renderer.RenderJSON(outcomes)
		}
		return renderer.RenderJSON(outcomes[0])
	case view.FormatPlain:
		for _, o := range outcomes {
			renderer.RenderText(o.Value)
		}
	default:
		for i, o := range outcomes {
			if i > 0 {
				renderer.RenderText("")
			}
			renderOutcome(renderer, o)
		}
	}
	return nil
}

func renderOutcome(r *view.Renderer, o outcome) {
	if !o.Applied {
		r.RenderText(o.Value)
		return
	}
	r.RenderChange(strings.Join(strings.Fields(o.Input), " "), o.Value)

	rows := make([][]string, 0, len(o.Transformations))
	for _, t := range o.Transformations {
		rows = append(rows, []string{t.Shorthand, t.Classnames})
	}
	r.RenderText("")
	r.RenderTable([]string{"SHORTHAND", "REPLACES"}, rows)
}

// classLists returns the joined args, or one list per non-empty stdin line
// when there are no args.
func classLists(in io.Reader, args []string) ([]string, bool, error) {
	if len(args) > 0 {
		return []string{strings.Join(args, " ")}, false, nil
	}
	if in == nil {
		in = os.Stdin
	}

	var lists []string
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lists = append(lists, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, true, fmt.Errorf("failed to read stdin: %w", err)
	}
	return lists, true, nil
}
