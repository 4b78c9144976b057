// Package check provides the check command for tws.
package check

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/open-cli-collective/tailwind-shorthand/internal/config"
	"github.com/open-cli-collective/tailwind-shorthand/internal/logger"
	"github.com/open-cli-collective/tailwind-shorthand/internal/scan"
	"github.com/open-cli-collective/tailwind-shorthand/internal/view"
)

// ErrFindings is returned when class lists can be shortened and --fix was
// not given. The message has already been rendered when it is returned.
var ErrFindings = errors.New("shorthand opportunities found")

type checkOptions struct {
	configPath  string
	output      string
	noColor     bool
	fix         bool
	merge       bool
	concurrency int
	out         io.Writer
}

// NewCmdCheck creates the check command.
func NewCmdCheck() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Find class lists that can be shortened",
		Long: `Scan files for class attributes that can use shorthand classes.

Directories are walked recursively, skipping hidden directories,
node_modules and vendor. HTML and markdown are parsed; other files
(templ, JSX, Vue, Svelte) are scanned for attribute assignments.
Class lists containing template expressions are left alone.

The command exits non-zero when findings remain. Use --fix to rewrite
the files in place.`,
		Example: `  # Check the current directory
  tws check

  # Check specific files and directories
  tws check src/components index.html

  # Rewrite files in place
  tws check --fix .

  # Machine readable report
  tws check -o json src`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.out = cmd.OutOrStdout()
			return runCheck(cmd.Context(), opts, args)
		},
	}

	cmd.Flags().BoolVar(&opts.fix, "fix", false, "rewrite files in place")
	cmd.Flags().BoolVar(&opts.merge, "merge", false, "resolve conflicting classes with tailwind-merge before shortening")
	cmd.Flags().IntVarP(&opts.concurrency, "jobs", "j", 0, "files processed at once (default: number of CPUs)")

	return cmd
}

func runCheck(ctx context.Context, opts *checkOptions, paths []string) error {
	if len(paths) == 0 {
		paths = []string{"."}
	}

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

	scanner := scan.New(scan.Options{
		Extensions:  cfg.Extensions,
		Attributes:  cfg.Attributes,
		Catalog:     cfg.Catalog(),
		Merge:       cfg.Merge || opts.merge,
		Concurrency: opts.concurrency,
	})

	findings, err := scanner.Scan(ctx, paths)
	if err != nil {
		return fmt.Errorf("failed to scan: %w", err)
	}
	logger.L().Debug("scan complete", zap.Int("findings", len(findings)))

	if opts.fix {
		return runFix(renderer, findings)
	}

	if renderer.Format() == view.FormatJSON {
		if findings == nil {
			findings = []scan.Finding{}
		}
		if err := renderer.RenderJSON(findings); err != nil {
			return err
		}
	} else {
		if len(findings) == 0 {
			if renderer.Format() == view.FormatTable {
				renderer.Success("No shorthand opportunities found")
			}
			return nil
		}
		renderFindings(renderer, findings)
	}

	if len(findings) > 0 {
		return ErrFindings
	}
	return nil
}

func runFix(renderer *view.Renderer, findings []scan.Finding) error {
	n, err := scan.WriteFixes(findings)
	if err != nil {
		return fmt.Errorf("failed to apply fixes: %w", err)
	}

	files := make(map[string]bool)
	for _, f := range findings {
		files[f.File] = true
	}

	switch renderer.Format() {
	case view.FormatJSON:
		return renderer.RenderJSON(map[string]int{"fixed": n, "files": len(files)})
	case view.FormatPlain:
		renderer.RenderKeyValue("fixed", strconv.Itoa(n))
		renderer.RenderKeyValue("files", strconv.Itoa(len(files)))
		renderer.RenderKeyValue("skipped", strconv.Itoa(len(findings)-n))
	default:
		renderer.Success(fmt.Sprintf("Rewrote %d class lists in %d files", n, len(files)))
		if skipped := len(findings) - n; skipped > 0 {
			renderer.Error(fmt.Sprintf("%d class lists changed on disk and were skipped", skipped))
		}
	}
	return nil
}

func renderFindings(renderer *view.Renderer, findings []scan.Finding) {
	headers := []string{"FILE", "LINE", "ORIGINAL", "SUGGESTION"}
	rows := make([][]string, 0, len(findings))
	for _, f := range findings {
		original := f.Original
		if renderer.Format() == view.FormatTable {
			original = view.Truncate(original, 60)
		}
		rows = append(rows, []string{f.File, strconv.Itoa(f.Line), original, f.Value})
	}
	renderer.RenderTable(headers, rows)

	if renderer.Format() == view.FormatTable {
		renderer.RenderText("")
		renderer.RenderText(fmt.Sprintf("%d class lists can be shortened (run with --fix to rewrite)", len(findings)))
	}
}
