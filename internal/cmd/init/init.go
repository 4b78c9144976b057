// Package init provides the init command for tws.
package init

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/tailwind-shorthand/internal/config"
	"github.com/open-cli-collective/tailwind-shorthand/internal/view"
	"github.com/open-cli-collective/tailwind-shorthand/pkg/shorthand"
)

// answers holds the raw form input before it is turned into a Config.
type answers struct {
	extensions string
	attributes string
	vocabulary string
	merge      bool
	output     string
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize tws configuration",
		Long: `Initialize tws for your project.

This command will guide you through choosing which files tws check
scans, which attributes hold class lists, and how utility names are
spelled in your design system. The configuration will be saved to
~/.config/tws/config.yml.`,
		Example: `  # Interactive setup
  tws init

  # Write to a project-local file
  tws init --config ./tws.yml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			return runInit(config.Resolve(configPath))
		},
	}

	return cmd
}

func runInit(configPath string) error {
	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Println("Initialization cancelled.")
			return nil
		}
	}

	a := &answers{
		extensions: strings.Join(config.DefaultExtensions, ", "),
		attributes: strings.Join(config.DefaultAttributes, ", "),
		output:     string(view.FormatTable),
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("File extensions").
				Description("Files scanned by tws check, comma separated").
				Value(&a.extensions).
				Validate(func(s string) error {
					if len(splitList(s)) == 0 {
						return fmt.Errorf("at least one extension is required")
					}
					return nil
				}),

			huh.NewInput().
				Title("Class attributes").
				Description("Attributes that hold class lists, comma separated").
				Value(&a.attributes).
				Validate(func(s string) error {
					if len(splitList(s)) == 0 {
						return fmt.Errorf("at least one attribute is required")
					}
					return nil
				}),

			huh.NewInput().
				Title("Vocabulary (optional)").
				Description("Renamed utilities, e.g. w=width, h=height").
				Placeholder("w=width, h=height").
				Value(&a.vocabulary).
				Validate(func(s string) error {
					_, err := parseVocabulary(s)
					return err
				}),

			huh.NewConfirm().
				Title("Resolve conflicts with tailwind-merge?").
				Description("Drop conflicting classes before shortening").
				Value(&a.merge),

			huh.NewSelect[string]().
				Title("Output format").
				Options(huh.NewOptions(view.ValidFormats()...)...).
				Value(&a.output),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	cfg, err := a.config()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	fmt.Println("\nYou're all set! Try running:")
	fmt.Println("  tws rules")
	fmt.Println("  tws check .")

	return nil
}

// config converts form answers to a Config. Defaults are left unset so
// that later default changes still apply.
func (a *answers) config() (*config.Config, error) {
	vocab, err := parseVocabulary(a.vocabulary)
	if err != nil {
		return nil, err
	}

	cfg := &config.Config{
		Vocabulary: vocab,
		Merge:      a.merge,
	}
	if exts := normalizeExtensions(splitList(a.extensions)); !equal(exts, config.DefaultExtensions) {
		cfg.Extensions = exts
	}
	if attrs := splitList(a.attributes); !equal(attrs, config.DefaultAttributes) {
		cfg.Attributes = attrs
	}
	if a.output != string(view.FormatTable) {
		cfg.OutputFormat = a.output
	}
	return cfg, nil
}

// parseVocabulary parses "from=to" pairs separated by commas.
func parseVocabulary(s string) (map[string]string, error) {
	pairs := splitList(s)
	if len(pairs) == 0 {
		return nil, nil
	}

	vocab := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		from, to, ok := strings.Cut(pair, "=")
		from, to = strings.TrimSpace(from), strings.TrimSpace(to)
		if !ok || from == "" || to == "" {
			return nil, fmt.Errorf("vocabulary entry %q must look like from=to", pair)
		}
		if _, dup := vocab[from]; dup {
			return nil, fmt.Errorf("vocabulary entry %q is given twice", from)
		}
		vocab[from] = to
	}
	if err := shorthand.Vocabulary(vocab).Validate(); err != nil {
		return nil, err
	}
	return vocab, nil
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, len(exts))
	for i, ext := range exts {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out[i] = strings.ToLower(ext)
	}
	return out
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
