package configcmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/tailwind-shorthand/internal/config"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the effective tws configuration with source indicators.`,
		Example: `  # Show current config
  tws config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runShow(cmd.OutOrStdout(), config.Resolve(configPath), noColor)
		},
	}

	return cmd
}

func runShow(w io.Writer, configPath string, noColor bool) error {
	if noColor {
		color.NoColor = true
	}

	// Load file config (may not exist)
	fileCfg, fileErr := config.Load(configPath)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}

	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	printField := func(label, value string, fromFile bool, envVar string) {
		_, _ = bold.Fprintf(w, "%-12s", label+":")
		if value == "" {
			_, _ = dim.Fprintln(w, "-")
			return
		}
		fmt.Fprint(w, value)

		source := "default"
		switch {
		case envVar != "" && os.Getenv(envVar) != "":
			source = envVar
		case fromFile:
			source = "config"
		}
		_, _ = dim.Fprintf(w, "  (source: %s)\n", source)
	}

	output := cfg.OutputFormat
	if output == "" {
		output = "table"
	}

	printField("Extensions", strings.Join(cfg.Extensions, ", "), len(fileCfg.Extensions) > 0, "TWS_EXTENSIONS")
	printField("Attributes", strings.Join(cfg.Attributes, ", "), len(fileCfg.Attributes) > 0, "TWS_ATTRIBUTES")
	printField("Vocabulary", formatVocabulary(cfg.Vocabulary), len(fileCfg.Vocabulary) > 0, "")
	printField("Merge", strconv.FormatBool(cfg.Merge), fileCfg.Merge, "TWS_MERGE")
	printField("Output", output, fileCfg.OutputFormat != "", "TWS_OUTPUT")

	fmt.Fprintln(w)
	_, _ = dim.Fprintf(w, "Config file: %s\n", configPath)
	if fileErr != nil {
		_, _ = dim.Fprintln(w, "(file not found)")
	}
	if err := cfg.Validate(); err != nil {
		_, _ = color.New(color.FgRed).Fprintf(w, "Invalid: %v\n", err)
	}

	return nil
}

func formatVocabulary(v map[string]string) string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + v[k]
	}
	return strings.Join(pairs, ", ")
}
