// Package config provides configuration management for tws.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/tailwind-shorthand/pkg/shorthand"
)

// DefaultExtensions are the file types scanned by tws check.
var DefaultExtensions = []string{".html", ".htm", ".md", ".templ", ".vue", ".svelte", ".jsx", ".tsx"}

// DefaultAttributes are the attributes that hold class lists.
var DefaultAttributes = []string{"class", "className"}

// Config holds the tws configuration.
type Config struct {
	Vocabulary   map[string]string `yaml:"vocabulary,omitempty"`
	Extensions   []string          `yaml:"extensions,omitempty"`
	Attributes   []string          `yaml:"attributes,omitempty"`
	Merge        bool              `yaml:"merge,omitempty"`
	OutputFormat string            `yaml:"output_format,omitempty"`
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if err := shorthand.Vocabulary(c.Vocabulary).Validate(); err != nil {
		return err
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}
	for _, attr := range c.Attributes {
		if attr == "" || strings.ContainsAny(attr, " \t=\"'") {
			return fmt.Errorf("invalid attribute name %q", attr)
		}
	}
	switch c.OutputFormat {
	case "", "table", "json", "plain":
	default:
		return errors.New("output_format must be one of table, json, plain")
	}
	return nil
}

// ApplyDefaults fills unset list fields with their defaults.
func (c *Config) ApplyDefaults() {
	if len(c.Extensions) == 0 {
		c.Extensions = append([]string(nil), DefaultExtensions...)
	}
	if len(c.Attributes) == 0 {
		c.Attributes = append([]string(nil), DefaultAttributes...)
	}
}

// Catalog builds the shorthand catalog for this configuration.
func (c *Config) Catalog() *shorthand.Catalog {
	if len(c.Vocabulary) == 0 {
		return shorthand.DefaultCatalog()
	}
	return shorthand.NewCatalog(c.Vocabulary)
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
func (c *Config) LoadFromEnv() {
	if exts := os.Getenv("TWS_EXTENSIONS"); exts != "" {
		c.Extensions = splitList(exts)
	}
	if attrs := os.Getenv("TWS_ATTRIBUTES"); attrs != "" {
		c.Attributes = splitList(attrs)
	}
	if merge := os.Getenv("TWS_MERGE"); merge != "" {
		if v, err := strconv.ParseBool(merge); err == nil {
			c.Merge = v
		}
	}
	if output := os.Getenv("TWS_OUTPUT"); output != "" {
		c.OutputFormat = output
	}
}

// splitList splits a comma separated env value, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "tws", "config.yml")
	}

	// Fall back to ~/.config/tws/config.yml
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".tws", "config.yml")
	}

	return filepath.Join(home, ".config", "tws", "config.yml")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file, overrides with environment
// variables and fills defaults. A missing file is not an error.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = &Config{}
	}

	cfg.LoadFromEnv()
	cfg.ApplyDefaults()
	return cfg, nil
}

// Resolve returns the config path to use: the explicit one when set,
// otherwise the default.
func Resolve(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return DefaultConfigPath()
}
