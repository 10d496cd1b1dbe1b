// Package config handles the global bibfmt configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/matsen/bibfmt/internal/export"
	"github.com/matsen/bibfmt/internal/normalize"
)

// Config holds formatting defaults stored in ~/.config/bibfmt/config.yml.
// Command-line flags take precedence over every field.
type Config struct {
	Indent             string `yaml:"indent,omitempty"`               // Number of spaces, or "tab"
	Align              *int   `yaml:"align,omitempty"`                // Maximum key column width
	DelimiterType      string `yaml:"delimiter_type,omitempty"`       // braces or quotes
	DOIURLType         string `yaml:"doi_url_type,omitempty"`         // unchanged, new or short
	PageRangeSeparator string `yaml:"page_range_separator,omitempty"` // e.g. "--"
	SortByBibkey       bool   `yaml:"sort_by_bibkey,omitempty"`
	CustomAbbrev       string `yaml:"custom_abbrev,omitempty"` // Extra journal abbreviations (.json or .yaml)
	Dictionary         string `yaml:"dictionary,omitempty"`    // Word list replacing the built-in one
	ShortDOIURL        string `yaml:"shortdoi_url,omitempty"`
	DOICache           string `yaml:"doi_cache,omitempty"` // SQLite file caching short DOIs
}

// ErrInvalidConfig is returned when a config value is out of range.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks that every set value is understood.
func (c *Config) Validate() error {
	if c.Indent != "" {
		if _, err := export.ParseIndent(c.Indent); err != nil {
			return fmt.Errorf("%w: indent: %v", ErrInvalidConfig, err)
		}
	}
	if c.Align != nil && *c.Align < 0 {
		return fmt.Errorf("%w: align must not be negative, got %d", ErrInvalidConfig, *c.Align)
	}
	if c.DelimiterType != "" {
		if _, err := export.ParseDelimiters(c.DelimiterType); err != nil {
			return fmt.Errorf("%w: delimiter_type: %v", ErrInvalidConfig, err)
		}
	}
	if c.DOIURLType != "" {
		if _, err := normalize.ParseDOIURLMode(c.DOIURLType); err != nil {
			return fmt.Errorf("%w: doi_url_type: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

// YAML encodes the config as it would appear in the config file.
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return data, nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
