package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matsen/bibfmt/internal/config"
	"github.com/matsen/bibfmt/internal/shortdoi"
)

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the global configuration",
	Long: `Inspect the global configuration.

Defaults for the formatting flags are read from ~/.config/bibfmt/config.yml
(or $XDG_CONFIG_HOME/bibfmt/config.yml). Flags always take precedence.

Keys:
  indent                number of spaces or "tab"
  align                 maximum key column width
  delimiter_type        braces or quotes
  doi_url_type          unchanged, new or short
  page_range_separator  e.g. "--"
  sort_by_bibkey        true or false
  custom_abbrev         extra journal abbreviations (.json or .yaml)
  dictionary            word list for --protect-titles
  shortdoi_url          short DOI service (env BIBFMT_SHORTDOI_URL)
  doi_cache             SQLite cache for short DOIs (env BIBFMT_DOI_CACHE)`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadGlobalConfig()
		if err != nil {
			exitWithError(ExitConfigError, "loading config: %v", err)
		}
		if err := cfg.Validate(); err != nil {
			exitWithError(ExitConfigError, "%s: %v", config.GlobalConfigPath(), err)
		}
		return writeConfig(cmd.OutOrStdout(), effectiveConfig(cfg))
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the location of the global config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.GlobalConfigPath())
		return nil
	},
}

// effectiveConfig fills everything cfg leaves unset with the flag defaults.
func effectiveConfig(cfg *config.Config) *config.Config {
	f := defaultFormatFlags()
	f.applyConfig(func(string) bool { return false }, cfg)

	align := f.align
	out := &config.Config{
		Indent:             f.indent,
		Align:              &align,
		DelimiterType:      f.delimiterType,
		DOIURLType:         f.doiURLType,
		PageRangeSeparator: f.pageRangeSeparator,
		SortByBibkey:       f.sortByBibkey,
		CustomAbbrev:       f.customAbbrev,
		Dictionary:         f.dictionary,
		ShortDOIURL:        f.shortDOIURL,
		DOICache:           f.doiCache,
	}
	if out.ShortDOIURL == "" {
		out.ShortDOIURL = shortdoi.BaseURL
	}
	return out
}

func writeConfig(w io.Writer, cfg *config.Config) error {
	data, err := cfg.YAML()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
