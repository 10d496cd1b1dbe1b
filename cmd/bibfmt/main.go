// Package main provides the bibfmt CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matsen/bibfmt/internal/logging"
)

// Version is set at build time via ldflags
var Version = "dev"

// Logging flags shared by every command.
var (
	verbose   bool
	quiet     bool
	logFormat string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bibfmt [flags] [file.bib...]",
	Short: "Format BibTeX files",
	Long: `bibfmt rewrites BibTeX databases in a canonical layout.

Entries are parsed, normalized (page ranges, DOI URLs, months, and optionally
journal names and title capitalization) and printed with aligned keys and
uniform delimiters. With no file, or with "-", input is read from stdin.

Examples:
  bibfmt refs.bib
  bibfmt --in-place --sort-by-bibkey refs.bib
  bibfmt --protect-titles --abbrev-journals --indent tab refs.bib
  cat a.bib b.bib | bibfmt --doi-url-type short -`,
	Args:              cobra.ArbitraryArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
	RunE:              runFormat,
}

func init() {
	// Load .env file if present (for BIBFMT_SHORTDOI_URL, BIBFMT_DOI_CACHE)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log debug messages, e.g. failed short DOI lookups")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Only log errors")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")

	addFormatFlags(rootCmd, &fmtFlags)
	rootCmd.Version = Version
}

func setupLogging(cmd *cobra.Command, args []string) error {
	format, err := logging.ParseFormat(logFormat)
	if err != nil {
		return err
	}
	logging.New(cmd.ErrOrStderr(), logging.LevelFor(verbose, quiet), format)
	return nil
}
