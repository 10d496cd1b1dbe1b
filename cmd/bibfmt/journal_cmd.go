package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/bibfmt/internal/config"
	"github.com/matsen/bibfmt/internal/journal"
)

var (
	journalLong         bool
	journalCustomAbbrev string
)

func init() {
	journalCmd.Flags().BoolVar(&journalLong, "long", false, "Expand an abbreviation to the full journal name")
	journalCmd.Flags().StringVar(&journalCustomAbbrev, "custom-abbrev", "", "Extra journal abbreviations (.json or .yaml)")
	rootCmd.AddCommand(journalCmd)
}

var journalCmd = &cobra.Command{
	Use:   "journal <name>",
	Short: "Look up a journal abbreviation",
	Long: `Look up a journal name in the abbreviation table.

Matching is exact first, then case-insensitive.

Examples:
  bibfmt journal "Physical Review Letters"
  bibfmt journal --long "Phys. Rev. Lett."`,
	Args: cobra.MinimumNArgs(1),
	RunE: runJournal,
}

func runJournal(cmd *cobra.Command, args []string) error {
	path := journalCustomAbbrev
	if path == "" {
		cfg, err := config.LoadGlobalConfig()
		if err != nil {
			exitWithError(ExitConfigError, "loading config: %v", err)
		}
		path = cfg.CustomAbbrev
	}

	table, err := journal.Load(path)
	if err != nil {
		exitWithError(ExitConfigError, "loading journal table: %v", err)
	}

	name := strings.Join(args, " ")
	result, ok := lookupJournal(table, name, journalLong)
	if !ok {
		exitWithError(ExitDataError, "journal not found: %s", name)
	}
	fmt.Fprintln(cmd.OutOrStdout(), result)
	return nil
}

func lookupJournal(table *journal.Table, name string, long bool) (string, bool) {
	if long {
		table = table.Invert()
	}
	return table.Lookup(name)
}
