package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/bibfmt/internal/config"
)

// formatFlags holds the formatting options of the root command.
type formatFlags struct {
	inPlace            bool
	sortByBibkey       bool
	sortFields         bool
	indent             string
	align              int
	delimiterType      string
	doiURLType         string
	pageRangeSeparator string
	protectTitles      bool
	abbrevJournals     bool
	longJournalNames   bool
	customAbbrev       string
	dictionary         string
	unicode            bool
	drop               []string
	merge              bool
	doiCache           string

	// Config and environment only.
	shortDOIURL string
}

var fmtFlags formatFlags

// defaultFormatFlags mirrors the flag defaults.
func defaultFormatFlags() formatFlags {
	return formatFlags{
		indent:             "2",
		align:              14,
		delimiterType:      "braces",
		doiURLType:         "new",
		pageRangeSeparator: "--",
	}
}

func addFormatFlags(cmd *cobra.Command, f *formatFlags) {
	d := defaultFormatFlags()
	fl := cmd.Flags()

	fl.BoolVarP(&f.inPlace, "in-place", "i", false, "Modify input files in place")
	fl.BoolVarP(&f.sortByBibkey, "sort-by-bibkey", "b", false, "Sort entries by citation key")
	fl.BoolVar(&f.sortFields, "sort-fields", false, "Sort fields alphabetically instead of keeping input order")
	fl.StringVar(&f.indent, "indent", d.indent, "Indentation: number of spaces or 'tab'")
	fl.IntVar(&f.align, "align", d.align, "Align field values to at most this many columns")
	fl.StringVarP(&f.delimiterType, "delimiter-type", "d", d.delimiterType, "Value delimiters: braces or quotes")
	fl.StringVar(&f.doiURLType, "doi-url-type", d.doiURLType, "DOI URLs: unchanged, new (https://doi.org/<DOI>) or short")
	fl.StringVarP(&f.pageRangeSeparator, "page-range-separator", "p", d.pageRangeSeparator, "Page range separator")
	fl.BoolVar(&f.protectTitles, "protect-titles", false, "Brace-protect capitalized words in titles")
	fl.BoolVar(&f.abbrevJournals, "abbrev-journals", false, "Abbreviate journal names")
	fl.BoolVar(&f.longJournalNames, "long-journal-names", false, "Expand abbreviated journal names")
	fl.StringVar(&f.customAbbrev, "custom-abbrev", "", "Extra journal abbreviations (.json or .yaml)")
	fl.StringVar(&f.dictionary, "dictionary", "", "Word list replacing the built-in one (e.g. /usr/share/dict/words)")
	fl.BoolVar(&f.unicode, "unicode", false, "Convert LaTeX markup in field values to Unicode")
	fl.StringSliceVar(&f.drop, "drop", nil, "Fields to remove (comma-separated)")
	fl.BoolVar(&f.merge, "merge", false, "Combine all inputs into one database, merging duplicate keys")
	fl.StringVar(&f.doiCache, "doi-cache", "", "SQLite file caching short DOI lookups")

	cmd.MarkFlagsMutuallyExclusive("abbrev-journals", "long-journal-names")
	cmd.MarkFlagsMutuallyExclusive("in-place", "merge")
}

// applyConfig fills options the user did not set on the command line from
// the global config.
func (f *formatFlags) applyConfig(changed func(name string) bool, cfg *config.Config) {
	if !changed("indent") && cfg.Indent != "" {
		f.indent = cfg.Indent
	}
	if !changed("align") && cfg.Align != nil {
		f.align = *cfg.Align
	}
	if !changed("delimiter-type") && cfg.DelimiterType != "" {
		f.delimiterType = cfg.DelimiterType
	}
	if !changed("doi-url-type") && cfg.DOIURLType != "" {
		f.doiURLType = cfg.DOIURLType
	}
	if !changed("page-range-separator") && cfg.PageRangeSeparator != "" {
		f.pageRangeSeparator = cfg.PageRangeSeparator
	}
	if !changed("sort-by-bibkey") && cfg.SortByBibkey {
		f.sortByBibkey = true
	}
	if !changed("custom-abbrev") && cfg.CustomAbbrev != "" {
		f.customAbbrev = cfg.CustomAbbrev
	}
	if !changed("dictionary") && cfg.Dictionary != "" {
		f.dictionary = cfg.Dictionary
	}
	if !changed("doi-cache") && cfg.DOICache != "" {
		f.doiCache = cfg.DOICache
	}
	f.shortDOIURL = cfg.ShortDOIURL
}
