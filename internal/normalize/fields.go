package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/matsen/bibfmt/internal/journal"
	"github.com/matsen/bibfmt/internal/reference"
)

// AbbreviateJournals replaces journal names found in table. Pass
// table.Invert() to expand abbreviations instead. Unknown names are kept.
func AbbreviateJournals(lib *reference.Library, table *journal.Table) {
	lib.Each(func(key string, e *reference.Entry) {
		name, ok := e.Fields.GetText("journal")
		if !ok {
			return
		}
		if replacement, found := table.Lookup(name); found {
			e.Fields.SetText("journal", replacement)
		}
	})
}

var spaceRun = regexp.MustCompile(` +`)

// CollapseSpaces collapses runs of spaces and trims trailing whitespace in
// every text field except url and doi.
func CollapseSpaces(lib *reference.Library) {
	lib.Each(func(key string, e *reference.Entry) {
		for _, name := range e.Fields.Keys() {
			if name == "url" || name == "doi" {
				continue
			}
			value, ok := e.Fields.GetText(name)
			if !ok {
				continue
			}
			value = spaceRun.ReplaceAllLiteralString(value, " ")
			e.Fields.SetText(name, strings.TrimRightFunc(value, unicode.IsSpace))
		}
	})
}

// DropFields removes the named fields from every entry.
func DropFields(lib *reference.Library, names ...string) {
	if len(names) == 0 {
		return
	}
	lib.Each(func(key string, e *reference.Entry) {
		for _, name := range names {
			e.Fields.Delete(name)
		}
	})
}
