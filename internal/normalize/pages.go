package normalize

import (
	"regexp"

	"github.com/matsen/bibfmt/internal/reference"
)

// dashRun matches runs of hyphen, hyphen (U+2010), non-breaking hyphen,
// figure dash, en dash, em dash and horizontal bar.
// See https://jkorpela.fi/dashes.html.
var dashRun = regexp.MustCompile("[-\u2010\u2011\u2012\u2013\u2014\u2015]+")

// SetPageRangeSeparator replaces every run of dashes in the pages field by sep.
func SetPageRangeSeparator(lib *reference.Library, sep string) {
	lib.Each(func(key string, e *reference.Entry) {
		pages, ok := e.Fields.GetText("pages")
		if !ok {
			return
		}
		e.Fields.SetText("pages", UnifyPageRange(pages, sep))
	})
}

// UnifyPageRange replaces every run of dashes in pages by sep.
func UnifyPageRange(pages, sep string) string {
	return dashRun.ReplaceAllLiteralString(pages, sep)
}
