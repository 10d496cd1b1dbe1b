// Package export renders a reference.Library as canonical BibTeX text.
package export

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/matsen/bibfmt/internal/normalize"
	"github.com/matsen/bibfmt/internal/reference"
)

// Delimiters are the opening and closing symbols around field values.
type Delimiters struct {
	Left, Right string
}

var (
	Braces = Delimiters{"{", "}"}
	Quotes = Delimiters{`"`, `"`}
)

// Options control the rendered layout.
type Options struct {
	Delimiters Delimiters // Value delimiters, fixed for the whole render
	Indent     string     // Indentation unit for entry lines
	Align      int        // Maximum column width keys are padded to
	SortFields bool       // Emit fields in lexical order instead of input order
	SortByKey  bool       // Emit entries in citation key order
}

// DefaultOptions returns braces, two-space indent and alignment to 14 columns.
func DefaultOptions() Options {
	return Options{
		Delimiters: Braces,
		Indent:     "  ",
		Align:      14,
	}
}

// ParseDelimiters maps "braces" or "quotes" to Delimiters.
func ParseDelimiters(s string) (Delimiters, error) {
	switch s {
	case "braces":
		return Braces, nil
	case "quotes":
		return Quotes, nil
	}
	return Delimiters{}, fmt.Errorf("invalid delimiter type %q (valid: braces, quotes)", s)
}

// ParseIndent maps a number of spaces or "tab" to an indentation unit.
func ParseIndent(s string) (string, error) {
	if s == "tab" {
		return "\t", nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return "", fmt.Errorf("invalid indent value %q (expected a non-negative int or 'tab')", s)
	}
	return strings.Repeat(" ", n), nil
}

// OpaqueValueError reports a field whose value is not text and therefore has
// no BibTeX representation.
type OpaqueValueError struct {
	Key   string // Citation key
	Field string // Field name
	Value reference.Value
}

func (e *OpaqueValueError) Error() string {
	return fmt.Sprintf("entry %s: field %s has non-text value %v", e.Key, e.Field, e.Value)
}

// ToBibTeX renders a single entry. The result has no trailing newline.
func ToBibTeX(key string, e *reference.Entry, opts Options) (string, error) {
	left, right := opts.Delimiters.Left, opts.Delimiters.Right

	var roles []string
	if e.Persons != nil {
		roles = e.Persons.Roles()
	}
	var names []string
	if e.Fields != nil {
		names = e.Fields.Keys()
		if opts.SortFields {
			sort.Strings(names)
		}
	}

	width := columnWidth(roles, names, opts.Align)
	pad := func(k string) string {
		return fmt.Sprintf("%-*s", width, strings.ToLower(k))
	}

	var lines []string
	for _, role := range roles {
		persons, _ := e.Persons.Get(role)
		lines = append(lines, fmt.Sprintf("%s = %s%s%s", pad(role), left, reference.JoinPersons(persons), right))
	}

	for _, name := range names {
		v, _ := e.Fields.Get(name)
		value, ok := v.Text()
		if !ok {
			return "", &OpaqueValueError{Key: key, Field: name, Value: v}
		}

		if strings.ToLower(name) == "month" {
			month, ok := normalize.TranslateMonth(value)
			if ok {
				lines = append(lines, fmt.Sprintf("%s = %s", pad(name), month))
			}
			continue
		}

		value = strings.ReplaceAll(value, "\uFFFD", "?")
		lines = append(lines, fmt.Sprintf("%s = %s%s%s", pad(name), left, value, right))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "@%s{%s,\n", e.Type, key)
	for _, line := range lines {
		b.WriteString(opts.Indent)
		b.WriteString(line)
		b.WriteString(",\n")
	}
	b.WriteString("}")
	return b.String(), nil
}

// Render renders the whole library: preamble directives first, then every
// entry, separated by blank lines and terminated by a single newline.
func Render(lib *reference.Library, opts Options) (string, error) {
	var segments []string
	for _, p := range lib.Preamble {
		segments = append(segments, fmt.Sprintf(`@preamble{"%s"}`, p))
	}

	keys := lib.Keys()
	if opts.SortByKey {
		keys = lib.SortedKeys()
	}
	for _, key := range keys {
		e, _ := lib.Get(key)
		s, err := ToBibTeX(key, e, opts)
		if err != nil {
			return "", err
		}
		segments = append(segments, s)
	}

	return strings.Join(segments, "\n\n") + "\n", nil
}

// columnWidth is the longest key length, capped at align.
func columnWidth(roles, names []string, align int) int {
	longest := 0
	for _, k := range roles {
		longest = max(longest, utf8.RuneCountInString(k))
	}
	for _, k := range names {
		longest = max(longest, utf8.RuneCountInString(k))
	}
	return min(align, longest)
}
