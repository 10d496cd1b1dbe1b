// Package importer reads BibTeX databases into the reference model.
package importer

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/matsen/bibfmt/internal/normalize"
	"github.com/matsen/bibfmt/internal/reference"
)

// ParseError annotates a parse failure with the offending file.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("parsing bibtex: %v", e.Err)
	}
	return fmt.Sprintf("parsing %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Structural errors wrapped by ParseError.
var (
	ErrMissingKey   = errors.New("entry has no citation key")
	ErrInvalidField = errors.New("malformed field assignment")
)

// PersonFields lists the fields that are split into structured names.
var PersonFields = []string{"author", "editor"}

// Parse reads a BibTeX database. name is used only to annotate errors.
func Parse(name string, data []byte) (*reference.Library, error) {
	parsed, err := bibParser.ParseBytes(name, data)
	if err != nil {
		return nil, &ParseError{File: name, Err: err}
	}

	lib := reference.NewLibrary()
	macros := defaultMacros()

	for _, item := range parsed.Items {
		if item.Entry == nil {
			continue // @comment
		}
		entry := item.Entry

		switch typ := entry.entryType(); typ {
		case "preamble":
			for _, el := range entry.Elements {
				lib.Preamble = append(lib.Preamble, expand(el.First, macros, nil))
			}
		case "string":
			for _, el := range entry.Elements {
				macro, ok := el.First.ident()
				if !ok || el.Value == nil {
					return nil, &ParseError{File: name, Err: fmt.Errorf("%w in @string", ErrInvalidField)}
				}
				macros[strings.ToLower(macro)] = expand(el.Value, macros, nil)
			}
		default:
			key, e, err := buildEntry(typ, entry, macros)
			if err != nil {
				return nil, &ParseError{File: name, Err: err}
			}
			merged, err := lib.Upsert(key, e)
			if err != nil {
				return nil, &ParseError{File: name, Err: err}
			}
			if merged {
				slog.Warn("duplicate citation key, merging entries", "file", name, "key", key)
			}
		}
	}

	return lib, nil
}

func buildEntry(typ string, entry *bibEntry, macros map[string]string) (string, *reference.Entry, error) {
	if len(entry.Elements) == 0 || entry.Elements[0].Value != nil {
		return "", nil, fmt.Errorf("@%s: %w", typ, ErrMissingKey)
	}
	key, ok := entry.Elements[0].First.ident()
	if !ok {
		return "", nil, fmt.Errorf("@%s: %w", typ, ErrMissingKey)
	}

	e := reference.NewEntry(typ)
	for _, el := range entry.Elements[1:] {
		field, ok := el.First.ident()
		if !ok || el.Value == nil {
			return "", nil, fmt.Errorf("%s: %w", key, ErrInvalidField)
		}
		field = strings.ToLower(field)
		text := expand(el.Value, macros, func(macro string) {
			slog.Warn("undefined macro, using empty value", "key", key, "field", field, "macro", macro)
		})

		if isPersonField(field) {
			e.Persons.Set(field, ParseNames(text))
			continue
		}
		e.Fields.SetText(field, text)
	}
	return key, e, nil
}

// expand concatenates the parts of a value, substituting macros for bare
// words. Numbers are kept as written.
func expand(v *value, macros map[string]string, undefined func(string)) string {
	var sb strings.Builder
	for _, p := range v.Parts {
		switch {
		case p.Braced != nil:
			sb.WriteString(p.Braced.raw())
		case p.Quoted != nil:
			sb.WriteString(p.Quoted.raw())
		case isNumber(p.Ident):
			sb.WriteString(p.Ident)
		default:
			s, ok := macros[strings.ToLower(p.Ident)]
			if !ok && undefined != nil {
				undefined(p.Ident)
			}
			sb.WriteString(s)
		}
	}
	return sb.String()
}

// defaultMacros predefines the month abbreviations as full month names.
func defaultMacros() map[string]string {
	m := make(map[string]string, len(normalize.Months))
	for i, macro := range normalize.Months {
		m[macro] = monthNames[i]
	}
	return m
}

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isPersonField(name string) bool {
	for _, f := range PersonFields {
		if f == name {
			return true
		}
	}
	return false
}
