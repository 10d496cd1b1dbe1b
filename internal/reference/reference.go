// Package reference defines the in-memory model of a BibTeX database.
package reference

import (
	"errors"
	"fmt"
	"sort"
)

// Common errors returned by Library.
var (
	// ErrEmptyKey indicates an entry was added without a citation key.
	ErrEmptyKey = errors.New("empty citation key")

	// ErrDuplicateKey indicates a citation key is already present.
	ErrDuplicateKey = errors.New("duplicate citation key")
)

// Entry is a single bibliographic record.
type Entry struct {
	Type    string   // Entry kind, e.g. article, book (free-form)
	Fields  *Fields  // Scalar fields keyed by lower-cased name
	Persons *Persons // Name lists keyed by role (author, editor)
}

// NewEntry creates an empty entry of the given type.
func NewEntry(typ string) *Entry {
	return &Entry{Type: typ, Fields: &Fields{}, Persons: &Persons{}}
}

// Clone returns a deep copy of e.
func (e *Entry) Clone() *Entry {
	return &Entry{
		Type:    e.Type,
		Fields:  e.Fields.Clone(),
		Persons: e.Persons.Clone(),
	}
}

// Library is a keyed, ordered collection of entries plus preamble directives.
type Library struct {
	Preamble []string // Raw @preamble contents, in input order

	keys    []string
	entries map[string]*Entry
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{entries: make(map[string]*Entry)}
}

// Add appends an entry under a new citation key.
func (l *Library) Add(key string, e *Entry) error {
	if key == "" {
		return ErrEmptyKey
	}
	if l.entries == nil {
		l.entries = make(map[string]*Entry)
	}
	if _, exists := l.entries[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, key)
	}
	l.keys = append(l.keys, key)
	l.entries[key] = e
	return nil
}

// Upsert adds e, or merges it into the existing entry with the same key so
// that e's data takes precedence. It reports whether a merge happened.
func (l *Library) Upsert(key string, e *Entry) (bool, error) {
	if existing, ok := l.entries[key]; ok {
		Merge(existing, e)
		return true, nil
	}
	return false, l.Add(key, e)
}

// Get returns the entry for key.
func (l *Library) Get(key string) (*Entry, bool) {
	e, ok := l.entries[key]
	return e, ok
}

// Keys returns citation keys in insertion order.
func (l *Library) Keys() []string {
	out := make([]string, len(l.keys))
	copy(out, l.keys)
	return out
}

// SortedKeys returns citation keys in byte-wise (code point) order.
func (l *Library) SortedKeys() []string {
	out := l.Keys()
	sort.Strings(out)
	return out
}

// Len returns the number of entries.
func (l *Library) Len() int {
	return len(l.keys)
}

// Each calls fn for every entry in insertion order.
func (l *Library) Each(fn func(key string, e *Entry)) {
	for _, k := range l.keys {
		fn(k, l.entries[k])
	}
}
