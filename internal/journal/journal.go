// Package journal maps journal names between their long and abbreviated forms.
package journal

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed journals.json
var defaultTable []byte

// Table maps journal names to replacements. Lookups try an exact match first
// and fall back to a case-insensitive match.
type Table struct {
	names map[string]string
	lower map[string]string
}

// New builds a table from a name mapping.
func New(names map[string]string) *Table {
	t := &Table{
		names: make(map[string]string, len(names)),
		lower: make(map[string]string, len(names)),
	}
	for k, v := range names {
		t.names[k] = v
	}
	t.index()
	return t
}

// Default returns the built-in long → abbreviated table.
func Default() (*Table, error) {
	var names map[string]string
	if err := json.Unmarshal(defaultTable, &names); err != nil {
		return nil, fmt.Errorf("parsing built-in journal table: %w", err)
	}
	return New(names), nil
}

// Load returns the built-in table overlaid with the custom table at path.
// Custom entries win on key collision. An empty path returns the built-in table.
func Load(path string) (*Table, error) {
	t, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return t, nil
	}

	custom, err := readTable(path)
	if err != nil {
		return nil, err
	}
	t.Overlay(custom)
	return t, nil
}

// readTable decodes a name mapping from a .json, .yaml or .yml file.
func readTable(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading journal table: %w", err)
	}

	var names map[string]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &names)
	default:
		err = json.Unmarshal(data, &names)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing journal table %s: %w", path, err)
	}
	return names, nil
}

// Overlay adds entries to the table, replacing existing ones.
func (t *Table) Overlay(names map[string]string) {
	for k, v := range names {
		t.names[k] = v
	}
	t.index()
}

// Invert returns the reverse mapping (abbreviated → long). When several long
// names share an abbreviation, the lexically first long name is kept.
func (t *Table) Invert() *Table {
	inv := make(map[string]string, len(t.names))
	for _, k := range sortedKeys(t.names) {
		v := t.names[k]
		if _, exists := inv[v]; !exists {
			inv[v] = k
		}
	}
	return New(inv)
}

// Lookup returns the replacement for name.
func (t *Table) Lookup(name string) (string, bool) {
	if v, ok := t.names[name]; ok {
		return v, true
	}
	v, ok := t.lower[strings.ToLower(name)]
	return v, ok
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.names)
}

// index rebuilds the case-insensitive fallback. Keys differing only in case
// resolve to the lexically first original key.
func (t *Table) index() {
	t.lower = make(map[string]string, len(t.names))
	for _, k := range sortedKeys(t.names) {
		lk := strings.ToLower(k)
		if _, exists := t.lower[lk]; !exists {
			t.lower[lk] = t.names[k]
		}
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
