package reference

import "strings"

// Fields is an insertion-ordered mapping from lower-cased field name to value.
// The zero value is ready to use.
type Fields struct {
	keys   []string
	values map[string]Value
}

// NewFields builds Fields from alternating name/value pairs of text values.
func NewFields(pairs ...string) *Fields {
	f := &Fields{}
	for i := 0; i+1 < len(pairs); i += 2 {
		f.Set(pairs[i], Text(pairs[i+1]))
	}
	return f
}

// Set stores a value. The name is lower-cased; an existing field keeps its position.
func (f *Fields) Set(name string, v Value) {
	name = strings.ToLower(name)
	if f.values == nil {
		f.values = make(map[string]Value)
	}
	if _, ok := f.values[name]; !ok {
		f.keys = append(f.keys, name)
	}
	f.values[name] = v
}

// SetText is shorthand for Set(name, Text(s)).
func (f *Fields) SetText(name, s string) {
	f.Set(name, Text(s))
}

// Get returns the value stored under name.
func (f *Fields) Get(name string) (Value, bool) {
	v, ok := f.values[strings.ToLower(name)]
	return v, ok
}

// GetText returns the text stored under name. ok is false when the field is
// missing or opaque.
func (f *Fields) GetText(name string) (string, bool) {
	v, ok := f.Get(name)
	if !ok {
		return "", false
	}
	return v.Text()
}

// Has reports whether name is present.
func (f *Fields) Has(name string) bool {
	_, ok := f.values[strings.ToLower(name)]
	return ok
}

// Delete removes name if present.
func (f *Fields) Delete(name string) {
	name = strings.ToLower(name)
	if _, ok := f.values[name]; !ok {
		return
	}
	delete(f.values, name)
	for i, k := range f.keys {
		if k == name {
			f.keys = append(f.keys[:i], f.keys[i+1:]...)
			break
		}
	}
}

// Keys returns field names in insertion order.
func (f *Fields) Keys() []string {
	out := make([]string, len(f.keys))
	copy(out, f.keys)
	return out
}

// Len returns the number of fields.
func (f *Fields) Len() int {
	return len(f.keys)
}

// Clone returns an independent copy.
func (f *Fields) Clone() *Fields {
	out := &Fields{
		keys:   make([]string, len(f.keys)),
		values: make(map[string]Value, len(f.values)),
	}
	copy(out.keys, f.keys)
	for k, v := range f.values {
		out.values[k] = v
	}
	return out
}
