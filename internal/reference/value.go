package reference

import "fmt"

// Value is a field value: either text or an opaque non-text value.
// Normalizers only ever rewrite text values.
type Value struct {
	text   string
	opaque any
	isOpq  bool
}

// Text returns a text value.
func Text(s string) Value {
	return Value{text: s}
}

// Opaque wraps a value that is not text (for example a number assigned
// programmatically). Opaque values are carried through normalization untouched
// and rejected by the renderer.
func Opaque(v any) Value {
	return Value{opaque: v, isOpq: true}
}

// Text returns the text and true for a text value, or "" and false otherwise.
func (v Value) Text() (string, bool) {
	if v.isOpq {
		return "", false
	}
	return v.text, true
}

// IsOpaque reports whether v wraps a non-text value.
func (v Value) IsOpaque() bool {
	return v.isOpq
}

// Raw returns the wrapped opaque value, or nil for text values.
func (v Value) Raw() any {
	return v.opaque
}

// IsZero reports whether the value is empty: "" for text, nil for opaque.
func (v Value) IsZero() bool {
	if v.isOpq {
		return v.opaque == nil
	}
	return v.text == ""
}

// String formats the value for diagnostics.
func (v Value) String() string {
	if v.isOpq {
		return fmt.Sprintf("%v", v.opaque)
	}
	return v.text
}
