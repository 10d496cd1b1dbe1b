// Package latex converts LaTeX markup in field values to plain Unicode text.
package latex

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/matsen/bibfmt/internal/reference"
)

// accents maps accent commands to combining marks.
var accents = map[string]rune{
	"'":  '\u0301',
	"`":  '\u0300',
	"^":  '\u0302',
	"\"": '\u0308',
	"~":  '\u0303',
	"=":  '\u0304',
	".":  '\u0307',
	"u":  '\u0306',
	"v":  '\u030C',
	"H":  '\u030B',
	"c":  '\u0327',
	"k":  '\u0328',
	"r":  '\u030A',
	"d":  '\u0323',
	"b":  '\u0331',
}

// symbols maps argument-free macros to their text.
var symbols = map[string]string{
	"ss":             "ß",
	"o":              "ø",
	"O":              "Ø",
	"ae":             "æ",
	"AE":             "Æ",
	"oe":             "œ",
	"OE":             "Œ",
	"aa":             "å",
	"AA":             "Å",
	"l":              "ł",
	"L":              "Ł",
	"i":              "ı",
	"j":              "ȷ",
	"S":              "§",
	"P":              "¶",
	"dag":            "†",
	"ddag":           "‡",
	"copyright":      "©",
	"pounds":         "£",
	"textendash":     "\u2013",
	"textemdash":     "\u2014",
	"ldots":          "…",
	"dots":           "…",
	"textquoteright": "’",
	"textquoteleft":  "‘",
	"TeX":            "TeX",
	"LaTeX":          "LaTeX",
	"&":              "&",
	"%":              "%",
	"$":              "$",
	"#":              "#",
	"_":              "_",
	"{":              "{",
	"}":              "}",
	" ":              " ",
	",":              " ",
}

// dropped lists formatting macros whose argument is kept as plain text.
var dropped = map[string]bool{
	"emph":     true,
	"textit":   true,
	"textbf":   true,
	"textsc":   true,
	"textrm":   true,
	"textsf":   true,
	"texttt":   true,
	"textup":   true,
	"mathrm":   true,
	"mbox":     true,
	"it":       true,
	"bf":       true,
	"em":       true,
	"sc":       true,
	"rm":       true,
	"noopsort": true,
}

// Decode returns a deep copy of e with every text field except url converted
// from LaTeX to Unicode. e is not modified.
func Decode(e *reference.Entry) *reference.Entry {
	out := e.Clone()
	for _, name := range out.Fields.Keys() {
		if name == "url" {
			continue
		}
		text, ok := out.Fields.GetText(name)
		if !ok {
			continue
		}
		out.Fields.SetText(name, ToUnicode(text))
	}
	return out
}

// ToUnicode converts a LaTeX string to NFC-composed Unicode text. Unknown
// macros are kept verbatim.
func ToUnicode(s string) string {
	d := decoder{src: []rune(s)}
	return norm.NFC.String(d.run())
}

type decoder struct {
	src []rune
	pos int
	out strings.Builder
}

func (d *decoder) run() string {
	for d.pos < len(d.src) {
		r := d.src[d.pos]
		switch r {
		case '\\':
			d.macro()
		case '{', '}':
			d.pos++
		case '~':
			d.out.WriteRune('\u00a0')
			d.pos++
		case '-':
			d.dashes()
		default:
			d.out.WriteRune(r)
			d.pos++
		}
	}
	return d.out.String()
}

func (d *decoder) dashes() {
	n := 0
	for d.pos < len(d.src) && d.src[d.pos] == '-' && n < 3 {
		n++
		d.pos++
	}
	switch n {
	case 3:
		d.out.WriteRune('\u2014')
	case 2:
		d.out.WriteRune('\u2013')
	default:
		d.out.WriteRune('-')
	}
}

// macro consumes a control sequence starting at the backslash.
func (d *decoder) macro() {
	name := d.name()
	if name == "" {
		d.out.WriteRune('\\')
		return
	}

	if mark, ok := accents[name]; ok {
		base := d.argument()
		if base == "" {
			d.out.WriteRune(mark)
			return
		}
		rs := []rune(base)
		if rs[0] == 'ı' {
			rs[0] = 'i'
		} else if rs[0] == 'ȷ' {
			rs[0] = 'j'
		}
		d.out.WriteRune(rs[0])
		d.out.WriteRune(mark)
		d.out.WriteString(string(rs[1:]))
		return
	}

	sym, known := symbols[name]
	if !known && !dropped[name] {
		d.out.WriteString(`\` + name)
		return
	}
	if isLetters(name) {
		d.skipSpaces()
	}
	d.out.WriteString(sym)
}

// name reads the control sequence after a backslash: a run of letters or a
// single non-letter.
func (d *decoder) name() string {
	d.pos++ // backslash
	if d.pos >= len(d.src) {
		return ""
	}
	start := d.pos
	if !unicode.IsLetter(d.src[d.pos]) {
		d.pos++
		return string(d.src[start:d.pos])
	}
	for d.pos < len(d.src) && isASCIILetter(d.src[d.pos]) {
		d.pos++
	}
	if d.pos == start {
		d.pos++
	}
	return string(d.src[start:d.pos])
}

// argument reads an accent argument: a braced group, a macro such as \i, or
// a single character. The result is already decoded.
func (d *decoder) argument() string {
	d.skipSpaces()
	if d.pos >= len(d.src) {
		return ""
	}
	switch d.src[d.pos] {
	case '{':
		start := d.pos + 1
		depth := 0
		for ; d.pos < len(d.src); d.pos++ {
			if d.src[d.pos] == '{' {
				depth++
			} else if d.src[d.pos] == '}' {
				depth--
				if depth == 0 {
					break
				}
			}
		}
		end := d.pos
		if d.pos < len(d.src) {
			d.pos++
		}
		inner := decoder{src: d.src[start:end]}
		return inner.run()
	case '\\':
		inner := decoder{src: d.src[d.pos:]}
		inner.macro()
		d.pos += inner.pos
		return inner.out.String()
	case '}':
		return ""
	default:
		r := d.src[d.pos]
		d.pos++
		return string(r)
	}
}

func (d *decoder) skipSpaces() {
	for d.pos < len(d.src) && d.src[d.pos] == ' ' {
		d.pos++
	}
}

func isLetters(s string) bool {
	for _, r := range s {
		if !isASCIILetter(r) {
			return false
		}
	}
	return true
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
