package normalize

import (
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/matsen/bibfmt/internal/reference"
	"github.com/matsen/bibfmt/internal/wordlist"
)

// TitleProtector wraps title words in braces when bibliography styles would
// otherwise lose their capitalization (names like Newton, acronyms like GMRES).
type TitleProtector struct {
	Words  wordlist.Set // Common words that never need protection
	Logger *slog.Logger // Warnings for entries without a title; nil uses the package logger
}

// NewTitleProtector creates a protector that consults words.
func NewTitleProtector(words wordlist.Set) *TitleProtector {
	return &TitleProtector{Words: words}
}

// Apply protects the title of every entry. Entries without a text title are
// reported and skipped.
func (p *TitleProtector) Apply(lib *reference.Library) {
	lib.Each(func(key string, e *reference.Entry) {
		v, ok := e.Fields.Get("title")
		if !ok {
			p.logger().Warn("entry has no title", "key", key)
			return
		}
		title, ok := v.Text()
		if !ok {
			p.logger().Warn("entry title is not text", "key", key, "value", v.String())
			return
		}
		e.Fields.SetText("title", p.Protect(title))
	})
}

// Protect returns title with capitalization-sensitive words wrapped in {}.
func (p *TitleProtector) Protect(title string) string {
	// A title entirely in capitals is a data-entry artifact, not intent.
	if title == strings.ToUpper(title) {
		title = reference.TitleCase(title)
	}

	words := strings.Fields(title)

	// "Algorithm 694: {A} collection ..."
	for k := 1; k < len(words); k++ {
		if strings.HasSuffix(words[k-1], ":") && !strings.HasPrefix(words[k], "{") {
			words[k] = "{" + capitalize(words[k]) + "}"
		}
	}

	for k, word := range words {
		parts := strings.Split(word, "-")
		for i, part := range parts {
			parts[i] = p.protectWord(part)
		}
		words[k] = strings.Join(parts, "-")
	}

	return strings.Join(words, " ")
}

// protectWord wraps a single hyphen-free token if its capitalization matters.
func (p *TitleProtector) protectWord(word string) string {
	if word == "" ||
		strings.Count(word, "{") != strings.Count(word, "}") ||
		(strings.HasPrefix(word, "{") && strings.HasSuffix(word, "}")) ||
		strings.HasPrefix(word, `\`) {
		return word
	}

	if p.needsProtection(word) {
		return "{" + word + "}"
	}
	return word
}

func (p *TitleProtector) needsProtection(word string) bool {
	_, size := utf8.DecodeRuneInString(word)
	if strings.IndexFunc(word[size:], unicode.IsUpper) >= 0 {
		return true
	}
	return strings.IndexFunc(word, unicode.IsUpper) >= 0 && !p.Words.Contains(word)
}

func (p *TitleProtector) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return logger()
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
