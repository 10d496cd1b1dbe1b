package importer

import (
	"strings"
	"unicode"

	"github.com/matsen/bibfmt/internal/reference"
)

// ParseNames splits a BibTeX name list on top-level "and" and parses each
// name into its First/von/Last/Jr parts.
func ParseNames(s string) []reference.Person {
	var persons []reference.Person
	var current []string
	flush := func() {
		if len(current) > 0 {
			persons = append(persons, parseName(current))
		}
		current = nil
	}

	for _, tok := range nameTokens(s) {
		if strings.EqualFold(tok, "and") {
			flush()
			continue
		}
		current = append(current, tok)
	}
	flush()
	return persons
}

// nameTokens splits s into words and commas at brace depth zero.
func nameTokens(s string) []string {
	var tokens []string
	var sb strings.Builder
	depth := 0
	emit := func() {
		if sb.Len() > 0 {
			tokens = append(tokens, sb.String())
			sb.Reset()
		}
	}

	for _, r := range s {
		switch {
		case r == '{':
			depth++
			sb.WriteRune(r)
		case r == '}':
			if depth > 0 {
				depth--
			}
			sb.WriteRune(r)
		case depth == 0 && unicode.IsSpace(r):
			emit()
		case depth == 0 && r == ',':
			emit()
			tokens = append(tokens, ",")
		default:
			sb.WriteRune(r)
		}
	}
	emit()
	return tokens
}

func parseName(tokens []string) reference.Person {
	var parts [][]string
	var cur []string
	for _, tok := range tokens {
		if tok == "," {
			parts = append(parts, cur)
			cur = nil
			continue
		}
		cur = append(cur, tok)
	}
	parts = append(parts, cur)

	var p reference.Person
	var given []string
	switch len(parts) {
	case 1:
		given, p.Prelast, p.Last = splitFirstVonLast(parts[0])
	case 2:
		p.Prelast, p.Last = splitVonLast(parts[0])
		given = parts[1]
	default:
		p.Prelast, p.Last = splitVonLast(parts[0])
		p.Lineage = parts[1]
		given = parts[2]
	}

	if len(given) > 0 {
		p.First = given[:1]
	}
	if len(given) > 1 {
		p.Middle = given[1:]
	}
	return p
}

// splitFirstVonLast handles the "First von Last" form. The von part runs from
// the first to the last lower-case word, excluding the final word.
func splitFirstVonLast(words []string) (first, von, last []string) {
	if len(words) == 0 {
		return nil, nil, nil
	}
	start, end := -1, -1
	for i := 0; i < len(words)-1; i++ {
		if isVon(words[i]) {
			if start < 0 {
				start = i
			}
			end = i
		}
	}
	if start < 0 {
		return words[:len(words)-1], nil, words[len(words)-1:]
	}
	return words[:start], words[start : end+1], words[end+1:]
}

// splitVonLast handles the "von Last" part before the first comma.
func splitVonLast(words []string) (von, last []string) {
	if len(words) == 0 {
		return nil, nil
	}
	end := -1
	for i := 0; i < len(words)-1; i++ {
		if isVon(words[i]) {
			end = i
		}
	}
	if end < 0 {
		return nil, words
	}
	return words[:end+1], words[end+1:]
}

// isVon reports whether the first letter of word, outside braces, is lower case.
func isVon(word string) bool {
	for _, r := range word {
		if r == '{' {
			return false
		}
		if unicode.IsLetter(r) {
			return unicode.IsLower(r)
		}
	}
	return false
}
