// Package wordlist provides the English word set used to decide whether a
// capitalized title word is a common word or a proper noun.
package wordlist

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"
)

//go:embed words.txt
var defaultWords []byte

// Set is a read-only, case-insensitive set of words.
type Set struct {
	words map[string]struct{}
}

// Default returns the embedded word list.
func Default() Set {
	s, _ := parse(bytes.NewReader(defaultWords))
	return s
}

// FromWords builds a set from the given words.
func FromWords(words ...string) Set {
	s := Set{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		s.words[strings.ToLower(w)] = struct{}{}
	}
	return s
}

// Load reads a dictionary file with one word per line, such as
// /usr/share/dict/words. Lines starting with a capital letter are proper
// nouns and are skipped, so "Gaussian" stays protectable.
func Load(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return Set{}, fmt.Errorf("opening dictionary: %w", err)
	}
	defer f.Close()

	s, err := parse(f)
	if err != nil {
		return Set{}, fmt.Errorf("reading dictionary %s: %w", path, err)
	}
	return s, nil
}

func parse(r io.Reader) (Set, error) {
	s := Set{words: make(map[string]struct{})}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if first, _ := utf8.DecodeRuneInString(line); unicode.IsUpper(first) {
			continue
		}
		s.words[strings.ToLower(line)] = struct{}{}
	}
	return s, scanner.Err()
}

// Contains reports whether word is in the set, ignoring case.
func (s Set) Contains(word string) bool {
	_, ok := s.words[strings.ToLower(word)]
	return ok
}

// Len returns the number of words.
func (s Set) Len() int {
	return len(s.words)
}
