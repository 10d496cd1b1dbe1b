package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func intPtr(n int) *int { return &n }

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"empty", Config{}, false},
		{"valid", Config{Indent: "4", Align: intPtr(0), DelimiterType: "braces", DOIURLType: "unchanged"}, false},
		{"tab indent", Config{Indent: "tab"}, false},
		{"bad indent", Config{Indent: "wide"}, true},
		{"negative align", Config{Align: intPtr(-1)}, true},
		{"bad delimiters", Config{DelimiterType: "angles"}, true},
		{"bad doi url type", Config{DOIURLType: "longest"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestYAML(t *testing.T) {
	cfg := Config{Indent: "tab", Align: intPtr(10), SortByBibkey: true}

	data, err := cfg.YAML()
	if err != nil {
		t.Fatalf("YAML() error = %v", err)
	}

	got := string(data)
	for _, want := range []string{"indent: tab", "align: 10", "sort_by_bibkey: true"} {
		if !strings.Contains(got, want) {
			t.Errorf("YAML() = %q, missing %q", got, want)
		}
	}
	if strings.Contains(got, "delimiter_type") {
		t.Errorf("YAML() = %q, unset keys should be omitted", got)
	}
}

func TestLoadFile_RoundTrip(t *testing.T) {
	cfg := Config{Indent: "2", DOIURLType: "new", PageRangeSeparator: "--"}
	data, err := cfg.YAML()
	if err != nil {
		t.Fatalf("YAML() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if *got != cfg {
		t.Errorf("LoadFile() = %+v, want %+v", *got, cfg)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"/abs/path", "/abs/path"},
		{"relative/path", "relative/path"},
		{"~/words.txt", filepath.Join(home, "words.txt")},
	}

	for _, tt := range tests {
		if got := ExpandPath(tt.input); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
