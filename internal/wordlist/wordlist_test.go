package wordlist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	s := Default()
	if s.Len() == 0 {
		t.Fatal("Default() should not be empty")
	}

	for _, w := range []string{"the", "The", "A", "dash", "Double", "exponential", "kernel"} {
		if !s.Contains(w) {
			t.Errorf("Contains(%q) = false, want true", w)
		}
	}
	for _, w := range []string{"Gaussian", "Magnus", "Runge", "Kutta", "GMRES"} {
		if s.Contains(w) {
			t.Errorf("Contains(%q) = true, want false", w)
		}
	}
}

func TestFromWords(t *testing.T) {
	s := FromWords("Foo", "bar")
	if !s.Contains("foo") || !s.Contains("BAR") {
		t.Error("FromWords should match case-insensitively")
	}
	if s.Contains("baz") {
		t.Error("Contains(baz) = true, want false")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words")
	content := "apple\nGaussian\n\n# comment\nbanana\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if s.Contains("gaussian") {
		t.Error("capitalized dictionary lines should be skipped")
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Load() of missing file should fail")
	}
}
