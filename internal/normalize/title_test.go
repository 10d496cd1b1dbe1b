package normalize

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/matsen/bibfmt/internal/reference"
	"github.com/matsen/bibfmt/internal/wordlist"
)

func TestProtect(t *testing.T) {
	p := NewTitleProtector(wordlist.Default())

	tests := []struct {
		input string
		want  string
	}{
		{
			"The Magnus expansion and some of its applications",
			"The {Magnus} expansion and some of its applications",
		},
		{
			"On generalized averaged Gaussian formulas, II",
			"On generalized averaged {Gaussian} formulas, {II}",
		},
		{"Gaussian Hermitian Jacobian", "{Gaussian} {Hermitian} {Jacobian}"},
		{
			"VODE: a variable-coefficient ODE solver",
			"{VODE:} {A} variable-coefficient {ODE} solver",
		},
		{
			"GMRES: A generalized minimal residual algorithm",
			"{GMRES:} {A} generalized minimal residual algorithm",
		},
		{
			"Peano's kernel theorem for vector-valued functions",
			"{Peano's} kernel theorem for vector-valued functions",
		},
		{
			"Exponential Runge-Kutta methods for parabolic problems",
			"Exponential {Runge}-{Kutta} methods for parabolic problems",
		},
		{
			"Dash-Dash Double--Dash Triple---Dash",
			"Dash-Dash Double--Dash Triple---Dash",
		},
		{"x: {X}", "x: {X}"},
		{
			`{Aaa ${\text{Pt/Co/AlO}}_{x}$ aaa bbb}`,
			`{Aaa {${\text{Pt/Co/AlO}}_{x}$} aaa bbb}`,
		},
		{"z*", "z*"},
		{`A \LaTeX title`, `A \LaTeX title`},
		{"", ""},
		{"  extra   spaces  ", "extra spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := p.Protect(tt.input); got != tt.want {
				t.Errorf("Protect(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestProtect_AllCapsIsRecased(t *testing.T) {
	p := NewTitleProtector(wordlist.Default())

	got := p.Protect("THE MAGNUS EXPANSION")
	want := "The {Magnus} Expansion"
	if got != want {
		t.Errorf("Protect() = %q, want %q", got, want)
	}
}

func TestProtect_Idempotent(t *testing.T) {
	p := NewTitleProtector(wordlist.Default())

	for _, title := range []string{
		"GMRES: A generalized minimal residual algorithm",
		"Exponential Runge-Kutta methods for parabolic problems",
		"On generalized averaged Gaussian formulas, II",
	} {
		once := p.Protect(title)
		if twice := p.Protect(once); twice != once {
			t.Errorf("Protect not idempotent: %q -> %q", once, twice)
		}
	}
}

func TestProtect_InjectedWordList(t *testing.T) {
	// With an empty word list every capitalized word is a proper noun.
	p := NewTitleProtector(wordlist.FromWords())
	if got := p.Protect("Exponential methods"); got != "{Exponential} methods" {
		t.Errorf("Protect() = %q, want %q", got, "{Exponential} methods")
	}

	p = NewTitleProtector(wordlist.FromWords("gaussian"))
	if got := p.Protect("Gaussian formulas"); got != "Gaussian formulas" {
		t.Errorf("Protect() = %q, want %q", got, "Gaussian formulas")
	}
}

func TestTitleProtector_Apply(t *testing.T) {
	var buf bytes.Buffer
	p := NewTitleProtector(wordlist.Default())
	p.Logger = slog.New(slog.NewTextHandler(&buf, nil))

	lib := reference.NewLibrary()
	withTitle := reference.NewEntry("article")
	withTitle.Fields.SetText("title", "Gaussian formulas")
	noTitle := reference.NewEntry("misc")
	noTitle.Fields.SetText("note", "x")
	opaqueTitle := reference.NewEntry("misc")
	opaqueTitle.Fields.Set("title", reference.Opaque(42))

	lib.Add("a", withTitle)
	lib.Add("b", noTitle)
	lib.Add("c", opaqueTitle)

	p.Apply(lib)

	if got, _ := withTitle.Fields.GetText("title"); got != "{Gaussian} formulas" {
		t.Errorf("title = %q, want %q", got, "{Gaussian} formulas")
	}
	if noTitle.Fields.Has("title") {
		t.Error("entry without title should not gain one")
	}
	if v, _ := opaqueTitle.Fields.Get("title"); v.Raw() != 42 {
		t.Errorf("opaque title changed to %v", v)
	}

	logs := buf.String()
	if !strings.Contains(logs, "entry has no title") || !strings.Contains(logs, "key=b") {
		t.Errorf("missing warning for untitled entry, got:\n%s", logs)
	}
	if !strings.Contains(logs, "key=c") {
		t.Errorf("missing warning for opaque title, got:\n%s", logs)
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a", "A"},
		{"ODE", "Ode"},
		{"élan", "Élan"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := capitalize(tt.input); got != tt.want {
				t.Errorf("capitalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
