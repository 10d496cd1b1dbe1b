package reference

import (
	"reflect"
	"testing"
)

func TestMerge(t *testing.T) {
	doe := []Person{{First: []string{"John"}, Last: []string{"Doe"}}}

	first := NewEntry("article")
	first.Fields.SetText("title", "Yes")
	first.Fields.Set("year", Opaque(2000))
	first.Persons.Set("author", doe)

	second := NewEntry("book")
	second.Fields.SetText("title", "No")
	second.Fields.SetText("pages", "1-19")
	second.Persons.Set("author", doe)

	got := Merge(first, second)

	if got != first {
		t.Error("Merge() should return the first entry")
	}
	if got.Type != "book" {
		t.Errorf("Type = %q, want book", got.Type)
	}
	if title, _ := got.Fields.GetText("title"); title != "No" {
		t.Errorf("title = %q, want No", title)
	}
	if year, _ := got.Fields.Get("year"); year.Raw() != 2000 {
		t.Errorf("year = %v, want 2000", year)
	}
	if pages, _ := got.Fields.GetText("pages"); pages != "1-19" {
		t.Errorf("pages = %q, want 1-19", pages)
	}
	if keys, want := got.Fields.Keys(), []string{"title", "year", "pages"}; !reflect.DeepEqual(keys, want) {
		t.Errorf("Keys() = %v, want %v", keys, want)
	}
}

func TestMerge_NilSecond(t *testing.T) {
	first := NewEntry("article")
	first.Fields.SetText("title", "Yes")

	got := Merge(first, nil)
	if got != first {
		t.Fatal("Merge(first, nil) should return first")
	}
	if title, _ := got.Fields.GetText("title"); title != "Yes" {
		t.Errorf("title = %q, want Yes", title)
	}
}

func TestMerge_EmptyValuesDoNotOverwrite(t *testing.T) {
	first := NewEntry("article")
	first.Fields.SetText("title", "Keep")
	first.Persons.Set("editor", []Person{{Last: []string{"Smith"}}})

	second := NewEntry("")
	second.Fields.SetText("title", "")
	second.Persons.Set("editor", nil)

	Merge(first, second)

	if first.Type != "article" {
		t.Errorf("Type = %q, want article", first.Type)
	}
	if title, _ := first.Fields.GetText("title"); title != "Keep" {
		t.Errorf("title = %q, want Keep", title)
	}
	if eds, _ := first.Persons.Get("editor"); len(eds) != 1 {
		t.Errorf("editor count = %d, want 1", len(eds))
	}
}

func TestMerge_DoesNotAliasSecond(t *testing.T) {
	first := NewEntry("article")
	second := NewEntry("article")
	second.Persons.Set("author", []Person{{Last: []string{"Doe"}}})

	Merge(first, second)

	authors, _ := first.Persons.Get("author")
	authors[0].Last[0] = "Changed"

	orig, _ := second.Persons.Get("author")
	if orig[0].Last[0] != "Doe" {
		t.Errorf("second was mutated: %v", orig[0].Last)
	}
}
