package reference

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Person is a structured name bound to a role (author, editor, ...) of an entry.
type Person struct {
	First   []string `json:"first,omitempty"`   // First given name
	Middle  []string `json:"middle,omitempty"`  // Remaining given names
	Prelast []string `json:"prelast,omitempty"` // "von" part, e.g. "van der"
	Last    []string `json:"last,omitempty"`    // Family name
	Lineage []string `json:"lineage,omitempty"` // "Jr." part
}

// String renders the name as "prelast last, lineage, first middle" with empty
// segments dropped. A name entered entirely in capitals is re-cased to title case.
func (p Person) String() string {
	parts := []string{
		strings.Join(append(append([]string{}, p.Prelast...), p.Last...), " "),
		strings.Join(p.Lineage, " "),
		// Initials keep a full space between them ("Doe, J. J."); bib styles
		// control the rendered spacing.
		strings.Join(append(append([]string{}, p.First...), p.Middle...), " "),
	}

	var kept []string
	for _, s := range parts {
		if s != "" {
			kept = append(kept, s)
		}
	}
	out := strings.Join(kept, ", ")
	if out == strings.ToUpper(out) {
		out = TitleCase(out)
	}
	return out
}

// Clone returns a deep copy.
func (p Person) Clone() Person {
	return Person{
		First:   cloneStrings(p.First),
		Middle:  cloneStrings(p.Middle),
		Prelast: cloneStrings(p.Prelast),
		Last:    cloneStrings(p.Last),
		Lineage: cloneStrings(p.Lineage),
	}
}

// JoinPersons renders a role's persons separated by " and ".
func JoinPersons(persons []Person) string {
	names := make([]string, len(persons))
	for i, p := range persons {
		names[i] = p.String()
	}
	return strings.Join(names, " and ")
}

// TitleCase upper-cases the first letter of each word and lower-cases the rest.
func TitleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// Persons is an insertion-ordered mapping from role name to persons.
type Persons struct {
	roles  []string
	byRole map[string][]Person
}

// Set stores the persons for a role. The role is lower-cased.
func (ps *Persons) Set(role string, persons []Person) {
	role = strings.ToLower(role)
	if ps.byRole == nil {
		ps.byRole = make(map[string][]Person)
	}
	if _, ok := ps.byRole[role]; !ok {
		ps.roles = append(ps.roles, role)
	}
	ps.byRole[role] = persons
}

// Get returns the persons for a role.
func (ps *Persons) Get(role string) ([]Person, bool) {
	p, ok := ps.byRole[strings.ToLower(role)]
	return p, ok
}

// Roles returns role names in insertion order.
func (ps *Persons) Roles() []string {
	out := make([]string, len(ps.roles))
	copy(out, ps.roles)
	return out
}

// Len returns the number of roles.
func (ps *Persons) Len() int {
	return len(ps.roles)
}

// Clone returns a deep copy.
func (ps *Persons) Clone() *Persons {
	out := &Persons{}
	for _, role := range ps.roles {
		src := ps.byRole[role]
		cp := make([]Person, len(src))
		for i, p := range src {
			cp[i] = p.Clone()
		}
		out.Set(role, cp)
	}
	return out
}
