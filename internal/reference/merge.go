package reference

// Merge folds second into first, with second's data taking precedence, and
// returns first. A nil second leaves first unchanged. Only non-empty values of
// second are copied: its type if set, each non-empty person role (replacing the
// role wholesale) and each non-zero field. second is never modified.
func Merge(first, second *Entry) *Entry {
	if second == nil {
		return first
	}

	if first.Fields == nil {
		first.Fields = &Fields{}
	}
	if first.Persons == nil {
		first.Persons = &Persons{}
	}

	if second.Type != "" {
		first.Type = second.Type
	}

	if second.Persons != nil {
		for _, role := range second.Persons.Roles() {
			persons, _ := second.Persons.Get(role)
			if len(persons) == 0 {
				continue
			}
			cp := make([]Person, len(persons))
			for i, p := range persons {
				cp[i] = p.Clone()
			}
			first.Persons.Set(role, cp)
		}
	}

	if second.Fields != nil {
		for _, name := range second.Fields.Keys() {
			v, _ := second.Fields.Get(name)
			if v.IsZero() {
				continue
			}
			first.Fields.Set(name, v)
		}
	}

	return first
}
