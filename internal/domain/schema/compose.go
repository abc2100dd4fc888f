package schema

import "fmt"

// Compose merges parent schemas into one field table.
//
// The result holds the ordered union of the parents' fields, deduplicated by
// internal name. A field keeps the position of its first declaration while a
// later parent's declaration replaces an earlier one, so defaults follow
// left-to-right precedence. Parents that disagree on a shared field's type or
// external name produce a SchemaConflictError.
func Compose(name string, parents ...*Schema) (*Schema, error) {
	s := &Schema{
		name:     name,
		index:    make(map[string]int),
		external: make(map[string]int),
		parents:  parents,
	}
	owner := make(map[string]string)

	for _, p := range parents {
		for _, f := range p.fields {
			i, seen := s.index[f.Name]
			if !seen {
				if err := s.add(f); err != nil {
					return nil, err
				}
				owner[f.Name] = p.name
				continue
			}

			prev := s.fields[i]
			if prev.Type != f.Type {
				return nil, NewSchemaConflictError(name, f.Name,
					fmt.Sprintf("type %s in %s conflicts with %s in %s", prev.Type, owner[f.Name], f.Type, p.name))
			}
			if prev.External != f.External {
				return nil, NewSchemaConflictError(name, f.Name,
					fmt.Sprintf("external name %q in %s conflicts with %q in %s", prev.External, owner[f.Name], f.External, p.name))
			}
			s.fields[i] = f
			owner[f.Name] = p.name
		}
	}
	return s, nil
}

// MustCompose is Compose for package level declarations, so conflicts surface
// when the program loads.
func MustCompose(name string, parents ...*Schema) *Schema {
	s, err := Compose(name, parents...)
	if err != nil {
		panic(err)
	}
	return s
}
