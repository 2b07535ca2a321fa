package mkfile

import "sort"

// Variable is a named makefile value. A deferred value is raw text that is
// re-expanded on every read; an immediate value was expanded once when it
// was assigned.
type Variable struct {
	Name     string
	Value    string
	Deferred bool
}

// VariableStore maps names to variables. Assigning an existing name
// overwrites it in place.
type VariableStore struct {
	vars map[string]*Variable
}

func NewVariableStore() *VariableStore {
	return &VariableStore{vars: make(map[string]*Variable)}
}

// Define sets name to value, replacing any earlier definition.
func (s *VariableStore) Define(name, value string, deferred bool) Variable {
	v, ok := s.vars[name]
	if !ok {
		v = &Variable{Name: name}
		s.vars[name] = v
	}
	v.Value = value
	v.Deferred = deferred
	return *v
}

func (s *VariableStore) Lookup(name string) (Variable, bool) {
	v, ok := s.vars[name]
	if !ok {
		return Variable{}, false
	}
	return *v, true
}

func (s *VariableStore) Len() int { return len(s.vars) }

// All returns a copy of every variable, sorted by name.
func (s *VariableStore) All() []Variable {
	names := make([]string, 0, len(s.vars))
	for name := range s.vars {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Variable, len(names))
	for i, name := range names {
		out[i] = *s.vars[name]
	}
	return out
}
