package graph

import "sort"

// Set is an unordered set of node names.
// Sorted gives the deterministic iteration order every algorithm in this
// module relies on.
type Set map[string]struct{}

// NewSet returns a set holding the given names.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func (s Set) Add(name string)    { s[name] = struct{}{} }
func (s Set) Remove(name string) { delete(s, name) }
func (s Set) Len() int           { return len(s) }

func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Sorted returns the members in ascending name order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
