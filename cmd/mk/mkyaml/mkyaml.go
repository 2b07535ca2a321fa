// Package mkyaml renders a snapshot of an interpreted makefile as YAML.
package mkyaml

import (
	"fmt"
	"io"

	"mktools/cmd/mk/mkfile"

	"gopkg.in/yaml.v3"
)

// Snapshot is the YAML-level view of a Session after its makefiles were read.
type Snapshot struct {
	Default   string     `yaml:"default,omitempty"`
	Files     []string   `yaml:"files,omitempty"`
	Variables []Variable `yaml:"variables,omitempty"`
	Rules     []Rule     `yaml:"rules,omitempty"`
}

type Variable struct {
	Name     string `yaml:"name"`
	Value    string `yaml:"value"`
	Deferred bool   `yaml:"deferred,omitempty"`
}

type Rule struct {
	Target  string    `yaml:"target"`
	Phony   bool      `yaml:"phony,omitempty"`
	Prereqs []string  `yaml:"prereqs,omitempty"`
	Recipe  []Command `yaml:"recipe,omitempty"`
}

type Command struct {
	Text   string `yaml:"cmd"`
	Silent bool   `yaml:"silent,omitempty"`
	Ignore bool   `yaml:"ignore,omitempty"`
}

// FromSession captures the rules, variables and files of s. Rules keep
// their definition order; variables are sorted by name and hold raw values.
func FromSession(s *mkfile.Session) Snapshot {
	snap := Snapshot{Files: s.Files()}
	if def := s.Rules().Default(); def != nil {
		snap.Default = def.Name
	}
	for _, v := range s.Variables() {
		snap.Variables = append(snap.Variables, Variable{Name: v.Name, Value: v.Value, Deferred: v.Deferred})
	}
	for _, name := range s.Rules().Names() {
		r := s.Rules().Get(name)
		out := Rule{Target: r.Name, Phony: r.Phony, Prereqs: r.Prereqs}
		for _, c := range r.Recipe {
			out.Recipe = append(out.Recipe, Command{Text: c.Text, Silent: c.Silent, Ignore: c.Ignore})
		}
		snap.Rules = append(snap.Rules, out)
	}
	return snap
}

// Write encodes the snapshot of s to w with two-space indentation.
func Write(w io.Writer, s *mkfile.Session) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(FromSession(s)); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return enc.Close()
}

// Read decodes a snapshot previously produced by Write.
func Read(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}
