package main

import (
	"errors"
	"fmt"
	"strings"

	"mktools/cmd/mk/mkfile"

	"github.com/ktr0731/go-fuzzyfinder"
)

var (
	errNoTargets     = errors.New("the makefile defines no targets")
	errNothingPicked  = errors.New("no target selected")
)

// pickableTargets returns the rule names a user may pick: everything except
// dot rules, in definition order.
func pickableTargets(g *mkfile.RuleGraph) []string {
	var names []string
	for _, name := range g.Names() {
		if !strings.HasPrefix(name, ".") {
			names = append(names, name)
		}
	}
	return names
}

// pickTarget lets the user choose a target with a fuzzy finder. The preview
// pane shows the rule's prerequisites and recipe.
func pickTarget(s *mkfile.Session) (string, error) {
	names := pickableTargets(s.Rules())
	if len(names) == 0 {
		return "", errNoTargets
	}

	idx, err := fuzzyfinder.Find(
		names,
		func(i int) string {
			return names[i]
		},
		fuzzyfinder.WithPromptString("Target: "),
		fuzzyfinder.WithPreviewWindow(func(i, width, height int) string {
			if i < 0 {
				return ""
			}
			return describeRule(s.Rules().Get(names[i]))
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", errNothingPicked
		}
		return "", err
	}
	return names[idx], nil
}

// describeRule renders a rule the way it would appear in a makefile.
func describeRule(r *mkfile.Rule) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:", r.Name)
	for _, p := range r.Prereqs {
		b.WriteString(" " + p)
	}
	b.WriteString("\n")
	for _, c := range r.Recipe {
		b.WriteString("\t")
		switch {
		case c.Silent:
			b.WriteString("@")
		case c.Ignore:
			b.WriteString("-")
		}
		b.WriteString(c.Text + "\n")
	}
	if r.Phony {
		fmt.Fprintf(&b, "\n.PHONY: %s\n", r.Name)
	}
	return b.String()
}
