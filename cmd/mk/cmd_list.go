package main

import (
	"fmt"
	"io"

	"mktools/cmd/mk/mkfile"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the rules of the makefile in definition order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(newLogger())
		if err != nil {
			return err
		}
		printRules(cmd.OutOrStdout(), s.Rules())
		return nil
	},
}

// printRules prints one rule per line with its prerequisites, aligned, and
// marks the default target and phony rules.
func printRules(w io.Writer, g *mkfile.RuleGraph) {
	names := g.Names()
	if len(names) == 0 {
		fmt.Fprintln(w, "no rules found")
		return
	}

	maxLen := 0
	for _, name := range names {
		if len(name) > maxLen {
			maxLen = len(name)
		}
	}

	def := ""
	if r := g.Default(); r != nil {
		def = r.Name
	}
	for _, name := range names {
		r := g.Get(name)
		tags := ""
		if name == def {
			tags += " (default)"
		}
		if r.Phony {
			tags += " (phony)"
		}
		fmt.Fprintf(w, "%-*s :", maxLen, name)
		for _, p := range r.Prereqs {
			fmt.Fprintf(w, " %s", p)
		}
		fmt.Fprintln(w, tags)
	}
}
