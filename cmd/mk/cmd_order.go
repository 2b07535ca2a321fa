package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"mktools/cmd/mk/mkfile"
	"mktools/pkg/libdep"

	"github.com/spf13/cobra"
)

var errNoTarget = errors.New("no target given and the makefile has no default target")

var flagOrderReverse bool

var orderCmd = &cobra.Command{
	Use:   "order [target]",
	Short: "Print the dependency order of a target's rules",
	Long: "Flatten the rule graph below a target (default: the default target) into a\n" +
		"single order, dependents first, breaking cycles where needed. Each name is\n" +
		"printed once. With --reverse, dependencies come first.",
	Args: cobra.MaximumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return targetCompletion(toComplete)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		s, err := loadSession(logger)
		if err != nil {
			return err
		}
		seed := ""
		if len(args) == 1 {
			seed = args[0]
		} else if r := s.Rules().Default(); r != nil {
			seed = r.Name
		}
		if seed == "" {
			return errNoTarget
		}
		printOrder(cmd.OutOrStdout(), ruleOrder(s.Rules(), seed, logger), flagOrderReverse)
		return nil
	},
}

func init() {
	orderCmd.Flags().BoolVarP(&flagOrderReverse, "reverse", "r", false, "print dependencies before dependents")
}

// ruleTable turns the rule graph into a dependency table: each rule depends
// on its prerequisites. Prerequisites without a rule become empty entries so
// that they are ordered as leaves instead of being reported missing.
func ruleTable(g *mkfile.RuleGraph) *libdep.Table {
	t := libdep.NewTable()
	for _, name := range g.Names() {
		for _, p := range g.Get(name).Prereqs {
			if _, ok := t.Lookup(p); !ok {
				t.Add(p, nil)
			}
		}
	}
	for _, name := range g.Names() {
		t.Add(name, g.Get(name).Prereqs)
	}
	return t
}

func ruleOrder(g *mkfile.RuleGraph, seed string, logger *slog.Logger) []string {
	return libdep.Linearize(ruleTable(g), seed, logger).Unique()
}

func printOrder(w io.Writer, names []string, reverse bool) {
	if reverse {
		for i := len(names) - 1; i >= 0; i-- {
			fmt.Fprintln(w, names[i])
		}
		return
	}
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
}
