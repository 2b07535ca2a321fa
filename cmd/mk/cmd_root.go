package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"mktools/cmd/mk/mkfile"
	"mktools/pkg/logging"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   appName + " [flags] [target ...]",
	Short: "Build targets from a makefile",
	Long: appName + " reads a makefile and rebuilds the named targets whose files are out of date.\n\n" +
		"With no targets and no --print, the default target (the first rule whose name\n" +
		"does not start with '.') is built. Targets are auto-completable via shell completion.",
	Args: cobra.ArbitraryArgs,
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return targetCompletion(toComplete)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		if flagWatch {
			return watch(cmd.Context(), logger, args)
		}
		s, err := loadSession(logger)
		if err != nil {
			return err
		}
		if flagPick {
			target, err := pickTarget(s)
			if err != nil {
				return err
			}
			args = []string{target}
		}
		return run(cmd.Context(), s, cmd.OutOrStdout(), logger, args)
	},
}

// run prints the requested variables, then builds the named targets in
// order. When neither targets nor variables were requested the default
// target is built.
func run(ctx context.Context, s *mkfile.Session, out io.Writer, logger *slog.Logger, targets []string) error {
	printVariables(s, out, logger, flagPrint)

	for _, t := range targets {
		if s.Rules().Get(t) == nil {
			logger.Warn("no rule to make target", "target", t)
			continue
		}
		if err := s.MakeTarget(ctx, t); err != nil {
			return err
		}
	}
	if len(targets) == 0 && len(flagPrint) == 0 {
		return s.Make(ctx)
	}
	return nil
}

// printVariables writes name=value for each name. Undefined names are
// reported on the logger and skipped.
func printVariables(s *mkfile.Session, out io.Writer, logger *slog.Logger, names []string) {
	for _, name := range names {
		if !s.IsDefined(name) {
			logger.Warn("undefined variable", "name", name)
			continue
		}
		fmt.Fprintf(out, "%s=%s\n", name, s.Value(name))
	}
}

// targetCompletion suggests rule names from the makefile in the current
// directory. Dot rules are left out.
func targetCompletion(toComplete string) ([]string, cobra.ShellCompDirective) {
	s, err := loadSession(logging.Discard())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var suggestions []string
	for _, name := range s.Rules().Names() {
		if strings.HasPrefix(name, ".") {
			continue
		}
		if strings.HasPrefix(name, toComplete) {
			suggestions = append(suggestions, name)
		}
	}
	return suggestions, cobra.ShellCompDirectiveNoFileComp
}
