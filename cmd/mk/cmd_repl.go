package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"mktools/cmd/mk/mkfile"
	"mktools/cmd/mk/mkyaml"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Type makefile lines into a live session",
	Long: "Start an interactive session. The makefile, when one is found, is read first.\n" +
		"Each input line is interpreted as a makefile line; a line starting with\n" +
		"whitespace is taken as a recipe line. Meta-commands:\n\n" +
		"  !make [target]   build a target (default: the default target)\n" +
		"  !print NAME ...  print variable values\n" +
		"  !rules           list the rules\n" +
		"  !dump            print the session as YAML\n" +
		"  !quit            leave",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		s, err := loadSession(logger)
		if errors.Is(err, errNoMakefile) {
			s, _, err = newSession(logger)
		}
		if err != nil {
			return err
		}
		return runRepl(cmd.Context(), &repl{s: s, out: cmd.OutOrStdout(), logger: logger})
	},
}

// repl dispatches input lines to a Session.
type repl struct {
	s      *mkfile.Session
	out    io.Writer
	logger *slog.Logger
}

func runRepl(ctx context.Context, r *repl) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          appName + "> ",
		HistoryFile:     historyFile(),
		InterruptPrompt: "^C",
		EOFPrompt:       "!quit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			if line == "" {
				return nil
			}
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}

		quit, err := r.handle(ctx, line)
		if err != nil {
			fmt.Fprintln(rl.Stderr(), "Error:", err)
		}
		if quit {
			return nil
		}
	}
}

// handle processes one input line and reports whether the user asked to
// quit.
func (r *repl) handle(ctx context.Context, line string) (bool, error) {
	if strings.HasPrefix(line, "!") {
		return r.meta(ctx, strings.Fields(line[1:]))
	}
	if trimmed := strings.TrimLeft(line, " \t"); trimmed != line && trimmed != "" {
		line = "\t" + trimmed
	}
	r.s.ProcessLine(line)
	return false, nil
}

func (r *repl) meta(ctx context.Context, words []string) (bool, error) {
	if len(words) == 0 {
		return false, nil
	}
	args := words[1:]
	switch words[0] {
	case "quit", "q", "exit":
		return true, nil
	case "make":
		if len(args) == 0 {
			return false, r.s.Make(ctx)
		}
		for _, t := range args {
			if err := r.s.MakeTarget(ctx, t); err != nil {
				return false, err
			}
		}
		return false, nil
	case "print":
		printVariables(r.s, r.out, r.logger, args)
		return false, nil
	case "rules":
		printRules(r.out, r.s.Rules())
		return false, nil
	case "dump":
		return false, mkyaml.Write(r.out, r.s)
	default:
		return false, fmt.Errorf("unknown command !%s (try !make, !print, !rules, !dump, !quit)", words[0])
	}
}

// historyFile returns ~/.mk_history, or "" (no history) when the home
// directory is unknown.
func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "."+appName+"_history")
}
