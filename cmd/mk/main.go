package main

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"mktools/pkg/lib"
)

var (
	flagFile        string
	flagIncludeDirs []string
	flagShell       string
	flagQuiet       bool
	flagDebug       bool
	flagPrint       []string
	flagDryRun      bool
	flagMemoize     bool
	flagStopOnError bool
	flagEnvFiles    []string
	flagWatch       bool
	flagPick        bool
)

func main() {
	rootCmd.AddCommand(listCmd, dumpCmd, orderCmd, replCmd)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagFile, "file", "f", "",
		"makefile to read (default: $"+envMakefile+", then makefile, Makefile)")
	pf.StringArrayVarP(&flagIncludeDirs, "include-dir", "I", nil,
		"include directory (accepted for compatibility, not searched)")
	pf.StringVar(&flagShell, "shell", "",
		"shell recipes run under (default: $"+envShell+", then /bin/sh)")
	pf.BoolVar(&flagDebug, "debug", false, "print debug traces")
	pf.StringArrayVar(&flagEnvFiles, "env-file", nil,
		"dotenv file layered over the environment (repeatable)")

	f := rootCmd.Flags()
	f.BoolVar(&flagQuiet, "quiet", false, "do not echo commands")
	f.StringArrayVar(&flagPrint, "print", nil, "print the value of a variable (repeatable)")
	f.BoolVarP(&flagDryRun, "dry-run", "n", false, "print commands without running them")
	f.BoolVar(&flagMemoize, "memoize", false, "build each rule at most once per target")
	f.BoolVarP(&flagStopOnError, "stop-on-error", "e", false,
		"stop at the first failing command and exit non-zero")
	f.BoolVarP(&flagWatch, "watch", "w", false, "rebuild when the makefile or prerequisites change")
	f.BoolVar(&flagPick, "pick", false, "choose the target interactively")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if isFlagInterceptError(err) {
			err = lib.WithHint(err, "targets that start with '-' must follow --:\n  "+appName+" [flags] -- <targets>")
		}
		stop()
		lib.Exit(err)
	}
}

// isFlagInterceptError reports whether cobra rejected a flag that was
// probably meant as a target name.
func isFlagInterceptError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "unknown flag:") || strings.Contains(msg, "unknown shorthand flag:")
}
