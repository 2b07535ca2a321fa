package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"mktools/cmd/mk/mkfile"
	"mktools/pkg/logging"

	"github.com/joho/godotenv"
)

// appName is the single source of truth for the application name.
// Env var names are derived from it.
const appName = "mk"

var (
	envMakefile = strings.ToUpper(appName) + "_MAKEFILE"
	envShell    = strings.ToUpper(appName) + "_SHELL"
)

var errNoMakefile = errors.New("no makefile found")

// defaultMakefiles are tried in order when no makefile is named.
var defaultMakefiles = []string{"makefile", "Makefile"}

// resolveMakefile picks the makefile to read.
// Priority: --file > $MK_MAKEFILE > first existing default name.
// An empty result means no makefile was found.
func resolveMakefile(flagFile string, exists func(string) bool) string {
	if flagFile != "" {
		return flagFile
	}
	if v := os.Getenv(envMakefile); v != "" {
		return v
	}
	for _, name := range defaultMakefiles {
		if exists(name) {
			return name
		}
	}
	return ""
}

// resolveShell returns the shell recipes run under.
// Priority: --shell > $MK_SHELL > /bin/sh.
func resolveShell(flagShell string) string {
	if flagShell != "" {
		return flagShell
	}
	if v := os.Getenv(envShell); v != "" {
		return v
	}
	return mkfile.DefaultShell
}

// loadEnvFiles reads dotenv files in order; later files win.
func loadEnvFiles(paths []string) (map[string]string, error) {
	env := make(map[string]string)
	for _, p := range paths {
		vars, err := godotenv.Read(p)
		if err != nil {
			return nil, fmt.Errorf("read env file %s: %w", p, err)
		}
		for k, v := range vars {
			env[k] = v
		}
	}
	return env, nil
}

// newLogger builds the diagnostic logger from --debug.
func newLogger() *slog.Logger {
	level := logging.LevelInfo
	if flagDebug {
		level = logging.LevelDebug
	}
	return logging.New(logging.Config{
		Level:  level,
		Writer: os.Stderr,
		Color:  logging.ShouldColor(os.Stderr),
	})
}

// newSession builds an empty session configured from the command-line flags.
func newSession(logger *slog.Logger) (*mkfile.Session, *mkfile.OSHost, error) {
	env, err := loadEnvFiles(flagEnvFiles)
	if err != nil {
		return nil, nil, err
	}
	host := mkfile.NewOSHost(resolveShell(flagShell), env)

	if len(flagIncludeDirs) > 0 {
		logger.Debug("include directories are accepted but not searched", "dirs", flagIncludeDirs)
	}

	s := mkfile.NewSession(host, mkfile.Options{
		Logger:      logger,
		Echo:        os.Stderr,
		Quiet:       flagQuiet,
		DryRun:      flagDryRun,
		Memoize:     flagMemoize,
		StopOnError: flagStopOnError,
	})
	return s, host, nil
}

// loadSession builds a session and reads the selected makefile into it.
func loadSession(logger *slog.Logger) (*mkfile.Session, error) {
	s, host, err := newSession(logger)
	if err != nil {
		return nil, err
	}
	path := resolveMakefile(flagFile, host.FileExists)
	if path == "" {
		return nil, fmt.Errorf("%w (tried %s)", errNoMakefile, strings.Join(defaultMakefiles, ", "))
	}
	if err := s.ProcessFile(path, true); err != nil {
		return nil, err
	}
	return s, nil
}
