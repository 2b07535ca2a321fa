// Command makelib prints the link order of libraries: for every library
// named on the command line it walks the dependency table and writes a
// "-l" line with a cycle-free order of everything the library pulls in.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"mktools/pkg/lib"
	"mktools/pkg/libdep"
	"mktools/pkg/logging"

	flag "github.com/spf13/pflag"
)

const appName = "makelib"

var envConfig = strings.ToUpper(appName) + "_CONFIG"

// defaultConfigPath returns the dependency table location.
// Priority: $MAKELIB_CONFIG > ~/.makelib > ./.makelib
func defaultConfigPath() string {
	if v := os.Getenv(envConfig); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	return filepath.Join(home, "."+appName)
}

type options struct {
	config    string
	forceYAML bool
	formatter libdep.Formatter
}

// run loads the table and writes one formatted order per library.
func run(out io.Writer, logger *slog.Logger, opts options, libs []string) error {
	table, err := libdep.LoadTableFile(opts.config, opts.forceYAML)
	if err != nil {
		return err
	}
	logger.Debug("loaded dependency table", "path", opts.config, "entries", table.Len())

	for _, name := range libs {
		order := libdep.Linearize(table, name, logger)
		if err := opts.formatter.Write(out, order.Names()); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	// Use pflag for POSIX-style CLI argument parsing with short/long flags
	config := flag.StringP("config", "c", "", "dependency table (default: $"+envConfig+", then ~/."+appName+")")
	forceYAML := flag.Bool("yaml", false, "read the table as YAML regardless of its extension")
	width := flag.IntP("width", "w", libdep.DefaultWidth, "column budget before a line is continued")
	marker := flag.String("marker", libdep.DefaultMarker, "prefix written before each library name")
	debug := flag.Bool("debug", false, "print debug traces")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] library ...\n\n", appName)
		flag.PrintDefaults()
	}
	flag.Parse()

	level := logging.LevelInfo
	if *debug {
		level = logging.LevelDebug
	}
	logger := logging.New(logging.Config{
		Level:  level,
		Writer: os.Stderr,
		Color:  logging.ShouldColor(os.Stderr),
	})

	opts := options{
		config:    *config,
		forceYAML: *forceYAML,
		formatter: libdep.Formatter{Marker: *marker, Width: *width},
	}
	if opts.config == "" {
		opts.config = defaultConfigPath()
	}

	if err := run(os.Stdout, logger, opts, flag.Args()); err != nil {
		lib.Exit(err)
	}
}
