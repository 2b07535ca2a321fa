// Package mkfile interprets makefiles: it reads variable assignments, rules
// and recipes into a Session and builds targets whose files are stale.
package mkfile

import (
	"io"
	"log/slog"
	"os"
)

// Options configures a Session.
type Options struct {
	// Logger receives warnings and debug traces. Default: slog.Default().
	Logger *slog.Logger
	// Echo receives each recipe command before it runs. Default: os.Stderr.
	Echo io.Writer

	// Quiet disables command echo.
	Quiet bool
	// DryRun echoes commands without running them.
	DryRun bool
	// Memoize builds each rule at most once per Make call.
	Memoize bool
	// StopOnError aborts a recipe on the first failing command that is not
	// marked ignore, and makes Make return the failure.
	StopOnError bool
}

// Session holds the state of one interpreter run: variables, rules,
// the conditional block stack and the rule currently receiving recipe lines.
//
// A Session is not safe for concurrent use, and must not be mutated while
// Make is running.
type Session struct {
	host Host
	opts Options
	log  *slog.Logger
	echo io.Writer

	vars    *VariableStore
	rules   *RuleGraph
	blocks  BlockStack
	current *Rule

	files []string
	pos   position
}

// position is the file and line being interpreted, for diagnostics.
type position struct {
	file string
	line int
}

func NewSession(host Host, opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	echo := opts.Echo
	if echo == nil {
		echo = os.Stderr
	}
	return &Session{
		host:  host,
		opts:  opts,
		log:   log,
		echo:  echo,
		vars:  NewVariableStore(),
		rules: NewRuleGraph(),
	}
}

func (s *Session) Rules() *RuleGraph { return s.rules }

// Variables returns the variables defined so far, sorted by name.
// Environment values appear once they have been read.
func (s *Session) Variables() []Variable { return s.vars.All() }

// Files returns the makefiles read so far, in the order they were opened.
func (s *Session) Files() []string {
	return append([]string(nil), s.files...)
}

// BlockDepth returns the number of open ifdef/ifndef blocks.
func (s *Session) BlockDepth() int { return s.blocks.Depth() }

func (s *Session) Options() Options { return s.opts }

// warn logs a warning tagged with the current file and line.
func (s *Session) warn(msg string, args ...any) {
	if s.pos.file != "" {
		args = append(args, "file", s.pos.file, "line", s.pos.line)
	}
	s.log.Warn(msg, args...)
}
