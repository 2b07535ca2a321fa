// Package logging builds the slog loggers shared by the mk and makelib
// binaries. Diagnostics go to stderr as key=value text; the level label is
// coloured when the output is a terminal.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Level is the minimum severity a logger emits.
//
// Debug < Info < Warn < Error. The zero value is LevelInfo.
type Level int

const (
	LevelDebug Level = iota - 1
	LevelInfo
	LevelWarn
	LevelError
)

// String returns "DEBUG", "INFO", "WARN", "ERROR" or "UNKNOWN".
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) toSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel maps a case-insensitive level name to a Level. Unknown names
// yield LevelInfo and false.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, true
	case "info", "":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error":
		return LevelError, true
	default:
		return LevelInfo, false
	}
}

// Config configures New. The zero value writes Info and above to stderr
// without colour.
type Config struct {
	// Level sets the minimum level. Default: LevelInfo.
	Level Level

	// Writer receives formatted records. Default: os.Stderr.
	Writer io.Writer

	// Color styles the level label with ANSI colours.
	Color bool
}

var (
	styleDebug = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	styleInfo  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	styleError = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// New returns a text logger configured by cfg. Timestamps are dropped: the
// tools are short-lived and their output is read by people, not shippers.
func New(cfg Config) *slog.Logger {
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level: cfg.Level.toSlogLevel(),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return a
			}
			switch a.Key {
			case slog.TimeKey:
				return slog.Attr{}
			case slog.LevelKey:
				if cfg.Color {
					if lvl, ok := a.Value.Any().(slog.Level); ok {
						return slog.String(slog.LevelKey, styleLevel(lvl))
					}
				}
			}
			return a
		},
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// ShouldColor reports whether f is a terminal and NO_COLOR is unset.
func ShouldColor(f *os.File) bool {
	if f == nil {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func styleLevel(lvl slog.Level) string {
	label := lvl.String()
	switch {
	case lvl < slog.LevelInfo:
		return styleDebug.Render(label)
	case lvl < slog.LevelWarn:
		return styleInfo.Render(label)
	case lvl < slog.LevelError:
		return styleWarn.Render(label)
	default:
		return styleError.Render(label)
	}
}
