package main

import (
	"bytes"
	"context"
	"io/fs"
	"log/slog"
	"testing"
	"time"

	"mktools/cmd/mk/mkfile"
	"mktools/pkg/logging"
)

// memHost is a minimal in-memory mkfile.Host: every file exists with the
// zero mtime and commands are only recorded.
type memHost struct {
	files map[string]string
	ran   []string
}

func (h *memHost) ReadFile(path string) ([]byte, error) {
	data, ok := h.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(data), nil
}

func (h *memHost) FileExists(path string) bool {
	_, ok := h.files[path]
	return ok
}

func (h *memHost) FileModTime(string) (time.Time, error) { return time.Time{}, nil }

func (h *memHost) RunProcess(_ context.Context, command string) error {
	h.ran = append(h.ran, command)
	return nil
}

func (h *memHost) LookupEnv(string) (string, bool) { return "", false }

// sessionFrom interprets text and returns the session, its host and a
// logger writing into the returned buffer.
func sessionFrom(t *testing.T, text string) (*mkfile.Session, *memHost, *slog.Logger, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelWarn, Writer: &logs})
	h := &memHost{files: map[string]string{}}
	s := mkfile.NewSession(h, mkfile.Options{Logger: logger, Echo: &bytes.Buffer{}})
	s.ProcessText("Makefile", []byte(text))
	return s, h, logger, &logs
}
