package mkfile

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"testing"
	"time"

	"mktools/pkg/logging"
)

// fakeHost is an in-memory Host. Files have contents and mtimes; commands
// are recorded and may be scripted to fail.
type fakeHost struct {
	files  map[string][]byte
	mtimes map[string]time.Time
	env    map[string]string
	fail   map[string]error
	ran    []string
	// onRun lets a test touch files while a command "runs".
	onRun func(command string)
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		files:  map[string][]byte{},
		mtimes: map[string]time.Time{},
		env:    map[string]string{},
		fail:   map[string]error{},
	}
}

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// touch creates path with an mtime offset seconds after epoch.
func (h *fakeHost) touch(path string, offset int) {
	if _, ok := h.files[path]; !ok {
		h.files[path] = nil
	}
	h.mtimes[path] = epoch.Add(time.Duration(offset) * time.Second)
}

func (h *fakeHost) write(path, text string) {
	h.files[path] = []byte(text)
	h.mtimes[path] = epoch
}

func (h *fakeHost) ReadFile(path string) ([]byte, error) {
	data, ok := h.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return data, nil
}

func (h *fakeHost) FileExists(path string) bool {
	_, ok := h.files[path]
	return ok
}

func (h *fakeHost) FileModTime(path string) (time.Time, error) {
	t, ok := h.mtimes[path]
	if !ok {
		return time.Time{}, fs.ErrNotExist
	}
	return t, nil
}

func (h *fakeHost) RunProcess(_ context.Context, command string) error {
	h.ran = append(h.ran, command)
	if h.onRun != nil {
		h.onRun(command)
	}
	return h.fail[command]
}

func (h *fakeHost) LookupEnv(name string) (string, bool) {
	v, ok := h.env[name]
	return v, ok
}

var errExit1 = errors.New("exit status 1")

// testSession returns a session over host whose diagnostics and echo are
// captured in buffers.
func testSession(h *fakeHost, opts Options) (*Session, *bytes.Buffer, *bytes.Buffer) {
	var logBuf, echoBuf bytes.Buffer
	opts.Logger = logging.New(logging.Config{Level: logging.LevelWarn, Writer: &logBuf})
	opts.Echo = &echoBuf
	return NewSession(h, opts), &logBuf, &echoBuf
}

// load interprets text as a makefile named "Makefile".
func load(t *testing.T, h *fakeHost, opts Options, text string) (*Session, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	s, logBuf, echoBuf := testSession(h, opts)
	s.ProcessText("Makefile", []byte(text))
	return s, logBuf, echoBuf
}
