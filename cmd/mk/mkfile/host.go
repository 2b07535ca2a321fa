package mkfile

import (
	"context"
	"io"
	"os"
	"os/exec"
	"time"
)

// Host is the set of capabilities the interpreter needs from its
// environment. Everything the core touches outside its own state goes
// through a Host, so tests can substitute an in-memory one.
type Host interface {
	ReadFile(path string) ([]byte, error)
	FileExists(path string) bool
	FileModTime(path string) (time.Time, error)
	// RunProcess runs command through the shell and blocks until it exits.
	RunProcess(ctx context.Context, command string) error
	LookupEnv(name string) (string, bool)
}

// DefaultShell runs recipe commands when OSHost.Shell is empty.
const DefaultShell = "/bin/sh"

// OSHost is the Host backed by the real file system and processes.
type OSHost struct {
	// Shell is invoked as `<Shell> -c <command>`.
	Shell string
	// Env overlays the process environment, both for variable lookup
	// and for spawned commands.
	Env map[string]string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewOSHost returns an OSHost wired to the process standard streams.
func NewOSHost(shell string, env map[string]string) *OSHost {
	if shell == "" {
		shell = DefaultShell
	}
	return &OSHost{
		Shell:  shell,
		Env:    env,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

func (h *OSHost) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (h *OSHost) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (h *OSHost) FileModTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

func (h *OSHost) RunProcess(ctx context.Context, command string) error {
	shell := h.Shell
	if shell == "" {
		shell = DefaultShell
	}
	cmd := exec.CommandContext(ctx, shell, "-c", command)

	// Start from the process env, then overlay env-file values.
	cmd.Env = os.Environ()
	for k, v := range h.Env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	cmd.Stdin = h.Stdin
	cmd.Stdout = h.Stdout
	cmd.Stderr = h.Stderr
	return cmd.Run()
}

func (h *OSHost) LookupEnv(name string) (string, bool) {
	if v, ok := h.Env[name]; ok {
		return v, true
	}
	return os.LookupEnv(name)
}
