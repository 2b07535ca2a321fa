package lib

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// hintError carries a follow-up hint printed under the error line.
type hintError struct {
	err  error
	hint string
}

func (e *hintError) Error() string { return e.err.Error() }
func (e *hintError) Unwrap() error { return e.err }

// WithHint attaches a hint to err. Exit prints it after the error.
func WithHint(err error, hint string) error {
	if err == nil {
		return nil
	}
	return &hintError{err: err, hint: hint}
}

// Fprint writes "Error: <err>" and any attached hint to w.
func Fprint(w io.Writer, err error) {
	fmt.Fprintln(w, "Error:", err)
	var h *hintError
	if errors.As(err, &h) && h.hint != "" {
		fmt.Fprintln(w, "\nhint:", h.hint)
	}
}

// Exit prints the error and exits the program with code 1
func Exit(err error) {
	Fprint(os.Stderr, err)
	os.Exit(1)
}
