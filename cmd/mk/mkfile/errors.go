package mkfile

import "errors"

var (
	ErrOpenMakefile  = errors.New("cannot open makefile")
	ErrCommandFailed = errors.New("command failed")
)
