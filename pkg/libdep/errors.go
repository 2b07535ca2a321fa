package libdep

import "errors"

var (
	ErrConfigNotFound = errors.New("dependency configuration not found")
	ErrInvalidTable   = errors.New("invalid dependency table")
)
