package cli

import (
	"errors"
	"fmt"
)

// Common CLI errors
var (
	ErrFixtureNotFound  = errors.New("fixture not found")
	ErrValidationIssues = errors.New("fixtures have issues")
)

// Exit codes other than the generic 1.
const (
	ExitNotFound = 2
	ExitIssues   = 3
)

// ExitError carries a specific process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func notFound(path string) error {
	return &ExitError{Code: ExitNotFound, Err: fmt.Errorf("%w: %s", ErrFixtureNotFound, path)}
}

func issuesFound(n int) error {
	return &ExitError{Code: ExitIssues, Err: fmt.Errorf("%w: %d", ErrValidationIssues, n)}
}
