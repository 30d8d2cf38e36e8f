package fixture

import (
	"errors"
	"fmt"
	"io/fs"
)

// Fixture errors. ErrDirectory also matches ErrNotFound.
var (
	ErrNotFound        = errors.New("fixture not found")
	ErrDirectory       = fmt.Errorf("%w: directory does not exist", ErrNotFound)
	ErrParse           = errors.New("invalid fixture content")
	ErrRead            = errors.New("fixture unreadable")
	ErrNotStructured   = errors.New("fixture content is not structured")
	ErrInvalidQuery    = errors.New("invalid fixture query")
	ErrInvalidPattern  = errors.New("invalid fixture pattern")
	ErrSchemaViolation = errors.New("fixture does not match schema")

	ErrWatcherStarted = errors.New("fixture watcher already started")
	ErrWatcherStopped = errors.New("fixture watcher stopped")
)

// PathError records a failed fixture operation on a path.
type PathError struct {
	Op   string
	Path string
	// Kind is one of the package sentinel errors.
	Kind error
	// Err is the underlying OS or decoder error, if any.
	Err error
}

func (e *PathError) Error() string {
	msg := e.Op + " " + e.Path + ": " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the sentinel kind and the underlying error.
func (e *PathError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// readError classifies an error returned by os.ReadFile.
func readError(op, path string, err error) *PathError {
	kind := ErrRead
	if errors.Is(err, fs.ErrNotExist) {
		kind = ErrNotFound
	}
	return &PathError{Op: op, Path: path, Kind: kind, Err: err}
}
