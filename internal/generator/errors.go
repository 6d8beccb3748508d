package generator

import (
	"errors"
	"fmt"
)

// ErrConflictAborted is returned when the user declines to overwrite an
// existing unit. Nothing was written; callers treat it as a clean no-op.
var ErrConflictAborted = errors.New("aborted: existing files left untouched")

// TemplateIOError reports a failed copy, rename, read or write. Files
// written before the failure are left in place.
type TemplateIOError struct {
	Op   string
	Path string
	Err  error
}

func (e *TemplateIOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *TemplateIOError) Unwrap() error {
	return e.Err
}

func ioError(op, path string, err error) error {
	return &TemplateIOError{Op: op, Path: path, Err: err}
}
