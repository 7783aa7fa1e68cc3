package operation

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// ErrNotDirectory is the cause of a DirectoryAccessError raised for a target
// that exists but is not a directory.
var ErrNotDirectory = errors.Base("not a directory")

// DirectoryAccessError reports a target directory that is missing, not a
// directory, or cannot be listed. No file has been touched when it is returned.
type DirectoryAccessError struct {
	Dir string
	Err error
}

func (e *DirectoryAccessError) Error() string {
	return fmt.Sprintf("accessing directory %q: %v", e.Dir, e.Err)
}

func (e *DirectoryAccessError) Unwrap() error {
	return e.Err
}

// FileAccessError reports a single file that could not be read or written,
// including one that disappeared between listing and processing.
type FileAccessError struct {
	Path string
	Op   string // "read" or "write"
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("%s file %q: %v", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}
