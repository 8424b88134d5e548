package build

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrorKind classifies a per-file task failure
type ErrorKind string

const (
	ReadError  ErrorKind = "ReadError"
	ParseError ErrorKind = "ParseError"
	WriteError ErrorKind = "WriteError"
)

// ErrInvalidIdentifier is returned when an entity name cannot be used as a file stem
var ErrInvalidIdentifier = errors.New("entity name is not a valid identifier")

// DiscoveryError means the input directory could not be listed. No task was started.
type DiscoveryError struct {
	Dir string
	Err error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("discovery failed for %s: %v", e.Dir, e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// TaskError is the failure of one file's generation task
type TaskError struct {
	Kind ErrorKind
	File string
	Err  error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.File, e.Err)
}

func (e *TaskError) Unwrap() error { return e.Err }

// ManifestWriteError means the aggregator file could not be written
type ManifestWriteError struct {
	Path string
	Err  error
}

func (e *ManifestWriteError) Error() string {
	return fmt.Sprintf("failed to write manifest %s: %v", e.Path, e.Err)
}

func (e *ManifestWriteError) Unwrap() error { return e.Err }

func newDiscoveryError(dir string, err error) error {
	return errors.WithHintf(&DiscoveryError{Dir: dir, Err: err},
		"check that input_dir points at a readable directory")
}

func newManifestWriteError(path string, err error) error {
	return errors.WithHint(&ManifestWriteError{Path: path, Err: err},
		"entity files were written; rerun once the output directory is writable")
}
