package onepux

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the archive path does not exist.
type ErrFileNotFound struct {
	Path string
}

func (e *ErrFileNotFound) Error() string {
	return fmt.Sprintf("file not found: %q", e.Path)
}

// ErrNotAnArchive indicates the file exists but is not a valid ZIP
// container.
type ErrNotAnArchive struct {
	Path string
	Err  error
}

func (e *ErrNotAnArchive) Error() string {
	msg := fmt.Sprintf("not a valid export archive: %q", e.Path)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ErrNotAnArchive) Unwrap() error {
	return e.Err
}

// ErrMissingDocument indicates a required top-level document is absent
// from the archive.
type ErrMissingDocument struct {
	Name string
}

func (e *ErrMissingDocument) Error() string {
	return fmt.Sprintf("archive is missing required document %q", e.Name)
}

// ErrInvalidDocument indicates a required document could not be parsed.
type ErrInvalidDocument struct {
	Name string
	Err  error
}

func (e *ErrInvalidDocument) Error() string {
	return fmt.Sprintf("invalid document %q: %v", e.Name, e.Err)
}

func (e *ErrInvalidDocument) Unwrap() error {
	return e.Err
}

// IsNotFound returns true if the error is a missing-file error.
func IsNotFound(err error) bool {
	var notFound *ErrFileNotFound
	return errors.As(err, &notFound)
}

// IsInvalidArchive returns true for structural archive failures: not a ZIP
// container, a missing required document, or an unparseable one.
func IsInvalidArchive(err error) bool {
	var notArchive *ErrNotAnArchive
	var missing *ErrMissingDocument
	var invalid *ErrInvalidDocument
	return errors.As(err, &notArchive) || errors.As(err, &missing) || errors.As(err, &invalid)
}
