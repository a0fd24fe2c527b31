package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrQuit signals that the editor should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrNoFilePath indicates a save was attempted on a scratch document.
	ErrNoFilePath = errors.New("document has no file path")

	// ErrReadOnly indicates a write was attempted on a read-only document.
	ErrReadOnly = errors.New("document is read-only")

	// ErrInvalidCursor indicates a malformed LINE:COL cursor.
	ErrInvalidCursor = errors.New("invalid cursor")
)

// InitError reports a component that failed to start.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("initializing %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// FileError reports a failed file operation.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
