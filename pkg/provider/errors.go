package provider

import (
	"errors"
	"fmt"
	"io/fs"
)

// Sentinel errors for provider operations.
var (
	// ErrNotExist is returned when a path does not exist in the content root.
	ErrNotExist = errors.New("provider: path does not exist")

	// ErrNotDir is returned by ReadDir when the path is a file.
	ErrNotDir = errors.New("provider: not a directory")

	// ErrAccessDenied is returned when the backend refuses access to a path.
	ErrAccessDenied = errors.New("provider: access denied")

	// ErrInvalidConfig is returned when a remote provider is misconfigured.
	ErrInvalidConfig = errors.New("provider: invalid configuration")

	// ErrRemote is returned for backend failures that are not one of the above.
	ErrRemote = errors.New("provider: remote storage failure")
)

// wrapFSError maps io/fs errors onto the provider sentinels.
func wrapFSError(op, p string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s %s", ErrNotExist, op, p)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s %s", ErrAccessDenied, op, p)
	}
	return fmt.Errorf("provider: %s %s: %w", op, p, err)
}
