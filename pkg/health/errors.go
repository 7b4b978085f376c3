package health

import "errors"

var (
	// ErrCheckFailed wraps the error of a failing check.
	ErrCheckFailed = errors.New("health: check failed")
	// ErrCheckTimeout is reported for a check still running when its deadline passes.
	ErrCheckTimeout = errors.New("health: check timeout")
	// ErrNotDirectory is reported when the checked content path is a file.
	ErrNotDirectory = errors.New("health: content path is not a directory")
)
