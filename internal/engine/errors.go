package engine

import (
	"errors"

	"github.com/danieljhkim/flatten/internal/discovery"
	"github.com/danieljhkim/flatten/internal/fsops"
)

var (
	// ErrValidation indicates the request itself is unusable.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates a parent directory does not exist.
	ErrNotFound = errors.New("directory not found")

	// ErrNoFiles indicates no file was found beneath any parent directory.
	ErrNoFiles = discovery.ErrNoFiles

	// ErrMove indicates a file could not be moved.
	ErrMove = errors.New("move failed")

	// ErrDelete indicates a sub-directory could not be deleted.
	ErrDelete = errors.New("delete failed")

	// ErrTargetExists indicates a move would overwrite an existing file.
	ErrTargetExists = fsops.ErrExists

	// ErrAborted indicates the user declined a confirmation prompt.
	ErrAborted = errors.New("aborted by user")
)
