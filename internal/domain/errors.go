package domain

import "errors"

// Sentinel errors shared across services, repositories and the filesystem
// layer. Callers wrap them with fmt.Errorf("...: %w", ...) and handlers map
// them to HTTP status codes with errors.Is().
var (
	// ErrNotFound indicates a missing note id or directory.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates invalid request input.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidPath indicates a relative path that resolves outside the
	// configured root directory.
	ErrInvalidPath = errors.New("invalid path")

	// ErrIO indicates an underlying filesystem failure during a write or
	// delete. The wrapping message carries the OS error detail.
	ErrIO = errors.New("i/o failure")
)
