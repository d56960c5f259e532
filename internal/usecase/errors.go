package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	// ErrFeedUnavailable marks a required schedule feed that could not be loaded.
	ErrFeedUnavailable = errors.New("schedule feed unavailable")
)
