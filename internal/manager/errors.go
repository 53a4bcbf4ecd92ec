package manager

import "errors"

// modelNotFoundError is returned when a requested model id or name is not in the registry.
type modelNotFoundError struct{ id string }

func (e modelNotFoundError) Error() string { return "model not found: " + e.id }

// ErrModelNotFound constructs a modelNotFoundError.
func ErrModelNotFound(id string) error { return modelNotFoundError{id: id} }

// IsModelNotFound reports whether the error indicates a missing model id.
func IsModelNotFound(err error) bool {
	var e modelNotFoundError
	return errors.As(err, &e)
}

// invalidInputError rejects a request before any state is touched.
type invalidInputError struct{ msg string }

func (e invalidInputError) Error() string { return "invalid input: " + e.msg }

// ErrInvalidInput constructs an invalidInputError.
func ErrInvalidInput(msg string) error { return invalidInputError{msg: msg} }

// IsInvalidInput reports whether err rejected the caller's input (return 400).
func IsInvalidInput(err error) bool {
	var e invalidInputError
	return errors.As(err, &e)
}

// ErrNoModelLoaded is returned by operations that need an active backend.
var ErrNoModelLoaded = errors.New("no model loaded")

// IsNoModelLoaded reports whether err means nothing is loaded (return 409).
func IsNoModelLoaded(err error) bool { return errors.Is(err, ErrNoModelLoaded) }

// dependencyUnavailableError signals a missing external dependency (e.g., llama.cpp)
// so the HTTP layer can return 503 Service Unavailable instead of 500.
type dependencyUnavailableError struct{ msg string }

func (e dependencyUnavailableError) Error() string { return e.msg }

// ErrDependencyUnavailable constructs a dependencyUnavailableError.
func ErrDependencyUnavailable(msg string) error { return dependencyUnavailableError{msg: msg} }

// IsDependencyUnavailable reports whether err indicates a missing/failed runtime dependency.
func IsDependencyUnavailable(err error) bool {
	var e dependencyUnavailableError
	return errors.As(err, &e)
}
