package retrieval

import "errors"

// strategyNotFoundError is returned when a request names an unregistered strategy.
type strategyNotFoundError struct{ name string }

func (e strategyNotFoundError) Error() string { return "unknown context strategy: " + e.name }

// ErrStrategyNotFound constructs a strategyNotFoundError.
func ErrStrategyNotFound(name string) error { return strategyNotFoundError{name: name} }

// IsStrategyNotFound reports whether err names an unknown strategy.
func IsStrategyNotFound(err error) bool {
	var e strategyNotFoundError
	return errors.As(err, &e)
}

type strategyExistsError struct{ name string }

func (e strategyExistsError) Error() string { return "context strategy already registered: " + e.name }

// IsStrategyExists reports whether err came from registering a duplicate key.
func IsStrategyExists(err error) bool {
	var e strategyExistsError
	return errors.As(err, &e)
}

type invalidStrategyError struct{ msg string }

func (e invalidStrategyError) Error() string { return "invalid context strategy: " + e.msg }

// IsInvalidStrategy reports whether err rejected a strategy definition.
func IsInvalidStrategy(err error) bool {
	var e invalidStrategyError
	return errors.As(err, &e)
}
