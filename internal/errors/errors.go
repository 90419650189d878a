package errors

import (
	"errors"
	"fmt"
)

// Common error types for the application shell
var (
	// Signed-link errors
	ErrExpiredLink      = errors.New("signed link expired")
	ErrInvalidSignature = errors.New("invalid link signature")
	ErrInvalidTimestamp = errors.New("invalid link timestamp")

	// Session errors
	ErrUnauthenticated = errors.New("no valid session")

	// Callback errors
	ErrMissingParameters = errors.New("missing required parameters")
	ErrUpstreamExchange  = errors.New("upstream token exchange failed")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
