// Package remote holds the error types shared by the HTTP clients for
// external services (quotes, identity).
package remote

import (
	"errors"
	"fmt"
)

// NetworkError indicates a transport-level failure talking to a remote
// service. It is surfaced to the user as a message; operations are not
// retried.
type NetworkError struct {
	Service string
	Err     error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Service, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsNetworkError reports whether err (or any error in its chain) is a
// NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// AuthError indicates the identity provider rejected a request.
// Message is user-facing.
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error (%s): %s", e.Code, e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an
// AuthError.
func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}
