// Package common provides shared utilities and types used across the client.
package common

import (
	"errors"
	"fmt"
)

// Client error taxonomy. API responses and local checks are folded into
// these so callers can branch with errors.Is.
var (
	// ErrUnauthenticated means there is no valid session; the host should
	// drop to the login flow.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrValidation marks input rejected before or by the server.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a record the server does not know about.
	ErrNotFound = errors.New("not found")

	// ErrRemote marks any other non-2xx response from the server.
	ErrRemote = errors.New("request rejected by server")

	// ErrNetwork marks a request that never completed.
	ErrNetwork = errors.New("could not reach server")
)

// UserError carries a message suitable for direct display alongside the
// underlying cause.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError wraps err with a user-facing message.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// UserMessage extracts the displayable message from an error chain, falling
// back to the plain error text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	return err.Error()
}
